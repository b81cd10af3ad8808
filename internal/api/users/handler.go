package users

import (
	"errors"
	"net/http"

	"yamdb/database"
	"yamdb/internal/api/apierr"
	"yamdb/internal/api/pagination"
	"yamdb/internal/app/http/middleware"
	"yamdb/internal/domain/reviews"
	"yamdb/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /users/me
func GetCurrentUser(c *gin.Context) {
	user, ok := loadCaller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

// PATCH /users/me
// The caller's role is never taken from the payload.
func UpdateCurrentUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	user, ok := loadCaller(c)
	if !ok {
		return
	}

	updated, err := applyUpdate(c, user, req.changes(false))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(updated))
}

// GET /users
func ListUsers(c *gin.Context) {
	q := database.DB.WithContext(c.Request.Context()).Model(&users.User{})
	if search := c.Query("search"); search != "" {
		q = q.Where("username LIKE ?", "%"+search+"%")
	}
	q = q.Order("role ASC").Order("id ASC")

	page, err := pagination.Find[users.User, UserDTO](c, q, pagination.PageSize, toUserDTOs)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /users
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	role := users.RoleUser
	if req.Role != "" {
		role = users.Role(req.Role)
	}

	// Accounts created by an admin still need a confirmation code to obtain tokens.
	user := users.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		Role:         role,
		Status:       users.StatusPending,
		StateVersion: 1,
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apierr.Respond(c, apierr.Validation("a user with this username or email already exists"))
			return
		}
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserDTO(user))
}

// GET /users/:username
func GetUser(c *gin.Context) {
	user, ok := loadByUsername(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

// PATCH /users/:username
func UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	user, ok := loadByUsername(c)
	if !ok {
		return
	}

	updated, err := applyUpdate(c, user, req.changes(true))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(updated))
}

// DELETE /users/:username
func DeleteUser(c *gin.Context) {
	user, ok := loadByUsername(c)
	if !ok {
		return
	}
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := reviews.DeleteForAuthor(tx, user.ID); err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func loadCaller(c *gin.Context) (users.User, bool) {
	caller := middleware.CallerFrom(c)
	var user users.User
	if err := database.DB.WithContext(c.Request.Context()).First(&user, caller.UserID).Error; err != nil {
		apierr.Respond(c, err)
		return user, false
	}
	return user, true
}

func loadByUsername(c *gin.Context) (users.User, bool) {
	var user users.User
	err := database.DB.WithContext(c.Request.Context()).
		Where("username = ?", c.Param("username")).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Respond(c, apierr.NotFound("User not found"))
			return user, false
		}
		apierr.Respond(c, err)
		return user, false
	}
	return user, true
}

// applyUpdate writes changes and returns the fresh row. An email change revokes outstanding
// confirmation codes through the state version.
func applyUpdate(c *gin.Context, user users.User, changes map[string]any) (users.User, error) {
	if len(changes) == 0 {
		return user, nil
	}
	if email, ok := changes["email"]; ok && email != user.Email {
		changes["state_version"] = user.StateVersion + 1
	}

	db := database.DB.WithContext(c.Request.Context())
	if err := db.Model(&user).Updates(changes).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user, apierr.Validation("a user with this username or email already exists")
		}
		return user, err
	}

	var fresh users.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		return user, err
	}
	return fresh, nil
}
