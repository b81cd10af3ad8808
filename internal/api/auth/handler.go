package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"yamdb/database"
	"yamdb/internal/api/apierr"
	"yamdb/internal/domain/users"
	"yamdb/internal/infra/tokens"
	"yamdb/internal/logging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /auth/signup
func Signup(c *gin.Context) {
	var input SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		apierr.Respond(c, err)
		return
	}

	codes, err := tokens.Codes()
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	var user users.User
	err = database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var matches []users.User
		if err := tx.Where("username = ? OR email = ?", input.Username, input.Email).
			Limit(2).
			Find(&matches).Error; err != nil {
			return err
		}

		switch {
		case len(matches) == 0:
			user = users.User{
				Username:     input.Username,
				Email:        input.Email,
				Role:         users.RoleUser,
				Status:       users.StatusPending,
				StateVersion: 1,
			}
			if err := tx.Create(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apierr.ConflictingIdentity()
				}
				return err
			}
			return nil

		case len(matches) == 1 && matches[0].Username == input.Username && matches[0].Email == input.Email:
			user = matches[0]
			user.StateVersion++
			return tx.Model(&user).Update("state_version", user.StateVersion).Error

		default:
			return conflictFor(matches, input)
		}
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	logging.L.Info("confirmation code issued", "user_id", user.ID, "status", user.Status)
	sendConfirmationCode(c.Request.Context(), user.Email, user.Username, codes.Make(user))

	c.JSON(http.StatusOK, SignupResponse{Username: user.Username, Email: user.Email})
}

func conflictFor(matches []users.User, input SignupRequest) *apierr.Error {
	var opts []apierr.Option
	for _, m := range matches {
		if m.Username == input.Username && m.Email != input.Email {
			opts = append(opts, apierr.WithField("username", "this username is registered with a different email"))
		}
		if m.Email == input.Email && m.Username != input.Username {
			opts = append(opts, apierr.WithField("email", "this email is registered with a different username"))
		}
	}
	return apierr.ConflictingIdentity(opts...)
}

// POST /auth/token
func Token(c *gin.Context) {
	var input TokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		apierr.Respond(c, err)
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.ConfirmationCode = strings.TrimSpace(input.ConfirmationCode)
	if missing := missingTokenFields(input); missing != nil {
		apierr.Respond(c, missing)
		return
	}

	codes, err := tokens.Codes()
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	issuer, err := tokens.Default()
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	db := database.DB.WithContext(c.Request.Context())

	var user users.User
	if err := db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Respond(c, apierr.NotFound("User not found"))
			return
		}
		apierr.Respond(c, err)
		return
	}

	if !codes.Check(user, input.ConfirmationCode) {
		apierr.Respond(c, apierr.Field("confirmation_code", "invalid confirmation code"))
		return
	}

	// Bumping the state version makes the code single-use, even for concurrent redemptions.
	redeemed, err := users.Redeem(db, &user, time.Now().UTC())
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	if !redeemed {
		apierr.Respond(c, apierr.Field("confirmation_code", "invalid confirmation code"))
		return
	}

	pair, err := issuer.IssuePair(user)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	logging.L.Info("tokens issued", "user_id", user.ID)
	c.JSON(http.StatusOK, TokenResponse{Access: pair.Access, Refresh: pair.Refresh, Token: pair.Access})
}

func missingTokenFields(input TokenRequest) *apierr.Error {
	var opts []apierr.Option
	if input.Username == "" {
		opts = append(opts, apierr.WithField("username", "this field is required"))
	}
	if input.ConfirmationCode == "" {
		opts = append(opts, apierr.WithField("confirmation_code", "this field is required"))
	}
	if opts == nil {
		return nil
	}
	return apierr.Validation("invalid input", opts...)
}

// POST /auth/token/refresh
func Refresh(c *gin.Context) {
	var input RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		apierr.Respond(c, err)
		return
	}

	issuer, err := tokens.Default()
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	claims, err := issuer.Parse(input.Refresh, tokens.TypeRefresh)
	if err != nil {
		apierr.Respond(c, apierr.NotAuthenticated("Invalid or expired refresh token"))
		return
	}

	var user users.User
	if err := database.DB.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil || !user.IsActive() {
		apierr.Respond(c, apierr.NotAuthenticated("Invalid or expired refresh token"))
		return
	}

	access, err := issuer.IssueAccess(user)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}
