package reviews

import (
	"errors"
	"strconv"

	"yamdb/database"
	"yamdb/internal/api/apierr"
	"yamdb/internal/app/http/middleware"
	"yamdb/internal/domain/access"
	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/reviews"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var policy = access.AdminOrAuthorOrReadOnly{}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// titleID resolves :title_id to an existing title.
func titleID(c *gin.Context) (uint, bool) {
	id, ok := paramID(c, "title_id")
	if !ok {
		apierr.Respond(c, apierr.NotFound("Title not found"))
		return 0, false
	}

	var count int64
	if err := database.DB.WithContext(c.Request.Context()).
		Model(&catalog.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		apierr.Respond(c, err)
		return 0, false
	}
	if count == 0 {
		apierr.Respond(c, apierr.NotFound("Title not found"))
		return 0, false
	}
	return id, true
}

// loadReview resolves :review_id within the title named by :title_id.
func loadReview(c *gin.Context) (reviews.Review, bool) {
	var review reviews.Review

	tid, ok := titleID(c)
	if !ok {
		return review, false
	}
	rid, ok := paramID(c, "review_id")
	if !ok {
		apierr.Respond(c, apierr.NotFound("Review not found"))
		return review, false
	}

	err := database.DB.WithContext(c.Request.Context()).
		Preload("Author").
		Where("id = ? AND title_id = ?", rid, tid).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Respond(c, apierr.NotFound("Review not found"))
			return review, false
		}
		apierr.Respond(c, err)
		return review, false
	}
	return review, true
}

// loadComment resolves :comment_id within the review named by the path.
func loadComment(c *gin.Context) (reviews.Comment, bool) {
	var comment reviews.Comment

	review, ok := loadReview(c)
	if !ok {
		return comment, false
	}
	cid, ok := paramID(c, "comment_id")
	if !ok {
		apierr.Respond(c, apierr.NotFound("Comment not found"))
		return comment, false
	}

	err := database.DB.WithContext(c.Request.Context()).
		Preload("Author").
		Where("id = ? AND review_id = ?", cid, review.ID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Respond(c, apierr.NotFound("Comment not found"))
			return comment, false
		}
		apierr.Respond(c, err)
		return comment, false
	}
	return comment, true
}

// authorize applies the object-level check for writes on an authored object.
func authorize(c *gin.Context, authorID uint) bool {
	if err := access.CheckObject(policy, middleware.CallerFrom(c), c.Request.Method, authorID); err != nil {
		apierr.Respond(c, err)
		return false
	}
	return true
}
