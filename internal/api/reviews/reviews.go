package reviews

import (
	"errors"
	"net/http"

	"yamdb/database"
	"yamdb/internal/api/apierr"
	"yamdb/internal/api/pagination"
	"yamdb/internal/app/http/middleware"
	"yamdb/internal/domain/reviews"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errDuplicateReview = apierr.Validation("you have already reviewed this title")

// GET /titles/:title_id/reviews
func ListReviews(c *gin.Context) {
	tid, ok := titleID(c)
	if !ok {
		return
	}

	q := database.DB.WithContext(c.Request.Context()).
		Model(&reviews.Review{}).
		Where("title_id = ?", tid).
		Order("pub_date DESC").Order("id DESC")

	page, err := pagination.Find(c, q, pagination.ComplexPageSize, toReviewDTOs, "Author")
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /titles/:title_id/reviews
// One review per author and title.
func CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	tid, ok := titleID(c)
	if !ok {
		return
	}
	caller := middleware.CallerFrom(c)
	db := database.DB.WithContext(c.Request.Context())

	var existing int64
	if err := db.Model(&reviews.Review{}).
		Where("title_id = ? AND author_id = ?", tid, caller.UserID).
		Count(&existing).Error; err != nil {
		apierr.Respond(c, err)
		return
	}
	if existing > 0 {
		apierr.Respond(c, errDuplicateReview)
		return
	}

	review := reviews.Review{
		TitleID:  tid,
		AuthorID: caller.UserID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	// The unique index still decides concurrent submissions.
	if err := db.Omit("Title", "Author").Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apierr.Respond(c, errDuplicateReview)
			return
		}
		apierr.Respond(c, err)
		return
	}

	if err := db.Preload("Author").First(&review, review.ID).Error; err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewDTO(review))
}

// GET /titles/:title_id/reviews/:review_id
func GetReview(c *gin.Context) {
	review, ok := loadReview(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toReviewDTO(review))
}

// PATCH /titles/:title_id/reviews/:review_id
func UpdateReview(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	review, ok := loadReview(c)
	if !ok || !authorize(c, review.AuthorID) {
		return
	}

	changes := map[string]any{}
	if req.Text != nil {
		changes["text"] = *req.Text
	}
	if req.Score != nil {
		changes["score"] = *req.Score
	}

	db := database.DB.WithContext(c.Request.Context())
	if len(changes) > 0 {
		if err := db.Model(&reviews.Review{ID: review.ID}).Updates(changes).Error; err != nil {
			apierr.Respond(c, err)
			return
		}
		if err := db.Preload("Author").First(&review, review.ID).Error; err != nil {
			apierr.Respond(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, toReviewDTO(review))
}

// DELETE /titles/:title_id/reviews/:review_id
func DeleteReview(c *gin.Context) {
	review, ok := loadReview(c)
	if !ok || !authorize(c, review.AuthorID) {
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := reviews.DeleteForReview(tx, review.ID); err != nil {
			return err
		}
		return tx.Delete(&reviews.Review{ID: review.ID}).Error
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
