package reviews

import (
	"net/http"

	"yamdb/database"
	"yamdb/internal/api/apierr"
	"yamdb/internal/api/pagination"
	"yamdb/internal/app/http/middleware"
	"yamdb/internal/domain/reviews"

	"github.com/gin-gonic/gin"
)

// GET /titles/:title_id/reviews/:review_id/comments
func ListComments(c *gin.Context) {
	review, ok := loadReview(c)
	if !ok {
		return
	}

	q := database.DB.WithContext(c.Request.Context()).
		Model(&reviews.Comment{}).
		Where("review_id = ?", review.ID).
		Order("pub_date ASC").Order("id ASC")

	page, err := pagination.Find(c, q, pagination.PageSize, toCommentDTOs, "Author")
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /titles/:title_id/reviews/:review_id/comments
func CreateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	review, ok := loadReview(c)
	if !ok {
		return
	}

	comment := reviews.Comment{
		ReviewID: review.ID,
		AuthorID: middleware.CallerFrom(c).UserID,
		Text:     req.Text,
	}
	db := database.DB.WithContext(c.Request.Context())
	if err := db.Omit("Review", "Author").Create(&comment).Error; err != nil {
		apierr.Respond(c, err)
		return
	}
	if err := db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentDTO(comment))
}

// GET /titles/:title_id/reviews/:review_id/comments/:comment_id
func GetComment(c *gin.Context) {
	comment, ok := loadComment(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toCommentDTO(comment))
}

// PATCH /titles/:title_id/reviews/:review_id/comments/:comment_id
func UpdateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	comment, ok := loadComment(c)
	if !ok || !authorize(c, comment.AuthorID) {
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	if err := db.Model(&reviews.Comment{ID: comment.ID}).Update("text", req.Text).Error; err != nil {
		apierr.Respond(c, err)
		return
	}
	comment.Text = req.Text
	c.JSON(http.StatusOK, toCommentDTO(comment))
}

// DELETE /titles/:title_id/reviews/:review_id/comments/:comment_id
func DeleteComment(c *gin.Context) {
	comment, ok := loadComment(c)
	if !ok || !authorize(c, comment.AuthorID) {
		return
	}

	if err := database.DB.WithContext(c.Request.Context()).Delete(&reviews.Comment{ID: comment.ID}).Error; err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
