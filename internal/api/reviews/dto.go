package reviews

import (
	"time"

	"yamdb/internal/domain/reviews"
)

type ReviewDTO struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required,gte=1,lte=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text" binding:"omitempty,min=1"`
	Score *int    `json:"score" binding:"omitempty,gte=1,lte=10"`
}

type CommentDTO struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func authorName(r reviews.Review) string {
	if r.Author == nil {
		return ""
	}
	return r.Author.Username
}

func toReviewDTO(r reviews.Review) ReviewDTO {
	return ReviewDTO{
		ID:      r.ID,
		Text:    r.Text,
		Author:  authorName(r),
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

func toReviewDTOs(rows []reviews.Review) ([]ReviewDTO, error) {
	out := make([]ReviewDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toReviewDTO(r))
	}
	return out, nil
}

func toCommentDTO(c reviews.Comment) CommentDTO {
	dto := CommentDTO{ID: c.ID, Text: c.Text, PubDate: c.PubDate}
	if c.Author != nil {
		dto.Author = c.Author.Username
	}
	return dto
}

func toCommentDTOs(rows []reviews.Comment) ([]CommentDTO, error) {
	out := make([]CommentDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCommentDTO(c))
	}
	return out, nil
}
