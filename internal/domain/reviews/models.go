package reviews

import (
	"errors"
	"time"

	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/users"
)

const (
	MinScore = 1
	MaxScore = 10
)

type Review struct {
	ID      uint           `gorm:"primaryKey"`
	TitleID uint           `gorm:"not null;uniqueIndex:idx_reviews_title_author,priority:1"`
	Title   *catalog.Title `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	AuthorID uint        `gorm:"not null;index;uniqueIndex:idx_reviews_title_author,priority:2"`
	Author   *users.User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Text    string    `gorm:"type:text;not null"`
	Score   int       `gorm:"not null;check:chk_reviews_score,score >= 1 AND score <= 10"`
	PubDate time.Time `gorm:"not null;autoCreateTime;index"`
}

type Comment struct {
	ID       uint    `gorm:"primaryKey"`
	ReviewID uint    `gorm:"not null;index"`
	Review   *Review `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	AuthorID uint        `gorm:"not null;index"`
	Author   *users.User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Text    string    `gorm:"type:text;not null"`
	PubDate time.Time `gorm:"not null;autoCreateTime;index"`
}

var ErrScoreRange = errors.New("score must be between 1 and 10")

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrScoreRange
	}
	return nil
}
