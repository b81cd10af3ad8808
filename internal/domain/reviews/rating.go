package reviews

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"
)

// Rating is the mean score rounded to one decimal place, or nil when there are no scores.
func Rating(total, count int64) *float64 {
	if count <= 0 {
		return nil
	}
	r := math.Round(float64(total)/float64(count)*10) / 10
	return &r
}

// RatingsFor aggregates current review scores per title. Titles without reviews are absent
// from the result.
func RatingsFor(ctx context.Context, db *gorm.DB, titleIDs []uint) (map[uint]float64, error) {
	out := make(map[uint]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		TitleID uint
		Total   int64
		Votes   int64
	}
	err := db.WithContext(ctx).
		Model(&Review{}).
		Select("title_id, SUM(score) AS total, COUNT(*) AS votes").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	for _, r := range rows {
		if rating := Rating(r.Total, r.Votes); rating != nil {
			out[r.TitleID] = *rating
		}
	}
	return out, nil
}

// RatingFor is RatingsFor for a single title.
func RatingFor(ctx context.Context, db *gorm.DB, titleID uint) (*float64, error) {
	m, err := RatingsFor(ctx, db, []uint{titleID})
	if err != nil {
		return nil, err
	}
	if r, ok := m[titleID]; ok {
		return &r, nil
	}
	return nil, nil
}
