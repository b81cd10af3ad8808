package reviews

import (
	"fmt"

	"gorm.io/gorm"
)

// The schema declares ON DELETE CASCADE for every parent of reviews and comments. These helpers
// perform the same deletes explicitly so the result does not depend on the engine enforcing
// foreign keys. Run them inside the transaction that deletes the parent.

func DeleteForReview(tx *gorm.DB, reviewID uint) error {
	if err := tx.Where("review_id = ?", reviewID).Delete(&Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments of review %d: %w", reviewID, err)
	}
	return nil
}

func DeleteForTitle(tx *gorm.DB, titleID uint) error {
	reviewIDs := tx.Model(&Review{}).Select("id").Where("title_id = ?", titleID)
	if err := tx.Where("review_id IN (?)", reviewIDs).Delete(&Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments of title %d: %w", titleID, err)
	}
	if err := tx.Where("title_id = ?", titleID).Delete(&Review{}).Error; err != nil {
		return fmt.Errorf("delete reviews of title %d: %w", titleID, err)
	}
	return nil
}

func DeleteForAuthor(tx *gorm.DB, userID uint) error {
	reviewIDs := tx.Model(&Review{}).Select("id").Where("author_id = ?", userID)
	if err := tx.Where("author_id = ? OR review_id IN (?)", userID, reviewIDs).Delete(&Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments of user %d: %w", userID, err)
	}
	if err := tx.Where("author_id = ?", userID).Delete(&Review{}).Error; err != nil {
		return fmt.Errorf("delete reviews of user %d: %w", userID, err)
	}
	return nil
}
