package users

import (
	"time"

	"gorm.io/gorm"
)

// Redeem activates u and bumps its state version, but only while the stored version still
// equals u.StateVersion. It reports false when another redemption got there first.
func Redeem(db *gorm.DB, u *User, at time.Time) (bool, error) {
	res := db.Model(&User{}).
		Where("id = ? AND state_version = ?", u.ID, u.StateVersion).
		Updates(map[string]any{
			"status":        StatusActive,
			"state_version": u.StateVersion + 1,
			"last_login":    at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	u.Status = StatusActive
	u.StateVersion++
	u.LastLogin = &at
	return true, nil
}
