package users

import "time"

// Status tracks the signup state machine: pending until a confirmation code is redeemed.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:150;not null;uniqueIndex:idx_users_username;uniqueIndex:idx_users_username_email,priority:1"`
	Email     string `gorm:"size:254;not null;uniqueIndex:idx_users_email;uniqueIndex:idx_users_username_email,priority:2"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	Bio       string `gorm:"type:text"`
	Role      Role   `gorm:"size:30;not null;default:'user';index"`

	IsSuperuser bool   `gorm:"not null;default:false"`
	Status      Status `gorm:"size:20;not null;default:'pending'"`

	// StateVersion is bound into confirmation codes; bumping it revokes outstanding codes.
	StateVersion uint `gorm:"not null;default:0"`

	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}

func (u User) Privileges() Privileges {
	return PrivilegesFor(u.Role, u.IsSuperuser)
}
