package models

import (
	"time"

	"clubhouse/internal/policy"
)

// User is a member profile. Role is the single authorization axis.
type User struct {
	Base
	FirstName string      `json:"firstName" validate:"required,min=2"`
	LastName  string      `json:"lastName" validate:"required,min=2"`
	Username  string      `gorm:"uniqueIndex;not null" json:"username" validate:"required,min=2"`
	Email     string      `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password  string      `gorm:"not null" json:"-"`
	Role      policy.Role `gorm:"not null;default:'user'" json:"role" validate:"required,club_role"`
}

// Actor converts the stored profile into a policy actor. The role is
// normalized here so unknown or reserved values never reach the policy
// as anything but the most restrictive role.
func (u *User) Actor() *policy.Actor {
	return &policy.Actor{UID: u.ID, Role: u.Role.Normalize()}
}

// Attribution takes the write-time snapshot stamped onto owned records.
func (u *User) Attribution() Attribution {
	return Attribution{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// Session is a live sign-in. One row per issued token pair; sign-out
// deletes the row, which invalidates the token before its expiry.
type Session struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Token     string    `gorm:"not null;index" json:"-"`
	Refresh   string    `gorm:"not null" json:"-"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
