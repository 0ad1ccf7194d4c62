package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables. Records are hard-deleted;
// there is no tombstone column.
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// Attribution is the denormalized creator/updater snapshot stamped onto
// a record at write time. It is a copy, not a live reference: profile
// edits do not retroactively update historical attribution.
type Attribution struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Owned carries the ownership and attribution columns shared by every
// user-created content record (events, news, resources).
type Owned struct {
	Base
	// UserID is the creating user's uid, immutable after creation. It is
	// the only field authorization may compare against; the CreatedBy
	// snapshot can legitimately diverge from the live profile.
	UserID    string      `gorm:"type:uuid;index" json:"userId"`
	Title     string      `gorm:"not null" json:"title" validate:"required,min=2"`
	Slug      string      `gorm:"uniqueIndex" json:"slug"`
	CreatedBy Attribution `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	UpdatedBy Attribution `gorm:"embedded;embeddedPrefix:updated_by_" json:"updatedBy"`
}

// Meta exposes the embedded ownership columns to the generic store and
// controller layers.
func (o *Owned) Meta() *Owned { return o }

// OwnerUID implements policy.Resource.
func (o *Owned) OwnerUID() string { return o.UserID }
