package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Page sections that carry ordered info blocks.
const (
	PageAboutUs    = "aboutus"
	PageMembership = "membership"

	SubTop    = "top"
	SubBottom = "bottom"
)

// Event is a club event on the calendar.
type Event struct {
	Owned
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt,omitempty"`
}

// News is a published news article.
type News struct {
	Owned
	Summary     string         `json:"summary"`
	Body        datatypes.JSON `gorm:"type:jsonb" json:"body"`
	PublishedAt time.Time      `json:"publishedAt"`
}

// ClubResource is a downloadable or linked resource (forms, minutes,
// handbooks). Named to avoid colliding with the policy's Resource
// interface at call sites.
type ClubResource struct {
	Owned
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
	FilePath    string `json:"filePath,omitempty"`
}

// TableName keeps the collection name the UI addresses ("resources")
// despite the Go type name.
func (ClubResource) TableName() string { return "resources" }

// InfoBlock is an ordered content unit belonging to a page section.
// Blocks have no owner: only admins may create, edit, delete or reorder
// them.
type InfoBlock struct {
	Base
	Page  string         `gorm:"not null;index:idx_info_partition" json:"page" validate:"required,page_section"`
	Sub   string         `gorm:"index:idx_info_partition" json:"sub,omitempty" validate:"omitempty,oneof=top bottom"`
	Order int            `gorm:"column:sort_order;not null" json:"order"`
	Title string         `json:"title"`
	Body  datatypes.JSON `gorm:"type:jsonb" json:"body"`
}

// OwnerUID implements policy.Resource: info blocks are no one's.
func (b *InfoBlock) OwnerUID() string { return "" }

func (b *InfoBlock) OrderIndex() int { return b.Order }

func (b *InfoBlock) SetOrderIndex(n int) { b.Order = n }

// GalleryImage is one photo in the flat, ordered club gallery. ImageURL
// is virtual: it is signed from StoragePath after every find.
type GalleryImage struct {
	Base
	Title       string `json:"title"`
	StoragePath string `gorm:"not null" json:"storagePath"`
	Order       int    `gorm:"column:sort_order;not null" json:"order"`
	ImageURL    string `gorm:"-" json:"imageUrl,omitempty"`
}

func (g *GalleryImage) OwnerUID() string { return "" }

func (g *GalleryImage) OrderIndex() int { return g.Order }

func (g *GalleryImage) SetOrderIndex(n int) { g.Order = n }

func (g *GalleryImage) AfterFind(tx *gorm.DB) error {
	registryMu.RLock()
	generator := urlGenerator
	registryMu.RUnlock()

	if generator != nil && g.StoragePath != "" {
		url, err := generator.GetSignedURL(tx.Statement.Context, g.StoragePath, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to sign gallery image URL: %w", err)
		}
		g.ImageURL = url
	}
	return nil
}

// ValidPartition reports whether (page, sub) names a real info-block
// partition: sub is only meaningful on the membership page.
func ValidPartition(page, sub string) bool {
	switch page {
	case PageAboutUs:
		return sub == ""
	case PageMembership:
		return sub == "" || sub == SubTop || sub == SubBottom
	default:
		return false
	}
}
