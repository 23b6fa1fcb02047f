// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"time"

	authentity "watchlist_backend/internal/feature/auth/domain/entity"
	platformentity "watchlist_backend/internal/feature/platforms/domain/entity"
	"watchlist_backend/internal/shared/optional"
)

// ContentType is the media kind of a watchlist entry.
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeTV    ContentType = "tv"
)

// Valid reports whether c is a recognized content type.
func (c ContentType) Valid() bool {
	return c == ContentTypeMovie || c == ContentTypeTV
}

// Status is the viewing state of a watchlist entry. Both states may be
// switched freely in either direction.
type Status string

const (
	StatusWantToWatch Status = "want_to_watch"
	StatusWatched     Status = "watched"
)

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	return s == StatusWantToWatch || s == StatusWatched
}

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Item is a watchlist entry owned by exactly one user.
type Item struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"not null;index:idx_watchlist_user_created,priority:1"`
	PlatformID  *uint       `gorm:"index"`
	Title       string      `gorm:"size:255;not null"`
	ContentType ContentType `gorm:"size:16;not null;check:chk_watchlist_content_type,content_type IN ('movie','tv')"`
	Status      Status      `gorm:"size:16;not null;default:want_to_watch;check:chk_watchlist_status,status IN ('want_to_watch','watched')"`
	Rating      *int        `gorm:"check:chk_watchlist_rating,rating BETWEEN 1 AND 5"`
	Notes       *string     `gorm:"type:text"`
	ImageURL    *string     `gorm:"column:image_url;type:text"`
	CreatedAt   time.Time   `gorm:"index:idx_watchlist_user_created,priority:2"`
	UpdatedAt   time.Time

	// PlatformName is filled from the platforms join on reads only.
	PlatformName *string `gorm:"->;-:migration"`

	User     *authentity.User         `gorm:"constraint:OnDelete:CASCADE"`
	Platform *platformentity.Platform `gorm:"constraint:OnDelete:SET NULL"`
}

// TableName overrides the default table name.
func (Item) TableName() string {
	return "watchlist_items"
}

// ItemFilter narrows a list query. Nil fields do not filter.
type ItemFilter struct {
	Status      *Status
	ContentType *ContentType
}

// NewItem is the input of an add operation.
type NewItem struct {
	PlatformID  *uint
	Title       string
	ContentType ContentType
	Status      *Status
	Rating      *int
	Notes       *string
	ImageURL    *string
}

// ItemPatch is a partial update. Unset fields are left untouched; null
// fields are cleared where the column allows it.
type ItemPatch struct {
	PlatformID  optional.Field[uint]
	Title       optional.Field[string]
	ContentType optional.Field[ContentType]
	Status      optional.Field[Status]
	Rating      optional.Field[int]
	Notes       optional.Field[string]
	ImageURL    optional.Field[string]
}

// Empty reports whether no field was supplied.
func (p ItemPatch) Empty() bool {
	return !p.PlatformID.Present() &&
		!p.Title.Present() &&
		!p.ContentType.Present() &&
		!p.Status.Present() &&
		!p.Rating.Present() &&
		!p.Notes.Present() &&
		!p.ImageURL.Present()
}
