// Package entity defines the domain models for the platforms feature.
package entity

import "time"

// Platform is a streaming service a watchlist item can point at.
// Platforms are reference data seeded out of band; the API only reads them.
type Platform struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}
