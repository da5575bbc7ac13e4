// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Symbol represents a tracked cryptocurrency in the watchlist, with its
// ticker code, display name, active flag and display ordering.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
