package store

import (
	"context"
	"time"
)

// TradesmanProfile represents the scheduling settings for a tradesman account.
// Created lazily on first profile update; a tradesman without a profile uses
// the zero-value defaults (no buffer, no cancellation notice).
type TradesmanProfile struct {
	ID     string `gorm:"primaryKey;size:50;unique"`
	UserID string `gorm:"size:50;not null;unique;index:idx_tradesman_profile_user"`

	// Profile Information
	BusinessName *string `gorm:"size:255"`
	Phone        *string `gorm:"size:50"`

	// Scheduling Settings
	BufferMinutes           int `gorm:"not null;default:0"` // Gap enforced after each booking
	CancellationNoticeHours int `gorm:"not null;default:0"`

	// Service Area
	ServiceAreaCentre      *string  `gorm:"size:255"` // e.g., a postcode or place name
	ServiceAreaRadiusMiles *float64 `gorm:"type:decimal(6,2)"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

// TradesmanProfileStore defines the data access interface for tradesman profiles
type TradesmanProfileStore interface {
	// Create creates a new tradesman profile
	Create(ctx context.Context, profile *TradesmanProfile) error

	// GetByUserID retrieves a profile by the owning tradesman's user ID
	GetByUserID(ctx context.Context, userID string) (*TradesmanProfile, error)

	// Update updates a tradesman profile
	Update(ctx context.Context, profile *TradesmanProfile) error
}
