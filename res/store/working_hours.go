package store

import (
	"context"
	"time"
)

// WorkingHours represents one working period on a given day of the week.
// A tradesman may have several active periods on the same day (split shifts);
// slot generation treats each period independently, never merged.
type WorkingHours struct {
	ID          string `gorm:"primaryKey;size:50;unique"`
	TradesmanID string `gorm:"size:50;not null;index:idx_working_hours_tradesman"`

	// Schedule
	DayOfWeek int    `gorm:"not null;index:idx_working_hours_day"` // ISO: 0=Monday, 6=Sunday
	StartTime string `gorm:"size:10;not null"`                     // e.g., "09:00"
	EndTime   string `gorm:"size:10;not null"`                     // e.g., "17:00"
	IsActive  bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

// WorkingHoursStore defines the data access interface for working hours
type WorkingHoursStore interface {
	// Create creates a new working-hours entry
	Create(ctx context.Context, hours *WorkingHours) error

	// GetActiveByDay retrieves active working periods for a tradesman on an
	// ISO day of week (0=Monday), ordered by start time ascending. An empty
	// result means no availability that day.
	GetActiveByDay(ctx context.Context, tradesmanID string, dayOfWeek int) ([]*WorkingHours, error)

	// GetByTradesman retrieves every working-hours entry for a tradesman,
	// ordered by day then start time
	GetByTradesman(ctx context.Context, tradesmanID string) ([]*WorkingHours, error)

	// ReplaceForTradesman deletes all entries for a tradesman and inserts the
	// given set in their place
	ReplaceForTradesman(ctx context.Context, tradesmanID string, hours []*WorkingHours) error
}
