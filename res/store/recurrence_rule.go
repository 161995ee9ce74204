package store

import (
	"context"
	"time"
)

// RecurrenceFrequency represents how often a recurring booking repeats
type RecurrenceFrequency string

const (
	RecurrenceFrequencyDaily       RecurrenceFrequency = "daily"
	RecurrenceFrequencyWeekly      RecurrenceFrequency = "weekly"
	RecurrenceFrequencyFortnightly RecurrenceFrequency = "fortnightly"
	RecurrenceFrequencyMonthly     RecurrenceFrequency = "monthly"
)

// RecurrenceFrequencies lists every valid recurrence frequency.
var RecurrenceFrequencies = []RecurrenceFrequency{
	RecurrenceFrequencyDaily,
	RecurrenceFrequencyWeekly,
	RecurrenceFrequencyFortnightly,
	RecurrenceFrequencyMonthly,
}

// RecurrenceRule is the template a recurring booking series was materialised
// from. Bookings are created eagerly, one row per occurrence; the rule is kept
// for reference, not expanded on demand.
type RecurrenceRule struct {
	ID          string `gorm:"primaryKey;size:50;unique"` // Doubles as the bookings' recurrence group ID
	TradesmanID string `gorm:"size:50;not null;index:idx_recurrence_tradesman"`
	CustomerID  string `gorm:"size:50;not null"`

	// Rule
	Frequency      RecurrenceFrequency `gorm:"size:20;not null"`
	Interval       int                 `gorm:"not null;default:1"`
	StartDate      string              `gorm:"size:10;not null"`
	EndDate        *string             `gorm:"size:10"`
	MaxOccurrences *int

	// Time of day (applies to every occurrence)
	StartTime string `gorm:"size:10;not null"`
	EndTime   string `gorm:"size:10;not null"`

	Description *string `gorm:"type:text"`
	IsActive    bool    `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

// RecurrenceRuleStore defines the data access interface for recurrence rules
type RecurrenceRuleStore interface {
	// Create creates a new recurrence rule
	Create(ctx context.Context, rule *RecurrenceRule) error

	// Get retrieves a recurrence rule by ID
	Get(ctx context.Context, id string) (*RecurrenceRule, error)

	// GetByTradesman retrieves all rules for a tradesman
	GetByTradesman(ctx context.Context, tradesmanID string) ([]*RecurrenceRule, error)
}
