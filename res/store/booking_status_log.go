package store

import (
	"context"
	"time"
)

// BookingStatusLog is the append-only audit trail of status transitions.
// Creation is logged as a transition from nil to pending. Rows are never
// mutated or deleted.
type BookingStatusLog struct {
	ID        string `gorm:"primaryKey;size:50;unique"`
	BookingID string `gorm:"size:50;not null;index:idx_status_log_booking"`

	FromStatus *BookingStatus `gorm:"size:20"` // nil on creation
	ToStatus   BookingStatus  `gorm:"size:20;not null"`

	ChangedBy *string `gorm:"size:50"`
	Reason    *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

// BookingStatusLogStore defines the data access interface for the audit trail
type BookingStatusLogStore interface {
	// Create appends a transition row
	Create(ctx context.Context, entry *BookingStatusLog) error

	// GetByBooking retrieves all transitions for a booking, oldest first
	GetByBooking(ctx context.Context, bookingID string) ([]*BookingStatusLog, error)
}
