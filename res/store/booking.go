package store

import (
	"context"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"     // Initial state, awaiting confirmation
	BookingStatusConfirmed  BookingStatus = "confirmed"   // Tradesman confirmed
	BookingStatusInProgress BookingStatus = "in-progress" // Work is being performed
	BookingStatusCompleted  BookingStatus = "completed"   // Work completed successfully
	BookingStatusCancelled  BookingStatus = "cancelled"   // Cancelled by customer or tradesman
	BookingStatusNoShow     BookingStatus = "no-show"     // Customer was not present
)

// BookingStatuses lists every valid booking status.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusNoShow,
}

// InactiveStatuses are the statuses that release a booking's slot on the
// calendar. Every other status still occupies it.
var InactiveStatuses = []BookingStatus{
	BookingStatusCancelled,
	BookingStatusNoShow,
}

// Booking represents an appointment with a tradesman
type Booking struct {
	ID          string            `gorm:"primaryKey;size:50;unique"`
	Tradesman   *TradesmanProfile `gorm:"foreignKey:TradesmanID;references:UserID"`
	TradesmanID string            `gorm:"size:50;not null;index:idx_booking_tradesman"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID"`
	CustomerID  string            `gorm:"size:50;not null;index:idx_booking_customer"`

	// Scheduling (UK local wall-clock)
	Date            string `gorm:"size:10;not null;index:idx_booking_date"` // e.g., "2026-03-02"
	StartTime       string `gorm:"size:10;not null"`                        // e.g., "09:00"
	EndTime         string `gorm:"size:10;not null"`                        // e.g., "10:00"
	DurationMinutes int    `gorm:"not null"`

	// Status
	Status BookingStatus `gorm:"size:20;not null;default:'pending';index:idx_booking_status"`

	// Details
	Description   *string `gorm:"type:text"`
	CustomerNotes *string `gorm:"type:text"` // Customer's notes for the tradesman
	InternalNotes *string `gorm:"type:text"` // Tradesman's private notes
	Postcode      *string `gorm:"size:20"`

	// Recurring Booking Support (one row per materialised occurrence)
	RecurrenceGroupID *string `gorm:"size:50;index:idx_booking_recurrence_group"`
	IsRecurring       bool    `gorm:"not null;default:false"`

	// Multi-Day Booking Support
	MultiDayGroupID  *string `gorm:"size:50;index:idx_booking_multiday_group"`
	MultiDaySequence *int

	// Cancellation
	CancelledBy        *string `gorm:"size:50"`
	CancellationReason *string `gorm:"type:text"`
	CancelledAt        *time.Time

	CreatedBy *string `gorm:"size:50"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;index:idx_booking_created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

// IsActive returns true if the booking still occupies its calendar slot
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled && b.Status != BookingStatusNoShow
}

// BookingStore defines the data access interface for bookings
type BookingStore interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *Booking) error

	// Get retrieves a booking by ID
	Get(ctx context.Context, id string) (*Booking, error)

	// Update updates a booking
	Update(ctx context.Context, booking *Booking) error

	// GetActiveByTradesmanAndDate retrieves bookings for a tradesman on a
	// calendar day, excluding cancelled and no-show, ordered by start time.
	// When forUpdate is true the rows are read with a row-level write lock so
	// that concurrent availability rechecks serialise.
	GetActiveByTradesmanAndDate(ctx context.Context, tradesmanID, date string, forUpdate bool) ([]*Booking, error)

	// GetByTradesman retrieves all bookings for a tradesman
	GetByTradesman(ctx context.Context, tradesmanID string, filters BookingFilters) ([]*Booking, error)

	// GetByCustomer retrieves all bookings for a customer
	GetByCustomer(ctx context.Context, customerID string, filters BookingFilters) ([]*Booking, error)

	// GetByRecurrenceGroup retrieves every occurrence in a recurrence group
	GetByRecurrenceGroup(ctx context.Context, groupID string) ([]*Booking, error)

	// GetByMultiDayGroup retrieves every day of a multi-day booking, ordered
	// by sequence
	GetByMultiDayGroup(ctx context.Context, groupID string) ([]*Booking, error)
}

// BookingFilters contains filter options for listing bookings
type BookingFilters struct {
	Status      *BookingStatus
	StartDate   *string // "YYYY-MM-DD", inclusive
	EndDate     *string // "YYYY-MM-DD", inclusive
	IsRecurring *bool
	Limit       int
	Offset      int
	OrderBy     string // e.g., "date ASC, start_time ASC"
}
