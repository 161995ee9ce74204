package store

import (
	"context"
	"time"
)

// Customer represents a booking customer, identified by normalised email.
// Customers are upserted on every booking-creating operation; anonymised rows
// are never matched so a privacy erasure cannot be silently resurrected.
type Customer struct {
	ID    string `gorm:"primaryKey;size:50;unique"`
	Email string `gorm:"size:255;not null;index:idx_customer_email"` // lower-cased, trimmed
	Name  string `gorm:"size:255;not null"`

	Phone    *string `gorm:"size:50"`
	Postcode *string `gorm:"size:20"`

	IsAnonymised bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

// CustomerStore defines the data access interface for customers
type CustomerStore interface {
	// Create creates a new customer
	Create(ctx context.Context, customer *Customer) error

	// Get retrieves a customer by ID
	Get(ctx context.Context, id string) (*Customer, error)

	// GetByEmail retrieves a non-anonymised customer by normalised email
	GetByEmail(ctx context.Context, email string) (*Customer, error)

	// Update updates a customer
	Update(ctx context.Context, customer *Customer) error
}
