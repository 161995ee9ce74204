package store

import (
	"context"
	"time"
)

// HolidayRegion represents which part of the UK a public holiday applies to
type HolidayRegion string

const (
	HolidayRegionEnglandAndWales HolidayRegion = "england-and-wales"
	HolidayRegionScotland        HolidayRegion = "scotland"
	HolidayRegionNorthernIreland HolidayRegion = "northern-ireland"
	HolidayRegionAll             HolidayRegion = "all" // Applies everywhere
)

// UkPublicHoliday is reference data: one row per holiday date per region.
// Seeded once, rarely mutated.
type UkPublicHoliday struct {
	ID     string        `gorm:"primaryKey;size:50;unique"`
	Date   string        `gorm:"size:10;not null;index:idx_holiday_date"` // "YYYY-MM-DD"
	Name   string        `gorm:"size:255;not null"`
	Region HolidayRegion `gorm:"size:30;not null;default:'england-and-wales'"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

// UkPublicHolidayStore defines the data access interface for holiday lookup
type UkPublicHolidayStore interface {
	// Create creates a holiday row
	Create(ctx context.Context, holiday *UkPublicHoliday) error

	// FindByDate retrieves the first holiday on an exact date. When region is
	// non-nil and not "all", only rows for that region or region "all" match;
	// with a nil region any row on the date matches. A missing match returns
	// nil, not an error.
	FindByDate(ctx context.Context, date string, region *HolidayRegion) (*UkPublicHoliday, error)

	// ListByDateRange retrieves holidays within [startDate, endDate],
	// ascending by date, with the same region matching as FindByDate
	ListByDateRange(ctx context.Context, startDate, endDate string, region *HolidayRegion) ([]*UkPublicHoliday, error)

	// Delete removes a holiday row
	Delete(ctx context.Context, id string) error
}
