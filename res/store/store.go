package store

import "context"

type Store interface {
	TradesmanProfiles() TradesmanProfileStore
	WorkingHours() WorkingHoursStore
	Customers() CustomerStore
	Bookings() BookingStore
	BookingStatusLog() BookingStatusLogStore
	RecurrenceRules() RecurrenceRuleStore
	Holidays() UkPublicHolidayStore

	// WithinTransaction runs fn against a Store bound to a single database
	// transaction. The transaction commits when fn returns nil and rolls back
	// when it returns an error. Booking-mutating operations must run their
	// availability recheck and writes inside one transaction; checking and
	// inserting in separate statements is a check-then-act race.
	WithinTransaction(ctx context.Context, fn func(txStore Store) error) error
}
