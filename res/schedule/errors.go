package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrPastDate marks a booking request for a date before today in UK time.
	ErrPastDate = errors.New("Date must not be in the past.")

	// ErrPublicHoliday marks a booking request landing on a UK public
	// holiday. It is wrapped with the holiday's name at the call site;
	// match it with errors.Is.
	ErrPublicHoliday = errors.New("public holiday")

	// ErrOutsideWorkingHours marks a slot that does not sit fully inside one
	// of the tradesman's working-hour periods for that day.
	ErrOutsideWorkingHours = errors.New("Requested time is outside the tradesman's working hours.")

	// ErrSlotUnavailable marks a slot that overlaps an existing active
	// booking, buffer time included.
	ErrSlotUnavailable = errors.New("Requested time slot is not available.")

	// ErrInvalidTransition marks a booking status change the state machine
	// does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTradesmanNotFound marks a reference to an unknown or inactive
	// tradesman.
	ErrTradesmanNotFound = errors.New("Tradesman not found or is inactive.")

	// ErrBookingNotFound marks a reference to an unknown booking.
	ErrBookingNotFound = errors.New("Booking not found.")

	// ErrSlotConflict marks a slot lost to a concurrent booking between the
	// pre-check and the transactional revalidation. Callers may retry.
	ErrSlotConflict = errors.New("The slot was taken by another booking. Please try again.")
)

// publicHolidayError wraps ErrPublicHoliday with the holiday's name.
func publicHolidayError(name string) error {
	return fmt.Errorf("Cannot book on %s (%w).", name, ErrPublicHoliday)
}

// sentinelError carries a user-facing message whose text differs from its
// sentinel's; errors.Is still matches the sentinel through Unwrap.
type sentinelError struct {
	message  string
	sentinel error
}

func (e sentinelError) Error() string { return e.message }

func (e sentinelError) Unwrap() error { return e.sentinel }
