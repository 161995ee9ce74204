package schedule

import (
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
)

// allowedTransitions is the full booking status state machine. A status
// absent from the map is terminal.
var allowedTransitions = map[store.BookingStatus][]store.BookingStatus{
	store.BookingStatusPending:    {store.BookingStatusConfirmed, store.BookingStatusCancelled},
	store.BookingStatusConfirmed:  {store.BookingStatusInProgress, store.BookingStatusCancelled, store.BookingStatusNoShow},
	store.BookingStatusInProgress: {store.BookingStatusCompleted, store.BookingStatusCancelled},
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to store.BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error matching ErrInvalidTransition when the
// state machine forbids the change. The message names the concrete pair.
func ValidateTransition(from, to store.BookingStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	return sentinelError{
		message:  fmt.Sprintf(`Cannot change status from "%s" to "%s".`, from, to),
		sentinel: ErrInvalidTransition,
	}
}

// IsTerminalStatus reports whether no further transitions exist for a status.
func IsTerminalStatus(status store.BookingStatus) bool {
	return len(allowedTransitions[status]) == 0
}
