// Package validate holds the stateless input-shape checks used by the booking
// core. Every function returns nil for valid input and an error whose message
// is safe to surface to the caller verbatim.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldErrors collects the individual field validation failures of one
// request so a caller sees every correctable problem at once.
type FieldErrors []string

func (fe FieldErrors) Error() string {
	return strings.Join(fe, " ")
}

// Collect gathers the non-nil errors into a FieldErrors, or returns nil when
// every check passed.
func Collect(errs ...error) error {
	var fields FieldErrors
	for _, err := range errs {
		if err != nil {
			fields = append(fields, err.Error())
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Date checks a "YYYY-MM-DD" date string. The calendar-day check is
// deliberately lenient: a day up to 31 is accepted for any month and
// normalises forward (2026-02-30 is treated as a March date downstream).
// That rollover is a preserved behavioural contract, not an oversight.
func Date(date string) error {
	if date == "" {
		return errors.New("Date is required.")
	}
	if !dateRegex.MatchString(date) {
		return errors.New("Date must be in YYYY-MM-DD format.")
	}
	var year, month, day int
	fmt.Sscanf(date, "%d-%d-%d", &year, &month, &day)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return errors.New("Date is not valid.")
	}
	return nil
}

// FutureDate checks that date is not before currentDate (both "YYYY-MM-DD",
// which compare correctly as strings).
func FutureDate(date, currentDate string) error {
	if date < currentDate {
		return errors.New("Date must not be in the past.")
	}
	return nil
}

// Time checks a "HH:MM" time string with hours 00-23 and minutes 00-59.
func Time(timeOfDay string) error {
	if timeOfDay == "" {
		return errors.New("Time is required.")
	}
	if !timeRegex.MatchString(timeOfDay) {
		return errors.New("Time must be in HH:MM format.")
	}
	var hours, minutes int
	fmt.Sscanf(timeOfDay, "%d:%d", &hours, &minutes)
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return errors.New("Time is not valid.")
	}
	return nil
}

// HourBoundary checks that a valid "HH:MM" time falls exactly on the hour.
func HourBoundary(timeOfDay string) error {
	var hours, minutes int
	fmt.Sscanf(timeOfDay, "%d:%d", &hours, &minutes)
	if minutes != 0 {
		return errors.New("Time must be on the hour (e.g. 09:00, 10:00).")
	}
	return nil
}

// Duration checks that a booking duration is a positive multiple of 60
// minutes.
func Duration(minutes int) error {
	if minutes <= 0 {
		return errors.New("Duration must be positive.")
	}
	if minutes%60 != 0 {
		return errors.New("Duration must be a multiple of 60 minutes.")
	}
	return nil
}

// BookingStatus checks a booking status enum value.
func BookingStatus(status string) error {
	if status == "" {
		return errors.New("Status is required.")
	}
	for _, valid := range store.BookingStatuses {
		if store.BookingStatus(status) == valid {
			return nil
		}
	}
	return fmt.Errorf("Status must be one of: %s.", joinStatuses())
}

// RecurrenceFrequency checks a recurrence frequency enum value.
func RecurrenceFrequency(frequency string) error {
	if frequency == "" {
		return errors.New("Frequency is required.")
	}
	for _, valid := range store.RecurrenceFrequencies {
		if store.RecurrenceFrequency(frequency) == valid {
			return nil
		}
	}
	return fmt.Errorf("Frequency must be one of: %s.", joinFrequencies())
}

// UUID checks that an identifier is present. Shape beyond presence is left to
// the store.
func UUID(value, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s is required.", fieldName)
	}
	return nil
}

// NormalizeEmail returns the canonical form of an email address used for
// storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CustomerEmail checks a customer email address. The comparison is performed
// on the trimmed, lower-cased form, the same normalisation used for upserts.
func CustomerEmail(email string) error {
	trimmed := NormalizeEmail(email)
	if trimmed == "" {
		return errors.New("Customer email is required.")
	}
	if len(trimmed) > 255 {
		return errors.New("Customer email must not exceed 255 characters.")
	}
	if !emailRegex.MatchString(trimmed) {
		return errors.New("Customer email is not valid.")
	}
	return nil
}

// CustomerName checks a customer display name.
func CustomerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("Customer name is required.")
	}
	if len(trimmed) > 255 {
		return errors.New("Customer name must not exceed 255 characters.")
	}
	return nil
}

// OptionalString checks a nilable free-text field against a length limit.
func OptionalString(value *string, fieldName string, maxLength int) error {
	if value == nil {
		return nil
	}
	if len(*value) > maxLength {
		return fmt.Errorf("%s must not exceed %d characters.", fieldName, maxLength)
	}
	return nil
}

func joinStatuses() string {
	parts := make([]string, len(store.BookingStatuses))
	for i, s := range store.BookingStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinFrequencies() string {
	parts := make([]string, len(store.RecurrenceFrequencies))
	for i, f := range store.RecurrenceFrequencies {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
