package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
	"github.com/krazyjakee/uk-booking-calendar/res/uktime"
	"github.com/krazyjakee/uk-booking-calendar/res/validate"
)

// Coordinator owns every booking-mutating operation. All writes go through
// the store's transaction so the availability check and the insert are one
// atomic unit; the cheap pre-checks outside the transaction only exist to
// fail fast with friendly errors.
type Coordinator struct {
	store  store.Store
	engine *Engine
	logger *log.Logger

	// currentDate supplies today's UK date; overridable for deterministic
	// tests.
	currentDate func() string
}

// CoordinatorConfig carries the Coordinator's dependencies.
type CoordinatorConfig struct {
	Store  store.Store
	Logger *log.Logger

	// CurrentDate defaults to the current UK calendar date.
	CurrentDate func() string
}

// NewCoordinator creates a booking lifecycle coordinator.
func NewCoordinator(config CoordinatorConfig) *Coordinator {
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	currentDate := config.CurrentDate
	if currentDate == nil {
		currentDate = uktime.CurrentUKDate
	}
	return &Coordinator{
		store:       config.Store,
		engine:      NewEngine(config.Store),
		logger:      logger,
		currentDate: currentDate,
	}
}

// Engine exposes the read-only availability engine sharing this
// coordinator's store.
func (c *Coordinator) Engine() *Engine {
	return c.engine
}

// CreateBookingInput carries a single booking request.
type CreateBookingInput struct {
	TradesmanID      string
	CustomerEmail    string
	CustomerName     string
	CustomerPhone    *string
	CustomerPostcode *string

	Date            string
	StartTime       string
	DurationMinutes int

	Description   *string
	CustomerNotes *string
	Postcode      *string

	CreatedBy *string
}

// CreateBooking validates, upserts the customer and creates a pending
// booking plus its creation log row. The availability check runs twice: once
// up front for a fast answer, and again under the transaction with locked
// reads, where losing the slot surfaces as ErrSlotConflict.
func (c *Coordinator) CreateBooking(ctx context.Context, input CreateBookingInput) (*store.Booking, error) {
	if err := validate.Collect(
		validate.CustomerEmail(input.CustomerEmail),
		validate.CustomerName(input.CustomerName),
		validate.Date(input.Date),
		validate.Time(input.StartTime),
		validate.HourBoundary(input.StartTime),
		validate.Duration(input.DurationMinutes),
	); err != nil {
		return nil, err
	}
	if err := validate.FutureDate(input.Date, c.currentDate()); err != nil {
		return nil, ErrPastDate
	}
	if err := c.checkTradesmanExists(ctx, input.TradesmanID); err != nil {
		return nil, err
	}

	endTime := uktime.AddMinutes(input.StartTime, input.DurationMinutes)

	isHoliday, holidayName, err := c.engine.IsPublicHoliday(ctx, input.Date, nil)
	if err != nil {
		return nil, err
	}
	if isHoliday {
		return nil, publicHolidayError(*holidayName)
	}

	withinHours, err := c.engine.IsWithinWorkingHours(ctx, input.TradesmanID, input.Date, input.StartTime, endTime)
	if err != nil {
		return nil, err
	}
	if !withinHours {
		return nil, ErrOutsideWorkingHours
	}

	available, err := c.engine.IsSlotAvailable(ctx, c.store, input.TradesmanID, input.Date, input.StartTime, endTime, "", false)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	customerID, err := c.upsertCustomer(ctx, input.CustomerEmail, input.CustomerName, input.CustomerPhone, input.CustomerPostcode)
	if err != nil {
		return nil, err
	}

	booking := &store.Booking{
		ID:              uuid.NewString(),
		TradesmanID:     input.TradesmanID,
		CustomerID:      customerID,
		Date:            input.Date,
		StartTime:       input.StartTime,
		EndTime:         endTime,
		DurationMinutes: input.DurationMinutes,
		Status:          store.BookingStatusPending,
		Description:     input.Description,
		CustomerNotes:   input.CustomerNotes,
		Postcode:        input.Postcode,
		CreatedBy:       input.CreatedBy,
	}

	err = c.store.WithinTransaction(ctx, func(txStore store.Store) error {
		stillAvailable, err := c.engine.IsSlotAvailable(ctx, txStore, input.TradesmanID, input.Date, input.StartTime, endTime, "", true)
		if err != nil {
			return err
		}
		if !stillAvailable {
			return ErrSlotConflict
		}
		if err := txStore.Bookings().Create(ctx, booking); err != nil {
			return err
		}
		return c.logCreation(ctx, txStore, booking.ID, input.CreatedBy)
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	c.logger.Printf("created booking %s for tradesman %s on %s %s", booking.ID, booking.TradesmanID, booking.Date, booking.StartTime)
	return booking, nil
}

// UpdateBookingInput carries a partial booking update. Nil fields are left
// unchanged.
type UpdateBookingInput struct {
	Date            *string
	StartTime       *string
	DurationMinutes *int

	Description   *string
	CustomerNotes *string
	InternalNotes *string
	Postcode      *string
}

// UpdateBooking applies field updates to a non-terminal booking. A date or
// time change revalidates working hours and availability, excluding the
// booking itself from the overlap check.
func (c *Coordinator) UpdateBooking(ctx context.Context, id string, input UpdateBookingInput) (*store.Booking, error) {
	booking, err := c.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if IsTerminalStatus(booking.Status) {
		return nil, sentinelError{
			message:  fmt.Sprintf(`Cannot update a booking with status "%s".`, booking.Status),
			sentinel: ErrInvalidTransition,
		}
	}

	if input.Description != nil {
		booking.Description = input.Description
	}
	if input.CustomerNotes != nil {
		booking.CustomerNotes = input.CustomerNotes
	}
	if input.InternalNotes != nil {
		booking.InternalNotes = input.InternalNotes
	}
	if input.Postcode != nil {
		booking.Postcode = input.Postcode
	}

	dateTimeChanged := input.Date != nil || input.StartTime != nil || input.DurationMinutes != nil
	if !dateTimeChanged {
		if err := c.store.Bookings().Update(ctx, booking); err != nil {
			return nil, err
		}
		return booking, nil
	}

	newDate := booking.Date
	if input.Date != nil {
		if err := validate.Date(*input.Date); err != nil {
			return nil, err
		}
		if err := validate.FutureDate(*input.Date, c.currentDate()); err != nil {
			return nil, ErrPastDate
		}
		newDate = *input.Date
	}
	newStartTime := booking.StartTime
	if input.StartTime != nil {
		if err := validate.Collect(validate.Time(*input.StartTime), validate.HourBoundary(*input.StartTime)); err != nil {
			return nil, err
		}
		newStartTime = *input.StartTime
	}
	newDuration := booking.DurationMinutes
	if input.DurationMinutes != nil {
		if err := validate.Duration(*input.DurationMinutes); err != nil {
			return nil, err
		}
		newDuration = *input.DurationMinutes
	}
	newEndTime := uktime.AddMinutes(newStartTime, newDuration)

	withinHours, err := c.engine.IsWithinWorkingHours(ctx, booking.TradesmanID, newDate, newStartTime, newEndTime)
	if err != nil {
		return nil, err
	}
	if !withinHours {
		return nil, ErrOutsideWorkingHours
	}
	available, err := c.engine.IsSlotAvailable(ctx, c.store, booking.TradesmanID, newDate, newStartTime, newEndTime, booking.ID, false)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	booking.Date = newDate
	booking.StartTime = newStartTime
	booking.EndTime = newEndTime
	booking.DurationMinutes = newDuration

	err = c.store.WithinTransaction(ctx, func(txStore store.Store) error {
		stillAvailable, err := c.engine.IsSlotAvailable(ctx, txStore, booking.TradesmanID, newDate, newStartTime, newEndTime, booking.ID, true)
		if err != nil {
			return err
		}
		if !stillAvailable {
			return ErrSlotConflict
		}
		return txStore.Bookings().Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking moves a booking to cancelled, recording who cancelled and
// why, with the transition log row in the same transaction.
func (c *Coordinator) CancelBooking(ctx context.Context, id string, reason *string, cancelledBy *string) (*store.Booking, error) {
	return c.transition(ctx, id, store.BookingStatusCancelled, reason, cancelledBy)
}

// UpdateBookingStatus moves a booking through the status state machine,
// appending the transition to the audit log. Moving to cancelled also
// records the cancellation metadata.
func (c *Coordinator) UpdateBookingStatus(ctx context.Context, id string, newStatus store.BookingStatus, reason *string, changedBy *string) (*store.Booking, error) {
	if err := validate.BookingStatus(string(newStatus)); err != nil {
		return nil, err
	}
	return c.transition(ctx, id, newStatus, reason, changedBy)
}

func (c *Coordinator) transition(ctx context.Context, id string, newStatus store.BookingStatus, reason *string, changedBy *string) (*store.Booking, error) {
	booking, err := c.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	fromStatus := booking.Status
	if err := ValidateTransition(fromStatus, newStatus); err != nil {
		return nil, err
	}

	booking.Status = newStatus
	if newStatus == store.BookingStatusCancelled {
		booking.CancelledBy = changedBy
		booking.CancellationReason = reason
		now := time.Now().UTC()
		booking.CancelledAt = &now
	}

	err = c.store.WithinTransaction(ctx, func(txStore store.Store) error {
		if err := txStore.Bookings().Update(ctx, booking); err != nil {
			return err
		}
		return txStore.BookingStatusLog().Create(ctx, &store.BookingStatusLog{
			ID:         "slog_" + xid.New().String(),
			BookingID:  booking.ID,
			FromStatus: &fromStatus,
			ToStatus:   newStatus,
			ChangedBy:  changedBy,
			Reason:     reason,
		})
	})
	if err != nil {
		return nil, err
	}

	c.logger.Printf("booking %s moved %s -> %s", booking.ID, fromStatus, newStatus)
	return booking, nil
}

// RecurrenceInput describes how a recurring booking repeats.
type RecurrenceInput struct {
	Frequency      store.RecurrenceFrequency
	Interval       int
	EndDate        *string
	MaxOccurrences *int
}

// CreateRecurringBookingInput carries a recurring booking request. Date and
// StartTime describe the first occurrence; every occurrence shares the time
// of day.
type CreateRecurringBookingInput struct {
	CreateBookingInput
	Recurrence RecurrenceInput
}

// CreateRecurringBooking materialises a recurrence rule into individual
// bookings. Every generated date must pass working hours and availability;
// one bad date fails the whole request and reports every offending date. The
// rule row and all occurrences commit in a single transaction.
func (c *Coordinator) CreateRecurringBooking(ctx context.Context, input CreateRecurringBookingInput) ([]*store.Booking, error) {
	if err := validate.Collect(
		validate.CustomerEmail(input.CustomerEmail),
		validate.CustomerName(input.CustomerName),
		validate.Date(input.Date),
		validate.Time(input.StartTime),
		validate.HourBoundary(input.StartTime),
		validate.Duration(input.DurationMinutes),
		validate.RecurrenceFrequency(string(input.Recurrence.Frequency)),
	); err != nil {
		return nil, err
	}
	if err := validate.FutureDate(input.Date, c.currentDate()); err != nil {
		return nil, ErrPastDate
	}
	if err := c.checkTradesmanExists(ctx, input.TradesmanID); err != nil {
		return nil, err
	}

	interval := input.Recurrence.Interval
	if interval <= 0 {
		interval = 1
	}
	endTime := uktime.AddMinutes(input.StartTime, input.DurationMinutes)
	rule := &store.RecurrenceRule{
		ID:             uuid.NewString(),
		TradesmanID:    input.TradesmanID,
		Frequency:      input.Recurrence.Frequency,
		Interval:       interval,
		StartDate:      input.Date,
		EndDate:        input.Recurrence.EndDate,
		MaxOccurrences: input.Recurrence.MaxOccurrences,
		StartTime:      input.StartTime,
		EndTime:        endTime,
		Description:    input.Description,
		IsActive:       true,
	}

	dates := GenerateRecurrenceDates(*rule, 0)
	if len(dates) == 0 {
		return nil, errors.New("No dates generated for the recurrence rule.")
	}

	var unavailableDates []string
	for _, date := range dates {
		withinHours, err := c.engine.IsWithinWorkingHours(ctx, input.TradesmanID, date, input.StartTime, endTime)
		if err != nil {
			return nil, err
		}
		available, err := c.engine.IsSlotAvailable(ctx, c.store, input.TradesmanID, date, input.StartTime, endTime, "", false)
		if err != nil {
			return nil, err
		}
		if !withinHours || !available {
			unavailableDates = append(unavailableDates, date)
		}
	}
	if len(unavailableDates) > 0 {
		return nil, fmt.Errorf("The following dates are unavailable: %s.", strings.Join(unavailableDates, ", "))
	}

	customerID, err := c.upsertCustomer(ctx, input.CustomerEmail, input.CustomerName, input.CustomerPhone, input.CustomerPostcode)
	if err != nil {
		return nil, err
	}
	rule.CustomerID = customerID

	var bookings []*store.Booking
	err = c.store.WithinTransaction(ctx, func(txStore store.Store) error {
		if err := txStore.RecurrenceRules().Create(ctx, rule); err != nil {
			return err
		}
		for _, date := range dates {
			stillAvailable, err := c.engine.IsSlotAvailable(ctx, txStore, input.TradesmanID, date, input.StartTime, endTime, "", true)
			if err != nil {
				return err
			}
			if !stillAvailable {
				return ErrSlotConflict
			}
			booking := &store.Booking{
				ID:                uuid.NewString(),
				TradesmanID:       input.TradesmanID,
				CustomerID:        customerID,
				Date:              date,
				StartTime:         input.StartTime,
				EndTime:           endTime,
				DurationMinutes:   input.DurationMinutes,
				Status:            store.BookingStatusPending,
				Description:       input.Description,
				CustomerNotes:     input.CustomerNotes,
				Postcode:          input.Postcode,
				RecurrenceGroupID: &rule.ID,
				IsRecurring:       true,
				CreatedBy:         input.CreatedBy,
			}
			if err := txStore.Bookings().Create(ctx, booking); err != nil {
				return err
			}
			if err := c.logCreation(ctx, txStore, booking.ID, input.CreatedBy); err != nil {
				return err
			}
			bookings = append(bookings, booking)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	c.logger.Printf("created recurring group %s: %d bookings for tradesman %s", rule.ID, len(bookings), input.TradesmanID)
	return bookings, nil
}

// MultiDayEntry is one day of a multi-day booking.
type MultiDayEntry struct {
	Date            string
	StartTime       string
	DurationMinutes int
}

// CreateMultiDayBookingInput carries a multi-day booking request.
type CreateMultiDayBookingInput struct {
	TradesmanID      string
	CustomerEmail    string
	CustomerName     string
	CustomerPhone    *string
	CustomerPostcode *string

	Days []MultiDayEntry

	Description   *string
	CustomerNotes *string
	Postcode      *string

	CreatedBy *string
}

// CreateMultiDayBooking creates one booking per requested day under a shared
// group, numbered 1..n in input order, all-or-nothing. Per-day validation
// failures carry the offending date in the message.
func (c *Coordinator) CreateMultiDayBooking(ctx context.Context, input CreateMultiDayBookingInput) ([]*store.Booking, error) {
	if err := validate.CustomerEmail(input.CustomerEmail); err != nil {
		return nil, err
	}
	if err := validate.CustomerName(input.CustomerName); err != nil {
		return nil, err
	}
	if len(input.Days) == 0 {
		return nil, errors.New("At least one day is required.")
	}

	currentDate := c.currentDate()
	for _, day := range input.Days {
		if err := validate.Date(day.Date); err != nil {
			return nil, fmt.Errorf("Day %s: %w", day.Date, err)
		}
		if err := validate.FutureDate(day.Date, currentDate); err != nil {
			return nil, fmt.Errorf("Day %s: %w", day.Date, ErrPastDate)
		}
		if err := validate.Time(day.StartTime); err != nil {
			return nil, fmt.Errorf("Day %s: %w", day.Date, err)
		}
		if err := validate.HourBoundary(day.StartTime); err != nil {
			return nil, fmt.Errorf("Day %s: %w", day.Date, err)
		}
		if err := validate.Duration(day.DurationMinutes); err != nil {
			return nil, fmt.Errorf("Day %s: %w", day.Date, err)
		}
	}

	if err := c.checkTradesmanExists(ctx, input.TradesmanID); err != nil {
		return nil, err
	}

	for _, day := range input.Days {
		endTime := uktime.AddMinutes(day.StartTime, day.DurationMinutes)
		withinHours, err := c.engine.IsWithinWorkingHours(ctx, input.TradesmanID, day.Date, day.StartTime, endTime)
		if err != nil {
			return nil, err
		}
		if !withinHours {
			return nil, sentinelError{
				message:  fmt.Sprintf("Day %s: time is outside working hours.", day.Date),
				sentinel: ErrOutsideWorkingHours,
			}
		}
		available, err := c.engine.IsSlotAvailable(ctx, c.store, input.TradesmanID, day.Date, day.StartTime, endTime, "", false)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, sentinelError{
				message:  fmt.Sprintf("Day %s: time slot is not available.", day.Date),
				sentinel: ErrSlotUnavailable,
			}
		}
	}

	customerID, err := c.upsertCustomer(ctx, input.CustomerEmail, input.CustomerName, input.CustomerPhone, input.CustomerPostcode)
	if err != nil {
		return nil, err
	}

	groupID := uuid.NewString()
	var bookings []*store.Booking
	err = c.store.WithinTransaction(ctx, func(txStore store.Store) error {
		for i, day := range input.Days {
			endTime := uktime.AddMinutes(day.StartTime, day.DurationMinutes)
			stillAvailable, err := c.engine.IsSlotAvailable(ctx, txStore, input.TradesmanID, day.Date, day.StartTime, endTime, "", true)
			if err != nil {
				return err
			}
			if !stillAvailable {
				return ErrSlotConflict
			}
			sequence := i + 1
			booking := &store.Booking{
				ID:               uuid.NewString(),
				TradesmanID:      input.TradesmanID,
				CustomerID:       customerID,
				Date:             day.Date,
				StartTime:        day.StartTime,
				EndTime:          endTime,
				DurationMinutes:  day.DurationMinutes,
				Status:           store.BookingStatusPending,
				Description:      input.Description,
				CustomerNotes:    input.CustomerNotes,
				Postcode:         input.Postcode,
				MultiDayGroupID:  &groupID,
				MultiDaySequence: &sequence,
				CreatedBy:        input.CreatedBy,
			}
			if err := txStore.Bookings().Create(ctx, booking); err != nil {
				return err
			}
			if err := c.logCreation(ctx, txStore, booking.ID, input.CreatedBy); err != nil {
				return err
			}
			bookings = append(bookings, booking)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	c.logger.Printf("created multi-day group %s: %d bookings for tradesman %s", groupID, len(bookings), input.TradesmanID)
	return bookings, nil
}

func (c *Coordinator) getBooking(ctx context.Context, id string) (*store.Booking, error) {
	if err := validate.UUID(id, "Booking ID"); err != nil {
		return nil, err
	}
	booking, err := c.store.Bookings().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// checkTradesmanExists anchors tradesman existence on the profile row, the
// only tradesman-shaped record this core owns.
func (c *Coordinator) checkTradesmanExists(ctx context.Context, tradesmanID string) error {
	if err := validate.UUID(tradesmanID, "Tradesman ID"); err != nil {
		return err
	}
	_, err := c.store.TradesmanProfiles().GetByUserID(ctx, tradesmanID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTradesmanNotFound
		}
		return err
	}
	return nil
}

// upsertCustomer finds a non-anonymised customer by normalised email or
// creates one. An existing customer's name is refreshed; phone and postcode
// only when provided. Anonymised rows never match, so an erased customer is
// not resurrected.
func (c *Coordinator) upsertCustomer(ctx context.Context, email, name string, phone, postcode *string) (string, error) {
	normalisedEmail := validate.NormalizeEmail(email)

	existing, err := c.store.Customers().GetByEmail(ctx, normalisedEmail)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	if existing != nil {
		existing.Name = name
		if phone != nil {
			existing.Phone = phone
		}
		if postcode != nil {
			existing.Postcode = postcode
		}
		if err := c.store.Customers().Update(ctx, existing); err != nil {
			return "", err
		}
		return existing.ID, nil
	}

	customer := &store.Customer{
		ID:       "cus_" + xid.New().String(),
		Email:    normalisedEmail,
		Name:     name,
		Phone:    phone,
		Postcode: postcode,
	}
	if err := c.store.Customers().Create(ctx, customer); err != nil {
		return "", err
	}
	return customer.ID, nil
}

func (c *Coordinator) logCreation(ctx context.Context, txStore store.Store, bookingID string, createdBy *string) error {
	return txStore.BookingStatusLog().Create(ctx, &store.BookingStatusLog{
		ID:        "slog_" + xid.New().String(),
		BookingID: bookingID,
		ToStatus:  store.BookingStatusPending,
		ChangedBy: createdBy,
	})
}
