package schedule

import (
	"context"
	"errors"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
	"github.com/krazyjakee/uk-booking-calendar/res/uktime"
	"github.com/krazyjakee/uk-booking-calendar/res/validate"
)

// Slot is one bookable window within a tradesman's working day.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// DaySlots is the availability picture for one calendar day.
type DaySlots struct {
	Date        string  `json:"date"`
	Slots       []Slot  `json:"slots"`
	IsHoliday   bool    `json:"is_holiday"`
	HolidayName *string `json:"holiday_name"`
}

// DayAvailability summarises one day within a range lookup.
type DayAvailability struct {
	Date            string  `json:"date"`
	IsHoliday       bool    `json:"is_holiday"`
	HolidayName     *string `json:"holiday_name"`
	HasAvailability bool    `json:"has_availability"`
	Slots           []Slot  `json:"slots"`
}

// MaxRangeDays caps range availability lookups.
const MaxRangeDays = 30

// Engine answers availability questions for a tradesman's calendar. It is
// read-only; booking writes go through the Coordinator.
type Engine struct {
	store store.Store
}

// NewEngine creates an availability engine over the given store.
func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

// AvailableSlots returns the candidate slots for a tradesman on one date.
//
// Slots are generated on the hour within each active working period, each one
// durationMinutes long, and marked unavailable when they overlap an active
// booking plus the tradesman's buffer. A public holiday or a day without
// working hours yields no slots; the holiday flag is populated either way.
func (e *Engine) AvailableSlots(ctx context.Context, tradesmanID, date string, durationMinutes int) (*DaySlots, error) {
	if durationMinutes <= 0 {
		durationMinutes = 60
	}

	result := &DaySlots{Date: date, Slots: []Slot{}}

	holiday, err := e.store.Holidays().FindByDate(ctx, date, nil)
	if err != nil {
		return nil, err
	}
	if holiday != nil {
		result.IsHoliday = true
		result.HolidayName = &holiday.Name
	}

	workingHours, err := e.store.WorkingHours().GetActiveByDay(ctx, tradesmanID, uktime.ISODayOfWeek(date))
	if err != nil {
		return nil, err
	}
	if len(workingHours) == 0 || result.IsHoliday {
		return result, nil
	}

	bookings, err := e.store.Bookings().GetActiveByTradesmanAndDate(ctx, tradesmanID, date, false)
	if err != nil {
		return nil, err
	}
	bufferMinutes, err := e.bufferMinutes(ctx, tradesmanID)
	if err != nil {
		return nil, err
	}

	for _, period := range workingHours {
		periodStart := uktime.TimeToMinutes(period.StartTime)
		periodEnd := uktime.TimeToMinutes(period.EndTime)

		for slotStart := periodStart; slotStart+durationMinutes <= periodEnd; slotStart += 60 {
			slotEnd := slotStart + durationMinutes
			result.Slots = append(result.Slots, Slot{
				StartTime: uktime.MinutesToTime(slotStart),
				EndTime:   uktime.MinutesToTime(slotEnd),
				Available: !overlapsAny(bookings, slotStart, slotEnd, bufferMinutes, ""),
			})
		}
	}
	return result, nil
}

// AvailabilityRange returns per-day availability over an inclusive date
// range of at most MaxRangeDays days.
func (e *Engine) AvailabilityRange(ctx context.Context, tradesmanID, startDate, endDate string, durationMinutes int) ([]DayAvailability, error) {
	if startDate > endDate {
		return nil, errors.New("Start date must be before end date.")
	}
	start := uktime.DateAtNoonUTC(startDate)
	end := uktime.DateAtNoonUTC(endDate)
	if end.Sub(start).Hours() > MaxRangeDays*24 {
		return nil, errors.New("Date range must not exceed 30 days.")
	}

	var days []DayAvailability
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		day, err := e.AvailableSlots(ctx, tradesmanID, current.Format("2006-01-02"), durationMinutes)
		if err != nil {
			return nil, err
		}
		hasAvailability := false
		for _, slot := range day.Slots {
			if slot.Available {
				hasAvailability = true
				break
			}
		}
		days = append(days, DayAvailability{
			Date:            day.Date,
			IsHoliday:       day.IsHoliday,
			HolidayName:     day.HolidayName,
			HasAvailability: hasAvailability,
			Slots:           day.Slots,
		})
	}
	return days, nil
}

// IsSlotAvailable reports whether a specific slot is free of overlapping
// active bookings, buffer included. excludeBookingID skips one booking, so an
// update does not collide with itself. This is the same check the
// Coordinator re-runs under a transaction before writing.
func (e *Engine) IsSlotAvailable(ctx context.Context, s store.Store, tradesmanID, date, startTime, endTime, excludeBookingID string, forUpdate bool) (bool, error) {
	bookings, err := s.Bookings().GetActiveByTradesmanAndDate(ctx, tradesmanID, date, forUpdate)
	if err != nil {
		return false, err
	}
	bufferMinutes, err := bufferMinutesFrom(ctx, s, tradesmanID)
	if err != nil {
		return false, err
	}
	slotStart := uktime.TimeToMinutes(startTime)
	slotEnd := uktime.TimeToMinutes(endTime)
	return !overlapsAny(bookings, slotStart, slotEnd, bufferMinutes, excludeBookingID), nil
}

// IsWithinWorkingHours reports whether a slot sits entirely inside one of the
// tradesman's active working periods for the date's day of week. Periods are
// never merged, so a slot spanning two adjacent periods does not qualify.
func (e *Engine) IsWithinWorkingHours(ctx context.Context, tradesmanID, date, startTime, endTime string) (bool, error) {
	workingHours, err := e.store.WorkingHours().GetActiveByDay(ctx, tradesmanID, uktime.ISODayOfWeek(date))
	if err != nil {
		return false, err
	}
	slotStart := uktime.TimeToMinutes(startTime)
	slotEnd := uktime.TimeToMinutes(endTime)
	for _, period := range workingHours {
		if slotStart >= uktime.TimeToMinutes(period.StartTime) && slotEnd <= uktime.TimeToMinutes(period.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

// IsPublicHoliday reports whether a date is a UK public holiday, and its name
// when it is.
func (e *Engine) IsPublicHoliday(ctx context.Context, date string, region *store.HolidayRegion) (bool, *string, error) {
	holiday, err := e.store.Holidays().FindByDate(ctx, date, region)
	if err != nil {
		return false, nil, err
	}
	if holiday == nil {
		return false, nil, nil
	}
	return true, &holiday.Name, nil
}

// PublicHolidays returns the holidays within an inclusive date range.
func (e *Engine) PublicHolidays(ctx context.Context, startDate, endDate string, region *store.HolidayRegion) ([]*store.UkPublicHoliday, error) {
	if err := validate.Collect(validate.Date(startDate), validate.Date(endDate)); err != nil {
		return nil, err
	}
	return e.store.Holidays().ListByDateRange(ctx, startDate, endDate, region)
}

func (e *Engine) bufferMinutes(ctx context.Context, tradesmanID string) (int, error) {
	return bufferMinutesFrom(ctx, e.store, tradesmanID)
}

// bufferMinutesFrom reads the tradesman's buffer setting; a missing profile
// means no buffer.
func bufferMinutesFrom(ctx context.Context, s store.Store, tradesmanID string) (int, error) {
	profile, err := s.TradesmanProfiles().GetByUserID(ctx, tradesmanID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return profile.BufferMinutes, nil
}

// overlapsAny reports whether [slotStart, slotEnd) collides with any booking,
// extending each booking's end by the buffer. A slot overlaps when it starts
// before a booking ends and ends after it starts.
func overlapsAny(bookings []*store.Booking, slotStart, slotEnd, bufferMinutes int, excludeBookingID string) bool {
	for _, booking := range bookings {
		if excludeBookingID != "" && booking.ID == excludeBookingID {
			continue
		}
		bookingStart := uktime.TimeToMinutes(booking.StartTime)
		bookingEnd := uktime.TimeToMinutes(booking.EndTime) + bufferMinutes
		if slotStart < bookingEnd && slotEnd > bookingStart {
			return true
		}
	}
	return false
}
