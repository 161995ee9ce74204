package schedule

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/xid"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
	"github.com/krazyjakee/uk-booking-calendar/res/validate"
)

var workingHoursTimeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)

// UpdateProfileInput carries a partial tradesman profile update. Nil fields
// are left unchanged.
type UpdateProfileInput struct {
	BusinessName            *string
	Phone                   *string
	BufferMinutes           *int
	CancellationNoticeHours *int
	ServiceAreaCentre       *string
	ServiceAreaRadiusMiles  *float64
}

// UpdateProfile updates a tradesman's scheduling settings, creating the
// profile row on first use.
func (c *Coordinator) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*store.TradesmanProfile, error) {
	if err := validate.UUID(userID, "Tradesman ID"); err != nil {
		return nil, err
	}

	profile, err := c.store.TradesmanProfiles().GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		profile = &store.TradesmanProfile{
			ID:     "tp_" + xid.New().String(),
			UserID: userID,
		}
		if err := c.store.TradesmanProfiles().Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	if input.BusinessName != nil {
		profile.BusinessName = input.BusinessName
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.BufferMinutes != nil {
		if *input.BufferMinutes < 0 {
			return nil, errors.New("Buffer minutes must not be negative.")
		}
		profile.BufferMinutes = *input.BufferMinutes
	}
	if input.CancellationNoticeHours != nil {
		if *input.CancellationNoticeHours < 0 {
			return nil, errors.New("Cancellation notice hours must not be negative.")
		}
		profile.CancellationNoticeHours = *input.CancellationNoticeHours
	}
	if input.ServiceAreaCentre != nil {
		profile.ServiceAreaCentre = input.ServiceAreaCentre
	}
	if input.ServiceAreaRadiusMiles != nil {
		if *input.ServiceAreaRadiusMiles < 0 {
			return nil, errors.New("Service area radius must not be negative.")
		}
		profile.ServiceAreaRadiusMiles = input.ServiceAreaRadiusMiles
	}

	if err := c.store.TradesmanProfiles().Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// WorkingHoursEntry is one working period in a SetWorkingHours request.
type WorkingHoursEntry struct {
	DayOfWeek int // ISO: 0=Monday, 6=Sunday
	StartTime string
	EndTime   string
	IsActive  bool
}

// SetWorkingHours replaces a tradesman's entire weekly schedule with the
// given entries in one transaction and returns the stored set ordered by day
// then start time.
func (c *Coordinator) SetWorkingHours(ctx context.Context, tradesmanID string, entries []WorkingHoursEntry) ([]*store.WorkingHours, error) {
	if err := c.checkTradesmanExists(ctx, tradesmanID); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
			return nil, errors.New("Day of week must be between 0 (Monday) and 6 (Sunday).")
		}
		if !workingHoursTimeRegex.MatchString(entry.StartTime) || !workingHoursTimeRegex.MatchString(entry.EndTime) {
			return nil, errors.New("Times must be in HH:MM format.")
		}
		if entry.StartTime >= entry.EndTime {
			return nil, fmt.Errorf("Day %d: start time must be before end time.", entry.DayOfWeek)
		}
	}

	hours := make([]*store.WorkingHours, len(entries))
	for i, entry := range entries {
		hours[i] = &store.WorkingHours{
			ID:          "wh_" + xid.New().String(),
			TradesmanID: tradesmanID,
			DayOfWeek:   entry.DayOfWeek,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			IsActive:    entry.IsActive,
		}
	}

	if err := c.store.WorkingHours().ReplaceForTradesman(ctx, tradesmanID, hours); err != nil {
		return nil, err
	}
	return c.store.WorkingHours().GetByTradesman(ctx, tradesmanID)
}

// AddHoliday adds a public holiday row. One holiday per date; a duplicate
// date is rejected regardless of region.
func (c *Coordinator) AddHoliday(ctx context.Context, date, name string, region *store.HolidayRegion) (*store.UkPublicHoliday, error) {
	if err := validate.Date(date); err != nil {
		return nil, err
	}
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, errors.New("Holiday name is required.")
	}

	holidayRegion := store.HolidayRegionEnglandAndWales
	if region != nil {
		holidayRegion = *region
	}

	existing, err := c.store.Holidays().FindByDate(ctx, date, nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("A holiday already exists on %s.", date)
	}

	holiday := &store.UkPublicHoliday{
		ID:     "hol_" + xid.New().String(),
		Date:   date,
		Name:   trimmedName,
		Region: holidayRegion,
	}
	if err := c.store.Holidays().Create(ctx, holiday); err != nil {
		return nil, err
	}
	return holiday, nil
}

// RemoveHoliday deletes a public holiday row.
func (c *Coordinator) RemoveHoliday(ctx context.Context, id string) error {
	if err := validate.UUID(id, "Holiday ID"); err != nil {
		return err
	}
	return c.store.Holidays().Delete(ctx, id)
}
