package postgresql

import (
	"context"
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"

	"github.com/rs/xid"
)

// ukPublicHolidays is the England and Wales reference dataset for 2026-2028.
// Source: gov.uk bank holiday calendar.
var ukPublicHolidays = []store.UkPublicHoliday{
	// 2026
	{Date: "2026-01-01", Name: "New Year's Day", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2026-04-03", Name: "Good Friday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2026-04-06", Name: "Easter Monday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2026-05-04", Name: "Early May bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2026-05-25", Name: "Spring bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2026-08-31", Name: "Summer bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2026-12-25", Name: "Christmas Day", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2026-12-28", Name: "Boxing Day (substitute)", Region: store.HolidayRegionEnglandAndWales},

	// 2027
	{Date: "2027-01-01", Name: "New Year's Day", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2027-03-26", Name: "Good Friday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2027-03-29", Name: "Easter Monday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2027-05-03", Name: "Early May bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2027-05-31", Name: "Spring bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2027-08-30", Name: "Summer bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2027-12-27", Name: "Christmas Day (substitute)", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2027-12-28", Name: "Boxing Day (substitute)", Region: store.HolidayRegionEnglandAndWales},

	// 2028
	{Date: "2028-01-03", Name: "New Year's Day (substitute)", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2028-04-14", Name: "Good Friday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2028-04-17", Name: "Easter Monday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2028-05-01", Name: "Early May bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2028-05-29", Name: "Spring bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2028-08-28", Name: "Summer bank holiday", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2028-12-25", Name: "Christmas Day", Region: store.HolidayRegionEnglandAndWales},
	{Date: "2028-12-26", Name: "Boxing Day", Region: store.HolidayRegionEnglandAndWales},
}

// SeedUkPublicHolidays inserts the reference holiday rows that are not already
// present. Safe to run on every startup.
func (sImpl *storeImpl) SeedUkPublicHolidays(ctx context.Context) (int, error) {
	seeded := 0
	for _, holiday := range ukPublicHolidays {
		existing, err := sImpl.holidayStore.FindByDate(ctx, holiday.Date, nil)
		if err != nil {
			return seeded, fmt.Errorf("failed to check holiday %s: %w", holiday.Date, err)
		}
		if existing != nil {
			continue
		}

		row := holiday
		row.ID = fmt.Sprintf("hol_%s", xid.New().String())
		if err := sImpl.holidayStore.Create(ctx, &row); err != nil {
			return seeded, fmt.Errorf("failed to seed holiday %s: %w", holiday.Date, err)
		}
		seeded++
	}
	return seeded, nil
}

// EnsureDefaultWorkingHours provisions Monday-Friday 09:00-17:00 for a
// tradesman that has no working-hours entries yet. Existing entries are left
// untouched.
func (sImpl *storeImpl) EnsureDefaultWorkingHours(ctx context.Context, tradesmanID string) error {
	existing, err := sImpl.workingHoursStore.GetByTradesman(ctx, tradesmanID)
	if err != nil {
		return fmt.Errorf("failed to check working hours for %s: %w", tradesmanID, err)
	}
	if len(existing) > 0 {
		return nil
	}

	for day := 0; day <= 4; day++ { // Monday to Friday
		entry := &store.WorkingHours{
			ID:          fmt.Sprintf("wh_%s", xid.New().String()),
			TradesmanID: tradesmanID,
			DayOfWeek:   day,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsActive:    true,
		}
		if err := sImpl.workingHoursStore.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to create default working hours for %s: %w", tradesmanID, err)
		}
	}
	return nil
}
