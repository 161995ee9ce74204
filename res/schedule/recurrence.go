package schedule

import (
	"github.com/krazyjakee/uk-booking-calendar/res/store"
	"github.com/krazyjakee/uk-booking-calendar/res/uktime"
)

// DefaultRecurrenceHorizonWeeks caps how far ahead a recurrence without an
// end date is materialised.
const DefaultRecurrenceHorizonWeeks = 12

// GenerateRecurrenceDates expands a recurrence rule into the concrete
// "YYYY-MM-DD" dates it covers, starting at the rule's start date. Generation
// stops at the rule's end date, at its occurrence cap, or at the horizon,
// whichever comes first. A non-positive occurrence cap means no cap.
//
// Monthly recurrences use native calendar addition, so a start on the 31st
// rolls forward through shorter months rather than clamping.
func GenerateRecurrenceDates(rule store.RecurrenceRule, horizonWeeks int) []string {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultRecurrenceHorizonWeeks
	}
	interval := rule.Interval
	if interval <= 0 {
		interval = 1
	}

	start := uktime.DateAtNoonUTC(rule.StartDate)
	limit := start.AddDate(0, 0, horizonWeeks*7)
	if rule.EndDate != nil {
		end := uktime.DateAtNoonUTC(*rule.EndDate)
		if end.Before(limit) {
			limit = end
		}
	}

	var dates []string
	current := start
	for !current.After(limit) {
		if rule.MaxOccurrences != nil && *rule.MaxOccurrences > 0 && len(dates) >= *rule.MaxOccurrences {
			break
		}
		dates = append(dates, current.Format("2006-01-02"))

		switch rule.Frequency {
		case store.RecurrenceFrequencyDaily:
			current = current.AddDate(0, 0, interval)
		case store.RecurrenceFrequencyWeekly:
			current = current.AddDate(0, 0, interval*7)
		case store.RecurrenceFrequencyFortnightly:
			current = current.AddDate(0, 0, interval*14)
		case store.RecurrenceFrequencyMonthly:
			current = current.AddDate(0, interval, 0)
		default:
			return dates
		}
	}
	return dates
}
