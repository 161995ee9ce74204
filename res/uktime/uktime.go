// Package uktime implements UK local-time calendar arithmetic for the booking
// core. The BST window is computed from the calendar rule (last Sunday of
// March to last Sunday of October, both at 01:00 UTC) rather than a platform
// timezone database, so the conversion is portable and self-corrects across
// years. All functions are pure.
package uktime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// isoDayByWeekday maps Go's Sunday-first weekday numbering onto ISO 8601
// (0=Monday, 6=Sunday). Kept as an explicit table so the mapping never
// depends on host-locale conventions.
var isoDayByWeekday = [7]int{
	time.Sunday:    6,
	time.Monday:    0,
	time.Tuesday:   1,
	time.Wednesday: 2,
	time.Thursday:  3,
	time.Friday:    4,
	time.Saturday:  5,
}

// IsSummerTime reports whether an instant falls in British Summer Time.
// BST runs from 01:00 UTC on the last Sunday of March to 01:00 UTC on the
// last Sunday of October.
func IsSummerTime(instant time.Time) bool {
	utc := instant.UTC()
	year := utc.Year()

	start := lastSundayOfMonth(year, time.March).Add(1 * time.Hour)
	end := lastSundayOfMonth(year, time.October).Add(1 * time.Hour)

	return !utc.Before(start) && utc.Before(end)
}

// lastSundayOfMonth returns midnight UTC on the last Sunday of the month
func lastSundayOfMonth(year int, month time.Month) time.Time {
	// Day 0 of the next month is the last day of this one
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return lastDay.AddDate(0, 0, -int(lastDay.Weekday()))
}

// UKLocalToUTC converts a UK local date ("YYYY-MM-DD") and wall-clock time
// ("HH:MM") to the corresponding UTC instant. GMT is UTC+0 and BST is UTC+1;
// the offset is resolved by IsSummerTime for the instant in question.
// Malformed input is a validation concern and must be rejected before calling.
func UKLocalToUTC(date, timeOfDay string) time.Time {
	year, month, day := splitDate(date)
	hour, minute := splitTime(timeOfDay)

	// Interpret the wall clock as if it were UTC, then remove the UK offset
	naive := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if IsSummerTime(naive) {
		return naive.Add(-1 * time.Hour)
	}
	return naive
}

// UTCToUKLocal converts a UTC instant to UK local date and time strings.
func UTCToUKLocal(instant time.Time) (date string, timeOfDay string) {
	return FormatUKDate(instant), FormatUKTime(instant)
}

// FormatUKDate formats an instant as a UK local "YYYY-MM-DD" date.
func FormatUKDate(instant time.Time) string {
	local := instant.UTC()
	if IsSummerTime(local) {
		local = local.Add(1 * time.Hour)
	}
	return local.Format("2006-01-02")
}

// FormatUKTime formats an instant as a UK local "HH:MM" time.
func FormatUKTime(instant time.Time) string {
	local := instant.UTC()
	if IsSummerTime(local) {
		local = local.Add(1 * time.Hour)
	}
	return local.Format("15:04")
}

// CurrentUKDate returns today's date in UK local time as "YYYY-MM-DD".
func CurrentUKDate() string {
	return FormatUKDate(time.Now())
}

// CurrentUKTime returns the current UK local time as "HH:MM".
func CurrentUKTime() string {
	return FormatUKTime(time.Now())
}

// ISODayOfWeek returns the ISO 8601 day of week (0=Monday, 6=Sunday) for a
// "YYYY-MM-DD" date.
func ISODayOfWeek(date string) int {
	year, month, day := splitDate(date)
	// Noon avoids any ambiguity around offset transitions
	noon := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	return isoDayByWeekday[noon.Weekday()]
}

// DateAtNoonUTC returns the instant at noon UTC on a "YYYY-MM-DD" date.
// Impossible calendar days normalise forward, like the rest of the package.
func DateAtNoonUTC(date string) time.Time {
	year, month, day := splitDate(date)
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

// TimeToMinutes converts a "HH:MM" time to minutes since midnight.
func TimeToMinutes(timeOfDay string) int {
	hour, minute := splitTime(timeOfDay)
	return hour*60 + minute
}

// MinutesToTime converts minutes since midnight to a "HH:MM" string.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes adds minutes to a "HH:MM" time and returns the new "HH:MM".
func AddMinutes(timeOfDay string, minutes int) string {
	return MinutesToTime(TimeToMinutes(timeOfDay) + minutes)
}

// CompareTime compares two "HH:MM" times, returning -1, 0 or 1.
func CompareTime(a, b string) int {
	diff := TimeToMinutes(a) - TimeToMinutes(b)
	switch {
	case diff < 0:
		return -1
	case diff > 0:
		return 1
	default:
		return 0
	}
}

// splitDate parses "YYYY-MM-DD" components without validating the calendar
// day; impossible days normalise forward (2026-02-30 becomes a March date),
// matching the validator's deliberately lenient contract.
func splitDate(date string) (year, month, day int) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0
	}
	year, _ = strconv.Atoi(parts[0])
	month, _ = strconv.Atoi(parts[1])
	day, _ = strconv.Atoi(parts[2])
	return year, month, day
}

// splitTime parses "HH:MM" components
func splitTime(timeOfDay string) (hour, minute int) {
	parts := strings.SplitN(timeOfDay, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}
