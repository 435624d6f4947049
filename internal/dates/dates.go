// Package dates holds the calendar helpers the habit engine keys on.
// Day keys are always derived from the local calendar day, never from a
// UTC-sliced ISO string, so entries logged near midnight land on the day
// the user actually experienced.
package dates

import (
	"fmt"
	"time"
)

// DayFormat is the canonical day key layout (YYYY-MM-DD).
const DayFormat = "2006-01-02"

// MonthFormat is the canonical month key layout (YYYY-MM).
const MonthFormat = "2006-01"

// DayKey returns the canonical local-date key for t.
func DayKey(t time.Time) string {
	return t.Local().Format(DayFormat)
}

// MonthKey returns the YYYY-MM key for t in local time.
func MonthKey(t time.Time) string {
	return t.Local().Format(MonthFormat)
}

// ParseDayKey parses a YYYY-MM-DD key as local midnight.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", key, err)
	}
	return t, nil
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Local().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekStart returns local midnight of the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.Local()
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the week that started the previous Monday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns local midnight of the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	t = t.Local()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// DaysBetween returns the calendar-day difference b - a between two day
// keys. Malformed keys yield an error.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDayKey(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDayKey(b)
	if err != nil {
		return 0, err
	}
	// Count whole days, robust against DST shifts within the span.
	return int(tb.Sub(ta).Round(24*time.Hour) / (24 * time.Hour)), nil
}
