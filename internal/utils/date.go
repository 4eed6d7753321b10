package utils

import (
	"Hostel-Food-Ordering/domain"
	"time"
)

// ParseDate parses a YYYY-MM-DD calendar date. Calendar dates are carried as
// midnight UTC so they round-trip through date columns unchanged.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

// CalendarDate returns the calendar date of t as observed in loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
