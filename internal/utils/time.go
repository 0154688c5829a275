package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/breakfree/internal/constants"
)

// Calendar days are handled as YYYY-MM-DD strings. Any arithmetic on them happens on
// civil dates projected into UTC, where every day is exactly 24 hours long, so a DST
// transition in the user's zone can never shift a day boundary.

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// DayOf returns the calendar day of t as observed in loc.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD day into midnight UTC of that civil date.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// ParseDayOrTimestamp accepts either a YYYY-MM-DD day or an RFC 3339 timestamp and
// returns the calendar day it falls on in loc. Timestamps keep their own offset before
// being projected into loc, so "2024-05-01T23:30:00Z" is 2024-05-02 in Europe/Berlin.
func ParseDayOrTimestamp(value string, loc *time.Location) (string, error) {
	if t, err := time.Parse(constants.DateFormat, value); err == nil {
		return t.Format(constants.DateFormat), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", fmt.Errorf("invalid date or timestamp %q", value)
	}
	return DayOf(t, loc), nil
}

// AddDays returns the day n calendar days after day (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysBetween returns the number of calendar days from "from" to "to".
// It is positive when to is later than from.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDay(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDay(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// IsSameDay reports whether a and b fall on the same calendar day in loc.
func IsSameDay(a, b time.Time, loc *time.Location) bool {
	return DayOf(a, loc) == DayOf(b, loc)
}

// LastNDays returns the n days ending at today, oldest first.
func LastNDays(today string, n int) ([]string, error) {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		day, err := AddDays(today, -i)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// ValidateDay checks if the string is a valid YYYY-MM-DD day.
func ValidateDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
