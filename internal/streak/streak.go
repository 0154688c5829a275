// Package streak derives consecutive-day streaks from a habit's completion days.
//
// Every function here is pure: it reads only its arguments, so it is safe to call for
// every habit on every render.
package streak

import (
	"slices"
	"time"

	"github.com/julianstephens/breakfree/internal/constants"
)

// Current returns the consecutive-day streak for completions as of today.
//
// A streak survives until a full day is missed: if the most recent completion was today
// or yesterday, the run ending there is counted; anything older yields 0. Entries that
// are not valid YYYY-MM-DD days, or that lie after today, are ignored.
func Current(completions []string, today string) int {
	if len(completions) == 0 {
		return 0
	}
	now, err := time.Parse(constants.DateFormat, today)
	if err != nil {
		return 0
	}
	days := descendingDays(completions, now)
	if len(days) == 0 {
		return 0
	}

	gap := daysApart(now, days[0])
	if gap > 1 {
		return 0
	}

	streak := 1
	anchor := days[0]
	for _, d := range days[1:] {
		if daysApart(anchor, d) != 1 {
			break
		}
		streak++
		anchor = d
	}

	return streak
}

// Longest returns the longest run of consecutive days anywhere in completions.
func Longest(completions []string) int {
	days := descendingDays(completions, time.Time{})
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysApart(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// descendingDays parses, dedupes and sorts completions most recent first. When notAfter
// is non-zero, days later than it are dropped.
func descendingDays(completions []string, notAfter time.Time) []time.Time {
	days := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		d, err := time.Parse(constants.DateFormat, c)
		if err != nil {
			continue
		}
		if !notAfter.IsZero() && d.After(notAfter) {
			continue
		}
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })
	return slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })
}

// daysApart is the whole-day difference a - b; both are UTC midnights.
func daysApart(a, b time.Time) int {
	return int(a.Sub(b).Hours() / 24)
}

// CompletedOn reports whether day is among completions.
func CompletedOn(completions []string, day string) bool {
	return slices.Contains(completions, day)
}
