package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/streak"
	"github.com/julianstephens/breakfree/internal/utils"
)

// GoalProgress returns how many of the active goals are completed today.
func GoalProgress(rec models.UserRecord) (done, total int) {
	for _, g := range rec.Goals {
		if rec.IsGoalCompleted(g.ID) {
			done++
		}
	}
	return done, len(rec.Goals)
}

// DayProgress is the habit completion count for one day of the week view.
type DayProgress struct {
	Day       string
	Weekday   string
	Completed int
	Total     int
}

// WeeklyHabitProgress returns the last seven days ending at today, oldest first.
func WeeklyHabitProgress(rec models.UserRecord, today string) ([]DayProgress, error) {
	days, err := utils.LastNDays(today, constants.WeekViewDays)
	if err != nil {
		return nil, err
	}
	out := make([]DayProgress, 0, len(days))
	for _, day := range days {
		t, _ := utils.ParseDay(day)
		p := DayProgress{Day: day, Weekday: t.Weekday().String()[:3], Total: len(rec.Habits)}
		for _, h := range rec.Habits {
			if h.CompletedOn(day) {
				p.Completed++
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// HabitSummary is one habit row in the habits view.
type HabitSummary struct {
	Habit          models.Habit
	CurrentStreak  int
	LongestStreak  int
	CompletedToday bool
	Week           []bool // oldest first, ending today
}

// Summaries computes streaks and the week grid for every habit.
func Summaries(rec models.UserRecord, today string) ([]HabitSummary, error) {
	days, err := utils.LastNDays(today, constants.WeekViewDays)
	if err != nil {
		return nil, err
	}
	out := make([]HabitSummary, 0, len(rec.Habits))
	for _, h := range rec.Habits {
		s := HabitSummary{
			Habit:          h,
			CurrentStreak:  streak.Current(h.Completions, today),
			LongestStreak:  streak.Longest(h.Completions),
			CompletedToday: h.CompletedOn(today),
			Week:           make([]bool, len(days)),
		}
		for i, day := range days {
			s.Week[i] = h.CompletedOn(day)
		}
		out = append(out, s)
	}
	return out, nil
}

// HabitLog renders an ASCII grid of the last n days for every habit, one row per habit.
// A completed day is 'x', anything else '.'.
func HabitLog(rec models.UserRecord, today string, n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("days must be at least 1, got %d", n)
	}
	days, err := utils.LastNDays(today, n)
	if err != nil {
		return "", err
	}
	width := 0
	for _, h := range rec.Habits {
		width = max(width, len([]rune(h.Name)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %s .. %s\n", width, "", days[0], days[len(days)-1])
	for _, h := range rec.Habits {
		fmt.Fprintf(&b, "%-*s ", width, h.Name)
		for _, day := range days {
			if h.CompletedOn(day) {
				b.WriteByte('x')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// DailyIntent picks the intent message for day. The same day always gets the same
// message.
func DailyIntent(day string) string {
	t, err := utils.ParseDay(day)
	if err != nil {
		return constants.IntentMessages[0]
	}
	l := len(constants.IntentMessages)
	n := int(t.Unix() / 86400)
	return constants.IntentMessages[((n%l)+l)%l]
}
