package models

import "slices"

type HabitType string

const (
	HabitBuild HabitType = "build"
	HabitBreak HabitType = "break"
)

// Habit represents a long-running practice tracked by day.
// Completions is a set of YYYY-MM-DD days; order is irrelevant and days are unique.
type Habit struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"notblank,max=120"`
	Type        HabitType `json:"type" validate:"oneof=build break"`
	Completions []string  `json:"completions" validate:"dive,calendarday"`
}

// CompletedOn reports whether the habit has a completion on day.
func (h Habit) CompletedOn(day string) bool {
	return slices.Contains(h.Completions, day)
}

func (h Habit) clone() Habit {
	h.Completions = slices.Clone(h.Completions)
	if h.Completions == nil {
		h.Completions = []string{}
	}
	return h
}
