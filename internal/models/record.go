package models

import "slices"

// UserRecord is the whole persisted state of one device's user.
// JSON keys match the blob written by earlier versions of the app.
type UserRecord struct {
	Streak              int            `json:"streak"`
	BreakPoints         int            `json:"breakPoints"`
	LastLogin           string         `json:"lastLogin"` // YYYY-MM-DD
	CompletedGoals      []string       `json:"completedGoals"`
	Habits              []Habit        `json:"habits"`
	Goals               []Goal         `json:"goals"`
	Level               int            `json:"level"`
	LevelName           string         `json:"levelName"`
	ConsecutiveGoalDays int            `json:"consecutiveGoalDays"`
	Journal             []JournalEntry `json:"journal"`
}

// Clone returns a deep copy so transforms never share slices with their input.
func (r UserRecord) Clone() UserRecord {
	out := r
	out.CompletedGoals = cloneStrings(r.CompletedGoals)
	out.Goals = slices.Clone(r.Goals)
	if out.Goals == nil {
		out.Goals = []Goal{}
	}
	out.Habits = make([]Habit, len(r.Habits))
	for i, h := range r.Habits {
		out.Habits[i] = h.clone()
	}
	out.Journal = make([]JournalEntry, len(r.Journal))
	for i, e := range r.Journal {
		out.Journal[i] = e.clone()
	}
	return out
}

// IsGoalCompleted reports whether the goal was completed today.
func (r UserRecord) IsGoalCompleted(id string) bool {
	return slices.Contains(r.CompletedGoals, id)
}

// FindGoal returns the index of the goal with id, or -1.
func (r UserRecord) FindGoal(id string) int {
	return slices.IndexFunc(r.Goals, func(g Goal) bool { return g.ID == id })
}

// FindHabit returns the index of the habit with id, or -1.
func (r UserRecord) FindHabit(id string) int {
	return slices.IndexFunc(r.Habits, func(h Habit) bool { return h.ID == id })
}

// AllGoalsCompleted is true when there is at least one goal and every goal is in CompletedGoals.
func (r UserRecord) AllGoalsCompleted() bool {
	if len(r.Goals) == 0 {
		return false
	}
	for _, g := range r.Goals {
		if !r.IsGoalCompleted(g.ID) {
			return false
		}
	}
	return true
}

func cloneStrings(s []string) []string {
	out := slices.Clone(s)
	if out == nil {
		out = []string{}
	}
	return out
}
