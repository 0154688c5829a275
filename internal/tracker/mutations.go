// Package tracker holds the mutations the view layer asks for and the session that
// persists them.
//
// Every mutation is a pure transform: it takes a record, returns a new one and reports
// whether anything changed. A rejected mutation returns an error and the input record.
package tracker

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/validation"
)

// Transform is a pure record mutation. changed is false for a no-op, which must not be
// persisted.
type Transform func(rec models.UserRecord) (out models.UserRecord, changed bool, err error)

// CompleteGoal marks a goal done for today and awards its points. Completing an
// already completed goal is a no-op.
func CompleteGoal(rec models.UserRecord, id string) (models.UserRecord, bool, error) {
	i := rec.FindGoal(id)
	if i < 0 {
		return rec, false, fmt.Errorf("%w: %s", apperrors.ErrGoalNotFound, id)
	}
	if rec.IsGoalCompleted(id) {
		return rec, false, nil
	}
	out := rec.Clone()
	out.CompletedGoals = append(out.CompletedGoals, id)
	out.BreakPoints += out.Goals[i].Points
	return out, true, nil
}

// AddGoal appends g to the active goal set. Ids must be unique; an empty id gets a uuid.
func AddGoal(rec models.UserRecord, g models.Goal) (models.UserRecord, bool, error) {
	g.Text = strings.TrimSpace(g.Text)
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if err := validation.ValidateGoal(g); err != nil {
		return rec, false, err
	}
	if rec.FindGoal(g.ID) >= 0 {
		return rec, false, fmt.Errorf("%w: %s", apperrors.ErrDuplicateGoal, g.ID)
	}
	out := rec.Clone()
	out.Goals = append(out.Goals, g)
	return out, true, nil
}

// RemoveGoal drops the goal and its id from today's completions.
func RemoveGoal(rec models.UserRecord, id string) (models.UserRecord, bool, error) {
	i := rec.FindGoal(id)
	if i < 0 {
		return rec, false, fmt.Errorf("%w: %s", apperrors.ErrGoalNotFound, id)
	}
	out := rec.Clone()
	out.Goals = slices.Delete(out.Goals, i, i+1)
	out.CompletedGoals = slices.DeleteFunc(out.CompletedGoals, func(c string) bool { return c == id })
	return out, true, nil
}

// EditGoal replaces the goal with the same id. Points already awarded today stand.
func EditGoal(rec models.UserRecord, g models.Goal) (models.UserRecord, bool, error) {
	i := rec.FindGoal(g.ID)
	if i < 0 {
		return rec, false, fmt.Errorf("%w: %s", apperrors.ErrGoalNotFound, g.ID)
	}
	g.Text = strings.TrimSpace(g.Text)
	if err := validation.ValidateGoal(g); err != nil {
		return rec, false, err
	}
	if rec.Goals[i] == g {
		return rec, false, nil
	}
	out := rec.Clone()
	out.Goals[i] = g
	return out, true, nil
}

// AddHabit appends a new habit with a fresh id and no completions.
func AddHabit(rec models.UserRecord, name string, typ models.HabitType) (models.UserRecord, models.Habit, error) {
	h := models.Habit{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Type:        typ,
		Completions: []string{},
	}
	if err := validation.ValidateHabit(h); err != nil {
		return rec, models.Habit{}, err
	}
	out := rec.Clone()
	out.Habits = append(out.Habits, h)
	return out, h, nil
}

// RemoveHabit deletes the habit and its completion history.
func RemoveHabit(rec models.UserRecord, id string) (models.UserRecord, bool, error) {
	i := rec.FindHabit(id)
	if i < 0 {
		return rec, false, fmt.Errorf("%w: %s", apperrors.ErrHabitNotFound, id)
	}
	out := rec.Clone()
	out.Habits = slices.Delete(out.Habits, i, i+1)
	return out, true, nil
}

// EditHabit renames or retypes a habit. Completions are kept.
func EditHabit(rec models.UserRecord, id, name string, typ models.HabitType) (models.UserRecord, bool, error) {
	i := rec.FindHabit(id)
	if i < 0 {
		return rec, false, fmt.Errorf("%w: %s", apperrors.ErrHabitNotFound, id)
	}
	h := rec.Habits[i]
	h.Name = strings.TrimSpace(name)
	h.Type = typ
	if err := validation.ValidateHabit(h); err != nil {
		return rec, false, err
	}
	if h.Name == rec.Habits[i].Name && h.Type == rec.Habits[i].Type {
		return rec, false, nil
	}
	out := rec.Clone()
	out.Habits[i].Name = h.Name
	out.Habits[i].Type = h.Type
	return out, true, nil
}

// CompleteHabit records a completion for today. There is no un-complete; a second
// completion on the same day is a no-op.
func CompleteHabit(rec models.UserRecord, id, today string) (models.UserRecord, bool, error) {
	i := rec.FindHabit(id)
	if i < 0 {
		return rec, false, fmt.Errorf("%w: %s", apperrors.ErrHabitNotFound, id)
	}
	if rec.Habits[i].CompletedOn(today) {
		return rec, false, nil
	}
	out := rec.Clone()
	out.Habits[i].Completions = append(out.Habits[i].Completions, today)
	return out, true, nil
}

// NewJournalEntry builds an entry stamped at now. context is copied.
func NewJournalEntry(now time.Time, question, response string, context []string) models.JournalEntry {
	return models.JournalEntry{
		Date:     now.UTC(),
		Question: strings.TrimSpace(question),
		Response: strings.TrimSpace(response),
		Context:  slices.Clone(context),
	}
}

// AppendJournalEntry adds e to the end of the journal.
func AppendJournalEntry(rec models.UserRecord, e models.JournalEntry) (models.UserRecord, bool, error) {
	if err := validation.ValidateJournalEntry(e); err != nil {
		return rec, false, err
	}
	out := rec.Clone()
	out.Journal = append(out.Journal, e)
	return out, true, nil
}

// AvailableTemplates lists goal templates not already in the active set.
func AvailableTemplates(rec models.UserRecord) []models.Goal {
	var out []models.Goal
	for _, g := range models.GoalTemplates() {
		if rec.FindGoal(g.ID) < 0 {
			out = append(out, g)
		}
	}
	return out
}
