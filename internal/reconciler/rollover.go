package reconciler

import (
	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/utils"
)

// Rollover applies the day-rollover transition for today. It returns the input unchanged
// and false when lastLogin is already today. rec is never modified.
//
// The goal streak is judged on the completions recorded before the rollover, which are
// yesterday's when the login streak is intact.
func Rollover(rec models.UserRecord, today string, policy constants.GoalStreakPolicy) (models.UserRecord, bool) {
	if rec.LastLogin == today {
		return rec, false
	}

	yesterday, err := utils.AddDays(today, -1)
	consecutive := err == nil && rec.LastLogin == yesterday
	allDone := rec.AllGoalsCompleted()

	out := rec.Clone()
	if consecutive {
		out.Streak++
	} else {
		out.Streak = 1
	}

	switch {
	case consecutive && allDone:
		out.ConsecutiveGoalDays++
	case !consecutive:
		out.ConsecutiveGoalDays = 0
	case policy == constants.GoalStreakReset:
		out.ConsecutiveGoalDays = 0
	}

	out.CompletedGoals = []string{}
	out.LastLogin = today
	return out, true
}
