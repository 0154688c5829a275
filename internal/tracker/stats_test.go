package tracker

import (
	"strings"
	"testing"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/models"
)

func recordWithHabits() models.UserRecord {
	rec := models.NewUserRecord("2024-05-10")
	rec.Habits = []models.Habit{
		{ID: "a", Name: "Read", Type: models.HabitBuild, Completions: []string{"2024-05-08", "2024-05-09", "2024-05-10"}},
		{ID: "b", Name: "No sugar", Type: models.HabitBreak, Completions: []string{"2024-05-04", "2024-05-10", "2024-04-01"}},
	}
	return rec
}

func TestGoalProgress(t *testing.T) {
	rec := models.NewUserRecord("2024-05-10")
	rec.CompletedGoals = []string{"pushups_10", "help_someone", "removed_goal"}
	done, total := GoalProgress(rec)
	if done != 2 || total != 6 {
		t.Errorf("GoalProgress() = %d/%d, want 2/6", done, total)
	}
}

func TestWeeklyHabitProgress(t *testing.T) {
	got, err := WeeklyHabitProgress(recordWithHabits(), "2024-05-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != constants.WeekViewDays {
		t.Fatalf("days = %d", len(got))
	}
	if got[0].Day != "2024-05-04" || got[0].Weekday != "Sat" || got[0].Completed != 1 {
		t.Errorf("first day = %+v", got[0])
	}
	last := got[len(got)-1]
	if last.Day != "2024-05-10" || last.Weekday != "Fri" || last.Completed != 2 || last.Total != 2 {
		t.Errorf("last day = %+v", last)
	}
	if got[2].Completed != 0 {
		t.Errorf("2024-05-06 = %+v", got[2])
	}
	if _, err := WeeklyHabitProgress(recordWithHabits(), "bad"); err == nil {
		t.Error("expected error for bad day")
	}
}

func TestSummaries(t *testing.T) {
	got, err := Summaries(recordWithHabits(), "2024-05-10")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].CurrentStreak != 3 || got[0].LongestStreak != 3 || !got[0].CompletedToday {
		t.Errorf("Read = %+v", got[0])
	}
	if got[1].CurrentStreak != 1 || !got[1].Week[0] || got[1].Week[1] {
		t.Errorf("No sugar = %+v", got[1])
	}
}

func TestHabitLog(t *testing.T) {
	out, err := HabitLog(recordWithHabits(), "2024-05-10", 3)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[0], "2024-05-08 .. 2024-05-10") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "xxx") || !strings.HasSuffix(lines[2], "..x") {
		t.Errorf("rows = %q", lines[1:])
	}
	if _, err := HabitLog(recordWithHabits(), "2024-05-10", 0); err == nil {
		t.Error("expected error for zero days")
	}
}

func TestDailyIntent(t *testing.T) {
	a := DailyIntent("2024-05-10")
	if a != DailyIntent("2024-05-10") {
		t.Error("intent not stable for a day")
	}
	if a == DailyIntent("2024-05-11") {
		t.Error("consecutive days share an intent")
	}
	if DailyIntent("1969-12-30") == "" {
		t.Error("pre-epoch day has no intent")
	}
}
