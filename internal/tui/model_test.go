package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/breakfree/internal/constants"
)

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestClampMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, constants.DefaultFocusMinutes},
		{1, constants.MinFocusMinutes},
		{-10, constants.MinFocusMinutes},
		{27, 25},
		{45, 45},
		{500, constants.MaxFocusMinutes},
	}
	for _, tt := range tests {
		if got := ClampMinutes(tt.in); got != tt.want {
			t.Errorf("ClampMinutes(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAdjustMinutesWithinBounds(t *testing.T) {
	m := NewModel(Options{Minutes: constants.MaxFocusMinutes})
	m = press(t, m, "up", "+")
	if m.Minutes() != constants.MaxFocusMinutes {
		t.Errorf("minutes = %d, want capped at %d", m.Minutes(), constants.MaxFocusMinutes)
	}

	m = NewModel(Options{Minutes: 10})
	m = press(t, m, "down", "down", "-")
	if m.Minutes() != constants.MinFocusMinutes {
		t.Errorf("minutes = %d, want floored at %d", m.Minutes(), constants.MinFocusMinutes)
	}

	m = press(t, m, "up")
	if m.Minutes() != constants.MinFocusMinutes+constants.FocusStepMinutes {
		t.Errorf("minutes = %d after one step up", m.Minutes())
	}
}

func TestGoalSelectionCycles(t *testing.T) {
	m := NewModel(Options{Goals: []string{"Read", "Walk"}})
	if m.Goal() != "" {
		t.Fatalf("default goal = %q, want none", m.Goal())
	}
	m = press(t, m, "right")
	if m.Goal() != "Read" {
		t.Errorf("goal = %q, want Read", m.Goal())
	}
	m = press(t, m, "right", "right")
	if m.Goal() != "" {
		t.Errorf("goal should wrap to none, got %q", m.Goal())
	}
	m = press(t, m, "left")
	if m.Goal() != "Walk" {
		t.Errorf("goal = %q, want Walk", m.Goal())
	}

	preselected := NewModel(Options{Goals: []string{"Read", "Walk"}, Goal: "Walk"})
	if preselected.Goal() != "Walk" {
		t.Errorf("preselected goal = %q, want Walk", preselected.Goal())
	}
}

func TestSessionRunsToCompletion(t *testing.T) {
	quote := constants.Quote{Text: "Keep going.", Author: "Someone"}
	m := NewModel(Options{Minutes: 5, PickQuote: func() constants.Quote { return quote }})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, want running", m.Phase())
	}
	if cmd == nil {
		t.Error("starting a session should schedule the first tick")
	}
	if !strings.Contains(m.View(), "05:00") {
		t.Errorf("running view missing clock:\n%s", m.View())
	}

	// A timeout from another timer is ignored.
	next, _ = m.Update(timer.TimeoutMsg{ID: m.timer.ID() + 1})
	m = next.(Model)
	if m.Phase() != PhaseRunning {
		t.Fatal("foreign timeout ended the session")
	}

	next, _ = m.Update(timer.TimeoutMsg{ID: m.timer.ID()})
	m = next.(Model)
	if m.Phase() != PhaseDone {
		t.Fatalf("phase = %v, want done", m.Phase())
	}
	if m.Completed() != 1 {
		t.Errorf("Completed() = %d, want 1", m.Completed())
	}
	if view := m.View(); !strings.Contains(view, "Keep going.") || !strings.Contains(view, "Someone") {
		t.Errorf("done view missing quote:\n%s", view)
	}

	m = press(t, m, "enter")
	if m.Phase() != PhaseSetup {
		t.Errorf("phase = %v, want setup after enter", m.Phase())
	}
}

func TestResetReturnsToSetup(t *testing.T) {
	m := press(t, NewModel(Options{}), "enter", "r")
	if m.Phase() != PhaseSetup {
		t.Errorf("phase = %v, want setup", m.Phase())
	}
	if m.Completed() != 0 {
		t.Errorf("reset session counted as completed")
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not produce tea.QuitMsg")
	}
}

func TestPercent(t *testing.T) {
	m := press(t, NewModel(Options{Minutes: 10}), "enter")
	if got := m.percent(); got != 0 {
		t.Errorf("percent at start = %v, want 0", got)
	}
	m.timer.Timeout = 5 * time.Minute
	if got := m.percent(); got != 0.5 {
		t.Errorf("percent halfway = %v, want 0.5", got)
	}
}

func TestFormatClock(t *testing.T) {
	if got := formatClock(25 * time.Minute); got != "25:00" {
		t.Errorf("formatClock(25m) = %q", got)
	}
	if got := formatClock(61*time.Second + 400*time.Millisecond); got != "01:01" {
		t.Errorf("formatClock(61.4s) = %q", got)
	}
}
