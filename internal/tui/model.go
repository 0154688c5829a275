// Package tui implements the focus timer.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/breakfree/internal/constants"
)

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRunning
	PhaseDone
)

const noGoal = "No specific goal"

// Options configure a focus session.
type Options struct {
	Minutes int
	// Goals are offered as the optional focus of the session.
	Goals []string
	// Goal preselects one of Goals.
	Goal string
	// PickQuote chooses the quote shown on completion.
	PickQuote func() constants.Quote
}

type Model struct {
	keys      KeyMap
	help      help.Model
	phase     Phase
	minutes   int
	goals     []string
	goalIdx   int
	timer     timer.Model
	progress  progress.Model
	total     time.Duration
	quote     constants.Quote
	pickQuote func() constants.Quote
	completed int
	quitting  bool
}

func NewModel(opts Options) Model {
	m := Model{
		keys:      DefaultKeyMap(),
		help:      help.New(),
		phase:     PhaseSetup,
		minutes:   ClampMinutes(opts.Minutes),
		goals:     append([]string{noGoal}, opts.Goals...),
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		pickQuote: opts.PickQuote,
	}
	if m.pickQuote == nil {
		m.pickQuote = func() constants.Quote { return constants.Quotes[0] }
	}
	for i, g := range m.goals {
		if opts.Goal != "" && g == opts.Goal {
			m.goalIdx = i
		}
	}
	return m
}

// ClampMinutes snaps minutes to the allowed range and step. Zero means the default.
func ClampMinutes(minutes int) int {
	if minutes == 0 {
		return constants.DefaultFocusMinutes
	}
	minutes = (minutes / constants.FocusStepMinutes) * constants.FocusStepMinutes
	return max(constants.MinFocusMinutes, min(minutes, constants.MaxFocusMinutes))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Phase() Phase { return m.phase }

func (m Model) Minutes() int { return m.minutes }

// Goal returns the selected focus goal, or "" for none.
func (m Model) Goal() string {
	if m.goalIdx == 0 {
		return ""
	}
	return m.goals[m.goalIdx]
}

// Completed is the number of sessions that ran to the end.
func (m Model) Completed() int { return m.completed }

func (m Model) ShortHelp() []key.Binding {
	switch m.phase {
	case PhaseSetup:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter, m.keys.Quit}
	case PhaseRunning:
		return []key.Binding{m.keys.Pause, m.keys.Reset, m.keys.Quit}
	default:
		return []key.Binding{m.keys.Enter, m.keys.Quit}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// TimerID identifies the running countdown in timer messages.
func (m Model) TimerID() int { return m.timer.ID() }
