package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/breakfree/internal/constants"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(msg.Width-8, 60))
		return m, nil

	case timer.TickMsg, timer.StartStopMsg:
		if m.phase != PhaseRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		if m.phase != PhaseRunning || msg.ID != m.timer.ID() {
			return m, nil
		}
		m.phase = PhaseDone
		m.completed++
		m.quote = m.pickQuote()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		switch m.phase {
		case PhaseSetup:
			return m.updateSetup(msg)
		case PhaseRunning:
			return m.updateRunning(msg)
		case PhaseDone:
			if key.Matches(msg, m.keys.Enter) {
				m.phase = PhaseSetup
			}
		}
	}
	return m, nil
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.minutes = min(m.minutes+constants.FocusStepMinutes, constants.MaxFocusMinutes)
	case key.Matches(msg, m.keys.Down):
		m.minutes = max(m.minutes-constants.FocusStepMinutes, constants.MinFocusMinutes)
	case key.Matches(msg, m.keys.Left):
		m.goalIdx = (m.goalIdx - 1 + len(m.goals)) % len(m.goals)
	case key.Matches(msg, m.keys.Right):
		m.goalIdx = (m.goalIdx + 1) % len(m.goals)
	case key.Matches(msg, m.keys.Enter):
		m.total = time.Duration(m.minutes) * time.Minute
		m.timer = timer.NewWithInterval(m.total, time.Second)
		m.phase = PhaseRunning
		return m, m.timer.Init()
	}
	return m, nil
}

func (m Model) updateRunning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		return m, m.timer.Toggle()
	case key.Matches(msg, m.keys.Reset):
		m.phase = PhaseSetup
		return m, m.timer.Stop()
	}
	return m, nil
}

// percent is the elapsed share of the running session.
func (m Model) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	p := 1 - float64(m.timer.Timeout)/float64(m.total)
	return max(0, min(p, 1))
}
