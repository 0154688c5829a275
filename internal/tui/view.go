package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.phase {
	case PhaseSetup:
		body = m.setupView()
	case PhaseRunning:
		body = m.runningView()
	case PhaseDone:
		body = m.doneView()
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Focus"),
		"",
		body,
		"",
		m.help.View(m),
	))
}

func (m Model) setupView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Duration: %s", clockStyle.Render(fmt.Sprintf("%d min", m.minutes))),
		"",
		fmt.Sprintf("Goal: %s", goalStyle.Render(m.goals[m.goalIdx])),
		subtleStyle.Render(fmt.Sprintf("Sessions completed: %d", m.completed)),
	)
}

func (m Model) runningView() string {
	state := "running"
	if !m.timer.Running() {
		state = "paused"
	}
	lines := []string{
		clockStyle.Render(formatClock(m.timer.Timeout)) + " " + subtleStyle.Render(state),
		"",
		m.progress.ViewAs(m.percent()),
	}
	if goal := m.Goal(); goal != "" {
		lines = append(lines, "", "Focusing on: "+goalStyle.Render(goal))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) doneView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Session complete. %d minutes of focus.", m.minutes),
		"",
		quoteStyle.Render(fmt.Sprintf("%q", m.quote.Text)),
		subtleStyle.Render("  - "+m.quote.Author),
		"",
		subtleStyle.Render("Press enter for another session."),
	)
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
