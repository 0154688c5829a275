package focus

import (
	"fmt"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/tui"
)

// runProgram is replaced in tests.
var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

type FocusCmd struct {
	Minutes int    `short:"m" help:"Session length in minutes (5-90, steps of 5)." default:"25"`
	Goal    string `short:"g" help:"Id of an open goal to focus on."`
}

func (c *FocusCmd) Validate() error {
	if c.Minutes < constants.MinFocusMinutes || c.Minutes > constants.MaxFocusMinutes {
		return fmt.Errorf("minutes must be between %d and %d", constants.MinFocusMinutes, constants.MaxFocusMinutes)
	}
	if c.Minutes%constants.FocusStepMinutes != 0 {
		return fmt.Errorf("minutes must be a multiple of %d", constants.FocusStepMinutes)
	}
	return nil
}

func (c *FocusCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	rec := s.Record()

	// open goals, keyed by text for the picker
	var texts []string
	ids := make(map[string]string)
	preselect := ""
	for _, g := range rec.Goals {
		if rec.IsGoalCompleted(g.ID) {
			continue
		}
		texts = append(texts, g.Text)
		ids[g.Text] = g.ID
		if g.ID == c.Goal {
			preselect = g.Text
		}
	}
	if c.Goal != "" && preselect == "" {
		return fmt.Errorf("no open goal with id %q", c.Goal)
	}

	final, err := runProgram(tui.NewModel(tui.Options{
		Minutes:   c.Minutes,
		Goals:     texts,
		Goal:      preselect,
		PickQuote: randomQuote,
	}))
	if err != nil {
		return fmt.Errorf("focus timer failed: %w", err)
	}

	m, ok := final.(tui.Model)
	if !ok || m.Completed() == 0 {
		ctx.Println("Focus session ended early.")
		return nil
	}
	ctx.Printf("%s %s of focus complete.\n", cli.OKMark, cli.Plural(m.Completed(), "session", "sessions"))

	goal := m.Goal()
	if goal == "" {
		return nil
	}
	yes, err := ctx.Confirm(fmt.Sprintf("Mark %q complete?", goal))
	if err != nil || !yes {
		return err
	}
	if _, err := s.CompleteGoal(ids[goal]); err != nil {
		return err
	}
	ctx.Printf("%s Completed: %s\n", cli.OKMark, goal)
	return nil
}

func randomQuote() constants.Quote {
	return constants.Quotes[rand.Intn(len(constants.Quotes))]
}
