package profile

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/tracker"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	rec := s.Record()
	done, total := tracker.GoalProgress(rec)

	rows := []string{
		cli.TitleStyle.Render(rec.LevelName),
		cli.SubtleStyle.Render(fmt.Sprintf("Level %d", rec.Level)),
		"",
		fmt.Sprintf("Break points    %s", cli.AccentStyle.Render(fmt.Sprintf("%d", rec.BreakPoints))),
		fmt.Sprintf("Login streak    %s", cli.Plural(rec.Streak, "day", "days")),
		fmt.Sprintf("Perfect days    %s", cli.Plural(rec.ConsecutiveGoalDays, "day", "days")),
		fmt.Sprintf("Goals today     %d/%d", done, total),
		fmt.Sprintf("Habits          %d", len(rec.Habits)),
		fmt.Sprintf("Journal         %s", cli.Plural(len(rec.Journal), "entry", "entries")),
	}
	ctx.Println(cli.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	switch {
	case s.Created:
		ctx.Println("Welcome! Your journey starts today.")
	case s.RolledOver:
		ctx.Println("A new day. Your goals have been reset.")
	}
	return nil
}

type LogoutCmd struct {
	Yes bool `short:"y" help:"Skip confirmation."`
}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Log out and erase all progress on this device?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Logout cancelled.")
			return nil
		}
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := s.Logout(); err != nil {
		return err
	}
	ctx.Printf("%s Logged out. All progress on this device was erased.\n", cli.OKMark)
	return nil
}
