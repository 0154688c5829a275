package system

import (
	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/tracker"
)

// InitCmd initializes storage and reconciles the record, creating one on first use.
type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	rec := s.Record()

	switch {
	case s.Created:
		ctx.Printf("%s Initialized breakfree storage at: %s\n", cli.OKMark, ctx.Store.GetConfigPath())
		ctx.Println("Welcome, Warrior. Start with 'breakfree goals'.")
	case s.RolledOver:
		ctx.Printf("Welcome back. Login streak: %s\n", cli.Plural(rec.Streak, "day", "days"))
	default:
		ctx.Printf("Already logged in today. Login streak: %s\n", cli.Plural(rec.Streak, "day", "days"))
	}
	ctx.Println(cli.QuoteStyle.Render(tracker.DailyIntent(s.Today())))
	return nil
}
