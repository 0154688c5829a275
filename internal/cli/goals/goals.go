package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/tracker"
)

type GoalsCmd struct {
	List      GoalListCmd      `cmd:"" help:"Show today's goals." default:"1"`
	Complete  GoalCompleteCmd  `cmd:"" help:"Complete a goal for today."`
	Add       GoalAddCmd       `cmd:"" help:"Add a goal from a template or a custom one."`
	Edit      GoalEditCmd      `cmd:"" help:"Edit a goal."`
	Remove    GoalRemoveCmd    `cmd:"" help:"Remove a goal."`
	Templates GoalTemplatesCmd `cmd:"" help:"List goal templates not yet added."`
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	rec := s.Record()

	ctx.Println(cli.TitleStyle.Render("Today's Goals"))
	ctx.Println(cli.QuoteStyle.Render(tracker.DailyIntent(s.Today())))
	ctx.Println()

	if len(rec.Goals) == 0 {
		ctx.Println("No goals. Add one with 'breakfree goals add'.")
		return nil
	}

	done, total := tracker.GoalProgress(rec)
	ctx.Printf("%s %d/%d\n\n", cli.ProgressBar(done, total, 20), done, total)
	for _, g := range rec.Goals {
		ctx.Printf("  %s %-40s %s %s\n",
			cli.Checkbox(rec.IsGoalCompleted(g.ID)),
			g.Text,
			cli.AccentStyle.Render(fmt.Sprintf("+%d", g.Points)),
			cli.SubtleStyle.Render(fmt.Sprintf("%s · %s", g.Category, g.ID)),
		)
	}
	if done == total {
		ctx.Printf("\n%s All goals complete. Streak of perfect days: %d\n", cli.OKMark, rec.ConsecutiveGoalDays)
	}
	return nil
}

type GoalCompleteCmd struct {
	ID           string `arg:"" help:"Goal id."`
	NoMotivation bool   `help:"Skip the motivation message."`
}

func (c *GoalCompleteCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	changed, err := s.CompleteGoal(c.ID)
	if err != nil {
		return err
	}
	rec := s.Record()
	g := rec.Goals[rec.FindGoal(c.ID)]
	if !changed {
		ctx.Printf("Already completed today: %s\n", g.Text)
		return nil
	}

	ctx.Printf("%s %s %s (total %d)\n", cli.OKMark, g.Text,
		cli.AccentStyle.Render(fmt.Sprintf("+%d points", g.Points)), rec.BreakPoints)
	if !c.NoMotivation {
		ctx.Println(cli.QuoteStyle.Render(ctx.Services().GoalMotivation(context.Background(), g.Text)))
	}
	return nil
}

type GoalAddCmd struct {
	Template string `arg:"" optional:"" help:"Template id (see 'goals templates')."`
	Text     string `help:"Text of a custom goal."`
	Points   int    `help:"Points for a custom goal." default:"10"`
	Category string `help:"Category of a custom goal (Physical, Mental, Emotional, Digital Detox, Social)." default:"Mental"`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	var g models.Goal
	switch {
	case c.Template != "" && c.Text != "":
		return errors.New("give either a template id or --text, not both")
	case c.Template != "":
		found := false
		for _, t := range models.GoalTemplates() {
			if t.ID == c.Template {
				g, found = t, true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown goal template %q", c.Template)
		}
	case c.Text != "":
		g = models.Goal{
			Text:     c.Text,
			Points:   c.Points,
			Category: parseCategory(c.Category),
		}
	default:
		return errors.New("give a template id or --text")
	}

	before := len(s.Record().Goals)
	if _, err := s.AddGoal(g); err != nil {
		return err
	}
	added := s.Record().Goals[before]
	ctx.Printf("%s Added goal: %s (%s)\n", cli.OKMark, added.Text, added.ID)
	return nil
}

type GoalEditCmd struct {
	ID       string  `arg:"" help:"Goal id."`
	Text     *string `help:"New text."`
	Points   *int    `help:"New points."`
	Category *string `help:"New category."`
}

func (c *GoalEditCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	rec := s.Record()
	i := rec.FindGoal(c.ID)
	if i < 0 {
		return fmt.Errorf("goal %q not found", c.ID)
	}

	g := rec.Goals[i]
	if c.Text != nil {
		g.Text = *c.Text
	}
	if c.Points != nil {
		g.Points = *c.Points
	}
	if c.Category != nil {
		g.Category = parseCategory(*c.Category)
	}

	changed, err := s.EditGoal(g)
	if err != nil {
		return err
	}
	if !changed {
		ctx.Println("No changes.")
		return nil
	}
	ctx.Printf("%s Updated goal: %s\n", cli.OKMark, g.ID)
	return nil
}

type GoalRemoveCmd struct {
	ID string `arg:"" help:"Goal id."`
}

func (c *GoalRemoveCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if _, err := s.RemoveGoal(c.ID); err != nil {
		return err
	}
	ctx.Printf("%s Removed goal: %s\n", cli.OKMark, c.ID)
	return nil
}

type GoalTemplatesCmd struct{}

func (c *GoalTemplatesCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	templates := tracker.AvailableTemplates(s.Record())
	if len(templates) == 0 {
		ctx.Println("All templates are already in your goals.")
		return nil
	}
	for _, t := range templates {
		ctx.Printf("  %-16s %-32s +%d  %s\n", t.ID, t.Text, t.Points, cli.SubtleStyle.Render(string(t.Category)))
	}
	return nil
}

// parseCategory matches a category name case-insensitively. Unknown names are passed
// through so validation can reject them.
func parseCategory(name string) models.GoalCategory {
	for _, c := range models.GoalCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(name)) {
			return c
		}
	}
	return models.GoalCategory(name)
}
