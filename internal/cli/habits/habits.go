package habits

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/breakfree/internal/cli"
	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/generation"
	"github.com/julianstephens/breakfree/internal/models"
	"github.com/julianstephens/breakfree/internal/tracker"
)

type HabitsCmd struct {
	List     HabitListCmd     `cmd:"" help:"List habits with streaks and the last seven days." default:"1"`
	Week     HabitWeekCmd     `cmd:"" help:"Show weekly habit progress."`
	Add      HabitAddCmd      `cmd:"" help:"Add a habit."`
	Edit     HabitEditCmd     `cmd:"" help:"Rename or retype a habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit and its history."`
	Complete HabitCompleteCmd `cmd:"" help:"Mark a habit done for today."`
	Log      HabitLogCmd      `cmd:"" help:"Show habit log (ASCII history)."`
	Suggest  HabitSuggestCmd  `cmd:"" help:"Ask the companion for habit suggestions."`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	summaries, err := tracker.Summaries(s.Record(), s.Today())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		ctx.Println("No habits yet. Add one with 'breakfree habits add <name>'.")
		return nil
	}

	ctx.Println(cli.TitleStyle.Render("Habits"))
	for _, sum := range summaries {
		var week strings.Builder
		for _, done := range sum.Week {
			if done {
				week.WriteString(cli.DoneStyle.Render("■"))
			} else {
				week.WriteString(cli.SubtleStyle.Render("□"))
			}
		}
		ctx.Printf("  %s %-30s %s  streak %s (best %d)  %s\n",
			cli.Checkbox(sum.CompletedToday),
			sum.Habit.Name,
			week.String(),
			cli.AccentStyle.Render(fmt.Sprintf("%d", sum.CurrentStreak)),
			sum.LongestStreak,
			cli.SubtleStyle.Render(fmt.Sprintf("%s · %s", sum.Habit.Type, sum.Habit.ID)),
		)
	}
	return nil
}

type HabitWeekCmd struct{}

func (c *HabitWeekCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	week, err := tracker.WeeklyHabitProgress(s.Record(), s.Today())
	if err != nil {
		return err
	}
	ctx.Println(cli.TitleStyle.Render("Weekly Progress"))
	for _, d := range week {
		ctx.Printf("  %s %s %s %d/%d\n", d.Weekday, d.Day, cli.ProgressBar(d.Completed, d.Total, 14), d.Completed, d.Total)
	}
	return nil
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
	Type string `help:"Habit type: build or break." default:"build" enum:"build,break"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	h, err := s.AddHabit(c.Name, models.HabitType(c.Type))
	if err != nil {
		return err
	}
	ctx.Printf("%s Added habit: %s (%s)\n", cli.OKMark, h.Name, h.ID)
	return nil
}

type HabitEditCmd struct {
	Habit string  `arg:"" help:"Habit id or name."`
	Name  *string `help:"New name."`
	Type  *string `help:"New type: build or break."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	h, err := resolveHabit(s.Record(), c.Habit)
	if err != nil {
		return err
	}
	name, typ := h.Name, h.Type
	if c.Name != nil {
		name = *c.Name
	}
	if c.Type != nil {
		typ = models.HabitType(*c.Type)
	}
	changed, err := s.EditHabit(h.ID, name, typ)
	if err != nil {
		return err
	}
	if !changed {
		ctx.Println("No changes.")
		return nil
	}
	ctx.Printf("%s Updated habit: %s\n", cli.OKMark, strings.TrimSpace(name))
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `short:"y" help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	h, err := resolveHabit(s.Record(), c.Habit)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %q and its %s?", h.Name, cli.Plural(len(h.Completions), "completion", "completions")))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if _, err := s.RemoveHabit(h.ID); err != nil {
		return err
	}
	ctx.Printf("%s Deleted habit: %s\n", cli.OKMark, h.Name)
	return nil
}

type HabitCompleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitCompleteCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	h, err := resolveHabit(s.Record(), c.Habit)
	if err != nil {
		return err
	}
	changed, err := s.CompleteHabit(h.ID)
	if err != nil {
		return err
	}
	if !changed {
		ctx.Printf("Already done today: %s\n", h.Name)
		return nil
	}
	sums, err := tracker.Summaries(s.Record(), s.Today())
	if err != nil {
		return err
	}
	for _, sum := range sums {
		if sum.Habit.ID == h.ID {
			ctx.Printf("%s %s done. Streak: %s\n", cli.OKMark, h.Name, cli.Plural(sum.CurrentStreak, "day", "days"))
		}
	}
	return nil
}

type HabitLogCmd struct {
	Days int `help:"Number of days to show." default:"14"`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if len(s.Record().Habits) == 0 {
		ctx.Println("No habits yet.")
		return nil
	}
	out, err := tracker.HabitLog(s.Record(), s.Today(), c.Days)
	if err != nil {
		return err
	}
	ctx.Printf("%s", out)
	return nil
}

type HabitSuggestCmd struct{}

func (c *HabitSuggestCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	conv := ctx.Services().NewConversation()
	reply, _ := conv.Send(context.Background(), generation.HabitSuggestionPrompt(s.Record().Habits))
	ctx.Println(cli.BoxStyle.Render(reply))
	return nil
}

// resolveHabit finds a habit by id, then by case-insensitive name.
func resolveHabit(rec models.UserRecord, ref string) (models.Habit, error) {
	if i := rec.FindHabit(ref); i >= 0 {
		return rec.Habits[i], nil
	}
	var matches []models.Habit
	for _, h := range rec.Habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", apperrors.ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%d habits are named %q; use the id", len(matches), ref)
	}
}
