package wisdom

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/tracker"
)

const doneChoice = "Done"

type WisdomCmd struct {
	Streams []string `arg:"" optional:"" help:"Stream titles to read, in order. Without any, pick interactively."`
	List    bool     `help:"List the wisdom streams."`
}

func (c *WisdomCmd) Run(ctx *cli.Context) error {
	if c.List {
		for _, s := range constants.WisdomStreams {
			ctx.Printf("  %-20s %s\n", cli.AccentStyle.Render(s.Title), cli.SubtleStyle.Render(s.Description))
		}
		return nil
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}
	w := tracker.NewWisdomSession(ctx.Services())

	next := c.fromArgs()
	if len(c.Streams) == 0 {
		next = interactive(ctx)
	}
	for {
		stream, ok, err := next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		text, due := w.View(context.Background(), stream)
		ctx.Println(cli.TitleStyle.Render(stream))
		ctx.Println(cli.BoxStyle.Render(text))
		if due {
			if err := reflect(ctx, s, w); err != nil {
				return err
			}
		}
	}
}

func (c *WisdomCmd) fromArgs() func() (string, bool, error) {
	i := 0
	return func() (string, bool, error) {
		if i >= len(c.Streams) {
			return "", false, nil
		}
		title, err := streamTitle(c.Streams[i])
		i++
		return title, err == nil, err
	}
}

func interactive(ctx *cli.Context) func() (string, bool, error) {
	options := make([]string, 0, len(constants.WisdomStreams)+1)
	for _, s := range constants.WisdomStreams {
		options = append(options, s.Title)
	}
	options = append(options, doneChoice)
	return func() (string, bool, error) {
		choice, err := ctx.Choose("Choose a wisdom stream", options)
		if err != nil {
			return "", false, err
		}
		return choice, choice != doneChoice, nil
	}
}

// reflect asks the reflection question and journals a non-empty answer.
func reflect(ctx *cli.Context, s *tracker.Session, w *tracker.WisdomSession) error {
	r := w.Reflect(context.Background())
	ctx.Println()
	ctx.Println(cli.TitleStyle.Render("Time to Reflect"))
	ctx.Println(cli.QuoteStyle.Render(r.Question))

	response, err := ctx.Prompt(r.Question)
	if err != nil {
		return err
	}
	if strings.TrimSpace(response) == "" {
		ctx.Println("Reflection skipped.")
		return nil
	}
	if _, err := r.Save(s, response); err != nil {
		return err
	}
	ctx.Printf("%s Reflection saved to your journal.\n", cli.OKMark)
	return nil
}

func streamTitle(name string) (string, error) {
	for _, s := range constants.WisdomStreams {
		if strings.EqualFold(s.Title, strings.TrimSpace(name)) {
			return s.Title, nil
		}
	}
	return "", fmt.Errorf("unknown wisdom stream %q", name)
}

type JournalCmd struct {
	Limit int `help:"Show at most this many recent entries (0 for all)." default:"10"`
}

func (c *JournalCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	journal := s.Record().Journal
	if len(journal) == 0 {
		ctx.Println("Your journal is empty. Read a few wisdoms to get a reflection question.")
		return nil
	}
	start := 0
	if c.Limit > 0 && len(journal) > c.Limit {
		start = len(journal) - c.Limit
	}
	loc := ctx.Options.Location
	for _, e := range journal[start:] {
		date := e.Date
		if loc != nil {
			date = date.In(loc)
		}
		ctx.Println(cli.SubtleStyle.Render(date.Format("2006-01-02 15:04")))
		ctx.Println(cli.AccentStyle.Render(e.Question))
		ctx.Println(e.Response)
		ctx.Println()
	}
	return nil
}
