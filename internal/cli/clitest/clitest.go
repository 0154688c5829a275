// Package clitest builds command contexts backed by an in-memory store.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/breakfree/internal/backup"
	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/config"
	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/generation"
	"github.com/julianstephens/breakfree/internal/reconciler"
	"github.com/julianstephens/breakfree/internal/storage"
)

type Harness struct {
	Ctx   *cli.Context
	Store *storage.MemoryStore
	Out   *bytes.Buffer
	Clock time.Time

	// Answers are consumed by Confirm, Inputs by Prompt and Choices by Choose, in order.
	Answers []bool
	Inputs  []string
	Choices []string
}

// New returns a harness whose clock sits at noon UTC on day. gen may be nil for an
// offline generator.
func New(t *testing.T, day string, gen generation.Generator) *Harness {
	t.Helper()
	d, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		t.Fatalf("bad test day %q: %v", day, err)
	}
	dir := t.TempDir()
	h := &Harness{
		Store: storage.NewMemoryStore(),
		Out:   &bytes.Buffer{},
		Clock: d.Add(12 * time.Hour),
	}
	h.Ctx = &cli.Context{
		Config:     config.Default(),
		ConfigPath: filepath.Join(dir, "config.yaml"),
		Store:      h.Store,
		Options: reconciler.Options{
			Now:      func() time.Time { return h.Clock },
			Location: time.UTC,
		},
		Generator: generation.NewService(gen, time.Second),
		Backups:   backup.NewManager(h.Store, filepath.Join(dir, constants.BackupDirName)),
		Out:       h.Out,
		Confirm: func(string) (bool, error) {
			if len(h.Answers) == 0 {
				return false, errors.New("unexpected confirmation")
			}
			a := h.Answers[0]
			h.Answers = h.Answers[1:]
			return a, nil
		},
		Prompt: func(string) (string, error) {
			if len(h.Inputs) == 0 {
				return "", errors.New("unexpected prompt")
			}
			s := h.Inputs[0]
			h.Inputs = h.Inputs[1:]
			return s, nil
		},
		Choose: func(string, []string) (string, error) {
			if len(h.Choices) == 0 {
				return "", errors.New("unexpected choice")
			}
			s := h.Choices[0]
			h.Choices = h.Choices[1:]
			return s, nil
		},
	}
	return h
}

// Reply returns a generator answering every request with text.
func Reply(text string) generation.Generator {
	return generation.GeneratorFunc(func(ctx context.Context, req generation.Request) (string, error) {
		return text, nil
	})
}
