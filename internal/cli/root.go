package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/breakfree/internal/backup"
	"github.com/julianstephens/breakfree/internal/config"
	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/generation"
	"github.com/julianstephens/breakfree/internal/logger"
	"github.com/julianstephens/breakfree/internal/reconciler"
	"github.com/julianstephens/breakfree/internal/storage"
	"github.com/julianstephens/breakfree/internal/tracker"
)

// Context is handed to every command's Run method.
type Context struct {
	Config     *config.Config
	ConfigPath string
	Store      storage.Provider
	Options    reconciler.Options
	Generator  *generation.Service
	Backups    *backup.Manager
	Out        io.Writer

	// Confirm, Prompt and Choose ask the user interactively. Tests replace them.
	Confirm func(title string) (bool, error)
	Prompt  func(title string) (string, error)
	Choose  func(title string, options []string) (string, error)

	session *tracker.Session
}

// NewContext fills in interactive prompts and output for a terminal session.
func NewContext(cfg *config.Config, configPath string, store storage.Provider, opts reconciler.Options, gen *generation.Service) *Context {
	return &Context{
		Config:     cfg,
		ConfigPath: configPath,
		Store:      store,
		Options:    opts,
		Generator:  gen,
		Backups:    backup.NewManager(store, filepath.Join(filepath.Dir(configPath), constants.BackupDirName)),
		Out:        os.Stdout,
		Confirm:    confirm,
		Prompt:     prompt,
		Choose:     choose,
	}
}

// Session opens the tracker session on first use. A corrupt record is preserved as a
// backup and replaced by a fresh one.
func (c *Context) Session() (*tracker.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	var snap tracker.Snapshotter
	if c.Backups != nil {
		snap = c.Backups
	}
	s, err := tracker.Open(c.Store, c.Options, snap)
	if err != nil {
		return nil, err
	}
	if s.Recovered {
		c.Printf("%s Your saved data could not be read and was backed up. Starting fresh.\n", WarnMark)
	}
	c.session = s
	return s, nil
}

// Services returns the generation service, falling back to an offline one.
func (c *Context) Services() *generation.Service {
	if c.Generator == nil {
		c.Generator = generation.NewService(nil, 0)
	}
	return c.Generator
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.writer(), args...)
}

func (c *Context) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Now is the clock commands see.
func (c *Context) Now() time.Time {
	if c.Options.Now != nil {
		return c.Options.Now()
	}
	return time.Now()
}

// Close releases the store.
func (c *Context) Close() {
	if err := c.Store.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func prompt(title string) (string, error) {
	var s string
	err := huh.NewInput().
		Title(title).
		Value(&s).
		Run()
	return s, err
}

func choose(title string, options []string) (string, error) {
	var s string
	err := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&s).
		Run()
	return s, err
}
