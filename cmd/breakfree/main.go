package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/cli/backups"
	"github.com/julianstephens/breakfree/internal/cli/chat"
	"github.com/julianstephens/breakfree/internal/cli/focus"
	"github.com/julianstephens/breakfree/internal/cli/goals"
	"github.com/julianstephens/breakfree/internal/cli/habits"
	"github.com/julianstephens/breakfree/internal/cli/profile"
	"github.com/julianstephens/breakfree/internal/cli/settings"
	"github.com/julianstephens/breakfree/internal/cli/system"
	"github.com/julianstephens/breakfree/internal/cli/wisdom"
	"github.com/julianstephens/breakfree/internal/config"
	"github.com/julianstephens/breakfree/internal/constants"
	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/generation"
	"github.com/julianstephens/breakfree/internal/logger"
	"github.com/julianstephens/breakfree/internal/reconciler"
	"github.com/julianstephens/breakfree/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"string" default:"${config_path}"`
	Store    string `help:"Storage location: a SQLite or JSON file, badger://dir, a PostgreSQL connection string without credentials, or 'postgres' to read it from the keyring."`
	Timezone string `help:"IANA time zone used to decide when a day starts."`
	LogDebug bool   `name:"debug" help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" aliases:"login" help:"Initialize storage and log in for today."`
	Status  profile.StatusCmd `cmd:"" help:"Show level, points and streaks." default:"1"`
	Goals   goals.GoalsCmd    `cmd:"" help:"Manage today's goals."`
	Habits  habits.HabitsCmd  `cmd:"" help:"Manage habits and habit tracking."`
	Wisdom  wisdom.WisdomCmd  `cmd:"" help:"Receive wisdom from a stream."`
	Journal wisdom.JournalCmd `cmd:"" help:"Show reflection journal entries."`
	Chat    chat.ChatCmd      `cmd:"" help:"Talk with the companion."`
	Focus   focus.FocusCmd    `cmd:"" help:"Run a focus timer."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage record backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage secrets in the OS keyring."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Logout   profile.LogoutCmd    `cmd:"" help:"Delete all saved progress."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Break free from bad habits: daily goals, habit streaks and reflection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath, err := utils.ExpandHome(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg.ApplyEnv(os.Getenv)
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.LogDebug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	store, err := cli.OpenStore(cfg.Store, os.Getenv)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := cli.NewContext(cfg, configPath, store, reconciler.Options{
		Location:         loc,
		GoalStreakPolicy: cfg.GoalStreakOnMiss,
	}, newService(cfg))
	err = kctx.Run(appCtx)
	appCtx.Close()
	apperrors.Fatal(err)
}

// newService returns an offline service when no API key is configured.
func newService(cfg *config.Config) *generation.Service {
	key := cli.ResolveAPIKey(os.Getenv)
	if key == "" {
		return generation.NewService(nil, 0)
	}
	gen, err := generation.NewOpenAIGenerator(generation.OpenAIConfig{
		APIKey:  key,
		BaseURL: cfg.Generator.BaseURL,
		Model:   cfg.Generator.Model,
		Timeout: cfg.Generator.Timeout,
	})
	if err != nil {
		logger.Warn("Text generation disabled", "error", err)
		return generation.NewService(nil, 0)
	}
	return generation.NewService(generation.RateLimited(gen, cfg.Generator.RequestsPerMinute), cfg.Generator.Timeout)
}
