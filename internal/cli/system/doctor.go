package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/keyring"
	"github.com/julianstephens/breakfree/internal/reconciler"
	"github.com/julianstephens/breakfree/internal/storage"
)

// schemaVersioner is implemented by the SQL backed stores.
type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// warnOnly failures are reported but do not fail the command.
	warnOnly bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Configuration", run: checkConfig},
		{name: "Store reachable", run: checkStoreReachable},
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Record readable", run: checkRecord},
		{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
		{name: "Text generation", run: checkGenerator, warnOnly: true},
		{name: "OS keyring", run: checkKeyring, warnOnly: true},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	hasError := false
	storeOK := true
	for _, c := range checks {
		if !storeOK && (c.name == "Schema version" || c.name == "Record readable") {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("%s %s: OK\n", cli.OKMark, c.name)
		case c.warnOnly:
			ctx.Printf("%s %s: WARNING\n", cli.WarnMark, c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("%s %s: FAIL\n", cli.FailMark, c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Store reachable" {
				storeOK = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *cli.Context) error {
	if ctx.Config == nil {
		return errors.New("no configuration loaded")
	}
	return ctx.Config.Validate()
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to open store %s: %w", ctx.Store.GetConfigPath(), err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sv, ok := ctx.Store.(schemaVersioner)
	if !ok {
		// file and key-value stores have no schema
		return nil
	}
	current, latest, err := sv.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkRecord(ctx *cli.Context) error {
	blob, err := ctx.Store.Load()
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = reconciler.Decode(blob, ctx.Options.Location)
	return err
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Backups == nil {
		return errors.New("backups are not configured")
	}
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'breakfree backup create'")
	}
	return nil
}

func checkGenerator(ctx *cli.Context) error {
	if !ctx.Services().Available() {
		return errors.New("no API key configured; built-in fallback texts will be shown")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Options.Location != nil {
		ctx.Printf("   Days are evaluated in %s (today is %s)\n", ctx.Options.Location, now.In(ctx.Options.Location).Format("2006-01-02"))
	}
	return nil
}
