package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/config"
)

type SettingsCmd struct {
	List SettingsListCmd `cmd:"" help:"List current settings." default:"1"`
	Get  SettingsGetCmd  `cmd:"" help:"Show one setting."`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting and save the config file."`
}

type SettingsListCmd struct{}

func (c *SettingsListCmd) Run(ctx *cli.Context) error {
	ctx.Println("Current Settings:")
	for _, key := range config.Keys() {
		v, err := ctx.Config.Get(key)
		if err != nil {
			return err
		}
		ctx.Printf("  %-30s %s\n", key, v)
	}
	ctx.Printf("\nConfig file: %s\n", ctx.ConfigPath)
	return nil
}

type SettingsGetCmd struct {
	Key string `arg:"" help:"Setting key."`
}

func (c *SettingsGetCmd) Run(ctx *cli.Context) error {
	v, err := ctx.Config.Get(c.Key)
	if err != nil {
		return fmt.Errorf("%w (known: %s)", err, strings.Join(config.Keys(), ", "))
	}
	ctx.Println(v)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Config.Set(c.Key, c.Value); err != nil {
		return err
	}
	if err := ctx.Config.Save(ctx.ConfigPath); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Printf("%s %s = %s\n", cli.OKMark, c.Key, c.Value)
	return nil
}
