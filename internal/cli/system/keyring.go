package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/keyring"
	"github.com/julianstephens/breakfree/internal/storage/postgres"
)

const (
	targetDatabase = "database"
	targetAPIKey   = "api-key"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show a stored secret (masked)."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check the OS keyring." default:"1"`
}

// KeyringSetCmd stores the PostgreSQL connection string or the generator API key.
type KeyringSetCmd struct {
	Target string `arg:"" enum:"database,api-key" help:"What to store: database or api-key."`
	Value  string `arg:"" optional:"" help:"The secret. Prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	value := strings.TrimSpace(cmd.Value)
	if value == "" {
		v, err := ctx.Prompt("Enter " + cmd.Target)
		if err != nil {
			return err
		}
		value = strings.TrimSpace(v)
	}

	switch cmd.Target {
	case targetDatabase:
		if !postgres.IsConnString(value) && !strings.Contains(value, "host=") {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := postgres.ValidateConnString(value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			ctx.Printf("%s  Warning: Connection string contains embedded credentials.\n", cli.WarnMark)
			ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
		if err := keyring.SetConnectionString(value); err != nil {
			return fmt.Errorf("failed to store connection string in keyring: %w", err)
		}
		ctx.Printf("%s Connection string stored in OS keyring\n", cli.OKMark)
		ctx.Println("  Use '--store postgres' to connect with it")
	case targetAPIKey:
		if err := keyring.SetAPIKey(value); err != nil {
			return fmt.Errorf("failed to store API key in keyring: %w", err)
		}
		ctx.Printf("%s API key stored in OS keyring\n", cli.OKMark)
	}
	return nil
}

type KeyringGetCmd struct {
	Target string `arg:"" enum:"database,api-key" help:"What to show: database or api-key."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	get, mask := keyring.GetConnectionString, maskPassword
	if cmd.Target == targetAPIKey {
		get, mask = keyring.GetAPIKey, maskKey
	}
	secret, err := get()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'breakfree keyring set %s' to store one", cmd.Target, cmd.Target)
		}
		return fmt.Errorf("failed to retrieve %s from keyring: %w", cmd.Target, err)
	}
	ctx.Println(mask(secret))
	return nil
}

type KeyringDeleteCmd struct {
	Target string `arg:"" enum:"database,api-key" help:"What to remove: database or api-key."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	del := keyring.DeleteConnectionString
	if cmd.Target == targetAPIKey {
		del = keyring.DeleteAPIKey
	}
	if err := del(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", cmd.Target)
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", cmd.Target, err)
	}
	ctx.Printf("%s %s deleted from OS keyring\n", cli.OKMark, cmd.Target)
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Printf("%s OS keyring is not available on this system\n", cli.FailMark)
		return errors.New("keyring unavailable")
	}
	ctx.Printf("%s OS keyring is available\n", cli.OKMark)
	for _, t := range []struct {
		name string
		get  func() (string, error)
	}{
		{targetDatabase, keyring.GetConnectionString},
		{targetAPIKey, keyring.GetAPIKey},
	} {
		if _, err := t.get(); err == nil {
			ctx.Printf("%s %s is stored\n", cli.OKMark, t.name)
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("ℹ No %s stored\n", t.name)
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			// the last @ separates user info from host
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		masked := make([]string, 0, len(parts))
		for _, part := range parts {
			if strings.HasPrefix(part, "password=") {
				masked = append(masked, "password=****")
			} else {
				masked = append(masked, part)
			}
		}
		return strings.Join(masked, " ")
	}
	return connStr
}

// maskKey keeps the last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
