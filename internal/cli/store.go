package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/keyring"
	"github.com/julianstephens/breakfree/internal/storage"
	"github.com/julianstephens/breakfree/internal/storage/badger"
	"github.com/julianstephens/breakfree/internal/storage/postgres"
	"github.com/julianstephens/breakfree/internal/storage/sqlite"
	"github.com/julianstephens/breakfree/internal/utils"
)

// PostgresKeyword selects PostgreSQL with the connection string taken from the
// environment or the OS keyring.
const PostgresKeyword = "postgres"

// OpenStore picks a storage backend from dsn:
//
//	postgres://... | postgresql://... | host=...   PostgreSQL (no embedded password)
//	postgres                                      PostgreSQL, connection string from env or keyring
//	badger://<dir>                                BadgerDB directory
//	file://<path> | *.json                        JSON file
//	anything else                                 SQLite database file
func OpenStore(dsn string, getenv func(string) string) (storage.Provider, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, errors.New("no store configured")

	case dsn == PostgresKeyword:
		connStr, err := resolveConnString(getenv)
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil

	case postgres.IsConnString(dsn) || strings.Contains(dsn, "host="):
		if _, err := postgres.ValidateConnString(dsn); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with 'breakfree keyring set' or export %s instead", err, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(dsn), nil

	case strings.HasPrefix(dsn, "badger://"):
		dir, err := utils.ExpandHome(strings.TrimPrefix(dsn, "badger://"))
		if err != nil {
			return nil, err
		}
		if dir == "" {
			return nil, errors.New("badger store needs a directory: badger://<dir>")
		}
		return badger.NewAtPath(dir), nil

	case strings.HasPrefix(dsn, "file://"):
		path, err := utils.ExpandHome(strings.TrimPrefix(dsn, "file://"))
		if err != nil {
			return nil, err
		}
		return storage.NewJSONStore(path), nil

	case strings.HasSuffix(dsn, ".json"):
		path, err := utils.ExpandHome(dsn)
		if err != nil {
			return nil, err
		}
		return storage.NewJSONStore(path), nil

	default:
		path, err := utils.ExpandHome(dsn)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

func resolveConnString(getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if connStr := getenv(constants.EnvDBConnection); connStr != "" {
		return connStr, nil
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no PostgreSQL connection string: set %s or run 'breakfree keyring set'", constants.EnvDBConnection)
		}
		return "", err
	}
	return connStr, nil
}

// ResolveAPIKey looks up the generator API key in the environment, then the keyring.
// An empty result means generation runs offline on fallback texts.
func ResolveAPIKey(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range []string{constants.EnvAPIKey, constants.EnvLegacyAPIKey} {
		if key := strings.TrimSpace(getenv(name)); key != "" {
			return key
		}
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		return ""
	}
	return key
}
