package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/migration"
	"github.com/julianstephens/breakfree/internal/storage"
)

type Store struct {
	path string
	slot string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		slot: constants.RecordSlot,
	}
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) Load() ([]byte, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", s.slot).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return []byte(value), nil
}

func (s *Store) Save(blob []byte) error {
	if err := s.Init(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.slot, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *Store) Clear() error {
	if err := s.Init(); err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM slots WHERE key = ?", s.slot); err != nil {
		return fmt.Errorf("failed to clear record: %w", err)
	}
	return nil
}

func (s *Store) runMigrations() error {
	runner, err := migration.ForDriver(s.db, migration.DriverSQLite)
	if err != nil {
		return err
	}
	_, err = runner.Apply()
	return err
}

// SchemaVersion reports the applied and the latest known migration version.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if err := s.Init(); err != nil {
		return 0, 0, err
	}
	runner, err := migration.ForDriver(s.db, migration.DriverSQLite)
	if err != nil {
		return 0, 0, err
	}
	st, err := runner.Status()
	return st.Current, st.Latest, err
}

func (s *Store) GetConfigPath() string {
	return s.path
}
