// Package badger keeps the record slot in an embedded BadgerDB directory.
package badger

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/logger"
	"github.com/julianstephens/breakfree/internal/storage"
)

// Config holds configuration for a Store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string
	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool
	// SyncWrites fsyncs every write.
	SyncWrites bool
}

type Store struct {
	cfg Config
	key []byte
	db  *badger.DB
}

func New(cfg Config) *Store {
	return &Store{
		cfg: cfg,
		key: []byte(constants.RecordSlot),
	}
}

// NewAtPath returns a durable store rooted at dir.
func NewAtPath(dir string) *Store {
	return New(Config{Path: dir, SyncWrites: true})
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if !s.cfg.InMemory && s.cfg.Path == "" {
		return errors.New("badger store path is required")
	}

	var opts badger.Options
	if s.cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(s.cfg.Path, 0700); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		opts = badger.DefaultOptions(s.cfg.Path)
	}
	opts = opts.
		WithSyncWrites(s.cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(logger.BadgerAdapter{Component: "badger"})

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger database: %w", err)
	}
	s.db = db
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

	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return blob, nil
}

func (s *Store) Save(blob []byte) error {
	if err := s.Init(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, blob)
	})
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *Store) Clear() error {
	if err := s.Init(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key)
	})
	if err != nil {
		return fmt.Errorf("failed to clear record: %w", err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	if s.cfg.InMemory {
		return "badger (in-memory)"
	}
	return s.cfg.Path
}
