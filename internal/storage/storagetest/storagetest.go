// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/julianstephens/breakfree/internal/storage"
)

// RunProviderTests exercises the slot contract against a fresh provider from newStore.
// newStore must return an initialized provider; it is closed by the caller's cleanup.
func RunProviderTests(t *testing.T, newStore func(t *testing.T) storage.Provider) {
	t.Run("load empty slot", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.Load(); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Load() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("save then load", func(t *testing.T) {
		s := newStore(t)
		blob := []byte(`{"streak":3,"lastLogin":"2024-05-10"}`)
		if err := s.Save(blob); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !bytes.Equal(got, blob) {
			t.Errorf("Load() = %s, want %s", got, blob)
		}
	})

	t.Run("save overwrites", func(t *testing.T) {
		s := newStore(t)
		if err := s.Save([]byte(`{"streak":1}`)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := s.Save([]byte(`{"streak":2}`)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if string(got) != `{"streak":2}` {
			t.Errorf("Load() = %s, want second write", got)
		}
	})

	t.Run("clear", func(t *testing.T) {
		s := newStore(t)
		if err := s.Save([]byte(`{}`)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, err := s.Load(); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Load() after Clear error = %v, want ErrNotFound", err)
		}
		if err := s.Clear(); err != nil {
			t.Errorf("Clear() on empty slot error = %v", err)
		}
	})

	t.Run("config path", func(t *testing.T) {
		if newStore(t).GetConfigPath() == "" {
			t.Error("GetConfigPath() is empty")
		}
	})
}
