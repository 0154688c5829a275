package badger

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/breakfree/internal/storage"
	"github.com/julianstephens/breakfree/internal/storage/storagetest"
)

func TestProviderInMemory(t *testing.T) {
	storagetest.RunProviderTests(t, func(t *testing.T) storage.Provider {
		s := New(Config{InMemory: true})
		if err := s.Init(); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestReopenFromDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	s := NewAtPath(dir)
	if err := s.Save([]byte(`{"streak":9}`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := NewAtPath(dir)
	defer reopened.Close()
	got, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != `{"streak":9}` {
		t.Errorf("Load() = %s", got)
	}
	if reopened.GetConfigPath() != dir {
		t.Errorf("GetConfigPath() = %q, want %q", reopened.GetConfigPath(), dir)
	}
}

func TestInitRequiresPath(t *testing.T) {
	if err := New(Config{}).Init(); err == nil {
		t.Error("Init() without path should fail")
	}
}
