package storage

import (
	"slices"
	"sync"
)

// MemoryStore keeps the slot in memory. It counts writes so callers can assert on
// persistence side effects.
type MemoryStore struct {
	mu     sync.Mutex
	blob   []byte
	Saves  int
	Clears int
	// FailSave, when set, is returned by Save without storing anything.
	FailSave error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a store whose slot already holds blob.
func NewMemoryStoreWith(blob []byte) *MemoryStore {
	return &MemoryStore{blob: slices.Clone(blob)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, ErrNotFound
	}
	return slices.Clone(s.blob), nil
}

func (s *MemoryStore) Save(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave != nil {
		return s.FailSave
	}
	s.blob = slices.Clone(blob)
	if s.blob == nil {
		s.blob = []byte{}
	}
	s.Saves++
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = nil
	s.Clears++
	return nil
}

// Blob returns the raw slot contents, or nil when empty.
func (s *MemoryStore) Blob() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.blob)
}

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}
