package storage

import "errors"

// ErrNotFound is returned by Load when the slot holds no record.
var ErrNotFound = errors.New("no record stored")

// Provider is the persistence boundary: one named slot holding a single serialized blob.
// The blob is opaque here; schema handling belongs to the reconciler.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Slot
	Load() ([]byte, error)
	Save(blob []byte) error
	Clear() error

	// Utils
	GetConfigPath() string
}
