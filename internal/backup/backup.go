// Package backup keeps timestamped JSON snapshots of the user record next to the
// config directory. Snapshots are backend independent: they hold the raw blob.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/logger"
	"github.com/julianstephens/breakfree/internal/reconciler"
	"github.com/julianstephens/breakfree/internal/storage"
)

const timestampFormat = "20060102-150405"

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations
type Manager struct {
	store     storage.Provider
	backupDir string
	now       func() time.Time
}

// NewManager creates a backup manager writing into backupDir.
func NewManager(store storage.Provider, backupDir string) *Manager {
	return &Manager{store: store, backupDir: backupDir, now: time.Now}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

// CreateBackup snapshots the record currently in the store.
func (m *Manager) CreateBackup() (string, error) {
	blob, err := m.store.Load()
	if errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("no record to back up in %s", m.store.GetConfigPath())
	}
	if err != nil {
		return "", fmt.Errorf("failed to load record: %w", err)
	}
	return m.write(blob, false)
}

// Snapshot writes blob as a new backup. It satisfies the tracker's Snapshotter.
func (m *Manager) Snapshot(blob []byte, reason string) (string, error) {
	path, err := m.write(blob, false)
	if err != nil {
		return "", err
	}
	logger.Info("Record snapshot written", "reason", reason, "path", path)
	return path, nil
}

// write stores blob under a unique name. skipRotation is used during restore so the
// pre-restore snapshot cannot rotate away the backup being restored.
func (m *Manager) write(blob []byte, skipRotation bool) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := m.now().Format(timestampFormat)
	backupPath := filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		name := fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, constants.BackupFileSuffix)
		backupPath = filepath.Join(m.backupDir, name)
	}

	if err := os.WriteFile(backupPath, blob, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		timestamp, counter, ok := parseName(name)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path: filepath.Join(m.backupDir, name),
			// The counter only disambiguates backups taken within the same second.
			Timestamp: timestamp.Add(time.Duration(counter)),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName extracts the timestamp and collision counter from a backup file name.
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	counter := 0
	if parts := strings.Split(stamp, "-"); len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, 0, false
		}
		counter = n
		stamp = parts[0] + "-" + parts[1]
	}

	ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, counter, true
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the stored record with the one in backupPath. The backup must
// decode as a valid record. The current record, if any, is snapshotted first and the
// path of that snapshot is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	blob, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}
	if _, err := reconciler.Decode(blob, time.Local); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	current, err := m.store.Load()
	switch {
	case err == nil:
		previous, err = m.write(current, true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current record before restore: %w", err)
		}
	case !errors.Is(err, storage.ErrNotFound):
		return "", fmt.Errorf("failed to load current record: %w", err)
	}

	if err := m.store.Save(blob); err != nil {
		return previous, fmt.Errorf("failed to restore record: %w", err)
	}
	logger.Info("Record restored", "from", backupPath)
	return previous, nil
}
