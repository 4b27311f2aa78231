package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Key is the fixed location of the standups collection.
const Key = "standups.toml"

// ErrNotFound is returned by a Gateway when nothing was saved under the key yet.
var ErrNotFound = errors.New("standups not found")

// Gateway is the byte-level load/save primitive.
type Gateway interface {
	Load(key string) ([]byte, error)
	Save(data []byte, key string) error
}

// Files stores each key as a file in Dir.
type Files struct {
	Dir string
}

func (f Files) path(key string) string {
	return filepath.Join(f.Dir, key)
}

func (f Files) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save writes and syncs a temp file, then renames it over the old one, so a
// crash never leaves a half-written collection behind.
func (f Files) Save(data []byte, key string) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Memory keeps data in process. Useful for tests and demo runs.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailLoad and FailSave, when set, are returned instead of touching data.
	FailLoad error
	FailSave error
	saves    int
}

// NewMemory returns a Memory gateway; initial, when non-nil, is stored under Key.
func NewMemory(initial []byte) *Memory {
	m := &Memory{data: make(map[string][]byte)}
	if initial != nil {
		m.data[Key] = append([]byte(nil), initial...)
	}
	return m
}

func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailLoad != nil {
		return nil, m.FailLoad
	}
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Save(data []byte, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.FailSave != nil {
		return m.FailSave
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Saves reports how many Save calls were made, including failed ones.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetFailures swaps the injected errors under the lock.
func (m *Memory) SetFailures(load, save error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailLoad = load
	m.FailSave = save
}
