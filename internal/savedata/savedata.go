// Package savedata provides the durable key-value slot layer that progress,
// achievements, and settings persist into. Slots are addressed by an
// (object, property) pair and hold whole serialized records; writers always
// overwrite the full slot.
package savedata

import (
	"fmt"
	"os"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// Store persists named binary slots.
type Store interface {
	// Save overwrites the slot with data.
	Save(object, prop string, data []byte) error

	// Load returns the slot contents.
	Load(object, prop string) ([]byte, error)

	// Exists reports whether the slot has ever been written.
	Exists(object, prop string) bool
}

// Manager is the durable Store backed by the platform's per-app save-data
// directory.
type Manager struct {
	m *gdata.Manager
}

// OpenManager opens the platform save-data directory for the given app name.
func OpenManager(appName string) (*Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open save data: %w", err)
	}
	return &Manager{m: m}, nil
}

func (m *Manager) Save(object, prop string, data []byte) error {
	if err := m.m.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("save slot %s/%s: %w", object, prop, err)
	}
	return nil
}

func (m *Manager) Load(object, prop string) ([]byte, error) {
	data, err := m.m.LoadObjectProp(object, prop)
	if err != nil {
		return nil, fmt.Errorf("load slot %s/%s: %w", object, prop, err)
	}
	return data, nil
}

func (m *Manager) Exists(object, prop string) bool {
	return m.m.ObjectPropExists(object, prop)
}

// Open returns a durable Store when the platform save-data directory is
// usable, and otherwise degrades to an in-memory Store so the app still
// runs; nothing written in degraded mode survives exit.
func Open(appName string) Store {
	m, err := OpenManager(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: save data unavailable, progress will not persist: %v\n", err)
		return NewMemory()
	}
	return m
}

// Memory is an in-process Store. It backs degraded mode and tests.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Save(object, prop string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.slots[object+"/"+prop] = buf
	return nil
}

func (m *Memory) Load(object, prop string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[object+"/"+prop]
	if !ok {
		return nil, fmt.Errorf("load slot %s/%s: not found", object, prop)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (m *Memory) Exists(object, prop string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.slots[object+"/"+prop]
	return ok
}
