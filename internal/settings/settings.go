// Package settings manages the small set of global app toggles. Settings
// live in their own save slot, separate from progress, and fall back to
// defaults whenever the slot is missing or unreadable.
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tectonhq/tecton/internal/savedata"
)

// Save slot for the global settings record.
const (
	settingsObject = "settings"
	settingsProp   = "global"
)

// Settings holds every user-facing toggle.
type Settings struct {
	NotificationsEnabled bool `yaml:"notificationsEnabled"`
	SoundEnabled         bool `yaml:"soundEnabled"`
	NarrationEnabled     bool `yaml:"narrationEnabled"`
}

// Defaults returns the first-launch settings: everything on.
func Defaults() Settings {
	return Settings{
		NotificationsEnabled: true,
		SoundEnabled:         true,
		NarrationEnabled:     true,
	}
}

// Manager loads, mutates, and persists the settings record. Toggles save
// immediately; persistence failures degrade to a warning.
type Manager struct {
	slot     savedata.Store
	settings Settings
}

// NewManager returns a manager with settings loaded from the slot, or
// defaults when the slot is empty or corrupt.
func NewManager(slot savedata.Store) *Manager {
	m := &Manager{slot: slot, settings: Defaults()}
	m.load()
	return m
}

func (m *Manager) load() {
	if m.slot == nil || !m.slot.Exists(settingsObject, settingsProp) {
		return
	}
	data, err := m.slot.Load(settingsObject, settingsProp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load settings: %v (using defaults)\n", err)
		return
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to decode settings: %v (using defaults)\n", err)
		return
	}
	m.settings = loaded
}

func (m *Manager) save() {
	if m.slot == nil {
		return
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode settings: %v\n", err)
		return
	}
	if err := m.slot.Save(settingsObject, settingsProp, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save settings: %v\n", err)
	}
}

// Settings returns the current settings record.
func (m *Manager) Settings() Settings {
	return m.settings
}

// NotificationsEnabled reports whether achievement notifications may go
// out. This is the achievements delivery gate.
func (m *Manager) NotificationsEnabled() bool {
	return m.settings.NotificationsEnabled
}

// SoundEnabled reports whether sound effects are on.
func (m *Manager) SoundEnabled() bool {
	return m.settings.SoundEnabled
}

// NarrationEnabled reports whether fact narration is on.
func (m *Manager) NarrationEnabled() bool {
	return m.settings.NarrationEnabled
}

// SetNotificationsEnabled updates the toggle and saves.
func (m *Manager) SetNotificationsEnabled(enabled bool) {
	m.settings.NotificationsEnabled = enabled
	m.save()
}

// SetSoundEnabled updates the toggle and saves.
func (m *Manager) SetSoundEnabled(enabled bool) {
	m.settings.SoundEnabled = enabled
	m.save()
}

// SetNarrationEnabled updates the toggle and saves.
func (m *Manager) SetNarrationEnabled(enabled bool) {
	m.settings.NarrationEnabled = enabled
	m.save()
}
