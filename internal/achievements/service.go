package achievements

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/notify"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/savedata"
	"github.com/tectonhq/tecton/internal/store"
)

// Save slot for the notified-achievement ID set.
const (
	notifiedObject = "achievements"
	notifiedProp   = "notified"
)

// notifiedRecord is the serialized shape of the notified set.
type notifiedRecord struct {
	Version int      `json:"version"`
	IDs     []string `json:"ids"`
}

// Gate controls whether notifications leave the app. The in-app banner is
// not gated; only the delivery collaborator is.
type Gate interface {
	NotificationsEnabled() bool
}

// Service tracks which achievements have already been surfaced and runs the
// one-per-pass evaluator. It implements progress.AchievementTracker.
type Service struct {
	defs     []catalog.Achievement
	slot     savedata.Store
	notifier notify.Notifier
	gate     Gate
	events   store.EventRepo

	mu       sync.Mutex
	notified map[string]bool
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the delivery collaborator.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithGate wires the notifications-enabled setting.
func WithGate(g Gate) Option {
	return func(s *Service) { s.gate = g }
}

// WithEvents records every surfaced achievement in the event log.
func WithEvents(repo store.EventRepo) Option {
	return func(s *Service) { s.events = repo }
}

// NewService loads the notified set from its slot (corruption or absence
// both mean an empty set) and returns a ready service.
func NewService(cat *catalog.Catalog, slot savedata.Store, opts ...Option) *Service {
	s := &Service{
		defs:     cat.Achievements(),
		slot:     slot,
		notifier: notify.Nop{},
		notified: loadNotified(slot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func loadNotified(slot savedata.Store) map[string]bool {
	set := make(map[string]bool)
	if slot == nil || !slot.Exists(notifiedObject, notifiedProp) {
		return set
	}
	data, err := slot.Load(notifiedObject, notifiedProp)
	if err != nil {
		return set
	}
	var rec notifiedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return set
	}
	for _, id := range rec.IDs {
		set[id] = true
	}
	return set
}

// Earned returns the currently satisfied definitions for a snapshot.
func (s *Service) Earned(snapshot []progress.VolcanoProgress) []catalog.Achievement {
	return Earned(s.defs, snapshot)
}

// EarnedCount returns how many definitions the snapshot satisfies.
func (s *Service) EarnedCount(snapshot []progress.VolcanoProgress) int {
	return len(Earned(s.defs, snapshot))
}

// Defs returns the achievement definitions in definition order.
func (s *Service) Defs() []catalog.Achievement {
	out := make([]catalog.Achievement, len(s.defs))
	copy(out, s.defs)
	return out
}

// IsNotified reports whether the achievement has already been surfaced.
func (s *Service) IsNotified(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notified[id]
}

// CheckForNew runs one evaluator pass: earned minus notified, surfacing AT
// MOST ONE newly earned achievement — the first in definition order. The
// surfaced achievement joins the persisted notified set, lands in the event
// log, and goes out through the delivery collaborator. Remaining newly
// earned achievements wait for the next pass.
func (s *Service) CheckForNew(snapshot []progress.VolcanoProgress) *catalog.Achievement {
	s.mu.Lock()
	var found *catalog.Achievement
	for _, def := range s.defs {
		if s.notified[def.ID] || !isEarned(def, snapshot) {
			continue
		}
		cp := def
		found = &cp
		break
	}
	if found == nil {
		s.mu.Unlock()
		return nil
	}
	s.notified[found.ID] = true
	s.persistNotifiedLocked()
	s.mu.Unlock()

	if s.events != nil {
		_ = s.events.AppendAchievement(context.Background(), store.AchievementEventData{
			AchievementID: found.ID,
			Title:         found.Title,
			Tier:          string(found.Tier),
		})
	}
	if s.deliveryEnabled() {
		_ = s.notifier.Deliver(found.Title, found.Description, notify.Identifier(found.ID))
	}
	return found
}

// Reset clears the notified set so a fresh playthrough notifies again.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified = make(map[string]bool)
	s.persistNotifiedLocked()
}

func (s *Service) deliveryEnabled() bool {
	if s.gate == nil {
		return true
	}
	return s.gate.NotificationsEnabled()
}

// persistNotifiedLocked overwrites the notified slot. Caller holds s.mu.
// Fire-and-forget like all persistence here: failures degrade to a warning.
func (s *Service) persistNotifiedLocked() {
	if s.slot == nil {
		return
	}
	rec := notifiedRecord{Version: 1, IDs: make([]string, 0, len(s.notified))}
	for id := range s.notified {
		rec.IDs = append(rec.IDs, id)
	}
	sort.Strings(rec.IDs)

	data, err := json.Marshal(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode notified achievements: %v\n", err)
		return
	}
	if err := s.slot.Save(notifiedObject, notifiedProp, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save notified achievements: %v\n", err)
	}
}
