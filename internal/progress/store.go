package progress

import (
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/savedata"
)

// Save slot for the progress snapshot.
const (
	progressObject = "progress"
	progressProp   = "snapshot"
)

// defaultSaveDelay is the quiet period before a scheduled snapshot write.
const defaultSaveDelay = time.Second

// Result reports what one MarkGameCompleted call changed.
type Result struct {
	// Changed is false for idempotent repeats and configuration mismatches.
	Changed bool

	// VolcanoCompleted is true when this completion finished the volcano's
	// last remaining game.
	VolcanoCompleted bool

	// Unlocked names the volcano the unlock rule opened, or "".
	Unlocked string

	// Achievement is the newly surfaced achievement, if this completion's
	// evaluator pass produced one.
	Achievement *catalog.Achievement
}

// ChangeEvent is emitted to subscribers after each store mutation. The
// snapshot itself is not carried; subscribers re-read and re-render.
type ChangeEvent struct {
	Volcano     string
	Game        catalog.GameType
	Reset       bool
	Unlocked    string
	Achievement *catalog.Achievement
}

// AchievementTracker is the progression-side view of the achievement
// service: one evaluator pass per completed game, and a reset hook.
type AchievementTracker interface {
	// CheckForNew surfaces at most one newly earned achievement.
	CheckForNew(snapshot []VolcanoProgress) *catalog.Achievement

	// Reset clears the notified-achievement set.
	Reset()
}

// Store holds the live progress state and persists it through a debounced
// whole-snapshot writer. Construct one per process and inject it wherever
// progress is read or mutated.
type Store struct {
	cat     *catalog.Catalog
	slot    savedata.Store
	saver   *saver
	tracker AchievementTracker

	mu        sync.Mutex
	volcanoes []VolcanoProgress
	byName    map[string]int
	subs      []func(ChangeEvent)
}

// Option configures a Store.
type Option func(*Store)

// WithAchievements wires the achievement evaluator pass into completions.
func WithAchievements(t AchievementTracker) Option {
	return func(s *Store) { s.tracker = t }
}

// WithSaveDelay overrides the debounce quiet period.
func WithSaveDelay(d time.Duration) Option {
	return func(s *Store) { s.saver.delay = d }
}

// NewStore loads persisted progress from the slot (falling back to catalog
// defaults on absence or corruption) and returns a ready store.
func NewStore(cat *catalog.Catalog, slot savedata.Store, opts ...Option) *Store {
	s := &Store{
		cat:  cat,
		slot: slot,
	}
	s.saver = newSaver(defaultSaveDelay, s.persist)
	s.volcanoes = loadState(cat, slot)
	s.byName = make(map[string]int, len(s.volcanoes))
	for i := range s.volcanoes {
		s.byName[s.volcanoes[i].Name] = i
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// loadState returns persisted progress overlaid on catalog defaults, or
// plain defaults when the slot is absent or unreadable. Corruption is
// treated as absence; there is no partial recovery.
func loadState(cat *catalog.Catalog, slot savedata.Store) []VolcanoProgress {
	defaults := NewFromCatalog(cat)
	if slot == nil || !slot.Exists(progressObject, progressProp) {
		return defaults
	}
	data, err := slot.Load(progressObject, progressProp)
	if err != nil {
		return defaults
	}
	loaded, err := decodeSnapshot(data)
	if err != nil {
		return defaults
	}
	return reconcile(defaults, loaded)
}

// MarkGameCompleted records a completion for the named volcano and game
// type. Idempotent: repeating a completed pair is a no-op. An unknown
// volcano or game type is also a silent no-op — that can only come from a
// configuration-data mismatch, never from user input.
//
// On a fresh completion the unlock rule runs one step, the achievement
// evaluator runs one pass, a debounced save is scheduled, and subscribers
// are notified.
func (s *Store) MarkGameCompleted(volcanoName string, gameType catalog.GameType) Result {
	s.mu.Lock()

	idx, ok := s.byName[volcanoName]
	if !ok {
		s.mu.Unlock()
		return Result{}
	}
	g := s.volcanoes[idx].game(gameType)
	if g == nil || g.Completed {
		s.mu.Unlock()
		return Result{}
	}

	g.Completed = true
	res := Result{Changed: true}

	if s.volcanoes[idx].AllCompleted() {
		res.VolcanoCompleted = true
		if next := nextToUnlock(s.volcanoes, volcanoName); next != -1 {
			s.volcanoes[next].Unlocked = true
			res.Unlocked = s.volcanoes[next].Name
		}
	}

	snapshot := cloneProgress(s.volcanoes)
	s.saver.Schedule()
	s.mu.Unlock()

	if s.tracker != nil {
		res.Achievement = s.tracker.CheckForNew(snapshot)
	}

	s.emit(ChangeEvent{
		Volcano:     volcanoName,
		Game:        gameType,
		Unlocked:    res.Unlocked,
		Achievement: res.Achievement,
	})
	return res
}

// ResetAll restores first-launch state: only the minimum-order volcano
// unlocked, no game completed, notified achievements cleared. The reset is
// persisted immediately rather than debounced.
func (s *Store) ResetAll() {
	s.mu.Lock()
	s.volcanoes = NewFromCatalog(s.cat)
	s.byName = make(map[string]int, len(s.volcanoes))
	for i := range s.volcanoes {
		s.byName[s.volcanoes[i].Name] = i
	}
	s.mu.Unlock()

	if s.tracker != nil {
		s.tracker.Reset()
	}

	s.saver.Cancel()
	s.persist()
	s.emit(ChangeEvent{Reset: true})
}

// Snapshot returns a deep copy of the current progress state.
func (s *Store) Snapshot() []VolcanoProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProgress(s.volcanoes)
}

// Volcano returns a copy of one volcano's progress.
func (s *Store) Volcano(name string) (VolcanoProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byName[name]
	if !ok {
		return VolcanoProgress{}, false
	}
	cp := s.volcanoes[idx]
	cp.Games = slices.Clone(cp.Games)
	return cp, true
}

// Counts returns completed and total game counts across all volcanoes.
func (s *Store) Counts() (completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.volcanoes {
		completed += v.CompletedCount()
		total += len(v.Games)
	}
	return completed, total
}

// Subscribe registers a callback invoked after every mutation.
func (s *Store) Subscribe(fn func(ChangeEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Flush writes any pending snapshot immediately. Call on shutdown so the
// debounce window cannot swallow the final mutations.
func (s *Store) Flush() {
	s.saver.Flush()
}

func (s *Store) emit(ev ChangeEvent) {
	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// persist serializes the full snapshot and overwrites the save slot.
// Persistence is fire-and-forget: a failed write degrades to a warning,
// never an error surfaced to the user.
func (s *Store) persist() {
	s.mu.Lock()
	data, err := encodeSnapshot(s.volcanoes)
	s.mu.Unlock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode progress: %v\n", err)
		return
	}
	if s.slot == nil {
		return
	}
	if err := s.slot.Save(progressObject, progressProp, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save progress: %v\n", err)
	}
}
