package progress

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/savedata"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *savedata.Memory) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	slot := savedata.NewMemory()
	opts = append([]Option{WithSaveDelay(20 * time.Millisecond)}, opts...)
	s := NewStore(cat, slot, opts...)
	t.Cleanup(s.Flush)
	return s, slot
}

// fakeTracker counts evaluator passes and hands out a queued achievement.
type fakeTracker struct {
	mu     sync.Mutex
	passes int
	resets int
	queued *catalog.Achievement
}

func (f *fakeTracker) CheckForNew(snapshot []VolcanoProgress) *catalog.Achievement {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passes++
	a := f.queued
	f.queued = nil
	return a
}

func (f *fakeTracker) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func TestFreshStoreDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	snap := s.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("volcano count = %d, want 5", len(snap))
	}

	unlocked := 0
	for _, v := range snap {
		if v.Unlocked {
			unlocked++
		}
		if v.CompletedCount() != 0 {
			t.Errorf("%s starts with %d completed games, want 0", v.Name, v.CompletedCount())
		}
	}
	if unlocked != 1 {
		t.Errorf("unlocked volcanoes = %d, want 1", unlocked)
	}
	if !snap[0].Unlocked || snap[0].Name != "Mount Vesuvius" {
		t.Error("the minimum-order volcano (Mount Vesuvius) must start unlocked")
	}
}

func TestCompletingAllGamesUnlocksNextVolcano(t *testing.T) {
	s, _ := newTestStore(t)

	r1 := s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	if !r1.Changed || r1.VolcanoCompleted || r1.Unlocked != "" {
		t.Fatalf("after first game: %+v", r1)
	}

	r2 := s.MarkGameCompleted("Mount Vesuvius", catalog.GameWordMatch)
	if !r2.Changed || r2.Unlocked != "" {
		t.Fatalf("after second game: %+v", r2)
	}

	if v, _ := s.Volcano("Mount St. Helens"); v.Unlocked {
		t.Fatal("Mount St. Helens unlocked too early")
	}

	r3 := s.MarkGameCompleted("Mount Vesuvius", catalog.GameVolcanoBuilder)
	if !r3.Changed || !r3.VolcanoCompleted {
		t.Fatalf("after third game: %+v", r3)
	}
	if r3.Unlocked != "Mount St. Helens" {
		t.Errorf("unlocked = %q, want %q", r3.Unlocked, "Mount St. Helens")
	}
	if v, _ := s.Volcano("Mount St. Helens"); !v.Unlocked {
		t.Error("Mount St. Helens should now be unlocked")
	}
}

func TestMarkGameCompletedIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	tracker := &fakeTracker{}
	s.tracker = tracker

	first := s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	if !first.Changed {
		t.Fatal("first completion should change state")
	}
	before := s.Snapshot()

	second := s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	if second.Changed {
		t.Error("repeat completion must be a no-op")
	}
	after := s.Snapshot()

	if !reflect.DeepEqual(before, after) {
		t.Error("state changed on idempotent repeat")
	}
	if tracker.passes != 1 {
		t.Errorf("evaluator passes = %d, want 1 (no pass on a no-op)", tracker.passes)
	}
}

func TestUnknownNamesAreSilentNoOps(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.Snapshot()

	if r := s.MarkGameCompleted("Mount Doom", catalog.GameQuiz); r.Changed {
		t.Error("unknown volcano must be a silent no-op")
	}
	// Vesuvius has no puzzle game.
	if r := s.MarkGameCompleted("Mount Vesuvius", catalog.GamePuzzle); r.Changed {
		t.Error("unknown game type for volcano must be a silent no-op")
	}

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("state changed on configuration mismatch")
	}
}

func TestUnlockNeverSkipsALevel(t *testing.T) {
	s, _ := newTestStore(t)

	// Finish everything on Kilauea (order 3) first.
	for _, gt := range []catalog.GameType{catalog.GameQuiz, catalog.GamePuzzle, catalog.GameVolcanoBuilder} {
		s.MarkGameCompleted("Kilauea", gt)
	}

	if v, _ := s.Volcano("Mount St. Helens"); v.Unlocked {
		t.Error("completing a later volcano must not unlock an earlier one")
	}
	if v, _ := s.Volcano("Krakatoa"); !v.Unlocked {
		t.Error("Kilauea's completion unlocks exactly its successor")
	}
	if v, _ := s.Volcano("Mount Fuji"); v.Unlocked {
		t.Error("unlock walks one step, never two")
	}
}

func TestResetAllInvariant(t *testing.T) {
	s, slot := newTestStore(t)
	tracker := &fakeTracker{}
	s.tracker = tracker

	s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	s.MarkGameCompleted("Mount Vesuvius", catalog.GameWordMatch)
	s.MarkGameCompleted("Mount Vesuvius", catalog.GameVolcanoBuilder)

	s.ResetAll()

	snap := s.Snapshot()
	unlocked := 0
	completed := 0
	for _, v := range snap {
		if v.Unlocked {
			unlocked++
		}
		completed += v.CompletedCount()
	}
	if unlocked != 1 {
		t.Errorf("unlocked after reset = %d, want exactly 1", unlocked)
	}
	if !snap[0].Unlocked {
		t.Error("minimum-order volcano must be the unlocked one")
	}
	if completed != 0 {
		t.Errorf("completed after reset = %d, want 0", completed)
	}
	if tracker.resets != 1 {
		t.Errorf("tracker resets = %d, want 1", tracker.resets)
	}

	// Reset persists immediately, not behind the debounce window.
	if !slot.Exists("progress", "snapshot") {
		t.Error("reset must write the slot immediately")
	}
}

func TestDebouncedPersistence(t *testing.T) {
	s, slot := newTestStore(t)

	s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	if slot.Exists("progress", "snapshot") {
		t.Fatal("write should wait for the quiet period")
	}

	time.Sleep(120 * time.Millisecond)
	if !slot.Exists("progress", "snapshot") {
		t.Fatal("write should land after the quiet period")
	}

	data, err := slot.Load("progress", "snapshot")
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	decoded, err := decodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode persisted snapshot: %v", err)
	}
	if !decoded[0].Games[0].Completed {
		t.Error("persisted snapshot missing the completion")
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	slot := savedata.NewMemory()

	s1 := NewStore(cat, slot, WithSaveDelay(time.Hour))
	s1.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	s1.MarkGameCompleted("Mount Vesuvius", catalog.GameWordMatch)
	s1.MarkGameCompleted("Mount Vesuvius", catalog.GameVolcanoBuilder)
	s1.Flush()

	s2 := NewStore(cat, slot)
	if v, _ := s2.Volcano("Mount Vesuvius"); !v.AllCompleted() {
		t.Error("completions lost across restart")
	}
	if v, _ := s2.Volcano("Mount St. Helens"); !v.Unlocked {
		t.Error("unlock lost across restart")
	}
}

func TestCorruptSlotFallsBackToDefaults(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	slot := savedata.NewMemory()
	if err := slot.Save("progress", "snapshot", []byte("~~~ not json ~~~")); err != nil {
		t.Fatalf("seed corrupt slot: %v", err)
	}

	s := NewStore(cat, slot)
	snap := s.Snapshot()

	completed := 0
	unlocked := 0
	for _, v := range snap {
		completed += v.CompletedCount()
		if v.Unlocked {
			unlocked++
		}
	}
	if completed != 0 || unlocked != 1 {
		t.Errorf("corrupt slot should load as defaults; completed=%d unlocked=%d", completed, unlocked)
	}
}

func TestAchievementPassReceivesResult(t *testing.T) {
	s, _ := newTestStore(t)
	want := &catalog.Achievement{ID: "vesuvius-novice", Title: "Vesuvius Novice"}
	s.tracker = &fakeTracker{queued: want}

	res := s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	if res.Achievement == nil || res.Achievement.ID != "vesuvius-novice" {
		t.Errorf("result achievement = %+v, want vesuvius-novice", res.Achievement)
	}
}

func TestSubscribersSeeMutations(t *testing.T) {
	s, _ := newTestStore(t)

	var events []ChangeEvent
	s.Subscribe(func(ev ChangeEvent) { events = append(events, ev) })

	s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz) // no-op, no event
	s.ResetAll()

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 (no event for the no-op)", len(events))
	}
	if events[0].Volcano != "Mount Vesuvius" || events[0].Game != catalog.GameQuiz {
		t.Errorf("first event = %+v", events[0])
	}
	if !events[1].Reset {
		t.Errorf("second event should be the reset, got %+v", events[1])
	}
}

func TestCounts(t *testing.T) {
	s, _ := newTestStore(t)

	completed, total := s.Counts()
	if completed != 0 || total != 16 {
		t.Fatalf("fresh counts = %d/%d, want 0/16", completed, total)
	}

	s.MarkGameCompleted("Mount Vesuvius", catalog.GameQuiz)
	completed, total = s.Counts()
	if completed != 1 || total != 16 {
		t.Errorf("counts = %d/%d, want 1/16", completed, total)
	}
}
