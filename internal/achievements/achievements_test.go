package achievements

import (
	"context"
	"testing"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/notify"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/savedata"
	"github.com/tectonhq/tecton/internal/store"
)

// mockEventRepo implements store.EventRepo for achievements tests.
type mockEventRepo struct {
	achievements []store.AchievementEventData
}

func (m *mockEventRepo) AppendPlay(_ context.Context, _ store.PlayEventData) error { return nil }
func (m *mockEventRepo) QueryPlays(_ context.Context, _ store.QueryOpts) ([]store.PlayEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) PlayCounts(_ context.Context) (map[string]int, int, error) {
	return nil, 0, nil
}
func (m *mockEventRepo) AppendAchievement(_ context.Context, data store.AchievementEventData) error {
	m.achievements = append(m.achievements, data)
	return nil
}
func (m *mockEventRepo) QueryAchievements(_ context.Context, _ store.QueryOpts) ([]store.AchievementEventRecord, error) {
	return nil, nil
}

// fixedGate reports a fixed notifications-enabled setting.
type fixedGate bool

func (g fixedGate) NotificationsEnabled() bool { return bool(g) }

func loadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

// completeGames marks the first n games completed on the named volcano.
func completeGames(t *testing.T, snapshot []progress.VolcanoProgress, volcano string, n int) {
	t.Helper()
	for i := range snapshot {
		if snapshot[i].Name != volcano {
			continue
		}
		if n > len(snapshot[i].Games) {
			t.Fatalf("volcano %s has %d games, cannot complete %d", volcano, len(snapshot[i].Games), n)
		}
		for j := 0; j < n; j++ {
			snapshot[i].Games[j].Completed = true
		}
		return
	}
	t.Fatalf("volcano %s not in snapshot", volcano)
}

func earnedIDs(defs []catalog.Achievement) []string {
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids
}

func TestEarnedEmptySnapshot(t *testing.T) {
	cat := loadTestCatalog(t)
	snapshot := progress.NewFromCatalog(cat)

	earned := Earned(cat.Achievements(), snapshot)
	if len(earned) != 0 {
		t.Errorf("fresh snapshot earned %v, want none", earnedIDs(earned))
	}
}

func TestEarnedSingleGame(t *testing.T) {
	cat := loadTestCatalog(t)
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	earned := Earned(cat.Achievements(), snapshot)

	got := map[string]bool{}
	for _, a := range earned {
		got[a.ID] = true
	}
	// One game satisfies the 1-game requirements but not the 2-game one.
	if !got["vesuvius-novice"] {
		t.Error("vesuvius-novice not earned after 1 game")
	}
	if !got["first-eruption"] {
		t.Error("first-eruption not earned after 1 game")
	}
	if got["vesuvius-explorer"] {
		t.Error("vesuvius-explorer earned after 1 game, requires 2")
	}
}

func TestEarnedDefinitionOrder(t *testing.T) {
	cat := loadTestCatalog(t)
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	earned := Earned(cat.Achievements(), snapshot)
	if len(earned) != 2 {
		t.Fatalf("earned %v, want exactly 2", earnedIDs(earned))
	}
	// Per-volcano definitions come before the global ones.
	if earned[0].ID != "vesuvius-novice" {
		t.Errorf("earned[0] = %q, want vesuvius-novice", earned[0].ID)
	}
	if earned[1].ID != "first-eruption" {
		t.Errorf("earned[1] = %q, want first-eruption", earned[1].ID)
	}
}

func TestEarnedMonotonic(t *testing.T) {
	cat := loadTestCatalog(t)
	snapshot := progress.NewFromCatalog(cat)

	var prev map[string]bool
	for n := 0; n <= 3; n++ {
		completeGames(t, snapshot, "Mount Vesuvius", n)
		earned := map[string]bool{}
		for _, a := range Earned(cat.Achievements(), snapshot) {
			earned[a.ID] = true
		}
		for id := range prev {
			if !earned[id] {
				t.Errorf("after %d games, previously earned %q disappeared", n, id)
			}
		}
		prev = earned
	}
}

func TestEarnedAllGames(t *testing.T) {
	cat := loadTestCatalog(t)
	snapshot := progress.NewFromCatalog(cat)
	for _, v := range cat.Volcanoes() {
		completeGames(t, snapshot, v.Name, len(v.Games))
	}

	earned := Earned(cat.Achievements(), snapshot)
	if len(earned) != len(cat.Achievements()) {
		t.Errorf("earned %d of %d achievements with everything complete",
			len(earned), len(cat.Achievements()))
	}
}

func TestRingOfFireRequiresEveryGame(t *testing.T) {
	cat := loadTestCatalog(t)
	snapshot := progress.NewFromCatalog(cat)
	// Complete everything except one game.
	for _, v := range cat.Volcanoes() {
		completeGames(t, snapshot, v.Name, len(v.Games))
	}
	snapshot[len(snapshot)-1].Games[0].Completed = false

	for _, a := range Earned(cat.Achievements(), snapshot) {
		if a.ID == "ring-of-fire" {
			t.Error("ring-of-fire earned with a game still incomplete")
		}
	}
}

func TestCheckForNewSurfacesOnePerPass(t *testing.T) {
	cat := loadTestCatalog(t)
	svc := NewService(cat, savedata.NewMemory())
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	// One game satisfies two definitions at once. The first in definition
	// order surfaces now; the other waits for the next pass.
	first := svc.CheckForNew(snapshot)
	if first == nil {
		t.Fatal("expected an achievement on first pass")
	}
	if first.ID != "vesuvius-novice" {
		t.Errorf("first pass = %q, want vesuvius-novice", first.ID)
	}

	second := svc.CheckForNew(snapshot)
	if second == nil {
		t.Fatal("expected an achievement on second pass")
	}
	if second.ID != "first-eruption" {
		t.Errorf("second pass = %q, want first-eruption", second.ID)
	}

	if third := svc.CheckForNew(snapshot); third != nil {
		t.Errorf("third pass = %q, want nil", third.ID)
	}
}

func TestCheckForNewNothingEarned(t *testing.T) {
	cat := loadTestCatalog(t)
	svc := NewService(cat, savedata.NewMemory())
	snapshot := progress.NewFromCatalog(cat)

	if got := svc.CheckForNew(snapshot); got != nil {
		t.Errorf("fresh snapshot surfaced %q, want nil", got.ID)
	}
}

func TestNotifiedPersistsAcrossServices(t *testing.T) {
	cat := loadTestCatalog(t)
	slot := savedata.NewMemory()
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	svc := NewService(cat, slot)
	if got := svc.CheckForNew(snapshot); got == nil || got.ID != "vesuvius-novice" {
		t.Fatalf("first pass = %v, want vesuvius-novice", got)
	}

	// A fresh service on the same slot remembers what was surfaced.
	svc2 := NewService(cat, slot)
	if !svc2.IsNotified("vesuvius-novice") {
		t.Error("reloaded service forgot vesuvius-novice")
	}
	if got := svc2.CheckForNew(snapshot); got == nil || got.ID != "first-eruption" {
		t.Errorf("reloaded service pass = %v, want first-eruption", got)
	}
}

func TestCorruptNotifiedSlot(t *testing.T) {
	cat := loadTestCatalog(t)
	slot := savedata.NewMemory()
	if err := slot.Save("achievements", "notified", []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt slot: %v", err)
	}

	svc := NewService(cat, slot)
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	// Corruption means an empty notified set, not a crash.
	if got := svc.CheckForNew(snapshot); got == nil || got.ID != "vesuvius-novice" {
		t.Errorf("after corrupt slot, pass = %v, want vesuvius-novice", got)
	}
}

func TestResetClearsNotified(t *testing.T) {
	cat := loadTestCatalog(t)
	slot := savedata.NewMemory()
	svc := NewService(cat, slot)
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	if got := svc.CheckForNew(snapshot); got == nil {
		t.Fatal("expected an achievement before reset")
	}

	svc.Reset()
	if svc.IsNotified("vesuvius-novice") {
		t.Error("notified set not cleared by reset")
	}

	// The cleared set is persisted too.
	svc2 := NewService(cat, slot)
	if svc2.IsNotified("vesuvius-novice") {
		t.Error("reset not persisted to slot")
	}

	// A fresh playthrough notifies again.
	if got := svc.CheckForNew(snapshot); got == nil || got.ID != "vesuvius-novice" {
		t.Errorf("after reset, pass = %v, want vesuvius-novice", got)
	}
}

func TestCheckForNewDelivers(t *testing.T) {
	cat := loadTestCatalog(t)
	rec := &notify.Recorder{}
	svc := NewService(cat, savedata.NewMemory(), WithNotifier(rec))
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	got := svc.CheckForNew(snapshot)
	if got == nil {
		t.Fatal("expected an achievement")
	}

	deliveries := rec.Deliveries()
	if len(deliveries) != 1 {
		t.Fatalf("got %d deliveries, want 1", len(deliveries))
	}
	d := deliveries[0]
	if d.Title != got.Title {
		t.Errorf("delivery title = %q, want %q", d.Title, got.Title)
	}
	if d.Body != got.Description {
		t.Errorf("delivery body = %q, want %q", d.Body, got.Description)
	}
	if d.Identifier != notify.Identifier(got.ID) {
		t.Errorf("delivery identifier = %q, want %q", d.Identifier, notify.Identifier(got.ID))
	}
}

func TestGateDisabledSkipsDelivery(t *testing.T) {
	cat := loadTestCatalog(t)
	rec := &notify.Recorder{}
	svc := NewService(cat, savedata.NewMemory(), WithNotifier(rec), WithGate(fixedGate(false)))
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	// The achievement still surfaces in-app and joins the notified set;
	// only the outgoing delivery is suppressed.
	got := svc.CheckForNew(snapshot)
	if got == nil {
		t.Fatal("expected an achievement even with notifications off")
	}
	if len(rec.Deliveries()) != 0 {
		t.Errorf("got %d deliveries with notifications off, want 0", len(rec.Deliveries()))
	}
	if !svc.IsNotified(got.ID) {
		t.Error("achievement not marked notified with notifications off")
	}
}

func TestCheckForNewAppendsEvent(t *testing.T) {
	cat := loadTestCatalog(t)
	repo := &mockEventRepo{}
	svc := NewService(cat, savedata.NewMemory(), WithEvents(repo))
	snapshot := progress.NewFromCatalog(cat)
	completeGames(t, snapshot, "Mount Vesuvius", 1)

	got := svc.CheckForNew(snapshot)
	if got == nil {
		t.Fatal("expected an achievement")
	}
	if len(repo.achievements) != 1 {
		t.Fatalf("persisted %d events, want 1", len(repo.achievements))
	}
	ev := repo.achievements[0]
	if ev.AchievementID != got.ID {
		t.Errorf("event id = %q, want %q", ev.AchievementID, got.ID)
	}
	if ev.Tier != string(got.Tier) {
		t.Errorf("event tier = %q, want %q", ev.Tier, got.Tier)
	}
}

func TestEarnedCount(t *testing.T) {
	cat := loadTestCatalog(t)
	svc := NewService(cat, savedata.NewMemory())
	snapshot := progress.NewFromCatalog(cat)

	if n := svc.EarnedCount(snapshot); n != 0 {
		t.Errorf("fresh EarnedCount = %d, want 0", n)
	}
	completeGames(t, snapshot, "Mount Vesuvius", 1)
	if n := svc.EarnedCount(snapshot); n != 2 {
		t.Errorf("EarnedCount after 1 game = %d, want 2", n)
	}
}
