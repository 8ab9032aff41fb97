package progress

import (
	"reflect"
	"testing"

	"github.com/tectonhq/tecton/internal/catalog"
)

func TestSnapshotRoundTrip(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	original := NewFromCatalog(cat)
	original[0].Games[0].Completed = true
	original[0].Games[1].Completed = true
	original[1].Unlocked = true

	data, err := encodeSnapshot(original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := decodeSnapshot([]byte("{not json")); err == nil {
		t.Error("expected error decoding garbage")
	}
	if _, err := decodeSnapshot([]byte(`{"version":1,"volcanoes":[{"name":"X","games":[{"gameType":"karaoke"}]}]}`)); err == nil {
		t.Error("expected error for unknown game type")
	}
}

func TestReconcilePreservesProgressByName(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	saved := NewFromCatalog(cat)
	saved[0].Games[0].Completed = true // Vesuvius quiz
	saved[1].Unlocked = true           // St. Helens

	// Simulate a content update shuffling save order.
	shuffled := []VolcanoProgress{saved[2], saved[0], saved[1]}

	got := reconcile(NewFromCatalog(cat), shuffled)

	if !got[0].Games[0].Completed {
		t.Error("Vesuvius quiz completion lost in reconcile")
	}
	if !got[1].Unlocked {
		t.Error("St. Helens unlock lost in reconcile")
	}
}

func TestReconcileDropsUnknownVolcano(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	saved := []VolcanoProgress{
		{
			Name:     "Retired Peak",
			Order:    99,
			Unlocked: true,
			Games:    []GameProgress{{Name: "Old quiz", Type: catalog.GameQuiz, Completed: true}},
		},
	}

	got := reconcile(NewFromCatalog(cat), saved)
	for _, v := range got {
		if v.Name == "Retired Peak" {
			t.Fatal("unknown volcano should be dropped")
		}
	}
}

func TestReconcileKeepsFirstVolcanoUnlocked(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	saved := NewFromCatalog(cat)
	saved[0].Unlocked = false // corrupted flag in the save

	got := reconcile(NewFromCatalog(cat), saved)
	if !got[0].Unlocked {
		t.Error("minimum-order volcano must stay unlocked")
	}
}

func TestReconcileNewGameStartsIncomplete(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	// A save written before the volcano gained its builder game.
	saved := NewFromCatalog(cat)
	trimmed := saved[0]
	trimmed.Games = trimmed.Games[:2]
	for i := range trimmed.Games {
		trimmed.Games[i].Completed = true
	}

	got := reconcile(NewFromCatalog(cat), []VolcanoProgress{trimmed})

	if got[0].CompletedCount() != 2 {
		t.Errorf("completed count = %d, want 2", got[0].CompletedCount())
	}
	if got[0].AllCompleted() {
		t.Error("newly added game must start incomplete")
	}
}
