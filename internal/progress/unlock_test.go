package progress

import (
	"testing"

	"github.com/tectonhq/tecton/internal/catalog"
)

// chain returns three volcanoes at orders 1..3, first unlocked, with two
// games each.
func chain() []VolcanoProgress {
	mk := func(name string, order int, unlocked bool) VolcanoProgress {
		return VolcanoProgress{
			Name:     name,
			Order:    order,
			Unlocked: unlocked,
			Games: []GameProgress{
				{Name: name + " quiz", Type: catalog.GameQuiz},
				{Name: name + " puzzle", Type: catalog.GamePuzzle},
			},
		}
	}
	return []VolcanoProgress{
		mk("Alpha", 1, true),
		mk("Beta", 2, false),
		mk("Gamma", 3, false),
	}
}

func completeAll(v *VolcanoProgress) {
	for i := range v.Games {
		v.Games[i].Completed = true
	}
}

func TestNextToUnlockRequiresAllGames(t *testing.T) {
	vs := chain()
	vs[0].Games[0].Completed = true // one of two

	if got := nextToUnlock(vs, "Alpha"); got != -1 {
		t.Errorf("nextToUnlock = %d, want -1 with incomplete games", got)
	}
}

func TestNextToUnlockSingleStep(t *testing.T) {
	vs := chain()
	completeAll(&vs[0])

	got := nextToUnlock(vs, "Alpha")
	if got != 1 {
		t.Fatalf("nextToUnlock = %d, want 1 (Beta)", got)
	}
	// The rule never reaches past one level: Gamma stays untouched even
	// though Alpha is fully complete.
	if vs[2].Unlocked {
		t.Error("Gamma should not be unlocked by Alpha's completion")
	}
}

func TestNextToUnlockAlreadyUnlocked(t *testing.T) {
	vs := chain()
	completeAll(&vs[0])
	vs[1].Unlocked = true

	if got := nextToUnlock(vs, "Alpha"); got != -1 {
		t.Errorf("nextToUnlock = %d, want -1 when next is already unlocked", got)
	}
}

func TestNextToUnlockLastVolcano(t *testing.T) {
	vs := chain()
	completeAll(&vs[2])

	if got := nextToUnlock(vs, "Gamma"); got != -1 {
		t.Errorf("nextToUnlock = %d, want -1 at the end of the chain", got)
	}
}

func TestNextToUnlockUnknownVolcano(t *testing.T) {
	vs := chain()

	if got := nextToUnlock(vs, "Olympus Mons"); got != -1 {
		t.Errorf("nextToUnlock = %d, want -1 for unknown volcano", got)
	}
}

func TestNextToUnlockNeverWalksBackward(t *testing.T) {
	vs := chain()
	completeAll(&vs[2]) // later volcano finished first, somehow

	got := nextToUnlock(vs, "Gamma")
	if got != -1 {
		t.Fatalf("nextToUnlock = %d, want -1 (nothing after Gamma)", got)
	}
	if vs[1].Unlocked {
		t.Error("Beta must not unlock from a later volcano's completion")
	}
}

func TestNextToUnlockSkipsNoLevels(t *testing.T) {
	vs := chain()
	completeAll(&vs[1]) // Beta complete while still locked

	got := nextToUnlock(vs, "Beta")
	if got != 2 {
		t.Fatalf("nextToUnlock = %d, want 2 (Gamma is next after Beta)", got)
	}
	if vs[0].Unlocked != true {
		t.Error("Alpha unlock state must be untouched")
	}
}

func TestNextToUnlockToleratesOrderGaps(t *testing.T) {
	vs := chain()
	vs[2].Order = 7 // gap between 2 and 7
	completeAll(&vs[1])

	if got := nextToUnlock(vs, "Beta"); got != 2 {
		t.Errorf("nextToUnlock = %d, want 2 (next higher order despite gap)", got)
	}
}
