// Package progress owns the unlock/completion state for every volcano and
// mini-game: the only persisted domain state. A single Store instance is
// constructed at startup and threaded through the app; there is no package
// singleton.
package progress

import (
	"github.com/tectonhq/tecton/internal/catalog"
)

// GameProgress tracks completion of one mini-game on one volcano.
type GameProgress struct {
	Name      string
	Type      catalog.GameType
	Completed bool
}

// VolcanoProgress tracks unlock state and per-game completion for one
// volcano. Entries are created once from the catalog, mutated in place as
// games complete, and never destroyed — only reset.
type VolcanoProgress struct {
	Name     string
	Unlocked bool
	Order    int
	Games    []GameProgress
}

// CompletedCount returns how many of the volcano's games are completed.
func (v VolcanoProgress) CompletedCount() int {
	n := 0
	for _, g := range v.Games {
		if g.Completed {
			n++
		}
	}
	return n
}

// AllCompleted reports whether every game on the volcano is completed.
func (v VolcanoProgress) AllCompleted() bool {
	return len(v.Games) > 0 && v.CompletedCount() == len(v.Games)
}

// game returns a pointer to the volcano's entry for the given game type.
func (v *VolcanoProgress) game(t catalog.GameType) *GameProgress {
	for i := range v.Games {
		if v.Games[i].Type == t {
			return &v.Games[i]
		}
	}
	return nil
}

// NewFromCatalog builds the first-launch default state: every game
// incomplete and only the minimum-order volcano unlocked.
func NewFromCatalog(cat *catalog.Catalog) []VolcanoProgress {
	vs := cat.Volcanoes()
	list := make([]VolcanoProgress, 0, len(vs))
	first := cat.FirstOrder()
	for _, v := range vs {
		vp := VolcanoProgress{
			Name:     v.Name,
			Unlocked: v.Order == first,
			Order:    v.Order,
			Games:    make([]GameProgress, 0, len(v.Games)),
		}
		for _, g := range v.Games {
			vp.Games = append(vp.Games, GameProgress{Name: g.Title, Type: g.Type})
		}
		list = append(list, vp)
	}
	return list
}

// cloneProgress deep-copies a progress list so callers can hold a snapshot
// without observing later mutations.
func cloneProgress(list []VolcanoProgress) []VolcanoProgress {
	out := make([]VolcanoProgress, len(list))
	for i, v := range list {
		out[i] = v
		out[i].Games = make([]GameProgress, len(v.Games))
		copy(out[i].Games, v.Games)
	}
	return out
}

// CompletedGames sums completed games across a snapshot, counting only the
// named volcano, or every volcano when name is catalog.AllVolcanoes.
func CompletedGames(snapshot []VolcanoProgress, name string) int {
	n := 0
	for _, v := range snapshot {
		if name == catalog.AllVolcanoes || v.Name == name {
			n += v.CompletedCount()
		}
	}
	return n
}
