// Package achievements evaluates achievement definitions against progress
// state. Earned state is never stored — it is re-derived from completion
// counts on every query, so it can never go stale. Only the set of
// already-notified achievement IDs is persisted.
package achievements

import (
	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
)

// isEarned reports whether one definition is satisfied by the snapshot:
// completed games for its volcano (or across all volcanoes for the
// sentinel) have reached the required count.
func isEarned(def catalog.Achievement, snapshot []progress.VolcanoProgress) bool {
	return progress.CompletedGames(snapshot, def.Volcano) >= def.RequiredGames
}

// Earned returns every satisfied definition, in definition order. Pure:
// monotonic in completed-game count, no hidden state.
func Earned(defs []catalog.Achievement, snapshot []progress.VolcanoProgress) []catalog.Achievement {
	var earned []catalog.Achievement
	for _, def := range defs {
		if isEarned(def, snapshot) {
			earned = append(earned, def)
		}
	}
	return earned
}
