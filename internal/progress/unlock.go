package progress

// nextToUnlock applies the single-step unlock rule: if the named volcano now
// has all of its games completed, the locked volcano at the next higher
// order becomes eligible. Returns the index of that volcano, or -1 when the
// call changes nothing.
//
// Evaluation walks at most one step forward. Completions arrive one at a
// time, so a transitive cascade can never be needed: each level's unlock is
// evaluated on the completion that earned it.
func nextToUnlock(volcanoes []VolcanoProgress, completedName string) int {
	src := -1
	for i := range volcanoes {
		if volcanoes[i].Name == completedName {
			src = i
			break
		}
	}
	if src == -1 || !volcanoes[src].AllCompleted() {
		return -1
	}

	next := -1
	for i := range volcanoes {
		if volcanoes[i].Order <= volcanoes[src].Order {
			continue
		}
		if next == -1 || volcanoes[i].Order < volcanoes[next].Order {
			next = i
		}
	}
	if next == -1 || volcanoes[next].Unlocked {
		return -1
	}
	return next
}
