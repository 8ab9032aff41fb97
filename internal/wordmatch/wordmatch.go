// Package wordmatch implements the term-to-definition matching mini-game.
// A match succeeds when the dragged item's term equals the target zone's
// term; matched pairs leave the candidate pool and the game completes when
// every zone is matched.
package wordmatch

import (
	"math/rand/v2"

	"github.com/tectonhq/tecton/internal/catalog"
)

// Status is the lifecycle phase of a match run.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusCompleted
)

// Item is a draggable term card.
type Item struct {
	ID   int
	Term string
}

// Zone is a definition drop target. Term is the label the item must carry.
type Zone struct {
	ID         int
	Term       string
	Definition string
	Matched    bool
}

// Game is one matching run over a fixed pair list.
type Game struct {
	status  Status
	items   []Item // unmatched candidate pool
	zones   []Zone
	matched int
	misses  int
}

// New builds a match run. Item i and zone i carry the term of pair i, but
// matching goes by term equality, not by shared index.
func New(pairs []catalog.MatchPair) *Game {
	g := &Game{
		items: make([]Item, 0, len(pairs)),
		zones: make([]Zone, 0, len(pairs)),
	}
	for i, p := range pairs {
		g.items = append(g.items, Item{ID: i, Term: p.Term})
		g.zones = append(g.zones, Zone{ID: i, Term: p.Term, Definition: p.Definition})
	}
	return g
}

// Start begins the run and shuffles the item pool so terms don't line up
// with their zones. Only valid from NotStarted.
func (g *Game) Start() {
	if g.status != StatusNotStarted {
		return
	}
	rand.Shuffle(len(g.items), func(i, j int) {
		g.items[i], g.items[j] = g.items[j], g.items[i]
	})
	if len(g.zones) == 0 {
		g.status = StatusCompleted
		return
	}
	g.status = StatusInProgress
}

// AttemptMatch drops an item onto a zone. It succeeds iff the item's term
// equals the zone's term; the matched item leaves the pool and the zone is
// marked. A term mismatch counts as a miss. Stale references (an already
// matched item or zone) are ignored without counting a miss.
func (g *Game) AttemptMatch(itemID, zoneID int) bool {
	if g.status != StatusInProgress {
		return false
	}
	itemIdx := -1
	for i, it := range g.items {
		if it.ID == itemID {
			itemIdx = i
			break
		}
	}
	if itemIdx == -1 {
		return false
	}
	zoneIdx := -1
	for i, z := range g.zones {
		if z.ID == zoneID {
			zoneIdx = i
			break
		}
	}
	if zoneIdx == -1 || g.zones[zoneIdx].Matched {
		return false
	}

	if g.items[itemIdx].Term != g.zones[zoneIdx].Term {
		g.misses++
		return false
	}

	g.zones[zoneIdx].Matched = true
	g.items = append(g.items[:itemIdx], g.items[itemIdx+1:]...)
	g.matched++
	if g.matched == len(g.zones) {
		g.status = StatusCompleted
	}
	return true
}

// Status returns the current lifecycle phase.
func (g *Game) Status() Status {
	return g.status
}

// Items returns the remaining unmatched candidate pool.
func (g *Game) Items() []Item {
	out := make([]Item, len(g.items))
	copy(out, g.items)
	return out
}

// Zones returns every drop zone with its matched flag.
func (g *Game) Zones() []Zone {
	out := make([]Zone, len(g.zones))
	copy(out, g.zones)
	return out
}

// MatchedCount returns how many zones are matched.
func (g *Game) MatchedCount() int {
	return g.matched
}

// Total returns the number of zones.
func (g *Game) Total() int {
	return len(g.zones)
}

// Misses returns how many mismatched drops have happened.
func (g *Game) Misses() int {
	return g.misses
}
