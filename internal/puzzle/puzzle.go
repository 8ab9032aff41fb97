// Package puzzle implements the free-placement mini-game used by both the
// tile puzzle and the volcano builder. Any piece can go in any slot; the
// game completes when every piece is placed, and correctness is surfaced
// only as a hint, never as a completion gate.
package puzzle

import "math/rand/v2"

// Status is the lifecycle phase of a puzzle run.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusCompleted
)

const emptySlot = -1

// Piece is one placeable element. Home is the slot it belongs in.
type Piece struct {
	ID    int
	Label string
	Home  int
}

// Game is one placement run. Pieces move between a tray and a slot grid
// with exactly one slot per piece.
type Game struct {
	status Status
	pieces []Piece // indexed by piece ID
	slots  []int   // slot -> piece ID, emptySlot when vacant
	tray   []int   // unplaced piece IDs in display order
}

// New builds a run from labels where piece i belongs in slot i. The tile
// puzzle passes tile labels in row-major order; the builder passes layer
// names bottom to top.
func New(labels []string) *Game {
	g := &Game{
		pieces: make([]Piece, len(labels)),
		slots:  make([]int, len(labels)),
		tray:   make([]int, len(labels)),
	}
	for i, label := range labels {
		g.pieces[i] = Piece{ID: i, Label: label, Home: i}
		g.slots[i] = emptySlot
		g.tray[i] = i
	}
	return g
}

// Start begins the run and shuffles the tray. Only valid from NotStarted.
func (g *Game) Start() {
	if g.status != StatusNotStarted {
		return
	}
	rand.Shuffle(len(g.tray), func(i, j int) {
		g.tray[i], g.tray[j] = g.tray[j], g.tray[i]
	})
	if len(g.pieces) == 0 {
		g.status = StatusCompleted
		return
	}
	g.status = StatusInProgress
}

// PlacePiece puts a piece into a slot. Placement is free: any piece fits
// any slot, and placing onto an occupied slot evicts the occupant back to
// the tray. The piece may come from the tray or from another slot. Only
// structural invalidity (unknown piece, slot out of range) fails. The run
// completes the moment the tray is empty.
func (g *Game) PlacePiece(pieceID, slot int) bool {
	if g.status != StatusInProgress {
		return false
	}
	if pieceID < 0 || pieceID >= len(g.pieces) || slot < 0 || slot >= len(g.slots) {
		return false
	}
	if g.slots[slot] == pieceID {
		return true
	}

	if occupant := g.slots[slot]; occupant != emptySlot {
		g.tray = append(g.tray, occupant)
	}

	// Clear the piece's previous location.
	for i, id := range g.tray {
		if id == pieceID {
			g.tray = append(g.tray[:i], g.tray[i+1:]...)
			break
		}
	}
	for i, id := range g.slots {
		if id == pieceID {
			g.slots[i] = emptySlot
			break
		}
	}

	g.slots[slot] = pieceID
	if len(g.tray) == 0 {
		g.status = StatusCompleted
	}
	return true
}

// Status returns the current lifecycle phase.
func (g *Game) Status() Status {
	return g.status
}

// Tray returns the unplaced pieces in display order.
func (g *Game) Tray() []Piece {
	out := make([]Piece, len(g.tray))
	for i, id := range g.tray {
		out[i] = g.pieces[id]
	}
	return out
}

// Slots returns the slot contents as piece IDs, -1 for vacant slots.
func (g *Game) Slots() []int {
	out := make([]int, len(g.slots))
	copy(out, g.slots)
	return out
}

// PieceAt returns the piece occupying a slot.
func (g *Game) PieceAt(slot int) (Piece, bool) {
	if slot < 0 || slot >= len(g.slots) || g.slots[slot] == emptySlot {
		return Piece{}, false
	}
	return g.pieces[g.slots[slot]], true
}

// PlacedCount returns how many pieces are on the board.
func (g *Game) PlacedCount() int {
	return len(g.pieces) - len(g.tray)
}

// Total returns the number of pieces.
func (g *Game) Total() int {
	return len(g.pieces)
}

// CorrectCount returns how many placed pieces sit in their home slot.
// Purely informational: completion does not depend on it.
func (g *Game) CorrectCount() int {
	n := 0
	for slot, id := range g.slots {
		if id != emptySlot && g.pieces[id].Home == slot {
			n++
		}
	}
	return n
}
