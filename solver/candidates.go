package solver

import (
	"math/bits"

	"svw.info/sudokugen/domain"
)

// allCandidates has bits 1..Size set; bit v set means digit v is still open.
const allCandidates uint16 = ((1 << domain.Size) - 1) << 1

// Tracker maintains, for each empty cell, the set of digits not yet ruled out
// by that cell's row, column, or box. Filled cells carry a zero mask and are
// no longer tracked.
type Tracker struct {
	masks [domain.CellCount]uint16
}

// NewTracker builds a tracker for the given grid.
func NewTracker(g *domain.Grid) *Tracker {
	t := &Tracker{}
	t.Recompute(g)
	return t
}

// Recompute rebuilds every mask from scratch for an arbitrary grid.
func (t *Tracker) Recompute(g *domain.Grid) {
	for pos := 0; pos < domain.CellCount; pos++ {
		if g.Empty(pos) {
			t.masks[pos] = computeMask(g, pos)
		} else {
			t.masks[pos] = 0
		}
	}
}

// Mask returns the candidate bitmask for a cell; 0 for filled cells.
func (t *Tracker) Mask(pos int) uint16 { return t.masks[pos] }

// Count returns the number of open candidates for a cell.
func (t *Tracker) Count(pos int) int { return bits.OnesCount16(t.masks[pos]) }

// Candidates lists a cell's open digits in ascending order.
func (t *Tracker) Candidates(pos int) []uint8 {
	m := t.masks[pos]
	out := make([]uint8, 0, bits.OnesCount16(m))
	for v := uint8(1); v <= domain.Size; v++ {
		if m&(1<<v) != 0 {
			out = append(out, v)
		}
	}
	return out
}

// Place records that v was written at pos: the cell leaves tracking and v is
// stripped from every peer's mask. Call after the grid itself was updated.
func (t *Tracker) Place(pos int, v uint8) {
	t.masks[pos] = 0
	bit := uint16(1) << v
	for _, p := range domain.Peers[pos] {
		t.masks[p] &^= bit
	}
}

// Unplace records that the digit at pos was cleared. Peer masks are
// recomputed from the grid rather than re-adding the digit: a peer may have
// the same digit ruled out by another region entirely, so blind re-addition
// is unsound. Call after the grid itself was cleared.
func (t *Tracker) Unplace(g *domain.Grid, pos int) {
	t.masks[pos] = computeMask(g, pos)
	for _, p := range domain.Peers[pos] {
		if g.Empty(p) {
			t.masks[p] = computeMask(g, p)
		}
	}
}

func computeMask(g *domain.Grid, pos int) uint16 {
	m := allCandidates
	for _, p := range domain.Peers[pos] {
		if v := g.Get(p); v != 0 {
			m &^= 1 << v
		}
	}
	return m
}
