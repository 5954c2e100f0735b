package solver

import "svw.info/sudokugen/domain"

// action is one entry of the reversible trail. A placed action undoes a grid
// write plus the mask the cell held before it; a bare action restores a
// single candidate mask changed by peer elimination or a propagation rule.
type action struct {
	pos    int
	mask   uint16
	placed bool
}

// State is the mutable working copy used by propagation and search: the grid,
// its candidate tracker, and a trail of reversible actions so backtracking
// restores exact candidate state without recomputation or full-grid clones.
type State struct {
	grid  domain.Grid
	track Tracker
	trail []action
}

// NewState copies g into a fresh working state.
func NewState(g domain.Grid) *State {
	st := &State{grid: g}
	st.track.Recompute(&st.grid)
	st.trail = make([]action, 0, 4*domain.CellCount)
	return st
}

// Grid returns a copy of the current working grid.
func (st *State) Grid() domain.Grid { return st.grid }

// Get returns the value at pos, 0 if empty.
func (st *State) Get(pos int) uint8 { return st.grid.Get(pos) }

// Empty reports whether pos holds no digit.
func (st *State) Empty(pos int) bool { return st.grid.Empty(pos) }

// EmptyCount returns the number of empty cells.
func (st *State) EmptyCount() int { return st.grid.EmptyCount() }

// Mask returns the candidate bitmask for pos.
func (st *State) Mask(pos int) uint16 { return st.track.Mask(pos) }

// Candidates lists the open digits for pos in ascending order.
func (st *State) Candidates(pos int) []uint8 { return st.track.Candidates(pos) }

// Place writes v at pos and strips it from peer masks, logging every change.
// The caller must have established that v is an open candidate at pos.
func (st *State) Place(pos int, v uint8) {
	st.trail = append(st.trail, action{pos: pos, mask: st.track.masks[pos], placed: true})
	st.grid.SetForce(pos, v)
	st.track.masks[pos] = 0
	bit := uint16(1) << v
	for _, p := range domain.Peers[pos] {
		if st.track.masks[p]&bit != 0 {
			st.trail = append(st.trail, action{pos: p, mask: st.track.masks[p]})
			st.track.masks[p] &^= bit
		}
	}
}

// Eliminate removes v from the candidates of pos, logging the prior mask.
// Reports whether anything changed.
func (st *State) Eliminate(pos int, v uint8) bool {
	bit := uint16(1) << v
	if st.track.masks[pos]&bit == 0 {
		return false
	}
	st.trail = append(st.trail, action{pos: pos, mask: st.track.masks[pos]})
	st.track.masks[pos] &^= bit
	return true
}

// Mark returns a trail position for a later Rewind.
func (st *State) Mark() int { return len(st.trail) }

// Rewind undoes every action logged since mark, newest first.
func (st *State) Rewind(mark int) {
	for i := len(st.trail) - 1; i >= mark; i-- {
		a := st.trail[i]
		if a.placed {
			st.grid.Clear(a.pos)
		}
		st.track.masks[a.pos] = a.mask
	}
	st.trail = st.trail[:mark]
}
