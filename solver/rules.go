package solver

import (
	"errors"

	"svw.info/sudokugen/domain"
)

// errContradiction signals an unsatisfiable state to the propagation loop.
// It never escapes the solver package as an error value.
var errContradiction = errors.New("contradiction")

// Rule is one logical elimination strategy. Apply performs a single pass over
// the state, placing digits or shrinking candidate masks, and reports whether
// anything changed. Rules are idempotent individually and confluent as a set,
// so the propagation loop may run them in any order.
type Rule interface {
	Name() string
	Apply(st *State) (changed bool, err error)
}

// Exported rule instances. All are stateless and safe to share.
var (
	NakedSingle       Rule = nakedSingle{}
	HiddenSingleBoxes Rule = hiddenSingle{boxes: true}
	HiddenSingleLines Rule = hiddenSingle{rows: true, cols: true}
	LockedCandidates  Rule = lockedCandidates{}
)

// DefaultRules is the full propagation tier used by search.
func DefaultRules() []Rule {
	return []Rule{NakedSingle, HiddenSingleBoxes, HiddenSingleLines, LockedCandidates}
}

// nakedSingle fills any empty cell whose candidate set has exactly one digit.
type nakedSingle struct{}

func (nakedSingle) Name() string { return "naked-single" }

func (nakedSingle) Apply(st *State) (bool, error) {
	changed := false
	for pos := 0; pos < domain.CellCount; pos++ {
		if !st.Empty(pos) {
			continue
		}
		m := st.Mask(pos)
		if m == 0 {
			return changed, errContradiction
		}
		if m&(m-1) == 0 {
			st.Place(pos, lowestDigit(m))
			changed = true
		}
	}
	return changed, nil
}

// hiddenSingle fills a cell when it is the only spot in a region that can
// still hold a particular digit. It also detects the dual contradiction: a
// region missing a digit that no remaining cell can supply.
type hiddenSingle struct {
	rows, cols, boxes bool
}

func (h hiddenSingle) Name() string {
	if h.boxes && !h.rows {
		return "hidden-single-boxes"
	}
	if !h.boxes && h.rows {
		return "hidden-single-lines"
	}
	return "hidden-single"
}

func (h hiddenSingle) Apply(st *State) (bool, error) {
	changed := false
	scan := func(regions *[domain.Size][domain.Size]int) error {
		for i := 0; i < domain.Size; i++ {
			if err := hiddenScanRegion(st, &regions[i], &changed); err != nil {
				return err
			}
		}
		return nil
	}
	if h.rows {
		if err := scan(&domain.RowCells); err != nil {
			return changed, err
		}
	}
	if h.cols {
		if err := scan(&domain.ColCells); err != nil {
			return changed, err
		}
	}
	if h.boxes {
		if err := scan(&domain.BoxCells); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func hiddenScanRegion(st *State, cells *[domain.Size]int, changed *bool) error {
	var present uint16
	var count [domain.Size + 1]int
	var where [domain.Size + 1]int
	for _, pos := range cells {
		if v := st.Get(pos); v != 0 {
			present |= 1 << v
			continue
		}
		m := st.Mask(pos)
		for v := uint8(1); v <= domain.Size; v++ {
			if m&(1<<v) != 0 {
				count[v]++
				where[v] = pos
			}
		}
	}
	for v := uint8(1); v <= domain.Size; v++ {
		if present&(1<<v) != 0 {
			continue
		}
		switch count[v] {
		case 0:
			return errContradiction
		case 1:
			pos := where[v]
			// A placement earlier in this pass may have claimed the cell or
			// stripped the candidate; the next fixpoint iteration re-scans.
			if st.Empty(pos) && st.Mask(pos)&(1<<v) != 0 {
				st.Place(pos, v)
				*changed = true
			}
		}
	}
	return nil
}

// lockedCandidates applies pointing and claiming: when a digit's open
// positions within one region all fall inside the intersection with another
// region, the digit is eliminated from the rest of the other region.
type lockedCandidates struct{}

func (lockedCandidates) Name() string { return "locked-candidates" }

func (lockedCandidates) Apply(st *State) (bool, error) {
	changed := false
	// Pointing: digit confined to one row/col of a box leaves that line
	// outside the box.
	for b := 0; b < domain.Size; b++ {
		for v := uint8(1); v <= domain.Size; v++ {
			row, col, n := confinedLine(st, &domain.BoxCells[b], v)
			if n == 0 {
				continue
			}
			if row >= 0 {
				for _, pos := range domain.RowCells[row] {
					if domain.BoxOf(pos) != b && st.Eliminate(pos, v) {
						changed = true
					}
				}
			}
			if col >= 0 {
				for _, pos := range domain.ColCells[col] {
					if domain.BoxOf(pos) != b && st.Eliminate(pos, v) {
						changed = true
					}
				}
			}
		}
	}
	// Claiming: digit confined to one box of a row/col leaves the rest of
	// that box.
	claim := func(cells *[domain.Size]int) {
		for v := uint8(1); v <= domain.Size; v++ {
			box := confinedBox(st, cells, v)
			if box < 0 {
				continue
			}
			inLine := make(map[int]bool, domain.Size)
			for _, pos := range cells {
				inLine[pos] = true
			}
			for _, pos := range domain.BoxCells[box] {
				if !inLine[pos] && st.Eliminate(pos, v) {
					changed = true
				}
			}
		}
	}
	for i := 0; i < domain.Size; i++ {
		claim(&domain.RowCells[i])
		claim(&domain.ColCells[i])
	}
	return changed, nil
}

// confinedLine reports the single row and/or column holding every open
// position of v within the given box cells. A returned -1 means the
// positions span more than one row (resp. column); n is the position count.
func confinedLine(st *State, cells *[domain.Size]int, v uint8) (row, col, n int) {
	row, col = -2, -2
	for _, pos := range cells {
		if st.Empty(pos) && st.Mask(pos)&(1<<v) != 0 {
			r, c := domain.RC(pos)
			n++
			if row == -2 {
				row = r
			} else if row != r {
				row = -1
			}
			if col == -2 {
				col = c
			} else if col != c {
				col = -1
			}
		}
	}
	if row == -2 {
		row = -1
	}
	if col == -2 {
		col = -1
	}
	return row, col, n
}

// confinedBox returns the single box holding every open position of v within
// the given line cells, or -1 if there is none or more than one.
func confinedBox(st *State, cells *[domain.Size]int, v uint8) int {
	box := -2
	for _, pos := range cells {
		if st.Empty(pos) && st.Mask(pos)&(1<<v) != 0 {
			b := domain.BoxOf(pos)
			if box == -2 {
				box = b
			} else if box != b {
				return -1
			}
		}
	}
	if box == -2 {
		return -1
	}
	return box
}

func lowestDigit(m uint16) uint8 {
	for v := uint8(1); v <= domain.Size; v++ {
		if m&(1<<v) != 0 {
			return v
		}
	}
	return 0
}
