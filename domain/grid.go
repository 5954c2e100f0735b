package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Blank is the canonical empty-cell marker in the interchange encoding.
const Blank = '.'

// Grid holds current cell values in row-major order, 0 meaning empty.
// Grid is a value type; working copies used by the solver and generator are
// plain assignments, so a validated grid handed to a caller never changes
// underneath them.
type Grid struct {
	cells [CellCount]uint8
}

// Parse builds a Grid from the flat interchange encoding: Size*Size symbols
// in row-major order, each a digit '1'..'9' or a blank marker ('.' or '0').
// Whitespace is ignored. The result is fully validated.
func Parse(s string) (Grid, error) {
	var g Grid
	i := 0
	for _, ch := range s {
		switch {
		case ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r':
			continue
		case ch == Blank || ch == '0':
			// empty cell
		case ch >= '1' && ch <= '0'+Size:
			if i < CellCount {
				g.cells[i] = uint8(ch - '0')
			}
		default:
			return Grid{}, fmt.Errorf("%w: unexpected symbol %q at cell %d", ErrInvalidGrid, ch, i)
		}
		i++
	}
	if i != CellCount {
		return Grid{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidGrid, i, CellCount)
	}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// FromValues builds a Grid from a raw sequence of Size*Size values, 0 meaning
// empty. The result is fully validated.
func FromValues(vals []uint8) (Grid, error) {
	if len(vals) != CellCount {
		return Grid{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidGrid, len(vals), CellCount)
	}
	var g Grid
	for i, v := range vals {
		if v > Size {
			return Grid{}, fmt.Errorf("%w: value %d out of range at cell %d", ErrInvalidGrid, v, i)
		}
		g.cells[i] = v
	}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Encode renders the canonical interchange form: digits for filled cells and
// '.' for empty ones. Parse(g.Encode()) reproduces g exactly.
func (g Grid) Encode() string {
	var b strings.Builder
	b.Grow(CellCount)
	for _, v := range g.cells {
		if v == 0 {
			b.WriteByte(Blank)
		} else {
			b.WriteByte('0' + v)
		}
	}
	return b.String()
}

func (g Grid) String() string { return g.Encode() }

// MarshalJSON renders the grid as its interchange string; UnmarshalJSON
// parses and validates it. The 81-symbol encoding is the sole exchange
// format with serialization layers.
func (g Grid) MarshalJSON() ([]byte, error) { return json.Marshal(g.Encode()) }

func (g *Grid) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Get returns the value at a row-major cell index, 0 if empty.
func (g Grid) Get(pos int) uint8 { return g.cells[pos] }

// At returns the value at (row, col), 0 if empty.
func (g Grid) At(r, c int) uint8 { return g.cells[Pos(r, c)] }

// Empty reports whether the cell at pos holds no digit.
func (g Grid) Empty(pos int) bool { return g.cells[pos] == 0 }

// EmptyCount returns the number of empty cells.
func (g Grid) EmptyCount() int {
	n := 0
	for _, v := range g.cells {
		if v == 0 {
			n++
		}
	}
	return n
}

// Complete reports whether every cell is filled.
func (g Grid) Complete() bool { return g.EmptyCount() == 0 }

// Place writes v into an empty cell if and only if no row, column, or box
// invariant breaks. On failure it returns ErrConflict and the grid is
// untouched.
func (g *Grid) Place(pos int, v uint8) error {
	if v < 1 || v > Size {
		return fmt.Errorf("%w: digit %d out of range", ErrConflict, v)
	}
	if g.cells[pos] != 0 {
		return fmt.Errorf("%w: cell %d already holds %d", ErrConflict, pos, g.cells[pos])
	}
	for _, p := range Peers[pos] {
		if g.cells[p] == v {
			return fmt.Errorf("%w: digit %d already at cell %d", ErrConflict, v, p)
		}
	}
	g.cells[pos] = v
	return nil
}

// SetForce writes v into a cell without any invariant check. It exists for
// engine working copies that have already proven the placement legal.
func (g *Grid) SetForce(pos int, v uint8) { g.cells[pos] = v }

// Clear resets a cell back to empty. Always permitted.
func (g *Grid) Clear(pos int) { g.cells[pos] = 0 }

// Validate checks every row, column, and box for duplicate digits and every
// cell for range. Returns nil or ErrInvalidGrid with the first offence.
func (g Grid) Validate() error {
	for pos, v := range g.cells {
		if v > Size {
			return fmt.Errorf("%w: value %d out of range at cell %d", ErrInvalidGrid, v, pos)
		}
	}
	check := func(kind string, regions *[Size][Size]int) error {
		for i := 0; i < Size; i++ {
			m := 0
			for _, pos := range regions[i] {
				v := g.cells[pos]
				if v == 0 {
					continue
				}
				bit := 1 << v
				if m&bit != 0 {
					r, c := RC(pos)
					return fmt.Errorf("%w: digit %d repeated in %s %d at (%d,%d)", ErrInvalidGrid, v, kind, i, r, c)
				}
				m |= bit
			}
		}
		return nil
	}
	if err := check("row", &RowCells); err != nil {
		return err
	}
	if err := check("column", &ColCells); err != nil {
		return err
	}
	return check("box", &BoxCells)
}

// Conflicts lists every cell whose digit duplicates another in its row,
// column, or box, in ascending cell order. Empty for a valid grid. Unlike
// Validate, which stops at the first offence, this reports all of them, for
// callers that surface conflicts to a user.
func (g Grid) Conflicts() []CellCoord {
	var bad [CellCount]bool
	mark := func(regions *[Size][Size]int) {
		for i := 0; i < Size; i++ {
			var first [Size + 1]int
			for v := range first {
				first[v] = -1
			}
			for _, pos := range regions[i] {
				v := g.cells[pos]
				if v == 0 {
					continue
				}
				if p := first[v]; p >= 0 {
					bad[p] = true
					bad[pos] = true
				} else {
					first[v] = pos
				}
			}
		}
	}
	mark(&RowCells)
	mark(&ColCells)
	mark(&BoxCells)

	var out []CellCoord
	for pos, b := range bad {
		if b {
			r, c := RC(pos)
			out = append(out, CellCoord{Row: r, Col: c})
		}
	}
	return out
}
