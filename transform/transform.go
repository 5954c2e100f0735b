// Package transform produces puzzle-equivalent grids via symmetry
// operations. Every Op is a bijection over cell coordinates and/or digit
// labels, so validity and solution count are preserved by construction; no
// search is involved.
package transform

import (
	"fmt"
	"strings"

	"svw.info/sudokugen/domain"
)

// Op maps a grid to an equivalent one and knows its own inverse.
type Op interface {
	Apply(g domain.Grid) domain.Grid
	Inverse() Op
	String() string
}

// Apply is a convenience wrapper matching the facade's transform operation.
func Apply(g domain.Grid, op Op) domain.Grid { return op.Apply(g) }

// cellMap builds a grid whose cell (r,c) takes its value from src(r,c).
func cellMap(g domain.Grid, src func(r, c int) (int, int)) domain.Grid {
	var out domain.Grid
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			sr, sc := src(r, c)
			if v := g.At(sr, sc); v != 0 {
				out.SetForce(domain.Pos(r, c), v)
			}
		}
	}
	return out
}

// geometric identifies one of the fixed coordinate symmetries.
type geometric int

const (
	gTranspose geometric = iota
	gReflectRows
	gReflectCols
	gRotate90
	gRotate180
	gRotate270
)

var geomDefs = [...]struct {
	name string
	src  func(r, c int) (int, int)
	inv  geometric
}{
	gTranspose:   {"transpose", func(r, c int) (int, int) { return c, r }, gTranspose},
	gReflectRows: {"reflect-rows", func(r, c int) (int, int) { return domain.Size - 1 - r, c }, gReflectRows},
	gReflectCols: {"reflect-cols", func(r, c int) (int, int) { return r, domain.Size - 1 - c }, gReflectCols},
	gRotate90:    {"rotate-90", func(r, c int) (int, int) { return domain.Size - 1 - c, r }, gRotate270},
	gRotate180:   {"rotate-180", func(r, c int) (int, int) { return domain.Size - 1 - r, domain.Size - 1 - c }, gRotate180},
	gRotate270:   {"rotate-270", func(r, c int) (int, int) { return c, domain.Size - 1 - r }, gRotate90},
}

func (g geometric) Apply(grid domain.Grid) domain.Grid { return cellMap(grid, geomDefs[g].src) }
func (g geometric) Inverse() Op                        { return geomDefs[g].inv }
func (g geometric) String() string                     { return geomDefs[g].name }

// Geometric operations. Rotations are clockwise.
var (
	Transpose   Op = gTranspose
	ReflectRows Op = gReflectRows
	ReflectCols Op = gReflectCols
	Rotate90    Op = gRotate90
	Rotate180   Op = gRotate180
	Rotate270   Op = gRotate270
)

// named backs the parameterized swap operations, which are their own
// inverses.
type named struct {
	name string
	src  func(r, c int) (int, int)
	inv  func() Op
}

func (n named) Apply(g domain.Grid) domain.Grid { return cellMap(g, n.src) }
func (n named) Inverse() Op                     { return n.inv() }
func (n named) String() string                  { return n.name }

// SwapBands exchanges two bands (groups of BoxSize rows); a and b in
// 0..BoxSize-1.
func SwapBands(a, b int) Op {
	mustGroup("band", a, b)
	return named{
		fmt.Sprintf("swap-bands(%d,%d)", a, b),
		func(r, c int) (int, int) { return swapGroup(r, a, b), c },
		func() Op { return SwapBands(a, b) },
	}
}

// SwapStacks exchanges two stacks (groups of BoxSize columns).
func SwapStacks(a, b int) Op {
	mustGroup("stack", a, b)
	return named{
		fmt.Sprintf("swap-stacks(%d,%d)", a, b),
		func(r, c int) (int, int) { return r, swapGroup(c, a, b) },
		func() Op { return SwapStacks(a, b) },
	}
}

// SwapRowsInBand exchanges rows a and b (0..BoxSize-1) inside one band.
func SwapRowsInBand(band, a, b int) Op {
	mustGroup("row", a, b)
	mustGroup("band", band, 0)
	ra, rb := band*domain.BoxSize+a, band*domain.BoxSize+b
	return named{
		fmt.Sprintf("swap-rows(band %d: %d,%d)", band, a, b),
		func(r, c int) (int, int) { return swapIndex(r, ra, rb), c },
		func() Op { return SwapRowsInBand(band, a, b) },
	}
}

// SwapColsInStack exchanges columns a and b (0..BoxSize-1) inside one stack.
func SwapColsInStack(stack, a, b int) Op {
	mustGroup("col", a, b)
	mustGroup("stack", stack, 0)
	ca, cb := stack*domain.BoxSize+a, stack*domain.BoxSize+b
	return named{
		fmt.Sprintf("swap-cols(stack %d: %d,%d)", stack, a, b),
		func(r, c int) (int, int) { return r, swapIndex(c, ca, cb) },
		func() Op { return SwapColsInStack(stack, a, b) },
	}
}

// relabel substitutes every digit v with perm[v-1].
type relabel struct {
	perm [domain.Size]uint8
}

// Relabel builds a digit-relabeling Op from a bijection over 1..Size given as
// perm[v-1] = image of v. Fails if perm is not a permutation.
func Relabel(perm []uint8) (Op, error) {
	if len(perm) != domain.Size {
		return nil, fmt.Errorf("relabel: got %d digits, want %d", len(perm), domain.Size)
	}
	var op relabel
	var seen [domain.Size + 1]bool
	for i, v := range perm {
		if v < 1 || v > domain.Size || seen[v] {
			return nil, fmt.Errorf("relabel: %v is not a permutation of 1..%d", perm, domain.Size)
		}
		seen[v] = true
		op.perm[i] = v
	}
	return op, nil
}

func (op relabel) Apply(g domain.Grid) domain.Grid {
	var out domain.Grid
	for pos := 0; pos < domain.CellCount; pos++ {
		if v := g.Get(pos); v != 0 {
			out.SetForce(pos, op.perm[v-1])
		}
	}
	return out
}

func (op relabel) Inverse() Op {
	var inv relabel
	for i, v := range op.perm {
		inv.perm[v-1] = uint8(i + 1)
	}
	return inv
}

func (op relabel) String() string { return fmt.Sprintf("relabel%v", op.perm) }

// Sequence composes operations left to right.
type Sequence []Op

func (s Sequence) Apply(g domain.Grid) domain.Grid {
	for _, op := range s {
		g = op.Apply(g)
	}
	return g
}

func (s Sequence) Inverse() Op {
	inv := make(Sequence, len(s))
	for i, op := range s {
		inv[len(s)-1-i] = op.Inverse()
	}
	return inv
}

func (s Sequence) String() string {
	names := make([]string, len(s))
	for i, op := range s {
		names[i] = op.String()
	}
	return strings.Join(names, " + ")
}

func swapGroup(i, a, b int) int {
	switch i / domain.BoxSize {
	case a:
		return b*domain.BoxSize + i%domain.BoxSize
	case b:
		return a*domain.BoxSize + i%domain.BoxSize
	}
	return i
}

func swapIndex(i, a, b int) int {
	switch i {
	case a:
		return b
	case b:
		return a
	}
	return i
}

func mustGroup(kind string, a, b int) {
	if a < 0 || a >= domain.BoxSize || b < 0 || b >= domain.BoxSize {
		panic(fmt.Sprintf("transform: %s index out of range", kind))
	}
}
