package solver

import (
	"context"
	"time"

	"svw.info/sudokugen/domain"
	"svw.info/sudokugen/ports"
)

// DLXSolver implements Algorithm X with dancing links as an alternative
// search engine. Exact-cover mapping for the 9×9 grid: 324 constraint
// columns, 729 candidate rows (r,c,v).
// Columns: 0..80    -> cell (r,c) is filled
//          81..161  -> row r has digit v
//          162..242 -> col c has digit v
//          243..323 -> box b has digit v
type DLXSolver struct {
	// MaxNodes bounds row selections during search; 0 means unlimited.
	MaxNodes int
}

func NewDLXSolver() *DLXSolver { return &DLXSolver{} }

const (
	dlxCols = 4 * domain.CellCount           // 324
	dlxRows = domain.CellCount * domain.Size // 729
)

type dlxNode struct {
	left, right, up, down *dlxNode
	col                   *dlxColumn
	rowIdx                int // 0..728 identifies (r,c,v)
}

type dlxColumn struct {
	dlxNode
	size   int
	active bool // uncovered
}

type dlxMatrix struct {
	cols      [dlxCols]*dlxColumn
	rowHead   [dlxRows]*dlxNode
	sol       [domain.CellCount]*dlxNode
	solLen    int
	nodes     int
	activeCnt int
}

func newDLXMatrix() *dlxMatrix {
	d := &dlxMatrix{}
	for i := 0; i < dlxCols; i++ {
		c := &dlxColumn{active: true}
		c.up = &c.dlxNode
		c.down = &c.dlxNode
		d.cols[i] = c
	}
	d.activeCnt = dlxCols

	for pos := 0; pos < domain.CellCount; pos++ {
		for v := uint8(1); v <= domain.Size; v++ {
			row := dlxRowIndex(pos, v)
			var first, prev *dlxNode
			for _, colID := range dlxRowColumns(pos, v) {
				col := d.cols[colID]
				n := &dlxNode{col: col, rowIdx: row}
				// vertical insert at the bottom of the column
				n.down = &col.dlxNode
				n.up = col.dlxNode.up
				col.dlxNode.up.down = n
				col.dlxNode.up = n
				col.size++
				// horizontal ring of the row's 4 nodes
				if first == nil {
					first = n
					n.left = n
					n.right = n
				} else {
					n.left = prev
					n.right = prev.right
					prev.right.left = n
					prev.right = n
				}
				prev = n
			}
			d.rowHead[row] = first
		}
	}
	return d
}

func dlxRowIndex(pos int, v uint8) int {
	return pos*domain.Size + int(v) - 1
}

func dlxRowColumns(pos int, v uint8) [4]int {
	r, c := domain.RC(pos)
	d := int(v) - 1
	return [4]int{
		pos,
		domain.CellCount + r*domain.Size + d,
		2*domain.CellCount + c*domain.Size + d,
		3*domain.CellCount + domain.BoxOf(pos)*domain.Size + d,
	}
}

func (d *dlxMatrix) cover(col *dlxColumn) {
	if col.active {
		col.active = false
		d.activeCnt--
	}
	for i := col.down; i != &col.dlxNode; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func (d *dlxMatrix) uncover(col *dlxColumn) {
	for i := col.up; i != &col.dlxNode; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	if !col.active {
		col.active = true
		d.activeCnt++
	}
}

// chooseColumn picks the active column with the smallest size.
func (d *dlxMatrix) chooseColumn() *dlxColumn {
	var best *dlxColumn
	for _, c := range d.cols {
		if c.active {
			if best == nil || c.size < best.size {
				best = c
				if best.size == 0 {
					break
				}
			}
		}
	}
	return best
}

func (d *dlxMatrix) search(ctx context.Context, k, wantCount, maxNodes int, found *int, budget *bool) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}
	if d.activeCnt == 0 {
		d.solLen = k
		*found++
		return wantCount > 0 && *found >= wantCount
	}

	c := d.chooseColumn()
	if c == nil || c.size == 0 {
		return false
	}
	d.cover(c)
	for r := c.down; r != &c.dlxNode; r = r.down {
		d.nodes++
		if maxNodes > 0 && d.nodes > maxNodes {
			*budget = true
			d.uncover(c)
			return true
		}
		d.sol[k] = r
		for j := r.right; j != r; j = j.right {
			if j.col.active {
				d.cover(j.col)
			}
		}
		if d.search(ctx, k+1, wantCount, maxNodes, found, budget) {
			for j := r.left; j != r; j = j.left {
				d.uncover(j.col)
			}
			d.uncover(c)
			return true
		}
		for j := r.left; j != r; j = j.left {
			d.uncover(j.col)
		}
	}
	d.uncover(c)
	return false
}

// applyGiven selects the (r,c,v) row for a clue by covering its columns.
func (d *dlxMatrix) applyGiven(pos int, v uint8) {
	head := d.rowHead[dlxRowIndex(pos, v)]
	for j := head; ; j = j.right {
		d.cover(j.col)
		if j.right == head {
			break
		}
	}
}

func (d *dlxMatrix) applyGrid(g domain.Grid) {
	for pos := 0; pos < domain.CellCount; pos++ {
		if v := g.Get(pos); v != 0 {
			d.applyGiven(pos, v)
		}
	}
}

func (s *DLXSolver) Solve(ctx context.Context, g domain.Grid) (domain.Grid, ports.Stats, error) {
	start := time.Now()
	if err := g.Validate(); err != nil {
		return domain.Grid{}, ports.Stats{Duration: time.Since(start)}, err
	}
	d := newDLXMatrix()
	d.applyGrid(g)
	found := 0
	budget := false
	_ = d.search(ctx, 0, 1, s.MaxNodes, &found, &budget)
	stats := ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}
	if budget {
		return domain.Grid{}, stats, ErrBudgetExceeded
	}
	if err := ctx.Err(); err != nil {
		return domain.Grid{}, stats, err
	}
	if found < 1 {
		return domain.Grid{}, stats, ErrNoSolution
	}
	// reconstruct: givens stay, chosen rows fill the rest
	out := g
	for i := 0; i < d.solLen; i++ {
		row := d.sol[i].rowIdx
		out.SetForce(row/domain.Size, uint8(row%domain.Size)+1)
	}
	return out, stats, nil
}

func (s *DLXSolver) Count(ctx context.Context, g domain.Grid) (domain.SolutionCount, ports.Stats, error) {
	start := time.Now()
	if err := g.Validate(); err != nil {
		return domain.Zero, ports.Stats{Duration: time.Since(start)}, err
	}
	d := newDLXMatrix()
	d.applyGrid(g)
	found := 0
	budget := false
	_ = d.search(ctx, 0, 2, s.MaxNodes, &found, &budget)
	stats := ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}
	if budget {
		return domain.Zero, stats, ErrBudgetExceeded
	}
	if err := ctx.Err(); err != nil {
		return domain.Zero, stats, err
	}
	switch {
	case found == 0:
		return domain.Zero, stats, nil
	case found == 1:
		return domain.One, stats, nil
	}
	return domain.Many, stats, nil
}
