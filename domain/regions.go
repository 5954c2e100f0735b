package domain

// Grid geometry. BoxSize is the single point of change for other board
// orders; everything below derives from it.
const (
	BoxSize   = 3
	Size      = BoxSize * BoxSize // 9
	CellCount = Size * Size       // 81
)

// Pos converts (row, col) to a row-major cell index.
func Pos(r, c int) int { return r*Size + c }

// RC converts a row-major cell index back to (row, col).
func RC(pos int) (r, c int) { return pos / Size, pos % Size }

// BoxOf returns the box index (0..Size-1) containing pos.
func BoxOf(pos int) int {
	r, c := RC(pos)
	return (r/BoxSize)*BoxSize + c/BoxSize
}

// Read-only region tables, computed once at startup and shared by every
// component. Never mutated after init.
var (
	// RowCells[r], ColCells[c], BoxCells[b] list the cell indices of the
	// corresponding region in row-major order.
	RowCells [Size][Size]int
	ColCells [Size][Size]int
	BoxCells [Size][Size]int

	// Peers[pos] lists the 20 cells sharing a row, column, or box with pos,
	// excluding pos itself, in ascending order.
	Peers [CellCount][]int
)

func init() {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			pos := Pos(r, c)
			RowCells[r][c] = pos
			ColCells[c][r] = pos
			b := BoxOf(pos)
			br, bc := (r/BoxSize)*BoxSize, (c/BoxSize)*BoxSize
			BoxCells[b][(r-br)*BoxSize+(c-bc)] = pos
		}
	}
	for pos := 0; pos < CellCount; pos++ {
		r, c := RC(pos)
		b := BoxOf(pos)
		seen := make(map[int]bool, 3*Size)
		for i := 0; i < Size; i++ {
			seen[RowCells[r][i]] = true
			seen[ColCells[c][i]] = true
			seen[BoxCells[b][i]] = true
		}
		delete(seen, pos)
		peers := make([]int, 0, len(seen))
		for p := 0; p < CellCount; p++ {
			if seen[p] {
				peers = append(peers, p)
			}
		}
		Peers[pos] = peers
	}
}
