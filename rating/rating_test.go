package rating

import (
	"context"
	"errors"
	"strings"
	"testing"

	"svw.info/sudokugen/domain"
	"svw.info/sudokugen/solver"
	"svw.info/sudokugen/transform"
)

const solved = "" +
	"534678912" +
	"672195348" +
	"198342567" +
	"859761423" +
	"426853791" +
	"713924856" +
	"961537284" +
	"287419635" +
	"345286179"

func mustParse(t *testing.T, s string) domain.Grid {
	t.Helper()
	g, err := domain.Parse(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return g
}

func TestRateCompleteGridTrivial(t *testing.T) {
	r, err := New().Rate(context.Background(), mustParse(t, solved))
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if r.Difficulty != domain.Trivial || r.Score != 0 {
		t.Fatalf("Rate = %+v, want trivial with score 0", r)
	}
}

func TestRateNakedSinglesTrivial(t *testing.T) {
	// A handful of cleared cells that naked singles alone refill.
	g := mustParse(t, solved)
	for _, pos := range []int{0, 40, 80} {
		g.Clear(pos)
	}
	r, err := New().Rate(context.Background(), g)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if r.Difficulty != domain.Trivial {
		t.Fatalf("difficulty = %v, want trivial", r.Difficulty)
	}
	if r.Score != 3 {
		t.Fatalf("score = %d, want the empty-cell count 3", r.Score)
	}
}

func TestRateEmptyGridExpert(t *testing.T) {
	// No propagation tier places anything on an empty grid, so rating must
	// fall through to search.
	r, err := New().Rate(context.Background(), domain.Grid{})
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if r.Difficulty != domain.Expert {
		t.Fatalf("difficulty = %v, want expert", r.Difficulty)
	}
	if r.Score < domain.CellCount {
		t.Fatalf("score = %d, want at least the empty-cell count", r.Score)
	}
}

func TestRateUnsolvable(t *testing.T) {
	blank := strings.Repeat(".", domain.CellCount)
	g := mustParse(t, ".12345678"+"9........"+blank[2*domain.Size:])
	if _, err := New().Rate(context.Background(), g); !errors.Is(err, solver.ErrNoSolution) {
		t.Fatalf("Rate err = %v, want ErrNoSolution", err)
	}
}

func TestRatePreservedUnderTransforms(t *testing.T) {
	// Difficulty is defined by which rule tiers apply, and every symmetry
	// maps rows/columns/boxes onto rows/columns/boxes.
	g := mustParse(t, ""+
		"53..7...."+
		"6..195..."+
		".98....6."+
		"8...6...3"+
		"4..8.3..1"+
		"7...2...6"+
		".6....28."+
		"...419..5"+
		"....8..79")

	e := New()
	base, err := e.Rate(context.Background(), g)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	relabeled, err := transform.Relabel([]uint8{9, 8, 7, 6, 5, 4, 3, 2, 1})
	if err != nil {
		t.Fatalf("Relabel failed: %v", err)
	}
	ops := []transform.Op{
		transform.Transpose,
		transform.Rotate90,
		transform.Rotate180,
		transform.ReflectRows,
		transform.SwapBands(0, 2),
		transform.SwapColsInStack(1, 0, 2),
		relabeled,
	}
	for _, op := range ops {
		t.Run(op.String(), func(t *testing.T) {
			r, err := e.Rate(context.Background(), op.Apply(g))
			if err != nil {
				t.Fatalf("Rate failed: %v", err)
			}
			if r.Difficulty != base.Difficulty {
				t.Fatalf("difficulty under %s = %v, want %v", op, r.Difficulty, base.Difficulty)
			}
		})
	}
}
