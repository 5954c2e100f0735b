package solver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"svw.info/sudokugen/domain"
)

func TestSolveSampleUnder1s(t *testing.T) {
	g := mustParse(t, sample)
	s := NewBacktrackingSolver(nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, st, err := s.Solve(ctx, g)
	if err != nil {
		t.Fatalf("Solve failed: %v (nodes=%d dur=%v)", err, st.Nodes, st.Duration)
	}
	if out.Encode() != solved {
		t.Fatalf("solution mismatch:\n got %s\nwant %s", out.Encode(), solved)
	}
	if err := out.Validate(); err != nil {
		t.Fatalf("invalid solution: %v", err)
	}
	if st.Duration > time.Second {
		t.Fatalf("took too long: %v (>1s)", st.Duration)
	}
	t.Logf("solved in %v, nodes=%d backtracks=%d branch=%d", st.Duration, st.Nodes, st.Backtracks, st.Branch)
}

func TestCountCompleteGridOne(t *testing.T) {
	g := mustParse(t, solved)
	s := NewBacktrackingSolver(nil)
	ctx := context.Background()

	n, _, err := s.Count(ctx, g)
	if err != nil || n != domain.One {
		t.Fatalf("Count = %v, %v; want one, nil", n, err)
	}
	out, _, err := s.Solve(ctx, g)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if out.Encode() != solved {
		t.Fatal("solving a complete grid must return it unchanged")
	}
}

func TestCountEmptyGridMany(t *testing.T) {
	s := NewBacktrackingSolver(nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	n, st, err := s.Count(ctx, domain.Grid{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != domain.Many {
		t.Fatalf("Count = %v, want many", n)
	}
	t.Logf("stopped after %d nodes", st.Nodes)
}

func TestCountUnsolvableZero(t *testing.T) {
	blank := strings.Repeat(".", domain.CellCount)
	g := mustParse(t, ".12345678"+"9........"+blank[2*domain.Size:])
	s := NewBacktrackingSolver(nil)

	n, _, err := s.Count(context.Background(), g)
	if err != nil || n != domain.Zero {
		t.Fatalf("Count = %v, %v; want zero, nil", n, err)
	}
	if _, _, err := s.Solve(context.Background(), g); !errors.Is(err, ErrNoSolution) {
		t.Fatalf("Solve err = %v, want ErrNoSolution", err)
	}
}

func TestBudgetExceededDistinctFromZero(t *testing.T) {
	s := NewBacktrackingSolver(&Options{MaxNodes: 3})
	_, _, err := s.Count(context.Background(), domain.Grid{})
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("Count err = %v, want ErrBudgetExceeded", err)
	}
}

// Clearing the 6/7 rectangle at rows 0 and 3, columns 3 and 4, leaves exactly
// two completions.
func TestEnumerateTwoSolutions(t *testing.T) {
	g := mustParse(t, solved)
	for _, pos := range []int{domain.Pos(0, 3), domain.Pos(0, 4), domain.Pos(3, 3), domain.Pos(3, 4)} {
		g.Clear(pos)
	}
	s := NewBacktrackingSolver(nil)
	ctx := context.Background()

	sols, _, err := s.Enumerate(ctx, g, 0)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(sols) != 2 {
		t.Fatalf("found %d solutions, want 2", len(sols))
	}
	if sols[0].Encode() == sols[1].Encode() {
		t.Fatal("enumerated solutions are identical")
	}
	n, _, err := s.Count(ctx, g)
	if err != nil || n != domain.Many {
		t.Fatalf("Count = %v, %v; want many, nil", n, err)
	}
}

func TestSolveRejectsInvalidGrid(t *testing.T) {
	blank := strings.Repeat(".", domain.CellCount)
	bad := "7......7." + blank[domain.Size:]
	if _, err := domain.Parse(bad); !errors.Is(err, domain.ErrInvalidGrid) {
		t.Fatal("test fixture should not parse")
	}
	// A grid smuggled past Parse still fails the solver's own validation.
	var g domain.Grid
	g.SetForce(domain.Pos(0, 0), 7)
	g.SetForce(domain.Pos(0, 7), 7)
	s := NewBacktrackingSolver(nil)
	if _, _, err := s.Solve(context.Background(), g); !errors.Is(err, domain.ErrInvalidGrid) {
		t.Fatalf("Solve err = %v, want ErrInvalidGrid", err)
	}
}

func TestSolveCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewBacktrackingSolver(nil)
	_, _, err := s.Solve(ctx, domain.Grid{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Solve err = %v, want context.Canceled", err)
	}
}
