package solver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"svw.info/sudokugen/domain"
)

func TestDLXSolveAgreesWithBacktracking(t *testing.T) {
	g := mustParse(t, sample)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	d := NewDLXSolver()
	got, st, err := d.Solve(ctx, g)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if got.Encode() != solved {
		t.Fatalf("solution mismatch:\n got %s\nwant %s", got.Encode(), solved)
	}
	t.Logf("dlx nodes=%d dur=%v", st.Nodes, st.Duration)
}

func TestDLXCount(t *testing.T) {
	d := NewDLXSolver()
	ctx := context.Background()

	cases := []struct {
		name string
		in   string
		want domain.SolutionCount
	}{
		{"unique", sample, domain.One},
		{"complete", solved, domain.One},
		{"empty", strings.Repeat(".", domain.CellCount), domain.Many},
		{"unsolvable", ".12345678" + "9........" + strings.Repeat(".", domain.CellCount-2*domain.Size), domain.Zero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustParse(t, tc.in)
			n, _, err := d.Count(ctx, g)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if n != tc.want {
				t.Fatalf("Count = %v, want %v", n, tc.want)
			}
		})
	}
}

func TestDLXBudget(t *testing.T) {
	d := &DLXSolver{MaxNodes: 5}
	_, _, err := d.Count(context.Background(), domain.Grid{})
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("Count err = %v, want ErrBudgetExceeded", err)
	}
}
