package sudokugen

import (
	"context"
	"errors"
	"testing"
	"time"

	"svw.info/sudokugen/domain"
	"svw.info/sudokugen/transform"
)

const (
	sample = "" +
		"53..7...." +
		"6..195..." +
		".98....6." +
		"8...6...3" +
		"4..8.3..1" +
		"7...2...6" +
		".6....28." +
		"...419..5" +
		"....8..79"
	solved = "" +
		"534678912" +
		"672195348" +
		"198342567" +
		"859761423" +
		"426853791" +
		"713924856" +
		"961537284" +
		"287419635" +
		"345286179"
)

func TestPublicSolve(t *testing.T) {
	g, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, st, err := Solve(ctx, g)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if out.Encode() != solved {
		t.Fatalf("solution mismatch:\n got %s\nwant %s", out.Encode(), solved)
	}
	n, _, err := Count(ctx, g)
	if err != nil || n != domain.One {
		t.Fatalf("Count = %v, %v; want one, nil", n, err)
	}
	t.Logf("nodes=%d dur=%v", st.Nodes, st.Duration)
}

func TestPublicGenerateAndRate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, _, err := Generate(ctx, 42, 45)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	n, _, err := Count(ctx, p.Grid)
	if err != nil || n != domain.One {
		t.Fatalf("generated puzzle Count = %v, %v; want one, nil", n, err)
	}
	r, err := Rate(ctx, p.Grid)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if r != p.Rating {
		t.Fatalf("puzzle tagged %+v but rates %+v", p.Rating, r)
	}
}

func TestPublicTransform(t *testing.T) {
	g, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	rot := Transform(g, transform.Rotate90)
	back := Transform(rot, transform.Rotate90.Inverse())
	if back.Encode() != sample {
		t.Fatal("transform round trip broke the grid")
	}
}

func TestParseErrorSurface(t *testing.T) {
	if _, err := Parse("garbage"); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("Parse err = %v, want ErrInvalidGrid", err)
	}
}

func TestServiceNilGuards(t *testing.T) {
	s := NewService(nil, nil, nil)
	ctx := context.Background()
	if _, _, err := s.Solve(ctx, Grid{}); err == nil {
		t.Fatal("nil solver accepted")
	}
	if _, _, err := s.Generate(ctx, 1, 40); err == nil {
		t.Fatal("nil generator accepted")
	}
	if _, err := s.Rate(ctx, Grid{}); err == nil {
		t.Fatal("nil rater accepted")
	}
}
