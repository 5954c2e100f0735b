package solver

import (
	"testing"

	"svw.info/sudokugen/domain"
)

const sample = "" +
	"53..7...." +
	"6..195..." +
	".98....6." +
	"8...6...3" +
	"4..8.3..1" +
	"7...2...6" +
	".6....28." +
	"...419..5" +
	"....8..79"

func mustParse(t *testing.T, s string) domain.Grid {
	t.Helper()
	g, err := domain.Parse(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return g
}

func TestTrackerRecompute(t *testing.T) {
	g := mustParse(t, sample)
	tr := NewTracker(&g)

	// (0,2): row rules out 5,3,7; column rules out 8; box rules out 5,3,6,9,8.
	want := []uint8{1, 2, 4}
	got := tr.Candidates(domain.Pos(0, 2))
	if len(got) != len(want) {
		t.Fatalf("candidates at (0,2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidates at (0,2) = %v, want %v", got, want)
		}
	}
	// Filled cells are untracked.
	if tr.Mask(domain.Pos(0, 0)) != 0 {
		t.Fatal("filled cell carries a candidate mask")
	}
}

func TestTrackerPlaceStripsPeers(t *testing.T) {
	g := mustParse(t, sample)
	tr := NewTracker(&g)

	pos := domain.Pos(0, 2)
	g.SetForce(pos, 4)
	tr.Place(pos, 4)

	if tr.Mask(pos) != 0 {
		t.Fatal("placed cell still tracked")
	}
	for _, p := range domain.Peers[pos] {
		if tr.Mask(p)&(1<<4) != 0 {
			t.Fatalf("peer %d kept candidate 4 after placement", p)
		}
	}
}

// A peer may have the placed digit ruled out by another region entirely, so
// removal must re-scan rather than re-add.
func TestTrackerUnplaceRescans(t *testing.T) {
	var g domain.Grid
	g.SetForce(domain.Pos(5, 0), 7) // rules 7 out of (0,0) via the column

	tr := NewTracker(&g)
	x := domain.Pos(0, 0)
	if tr.Mask(x)&(1<<7) != 0 {
		t.Fatal("column constraint missing before placement")
	}

	a := domain.Pos(0, 5) // same row as x
	g.SetForce(a, 7)
	tr.Place(a, 7)
	if tr.Mask(x)&(1<<7) != 0 {
		t.Fatal("row constraint missing after placement")
	}

	g.Clear(a)
	tr.Unplace(&g, a)
	if tr.Mask(x)&(1<<7) != 0 {
		t.Fatal("unplace re-added a digit still excluded by the column")
	}
	if tr.Mask(a)&(1<<7) == 0 {
		t.Fatal("cleared cell should regain 7 as a candidate")
	}
}
