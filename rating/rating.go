// Package rating classifies puzzles by the weakest propagation tier that
// solves them, falling back to search for Expert grids.
package rating

import (
	"context"

	"svw.info/sudokugen/domain"
	"svw.info/sudokugen/ports"
	"svw.info/sudokugen/solver"
)

// tiers orders the rule ladder from weakest to strongest. The lowest tier
// whose fixpoint solves the puzzle decides the label; encoded as data so new
// tiers slot in without touching the estimator.
var tiers = []struct {
	label domain.Difficulty
	rules []solver.Rule
}{
	{domain.Trivial, []solver.Rule{solver.NakedSingle}},
	{domain.Easy, []solver.Rule{solver.NakedSingle, solver.HiddenSingleBoxes}},
	{domain.Medium, []solver.Rule{solver.NakedSingle, solver.HiddenSingleBoxes, solver.HiddenSingleLines}},
	{domain.Hard, solver.DefaultRules()},
}

// scoreBase is the first power of 10 above the cell count; it weights the
// branch score against the empty-cell count in the Expert tabulation.
const scoreBase = 100

// Estimator implements ports.Rater by replaying the propagator.
type Estimator struct {
	search ports.Solver
}

// New builds an estimator. The search fallback uses the full backtracking
// solver with the complete rule set.
func New() *Estimator {
	return &Estimator{search: solver.NewBacktrackingSolver(nil)}
}

// Rate runs each tier's rules to a fixpoint on a fresh working copy. If no
// tier alone solves the grid, the puzzle needs search and rates Expert, with
// the score D = branch*base + empty recording how much guessing it took.
func (e *Estimator) Rate(ctx context.Context, g domain.Grid) (domain.Rating, error) {
	if err := g.Validate(); err != nil {
		return domain.Rating{}, err
	}
	for _, tier := range tiers {
		if err := ctx.Err(); err != nil {
			return domain.Rating{}, err
		}
		st := solver.NewState(g)
		if solver.Propagate(st, tier.rules) == solver.Solved {
			return domain.Rating{Difficulty: tier.label, Score: g.EmptyCount()}, nil
		}
	}
	_, stats, err := e.search.Solve(ctx, g)
	if err != nil {
		// Zero-solution grids are not ratable.
		return domain.Rating{}, err
	}
	score := stats.Branch*scoreBase + g.EmptyCount()
	return domain.Rating{Difficulty: domain.Expert, Score: score}, nil
}
