// Package generator constructs complete grids and digs them into puzzles
// with a verified unique solution.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"svw.info/sudokugen/domain"
	"svw.info/sudokugen/ports"
	"svw.info/sudokugen/solver"
)

// hardenIterations bounds the extra digging passes GenerateRated spends
// chasing a target difficulty before settling for what it has.
const hardenIterations = 20

// UniqueGenerator creates puzzles with a unique solution, using the provided
// solver for uniqueness checks and the provided rater for the final label.
type UniqueGenerator struct {
	Solver ports.Solver
	Rater  ports.Rater
}

// New wires a generator that uses the given solver and rater.
func New(s ports.Solver, r ports.Rater) *UniqueGenerator {
	return &UniqueGenerator{Solver: s, Rater: r}
}

// targetGivens maps a difficulty to the clue count digging aims for.
func targetGivens(d domain.Difficulty) int {
	switch d {
	case domain.Trivial:
		return 45
	case domain.Easy:
		return 40
	case domain.Medium:
		return 34
	case domain.Hard:
		return 28
	default:
		return 24 // Expert
	}
}

// Generate builds a complete grid from the seed, then clears cells in a
// randomized order while the puzzle keeps exactly one solution, stopping at
// targetEmpty empty cells or when no further cell can be cleared. The greedy
// order is a heuristic: the target is best-effort, not guaranteed. Identical
// (seed, targetEmpty) inputs yield identical puzzles.
func (g *UniqueGenerator) Generate(ctx context.Context, seed int64, targetEmpty int) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	full, stats, err := construct(ctx, rng)
	if err != nil {
		return nil, stats, err
	}

	puz, digStats, err := g.dig(ctx, full, rng, targetEmpty)
	stats.Add(digStats)
	if err != nil {
		return nil, stats, err
	}

	p, err := g.finish(ctx, puz, seed)
	stats.Duration = time.Since(start)
	return p, stats, err
}

// GenerateRated digs toward the clue target for the wanted difficulty, then
// keeps digging for up to hardenIterations extra cells while the rating falls
// short. The achieved rating is recorded on the puzzle; it may undershoot the
// request on unlucky seeds.
func (g *UniqueGenerator) GenerateRated(ctx context.Context, seed int64, want domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	if g.Rater == nil {
		return nil, ports.Stats{}, fmt.Errorf("generator: rated generation needs a rater")
	}
	rng := rand.New(rand.NewSource(seed))

	full, stats, err := construct(ctx, rng)
	if err != nil {
		return nil, stats, err
	}

	puz, digStats, err := g.dig(ctx, full, rng, domain.CellCount-targetGivens(want))
	stats.Add(digStats)
	if err != nil {
		return nil, stats, err
	}

	for i := 0; i < hardenIterations; i++ {
		r, err := g.Rater.Rate(ctx, puz)
		if err != nil {
			return nil, stats, err
		}
		if r.Difficulty >= want {
			break
		}
		deeper, digStats, err := g.dig(ctx, puz, rng, puz.EmptyCount()+1)
		stats.Add(digStats)
		if err != nil {
			return nil, stats, err
		}
		if deeper.EmptyCount() == puz.EmptyCount() {
			break // nothing left to clear
		}
		puz = deeper
	}

	p, err := g.finish(ctx, puz, seed)
	stats.Duration = time.Since(start)
	return p, stats, err
}

// construct fills an empty grid into a complete valid one by randomized
// backtracking over the cell with fewest candidates.
func construct(ctx context.Context, rng *rand.Rand) (domain.Grid, ports.Stats, error) {
	fill := solver.NewBacktrackingSolver(&solver.Options{Rand: rng})
	full, stats, err := fill.Solve(ctx, domain.Grid{})
	if err != nil {
		// An empty grid always has solutions; only cancellation or a budget
		// can get here.
		return domain.Grid{}, stats, err
	}
	return full, stats, nil
}

// dig clears cells of a uniquely solvable grid in a randomized order,
// keeping each clearance only if the solution stays unique.
func (g *UniqueGenerator) dig(ctx context.Context, grid domain.Grid, rng *rand.Rand, targetEmpty int) (domain.Grid, ports.Stats, error) {
	var stats ports.Stats
	if targetEmpty > domain.CellCount {
		targetEmpty = domain.CellCount
	}

	positions := make([]int, domain.CellCount)
	for i := range positions {
		positions[i] = i
	}
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	empty := grid.EmptyCount()
	for _, pos := range positions {
		if empty >= targetEmpty {
			break
		}
		if grid.Empty(pos) {
			continue
		}
		old := grid.Get(pos)
		grid.Clear(pos)
		count, st, err := g.Solver.Count(ctx, grid)
		stats.Add(st)
		if err != nil {
			return domain.Grid{}, stats, err
		}
		switch count {
		case domain.One:
			empty++
		case domain.Zero:
			// The baseline grid is complete and valid, so a dig step can
			// never remove all solutions. This is a construction bug.
			panic(fmt.Sprintf("generator: grid lost all solutions after clearing cell %d", pos))
		default:
			grid.SetForce(pos, old)
		}
	}
	return grid, stats, nil
}

// finish rates the dug grid and wraps it as an immutable Puzzle.
func (g *UniqueGenerator) finish(ctx context.Context, grid domain.Grid, seed int64) (*domain.Puzzle, error) {
	p := &domain.Puzzle{
		Grid:  grid,
		Seed:  seed,
		Clues: domain.CellCount - grid.EmptyCount(),
	}
	if g.Rater != nil {
		r, err := g.Rater.Rate(ctx, grid)
		if err != nil {
			return nil, err
		}
		p.Rating = r
	}
	return p, nil
}
