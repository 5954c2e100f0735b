// Package ports declares the boundary interfaces between the engine's
// components and the facade that wires them together.
package ports

import (
	"context"
	"time"

	"svw.info/sudokugen/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	// Nodes is the number of search-tree entries visited.
	Nodes int
	// Backtracks counts abandoned branches.
	Backtracks int
	// Branch is the branch-difficulty score Σ(B-1)² accumulated along the
	// path to the first solution; 0 when no guessing was needed.
	Branch int
	Duration time.Duration
}

// Add folds the counters of another measurement into s.
func (s *Stats) Add(o Stats) {
	s.Nodes += o.Nodes
	s.Backtracks += o.Backtracks
	s.Duration += o.Duration
}

// Solver solves a grid and can count its solutions.
type Solver interface {
	Solve(ctx context.Context, g domain.Grid) (domain.Grid, Stats, error)
	Count(ctx context.Context, g domain.Grid) (domain.SolutionCount, Stats, error)
}

// Generator creates new puzzles from a seed.
type Generator interface {
	Generate(ctx context.Context, seed int64, targetEmpty int) (*domain.Puzzle, Stats, error)
	GenerateRated(ctx context.Context, seed int64, d domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Rater classifies a puzzle's difficulty.
type Rater interface {
	Rate(ctx context.Context, g domain.Grid) (domain.Rating, error)
}
