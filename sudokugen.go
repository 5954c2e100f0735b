// Package sudokugen is a puzzle engine for the classic 9×9 constraint grid:
// it generates fully populated grids, digs puzzles with a guaranteed unique
// solution, solves arbitrary partial grids, classifies difficulty, and
// produces symmetry-equivalent grids.
//
// The interchange format is a flat string of 81 symbols in row-major order,
// digits '1'..'9' or '.' for an empty cell. The engine performs no I/O; all
// randomness flows from explicit seeds so generation is reproducible.
package sudokugen

import (
	"context"
	"errors"

	"svw.info/sudokugen/domain"
	"svw.info/sudokugen/generator"
	"svw.info/sudokugen/ports"
	"svw.info/sudokugen/rating"
	"svw.info/sudokugen/solver"
	"svw.info/sudokugen/transform"
)

// Re-exported boundary types so callers rarely need the subpackages.
type (
	Grid          = domain.Grid
	Puzzle        = domain.Puzzle
	Difficulty    = domain.Difficulty
	Rating        = domain.Rating
	SolutionCount = domain.SolutionCount
	Stats         = ports.Stats
)

var (
	ErrInvalidGrid    = domain.ErrInvalidGrid
	ErrConflict       = domain.ErrConflict
	ErrNoSolution     = solver.ErrNoSolution
	ErrBudgetExceeded = solver.ErrBudgetExceeded
)

// Service bundles the engine components behind one boundary, mirroring the
// public operations: parse, solve, generate, rate, transform.
type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Rater     ports.Rater
}

var errNotConfigured = errors.New("sudokugen: dependency not configured")

// NewService wires a service from explicit components.
func NewService(s ports.Solver, g ports.Generator, r ports.Rater) *Service {
	return &Service{Solver: s, Generator: g, Rater: r}
}

// Default returns a service with the standard wiring: backtracking solver
// with the full rule set, unique generator, tiered difficulty estimator.
func Default() *Service {
	s := solver.NewBacktrackingSolver(nil)
	r := rating.New()
	return NewService(s, generator.New(s, r), r)
}

func (u *Service) Solve(ctx context.Context, g domain.Grid) (domain.Grid, ports.Stats, error) {
	if u.Solver == nil {
		return domain.Grid{}, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, g)
}

func (u *Service) Count(ctx context.Context, g domain.Grid) (domain.SolutionCount, ports.Stats, error) {
	if u.Solver == nil {
		return domain.Zero, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Count(ctx, g)
}

func (u *Service) Generate(ctx context.Context, seed int64, targetEmpty int) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, targetEmpty)
}

func (u *Service) GenerateRated(ctx context.Context, seed int64, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.GenerateRated(ctx, seed, d)
}

func (u *Service) Rate(ctx context.Context, g domain.Grid) (domain.Rating, error) {
	if u.Rater == nil {
		return domain.Rating{}, errNotConfigured
	}
	return u.Rater.Rate(ctx, g)
}

// Parse builds a validated grid from the interchange encoding.
func Parse(s string) (domain.Grid, error) { return domain.Parse(s) }

// Transform applies a symmetry operation to a grid.
func Transform(g domain.Grid, op transform.Op) domain.Grid { return op.Apply(g) }

// Package-level conveniences over a lazily shared default service. The
// default components are stateless, so concurrent use is safe.
var defaultService = Default()

func Solve(ctx context.Context, g domain.Grid) (domain.Grid, ports.Stats, error) {
	return defaultService.Solve(ctx, g)
}

func Count(ctx context.Context, g domain.Grid) (domain.SolutionCount, ports.Stats, error) {
	return defaultService.Count(ctx, g)
}

func Generate(ctx context.Context, seed int64, targetEmpty int) (*domain.Puzzle, ports.Stats, error) {
	return defaultService.Generate(ctx, seed, targetEmpty)
}

func Rate(ctx context.Context, g domain.Grid) (domain.Rating, error) {
	return defaultService.Rate(ctx, g)
}
