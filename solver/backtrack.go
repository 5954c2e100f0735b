package solver

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"svw.info/sudokugen/domain"
	"svw.info/sudokugen/ports"
)

var (
	// ErrNoSolution reports a provably unsatisfiable grid.
	ErrNoSolution = errors.New("no solution")

	// ErrBudgetExceeded reports that search stopped at the caller-supplied
	// node limit, distinct from any Zero/One/Many answer.
	ErrBudgetExceeded = errors.New("search budget exceeded")
)

// Options configures a BacktrackingSolver. The zero value means: full rule
// set, no node budget, deterministic candidate order.
type Options struct {
	// Rules is the propagation tier used for pruning; nil means DefaultRules.
	Rules []Rule
	// MaxNodes bounds the number of search-tree entries; 0 means unlimited.
	MaxNodes int
	// Rand shuffles candidate digit order at each decision; nil keeps the
	// ascending deterministic order. Used by the generator's construction
	// phase. A solver with Rand set must not be shared across goroutines.
	Rand *rand.Rand
}

// BacktrackingSolver searches over a working copy of the grid, propagating to
// a fixpoint at every node and guessing on the cell with fewest candidates.
type BacktrackingSolver struct {
	opts Options
}

// NewBacktrackingSolver builds a solver; nil opts selects the defaults.
func NewBacktrackingSolver(opts *Options) *BacktrackingSolver {
	s := &BacktrackingSolver{}
	if opts != nil {
		s.opts = *opts
	}
	if s.opts.Rules == nil {
		s.opts.Rules = DefaultRules()
	}
	return s
}

// Solve returns the first solution found, or ErrNoSolution.
func (s *BacktrackingSolver) Solve(ctx context.Context, g domain.Grid) (domain.Grid, ports.Stats, error) {
	sols, stats, err := s.run(ctx, g, 1)
	if err != nil {
		return domain.Grid{}, stats, err
	}
	if len(sols) == 0 {
		return domain.Grid{}, stats, ErrNoSolution
	}
	return sols[0], stats, nil
}

// Count reports Zero, One, or Many, stopping as soon as a second solution is
// found so uniqueness checks stay cheap.
func (s *BacktrackingSolver) Count(ctx context.Context, g domain.Grid) (domain.SolutionCount, ports.Stats, error) {
	sols, stats, err := s.run(ctx, g, 2)
	if err != nil {
		return domain.Zero, stats, err
	}
	switch len(sols) {
	case 0:
		return domain.Zero, stats, nil
	case 1:
		return domain.One, stats, nil
	}
	return domain.Many, stats, nil
}

// Enumerate explores exhaustively and returns every solution found, up to
// limit (0 means unlimited). Intended for tests and diagnostics only.
func (s *BacktrackingSolver) Enumerate(ctx context.Context, g domain.Grid, limit int) ([]domain.Grid, ports.Stats, error) {
	return s.run(ctx, g, limit)
}

func (s *BacktrackingSolver) run(ctx context.Context, g domain.Grid, limit int) ([]domain.Grid, ports.Stats, error) {
	start := time.Now()
	if err := g.Validate(); err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	r := &runner{
		st:       NewState(g),
		rules:    s.opts.Rules,
		maxNodes: s.opts.MaxNodes,
		rng:      s.opts.Rand,
		limit:    limit,
	}
	r.dfs(ctx)
	stats := ports.Stats{
		Nodes:      r.nodes,
		Backtracks: r.backtracks,
		Branch:     r.branch,
		Duration:   time.Since(start),
	}
	return r.sols, stats, r.err
}

type runner struct {
	st       *State
	rules    []Rule
	maxNodes int
	rng      *rand.Rand
	limit    int

	nodes      int
	backtracks int
	pathScore  int
	branch     int
	sols       []domain.Grid
	err        error
}

// dfs explores one node; a true return stops the whole search.
func (r *runner) dfs(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		r.err = err
		return true
	}
	r.nodes++
	if r.maxNodes > 0 && r.nodes > r.maxNodes {
		r.err = ErrBudgetExceeded
		return true
	}

	mark := r.st.Mark()
	defer r.st.Rewind(mark)

	switch Propagate(r.st, r.rules) {
	case Contradiction:
		return false
	case Solved:
		r.sols = append(r.sols, r.st.Grid())
		if len(r.sols) == 1 {
			r.branch = r.pathScore
		}
		return r.limit > 0 && len(r.sols) >= r.limit
	}

	pos := r.mrvCell()
	cands := r.st.Candidates(pos)
	if r.rng != nil {
		r.rng.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
	}

	b := len(cands)
	r.pathScore += (b - 1) * (b - 1)
	for _, v := range cands {
		guess := r.st.Mark()
		r.st.Place(pos, v)
		stop := r.dfs(ctx)
		r.st.Rewind(guess)
		if stop {
			return true
		}
		r.backtracks++
	}
	r.pathScore -= (b - 1) * (b - 1)
	return false
}

// mrvCell picks the empty cell with the fewest candidates, ties broken by
// lowest row-major index for determinism.
func (r *runner) mrvCell() int {
	best, bestCount := -1, domain.Size+1
	for pos := 0; pos < domain.CellCount; pos++ {
		if !r.st.Empty(pos) {
			continue
		}
		if n := r.st.track.Count(pos); n < bestCount {
			best, bestCount = pos, n
			if n <= 2 {
				// Propagation already filled all singles; 2 is minimal here.
				break
			}
		}
	}
	return best
}
