package generator

import (
	"context"
	"runtime"
	"sync"

	"svw.info/sudokugen/domain"
	"svw.info/sudokugen/solver"
)

// GenerateBatch produces one puzzle per seed on a bounded pool of workers.
// Every worker owns its own generator and solver instances; the rater is
// stateless and shared. Results keep seed order; the first failure cancels
// the remaining work.
func (g *UniqueGenerator) GenerateBatch(ctx context.Context, seeds []int64, targetEmpty, workers int) ([]*domain.Puzzle, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(seeds) {
		workers = len(seeds)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	out := make([]*domain.Puzzle, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen := New(solver.NewBacktrackingSolver(nil), g.Rater)
			for i := range jobs {
				p, _, err := gen.Generate(ctx, seeds[i], targetEmpty)
				if err != nil {
					errs[i] = err
					cancel()
					continue
				}
				out[i] = p
			}
		}()
	}

feed:
	for i := range seeds {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil && !allDone(out) {
		return nil, err
	}
	return out, nil
}

func allDone(out []*domain.Puzzle) bool {
	for _, p := range out {
		if p == nil {
			return false
		}
	}
	return true
}
