package solver

// Result is the outcome of running propagation to a fixpoint.
type Result int

const (
	// Solved: every cell is filled.
	Solved Result = iota
	// Stalled: no rule changes any state, empty cells remain.
	Stalled
	// Contradiction: an empty cell has zero candidates, or a region misses a
	// digit no remaining cell can supply. Recoverable inside search; never a
	// top-level failure.
	Contradiction
)

func (r Result) String() string {
	switch r {
	case Solved:
		return "solved"
	case Stalled:
		return "stalled"
	case Contradiction:
		return "contradiction"
	}
	return "unknown"
}

// Propagate runs the given rules over st until none changes any state, every
// cell is filled, or a contradiction surfaces. Each placement a rule makes
// updates the candidate tracker before the next rule evaluates.
func Propagate(st *State, rules []Rule) Result {
	for {
		changed := false
		for _, rule := range rules {
			c, err := rule.Apply(st)
			if c {
				changed = true
			}
			if err != nil {
				return Contradiction
			}
		}
		if st.EmptyCount() == 0 {
			return Solved
		}
		if !changed {
			return Stalled
		}
	}
}
