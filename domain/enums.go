package domain

// Difficulty labels target puzzle generation & grading.
type Difficulty int

const (
	Trivial Difficulty = iota
	Easy
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Trivial:
		return "trivial"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	}
	return "unknown"
}

// SolutionCount is the result contract of a uniqueness check.
type SolutionCount int

const (
	Zero SolutionCount = iota
	One
	Many
)

func (s SolutionCount) String() string {
	switch s {
	case Zero:
		return "zero"
	case One:
		return "one"
	case Many:
		return "many"
	}
	return "unknown"
}

// Rating pairs a difficulty label with its raw score: the branch-difficulty
// tabulation D = S*C + E, where S is the search branch score (0 when
// propagation alone solves the puzzle), C a fixed base, and E the number of
// empty cells. The score orders puzzles within a label, Expert in particular.
type Rating struct {
	Difficulty Difficulty `json:"difficulty"`
	Score      int        `json:"score"`
}
