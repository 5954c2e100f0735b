package domain

// Puzzle is a generated grid with a nonempty set of empty cells, validated to
// have exactly one solution before it is handed to a caller. Treated as
// immutable data from then on.
type Puzzle struct {
	Grid   Grid   `json:"grid"`
	Seed   int64  `json:"seed"`
	Rating Rating `json:"rating"`
	Clues  int    `json:"clues"`
}

// CellCoord identifies a cell for callers that speak (row, col).
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
