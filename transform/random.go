package transform

import (
	"math/rand"

	"svw.info/sudokugen/domain"
)

// Random composes n operations drawn from the full symmetry group. It is the
// cheap route to many distinct puzzles from one generation run: applying the
// result to a puzzle yields an equivalent puzzle with the same solution count
// and difficulty.
func Random(rng *rand.Rand, n int) Sequence {
	seq := make(Sequence, 0, n)
	for i := 0; i < n; i++ {
		switch rng.Intn(7) {
		case 0:
			seq = append(seq, Transpose)
		case 1:
			seq = append(seq, []Op{ReflectRows, ReflectCols}[rng.Intn(2)])
		case 2:
			seq = append(seq, []Op{Rotate90, Rotate180, Rotate270}[rng.Intn(3)])
		case 3:
			a, b := distinctPair(rng)
			seq = append(seq, SwapBands(a, b))
		case 4:
			a, b := distinctPair(rng)
			seq = append(seq, SwapStacks(a, b))
		case 5:
			a, b := distinctPair(rng)
			seq = append(seq, SwapRowsInBand(rng.Intn(domain.BoxSize), a, b))
		default:
			perm := make([]uint8, domain.Size)
			for i := range perm {
				perm[i] = uint8(i + 1)
			}
			rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
			op, err := Relabel(perm)
			if err != nil {
				panic(err) // a shuffled identity is always a permutation
			}
			seq = append(seq, op)
		}
	}
	return seq
}

func distinctPair(rng *rand.Rand) (int, int) {
	a := rng.Intn(domain.BoxSize)
	b := rng.Intn(domain.BoxSize - 1)
	if b >= a {
		b++
	}
	return a, b
}
