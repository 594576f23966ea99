package gen

import (
	"math/rand"

	sparse "github.com/jrbaldwin/sparsereduce"
)

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Random produces a matrix with approximately p*m*n non-zero entries, all
// set to 1. When exact is true, nnz = floor(p*m*n) flat (row, col)
// positions are sampled without replacement by rejection: positions are
// drawn uniformly and any already drawn (tracked in a bitset) is redrawn,
// guaranteeing the count matches exactly. This is not reservoir sampling. When exact is false, each cell is an independent
// Bernoulli(p) draw, the way the teacher's Random does it, so the actual
// count only matches nnz in expectation.
func Random[I sparse.Index, S sparse.Numeric](seed int64, p float64, m, n I, exact bool) *sparse.CSC[I, S] {
	rng := rand.New(rand.NewSource(seed))
	rows, cols := int(m), int(n)
	p = clamp01(p)
	one := S(1)

	if !exact {
		out := sparse.NewCSC[I, S](m, n)
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				if rng.Float64() < p {
					if err := out.Insert(I(j), I(i), one); err != nil {
						panic(err)
					}
				}
			}
		}
		out.Finalize()
		return out
	}

	total := rows * cols
	nnz := int(p * float64(total))
	if nnz > total {
		nnz = total
	}

	seen := newBitset(total)
	acc := &coo[I, S]{}
	for len(acc.vals) < nnz {
		pos := rng.Intn(total)
		if seen.isSet(pos) {
			continue
		}
		seen.set(pos)
		row, col := pos%rows, pos/rows
		acc.add(I(row), I(col), one)
	}
	return acc.toCSC(m, n)
}
