package gen

import (
	"math"
	"math/rand"

	sparse "github.com/jrbaldwin/sparsereduce"
)

// BandIsh produces a per-cell independent Bernoulli matrix whose success
// probability decays with distance from the diagonal:
// p(i, j) = max(1 - 2*|i-j|/n - 2/n, 0). The stream is seeded with seed
// for reproducibility; Go's math/rand does not implement the Mersenne
// Twister algorithm by name, but it satisfies the same contract this
// generator needs: a deterministic, seedable pseudo-random sequence.
func BandIsh[I sparse.Index, S sparse.Numeric](seed int64, m, n I) *sparse.CSC[I, S] {
	rng := rand.New(rand.NewSource(seed))
	out := sparse.NewCSC[I, S](m, n)
	one := S(1)
	rows, cols := int(m), int(n)
	fn := float64(cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			dist := math.Abs(float64(i) - float64(j))
			p := 1 - 2*dist/fn - 2/fn
			if p < 0 {
				p = 0
			}
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
