package gen

import sparse "github.com/jrbaldwin/sparsereduce"

// Banded produces a deterministic band matrix: value 1 at (i, j) iff
// |i - j| < band. It is built directly in CSC by walking each column's
// band envelope in ascending row order, which already matches CSC's
// append-only construction discipline, so no intermediate triplet
// accumulator is needed.
//
// The envelope arithmetic is done in plain int rather than I itself,
// since I's constraint permits unsigned index types and band-envelope
// bounds can legitimately go negative before being clamped to 0.
func Banded[I sparse.Index, S sparse.Numeric](band, m, n I) *sparse.CSC[I, S] {
	out := sparse.NewCSC[I, S](m, n)
	one := S(1)
	bandN, rows, cols := int(band), int(m), int(n)
	for j := 0; j < cols; j++ {
		lo := j - bandN + 1
		if lo < 0 {
			lo = 0
		}
		hi := j + bandN - 1
		if hi > rows-1 {
			hi = rows - 1
		}
		for i := lo; i <= hi; i++ {
			if err := out.Insert(I(j), I(i), one); err != nil {
				panic(err)
			}
		}
	}
	out.Finalize()
	return out
}
