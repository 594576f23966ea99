package gen

import (
	"sort"

	sparse "github.com/jrbaldwin/sparsereduce"
)

// coo accumulates (row, col, val) triplets in arbitrary insertion order,
// the way the teacher's COO type does, then compresses them into a CSC.
// Random's exact sampling path builds one of these rather than inserting
// straight into a CSC, since rejection sampling visits flat positions in
// sampling order, not column-major order.
type coo[I sparse.Index, S sparse.Numeric] struct {
	rows, cols []I
	vals       []S
}

func (c *coo[I, S]) add(row, col I, val S) {
	c.rows = append(c.rows, row)
	c.cols = append(c.cols, col)
	c.vals = append(c.vals, val)
}

// toCSC sorts the accumulated triplets by (col, row), merge-sums entries
// that share a (row, col) pair, and inserts the result into a fresh CSC.
// This mirrors the teacher's compress+dedupe pass but as a single sort
// over a permutation of indices rather than counting-sort arrays.
func (c *coo[I, S]) toCSC(rows, cols I) *sparse.CSC[I, S] {
	n := len(c.vals)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool {
		pa, pb := perm[a], perm[b]
		if c.cols[pa] != c.cols[pb] {
			return c.cols[pa] < c.cols[pb]
		}
		return c.rows[pa] < c.rows[pb]
	})

	out := sparse.NewCSCWithCapacity[I, S](rows, cols, n)
	hasPrev := false
	var prevRow, prevCol I
	var prevVal S
	flush := func() {
		if hasPrev {
			if err := out.Insert(prevCol, prevRow, prevVal); err != nil {
				panic(err)
			}
		}
	}
	for _, idx := range perm {
		row, col, val := c.rows[idx], c.cols[idx], c.vals[idx]
		if hasPrev && row == prevRow && col == prevCol {
			prevVal += val
			continue
		}
		flush()
		prevRow, prevCol, prevVal = row, col, val
		hasPrev = true
	}
	flush()

	out.Finalize()
	return out
}
