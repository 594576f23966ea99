package sparse

import "gonum.org/v1/gonum/mat"

// Dense is a fixed-length mutable numeric array that tracks its own
// non-zero count as it is mutated; Sum computes the total on demand. It is the target of Vector's
// Densify and the source of Vector's Set(d *Dense), the densify/sparsify
// protocol at the heart of reduce.Dense's column-by-column algorithm: a
// column is pulled out of a CSC as a Vector, densified into a Dense of
// length m, handed to the collective substrate as a plain numeric buffer,
// then sparsified back.
//
// Dense is not safe for concurrent use; each reduction call owns its own
// scratch instance for the lifetime of that call.
type Dense[I Index, S Numeric] struct {
	x   []S
	nnz int
}

// NewDense returns a new Dense vector of the given length, zero-filled.
func NewDense[I Index, S Numeric](length I) *Dense[I, S] {
	return &Dense[I, S]{x: make([]S, int(length))}
}

// Len returns the allocated length of the vector.
func (d *Dense[I, S]) Len() I { return I(len(d.x)) }

// NNZ returns the tracked number of non-zero entries.
func (d *Dense[I, S]) NNZ() I { return I(d.nnz) }

// Raw returns the backing slice. Callers that mutate it directly (e.g. a
// collective substrate writing an in-place reduction result) must call
// UpdateNNZ afterwards since Dense cannot observe third-party writes.
func (d *Dense[I, S]) Raw() []S { return d.x }

// Get returns the value at index i. Get panics if i is out of range.
func (d *Dense[I, S]) Get(i I) S { return d.x[i] }

// Insert writes s at index i, maintaining the non-zero count: if the
// previous value was zero and s is not, nnz increments; if the previous
// value was non-zero and s is zero, nnz decrements. The cell is always
// overwritten with s.
func (d *Dense[I, S]) Insert(i I, s S) {
	prev := d.x[i]
	if prev == 0 && s != 0 {
		d.nnz++
	} else if prev != 0 && s == 0 {
		d.nnz--
	}
	d.x[i] = s
}

// Zero clears every element and resets nnz to 0.
func (d *Dense[I, S]) Zero() {
	if d.nnz == 0 {
		return
	}
	for i := range d.x {
		d.x[i] = 0
	}
	d.nnz = 0
}

// Resize changes the allocated length to length. Growing zeroes the new
// tail; shrinking drops the tail and recounts nnz, so non-zero entries
// dropped with the tail no longer count towards NNZ.
func (d *Dense[I, S]) Resize(length I) {
	n := int(length)
	if n == len(d.x) {
		return
	}
	if n > len(d.x) {
		grown := make([]S, n)
		copy(grown, d.x)
		d.x = grown
	} else {
		d.x = d.x[:n]
		d.UpdateNNZ()
	}
}

// UpdateNNZ recounts nnz from the backing storage. Required after a third
// party (e.g. an in-place collective reduction) has written into Raw()
// directly.
func (d *Dense[I, S]) UpdateNNZ() {
	nnz := 0
	for _, v := range d.x {
		if v != 0 {
			nnz++
		}
	}
	d.nnz = nnz
}

// Sum returns the sum of all elements, zero and non-zero alike.
func (d *Dense[I, S]) Sum() S {
	var sum S
	for _, v := range d.x {
		sum += v
	}
	return sum
}

// The mat.Vector conformance below lets a Dense[I, float64] participate in
// the wider Gonum ecosystem (mat.Formatted for diagnostics, mat.Equal in
// tests) the same way the teacher's Vector type does for its sparse vector.

var _ mat.Vector = (*Dense[int, float64])(nil)

// Dims returns (Len(), 1), matching mat.Matrix for a column vector.
func (d *Dense[I, S]) Dims() (r, c int) { return len(d.x), 1 }

// AtVec returns the element at row i as a float64, satisfying mat.Vector.
// Only meaningful when S is float64; provided so Dense[int, float64]
// instances can be compared with mat.Equal in tests.
func (d *Dense[I, S]) AtVec(i int) float64 { return float64(d.x[i]) }

// At returns the element at (r, 0) as a float64, per mat.Matrix. At panics
// if c != 0.
func (d *Dense[I, S]) At(r, c int) float64 {
	if c != 0 {
		panic(mat.ErrColAccess)
	}
	return d.AtVec(r)
}

// T returns the transpose of the receiver, per mat.Matrix.
func (d *Dense[I, S]) T() mat.Matrix { return mat.TransposeVec{Vector: d} }
