package sparse

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CSC is a Compressed Sparse Column matrix: three parallel arrays, P of
// length Cols()+1 holding cumulative non-zero counts per column, and RowIdx
// and Val (each of length NNZ) holding the row index and value of every
// non-zero, ordered first by column and, within a column, by strictly
// ascending row index.
//
// CSC is built strictly column-by-column: Insert requires columns supplied
// in non-decreasing order and, within a column, row indices supplied in
// strictly ascending order, since Insert appends onto the tail of RowIdx
// and Val rather than into a column's positional slot. After the last
// column has been inserted, Finalize must be called once to close out the
// trailing column pointers before the matrix is read.
type CSC[I Index, S Numeric] struct {
	rows, cols I
	p          []I
	rowIdx     []I
	val        []S
	curCol     I
	cfg        config
}

// NewCSC returns a new, empty CSC matrix of the given dimensions.
func NewCSC[I Index, S Numeric](rows, cols I, opts ...Option) *CSC[I, S] {
	return &CSC[I, S]{
		rows: rows,
		cols: cols,
		p:    make([]I, int(cols)+1),
		cfg:  applyOptions(opts),
	}
}

// NewCSCWithCapacity returns a new, empty CSC matrix of the given
// dimensions with its row-index and value arrays preallocated to hold at
// least capacity entries before the first growth. It is otherwise
// identical to NewCSC; callers that know roughly how many non-zeros to
// expect (a reducer sizing an output matrix from the input's MaxColNNZ,
// for instance) use it to avoid the first few reallocations Insert would
// otherwise trigger.
func NewCSCWithCapacity[I Index, S Numeric](rows, cols I, capacity int, opts ...Option) *CSC[I, S] {
	m := NewCSC[I, S](rows, cols, opts...)
	if capacity > 0 {
		m.rowIdx = make([]I, 0, capacity)
		m.val = make([]S, 0, capacity)
	}
	return m
}

// Shape returns the matrix's row and column counts as its index type,
// distinct from Dims (which mat.Matrix requires to return plain ints).
func (m *CSC[I, S]) Shape() (rows, cols I) { return m.rows, m.cols }

// NNZ returns the number of stored non-zero entries.
func (m *CSC[I, S]) NNZ() I { return I(len(m.rowIdx)) }

// MaxColNNZ returns the largest number of non-zero entries in any single
// column, the figure a reducer uses to choose the initial capacity of its
// output matrix.
func (m *CSC[I, S]) MaxColNNZ() I {
	var max I
	for j := I(0); j < m.cols; j++ {
		if n := m.p[j+1] - m.p[j]; n > max {
			max = n
		}
	}
	return max
}

// Insert appends (row, val) onto column col. col must be the current
// column under construction or a later one (skipped columns are treated as
// empty), and row must be strictly greater than the last row inserted into
// col. Violating either precondition, or supplying an out-of-range row or
// column, is reported as a *sparse.Error with Kind PreconditionViolated
// rather than panicking the caller's goroutine.
//
// When the backing arrays are full, Insert grows them first (amortised by
// the matrix's configured growth factor) and then retries the append.
func (m *CSC[I, S]) Insert(col, row I, val S) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newError(PreconditionViolated, "csc insert: %v", r)
		}
	}()
	m.insert(col, row, val)
	return nil
}

func (m *CSC[I, S]) insert(col, row I, val S) {
	if col < 0 || col >= m.cols {
		panic("column index out of range")
	}
	if row < 0 || row >= m.rows {
		panic("row index out of range")
	}
	if col < m.curCol {
		panic("columns must be supplied in non-decreasing order")
	}
	for c := m.curCol; c < col; c++ {
		m.p[c+1] = I(len(m.rowIdx))
	}
	if n := len(m.rowIdx); n > int(m.p[col]) && m.rowIdx[n-1] >= row {
		panic("row index out of order within column")
	}
	if len(m.rowIdx) == cap(m.rowIdx) {
		m.grow(1)
	}
	m.rowIdx = append(m.rowIdx, row)
	m.val = append(m.val, val)
	m.curCol = col
	m.p[col+1] = I(len(m.rowIdx))
}

// grow reallocates the backing arrays to accommodate at least minExtra
// more entries, following the amortised growth contract shared with
// Vector.
func (m *CSC[I, S]) grow(minExtra int) {
	free := cap(m.rowIdx) - len(m.rowIdx)
	target := growTo(m.cfg.growthFactor, len(m.rowIdx), free, len(m.rowIdx)+minExtra)
	grownIdx := make([]I, len(m.rowIdx), target)
	grownVal := make([]S, len(m.val), target)
	copy(grownIdx, m.rowIdx)
	copy(grownVal, m.val)
	m.rowIdx, m.val = grownIdx, grownVal
}

// Finalize closes out the column pointers for any trailing columns past
// the last one Insert touched, so that Col and MaxColNNZ behave correctly
// for a matrix whose last columns are entirely empty. Finalize is a no-op
// if every column has already been inserted into or skipped over.
func (m *CSC[I, S]) Finalize() {
	for c := m.curCol; c < m.cols; c++ {
		m.p[c+1] = I(len(m.rowIdx))
	}
	m.curCol = m.cols
}

// Col returns column j as a freestanding Vector; the returned Vector
// shares no backing storage with the receiver; mutating it has no effect
// on the matrix.
func (m *CSC[I, S]) Col(j I) *Vector[I, S] {
	start, end := m.p[j], m.p[j+1]
	v := NewVector[I, S](m.rows)
	v.ind = append(v.ind, m.rowIdx[start:end]...)
	v.val = append(v.val, m.val[start:end]...)
	return v
}

// Zero discards all stored entries and resets every column pointer,
// leaving the matrix's dimensions unchanged.
func (m *CSC[I, S]) Zero() {
	m.rowIdx = m.rowIdx[:0]
	m.val = m.val[:0]
	for i := range m.p {
		m.p[i] = 0
	}
	m.curCol = 0
}

// Resize changes the matrix's dimensions and discards all stored entries,
// since a resize invalidates the append-only column-pointer invariant.
func (m *CSC[I, S]) Resize(rows, cols I) {
	m.rows, m.cols = rows, cols
	m.p = make([]I, int(cols)+1)
	m.rowIdx = m.rowIdx[:0]
	m.val = m.val[:0]
	m.curCol = 0
}

// Sparsity returns the proportion of cells with no stored entry, in [0, 1],
// computed as 1 - Density().
func (m *CSC[I, S]) Sparsity() float64 { return 1 - m.Density() }

// Density returns the proportion of cells with a stored entry, NNZ divided
// by rows*cols, in [0, 1].
func (m *CSC[I, S]) Density() float64 {
	total := float64(m.rows) * float64(m.cols)
	if total == 0 {
		return 1
	}
	return float64(len(m.rowIdx)) / total
}

// at returns the value stored at (row, col), or the zero value if none is
// stored, via binary search within the column's ordered row-index window.
func (m *CSC[I, S]) at(row, col I) S {
	start, end := m.p[col], m.p[col+1]
	n := int(end - start)
	idx := sort.Search(n, func(k int) bool { return m.rowIdx[int(start)+k] >= row }) + int(start)
	if idx < int(end) && m.rowIdx[idx] == row {
		return m.val[idx]
	}
	var zero S
	return zero
}

// The mat.Matrix conformance below mirrors the teacher's CSR/CSC types,
// letting CSC[I, float64] interoperate with the rest of the Gonum
// ecosystem for diagnostics and comparisons in tests.

var _ mat.Matrix = (*CSC[int, float64])(nil)

// Dims returns the matrix's row and column counts as plain ints, per
// mat.Matrix. Use Shape for the index-typed equivalent.
func (m *CSC[I, S]) Dims() (r, c int) { return int(m.rows), int(m.cols) }

// At returns the element at (row, col) as a float64, per mat.Matrix.
func (m *CSC[I, S]) At(row, col int) float64 {
	if row < 0 || row >= int(m.rows) {
		panic(mat.ErrRowAccess)
	}
	if col < 0 || col >= int(m.cols) {
		panic(mat.ErrColAccess)
	}
	return float64(m.at(I(row), I(col)))
}

// T returns the transpose of the receiver as a lazily-evaluated view,
// since CSC carries no native row-major sibling to swap in directly.
func (m *CSC[I, S]) T() mat.Matrix { return mat.Transpose{Matrix: m} }
