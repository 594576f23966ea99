package sparse

import (
	"fmt"
	"sort"

	"github.com/jrbaldwin/sparsereduce/blas"
	"gonum.org/v1/gonum/mat"
)

// Vector is an ordered sparse vector: two parallel slices, ind holding
// strictly ascending indices and val holding the corresponding non-zero
// values. It is the sparse half of the densify/sparsify protocol that
// carries a CSC column through a reduction: a column is read out of a CSC
// as a Vector, Densify'd into a Dense buffer for the collective substrate,
// and the reduced result rebuilt into a Vector with Set before being
// appended back into an output CSC.
//
// Unlike CSC, Vector supports arbitrary-position insertion: Insert locates
// i's slot by binary search and right-shifts the suffix to make room,
// overwriting in place instead if i is already present. This is what lets
// Add and AddDense merge another vector's or dense buffer's entries index
// by index rather than requiring a shared index set up front.
type Vector[I Index, S Numeric] struct {
	length I
	ind    []I
	val    []S
	cfg    config
}

// NewVector returns a new, empty Vector of the given length.
func NewVector[I Index, S Numeric](length I, opts ...Option) *Vector[I, S] {
	return &Vector[I, S]{length: length, cfg: applyOptions(opts)}
}

// Len returns the vector's length.
func (v *Vector[I, S]) Len() I { return v.length }

// NNZ returns the number of stored (non-zero) entries.
func (v *Vector[I, S]) NNZ() I { return I(len(v.ind)) }

// Get returns the value at index i, or the zero value if i is not stored.
// Get runs in O(log NNZ) via binary search over the ordered index array.
func (v *Vector[I, S]) Get(i I) S {
	n := len(v.ind)
	idx := sort.Search(n, func(k int) bool { return v.ind[k] >= i })
	if idx < n && v.ind[idx] == i {
		return v.val[idx]
	}
	var zero S
	return zero
}

// Each calls fn once per stored entry, in strictly ascending index order.
// It is the read-only counterpart to Insert, used by callers (such as a
// reducer assembling an output CSC) that need to walk a column's non-zero
// entries without reaching into the vector's backing storage.
func (v *Vector[I, S]) Each(fn func(i I, s S)) {
	for k, idx := range v.ind {
		fn(idx, v.val[k])
	}
}

// Insert locates i among the stored indices and writes (i, s) there: if i
// is already present, its value is overwritten; otherwise the suffix from
// that point on is shifted right by one slot to make room for an ordered
// insertion. i must be within [0, Len()); violating that precondition is
// reported as a *sparse.Error with Kind PreconditionViolated rather than
// panicking the caller's goroutine.
//
// When the backing arrays are full and i is not already present, Insert
// grows them first (amortised by the vector's configured growth factor,
// DefaultGrowthFactor unless overridden via WithGrowthFactor) and then
// retries the insertion.
func (v *Vector[I, S]) Insert(i I, s S) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newError(PreconditionViolated, "vector insert: %v", r)
		}
	}()
	v.insert(i, s)
	return nil
}

func (v *Vector[I, S]) insert(i I, s S) {
	if i < 0 || i >= v.length {
		panic(fmt.Sprintf("index %v out of range [0, %v)", i, v.length))
	}
	k := sort.Search(len(v.ind), func(idx int) bool { return v.ind[idx] >= i })
	if k < len(v.ind) && v.ind[k] == i {
		v.val[k] = s
		return
	}
	if len(v.ind) == cap(v.ind) {
		v.grow(1)
	}
	v.insertAt(k, i, s)
}

// insertAt writes (i, s) at position k, shifting v.ind[k:]/v.val[k:] right
// by one slot first. The caller is responsible for ensuring spare capacity
// and for k being the correct ordered position; insertAt itself performs no
// validation.
func (v *Vector[I, S]) insertAt(k int, i I, s S) {
	n := len(v.ind)
	v.ind = append(v.ind, i)
	v.val = append(v.val, s)
	copy(v.ind[k+1:], v.ind[k:n])
	copy(v.val[k+1:], v.val[k:n])
	v.ind[k] = i
	v.val[k] = s
}

// grow reallocates the backing arrays to accommodate at least minExtra more
// entries, following the amortised growth contract shared with CSC.
func (v *Vector[I, S]) grow(minExtra int) {
	free := cap(v.ind) - len(v.ind)
	target := growTo(v.cfg.growthFactor, len(v.ind), free, len(v.ind)+minExtra)
	grownInd := make([]I, len(v.ind), target)
	grownVal := make([]S, len(v.val), target)
	copy(grownInd, v.ind)
	copy(grownVal, v.val)
	v.ind, v.val = grownInd, grownVal
}

// Zero discards all stored entries without changing the vector's length.
func (v *Vector[I, S]) Zero() {
	v.ind = v.ind[:0]
	v.val = v.val[:0]
}

// Resize changes the vector's nominal length without touching its stored
// entries. Shrinking below the highest stored index leaves those entries
// in place; callers relying on Resize to truncate data should Zero first.
func (v *Vector[I, S]) Resize(length I) {
	v.length = length
}

// UpdateNNZ drops any stored entries whose value has been explicitly set
// to zero, compacting the remaining entries in place. It exists for parity
// with Dense.UpdateNNZ: a caller that zeroes an entry directly (rather
// than through Insert) — for instance Add/AddDense leaving a cancelling
// sum behind — calls UpdateNNZ to fold that cancellation out of NNZ.
func (v *Vector[I, S]) UpdateNNZ() {
	n := 0
	for k, x := range v.val {
		if x != 0 {
			v.ind[n] = v.ind[k]
			v.val[n] = x
			n++
		}
	}
	v.ind = v.ind[:n]
	v.val = v.val[:n]
}

// Densify writes the receiver's non-zero entries into d, which must be at
// least as long as the receiver. Densify reports a *sparse.Error with Kind
// Capacity if d is too short, rather than truncating silently.
func (v *Vector[I, S]) Densify(d *Dense[I, S]) error {
	if d.Len() < v.length {
		return newError(Capacity, "dense target length %v smaller than vector length %v", d.Len(), v.length)
	}
	blas.Scatter(v.val, v.ind, d.Raw())
	d.UpdateNNZ()
	return nil
}

// Set replaces the receiver's contents with the non-zero entries of d, in
// ascending index order, and adopts d's length. Set is the dense-to-sparse
// half of the densify/sparsify protocol: once the collective substrate has
// reduced a densified column in place, Set rebuilds the sparse column ready
// for appending into an output CSC.
func (v *Vector[I, S]) Set(d *Dense[I, S]) {
	v.length = d.Len()
	raw := d.Raw()

	ind := getSlice[I](0, false)[:0]
	val := getSlice[S](0, false)[:0]
	for i, x := range raw {
		if x != 0 {
			ind = append(ind, I(i))
			val = append(val, x)
		}
	}

	putSlice(v.ind)
	putSlice(v.val)
	v.ind, v.val = ind, val
}

// Add merges other into the receiver in place: indices present in both
// are summed, indices present only in other are ordered-inserted. Add is
// two-pass and capacity-probing, mirroring the ground truth's
// add(SV other) → needed contract. Pass one merge-walks both index arrays
// to count numNew, the indices in other absent from the receiver; if
// numNew exceeds the receiver's free capacity (cap(ind) minus NNZ), Add
// returns numNew immediately without mutating the receiver at all, so the
// caller can grow its backing storage and retry. Otherwise pass two
// performs the merge in place and returns 0.
//
// Add panics if the receiver already has a non-zero length that differs
// from other's, the same API-precondition convention gonum's mat package
// uses for shape mismatches between operands the caller controls directly
// (as opposed to untrusted input arriving through Insert). A freshly
// zero-valued receiver adopts other's length on success.
func (v *Vector[I, S]) Add(other *Vector[I, S]) (needed I) {
	if v.length != 0 && v.length != other.length {
		panic(mat.ErrShape)
	}

	numNew := 0
	var i, j int
	for i < len(v.ind) && j < len(other.ind) {
		switch {
		case v.ind[i] == other.ind[j]:
			i++
			j++
		case v.ind[i] < other.ind[j]:
			i++
		default:
			numNew++
			j++
		}
	}
	numNew += len(other.ind) - j

	if free := cap(v.ind) - len(v.ind); numNew > free {
		return I(numNew)
	}

	v.length = other.length
	i, j = 0, 0
	for j < len(other.ind) {
		switch {
		case i < len(v.ind) && v.ind[i] == other.ind[j]:
			v.val[i] += other.val[j]
			i++
			j++
		case i < len(v.ind) && v.ind[i] < other.ind[j]:
			i++
		default:
			v.insertAt(i, other.ind[j], other.val[j])
			i++
			j++
		}
	}
	return 0
}

// AddDense merges d's non-zero entries into the receiver in place, the
// dense-source counterpart to Add (the ground truth's
// add(const SCALAR *x, xlen) → needed). It shares Add's two-pass,
// capacity-probing contract: a dry-run pass counts the indices in d that
// are both non-zero and absent from the receiver, and if that count
// exceeds the receiver's free capacity, AddDense returns it unmutated for
// the caller to grow and retry. Otherwise the merge is applied in place
// and AddDense returns 0.
func (v *Vector[I, S]) AddDense(d *Dense[I, S]) (needed I) {
	if v.length != 0 && v.length != d.Len() {
		panic(mat.ErrShape)
	}
	raw := d.Raw()

	numNew := 0
	vi := 0
	for di, x := range raw {
		if x == 0 {
			continue
		}
		for vi < len(v.ind) && v.ind[vi] < I(di) {
			vi++
		}
		if vi >= len(v.ind) || v.ind[vi] != I(di) {
			numNew++
		}
	}

	if free := cap(v.ind) - len(v.ind); numNew > free {
		return I(numNew)
	}

	v.length = d.Len()
	vi = 0
	for di, x := range raw {
		if x == 0 {
			continue
		}
		for vi < len(v.ind) && v.ind[vi] < I(di) {
			vi++
		}
		if vi < len(v.ind) && v.ind[vi] == I(di) {
			v.val[vi] += x
			vi++
		} else {
			v.insertAt(vi, I(di), x)
			vi++
		}
	}
	return 0
}

// The mat.Vector conformance below mirrors the teacher's Vector type,
// letting Vector[I, float64] interoperate with the rest of the Gonum
// ecosystem for diagnostics and comparisons in tests.

var _ mat.Vector = (*Vector[int, float64])(nil)

// Dims returns (Len(), 1), matching mat.Matrix for a column vector.
func (v *Vector[I, S]) Dims() (r, c int) { return int(v.length), 1 }

// At returns the element at (r, 0) as a float64. At panics if c != 0.
func (v *Vector[I, S]) At(r, c int) float64 {
	if c != 0 {
		panic(mat.ErrColAccess)
	}
	return v.AtVec(r)
}

// AtVec returns the element at row i as a float64, satisfying mat.Vector.
func (v *Vector[I, S]) AtVec(i int) float64 { return float64(v.Get(I(i))) }

// T returns the transpose of the receiver, per mat.Matrix.
func (v *Vector[I, S]) T() mat.Matrix { return mat.TransposeVec{Vector: v} }
