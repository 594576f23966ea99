package blas

type index interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Scatter (sparse scatter, y|x <- x) scatters the entries of the sparse
// value slice x into the dense slice y at the positions given by indx,
// generalising the float64-only Dussc from the sparse BLAS level 1 extensions
// to any numeric and index type pairing. Scatter panics if indx and x differ
// in length, or if any index in indx is out of range for y.
func Scatter[I index, S numeric](x []S, indx []I, y []S) {
	if len(indx) != len(x) {
		panic("blas: Scatter: index and value slices differ in length")
	}
	for i, idx := range indx {
		y[idx] = x[i]
	}
}
