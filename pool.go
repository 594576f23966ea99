package sparse

import (
	"reflect"
	"sync"
)

// pooledSliceSize is the minimum capacity a returned slice must have before
// it is considered worth pooling rather than left for the garbage collector,
// mirroring the teacher's pooledFloatSize/pooledIntSize thresholds.
const pooledSliceSize = 200

// slicePools holds one sync.Pool per concrete slice element type. The
// teacher keeps one package-level sync.Pool per concrete type (float64,
// int) because it has no generics to parametrise over; here Vector and
// Dense are generic over I and S, so a single global var can't be
// instantiated for every (I, S) a caller might choose. slicePools closes
// that gap with a small type-keyed registry instead, giving every distinct
// slice element type its own pool lazily on first use.
var slicePools sync.Map // reflect.Type -> *sync.Pool

func poolFor[T any]() *sync.Pool {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := slicePools.Load(key); ok {
		return v.(*sync.Pool)
	}
	p := &sync.Pool{New: func() any { return []T(nil) }}
	actual, _ := slicePools.LoadOrStore(key, p)
	return actual.(*sync.Pool)
}

// getSlice returns a slice of length size, reusing a pooled backing array
// of type T when one of sufficient capacity is available. If zero is true
// the visible elements are cleared before being returned.
func getSlice[T any](size int, zero bool) []T {
	p := poolFor[T]()
	s := p.Get().([]T)
	if cap(s) < size {
		return make([]T, size)
	}
	s = s[:size]
	if zero {
		var z T
		for i := range s {
			s[i] = z
		}
	}
	return s
}

// putSlice returns a used slice to its type's pool for reuse. putSlice must
// not be called with a slice where references to the underlying array have
// been retained elsewhere.
func putSlice[T any](s []T) {
	if cap(s) < pooledSliceSize {
		return
	}
	poolFor[T]().Put(s[:0])
}
