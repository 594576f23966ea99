package comm

import sparse "github.com/jrbaldwin/sparsereduce"

// Op identifies a reduction operator. SumOp is the only operator the
// collective substrate needs to support: every column reduction in this
// module is an element-wise sum across ranks.
type Op int

const (
	// SumOp reduces contributions by element-wise addition.
	SumOp Op = iota
)

// ReduceToAll is the root value meaning "every rank receives the combined
// result" rather than "only the named rank does". It is distinct from any
// valid rank (ranks are always >= 0).
const ReduceToAll = -1

// Backend is the collective-communication substrate a reducer sends and
// receives scalar buffers through. Implementations should treat the group
// size as fixed for the lifetime of the Backend; Reduce, AllGatherInts,
// GatherV and AllGatherV are expected to be called by every rank, in the
// same order, for every step of a reduction, matching the lockstep
// discipline of a real collective library.
type Backend[S sparse.Numeric] interface {
	// Rank returns this backend's rank within its group, in [0, Size()).
	Rank() int

	// Size returns the number of ranks in the group.
	Size() int

	// Barrier blocks until every rank in the group has called Barrier.
	Barrier()

	// Reduce combines sendRecv across every rank in the group using op,
	// writing the combined values back into sendRecv. If root is
	// ReduceToAll every rank's sendRecv holds the combined result on
	// return; otherwise only the named root's does.
	Reduce(root int, sendRecv []S, op Op) error

	// AllGatherInts exchanges a single int per rank and returns every
	// rank's value, ordered by rank.
	AllGatherInts(local int) ([]int, error)

	// GatherV concatenates every rank's send buffer into root's result,
	// placing rank r's counts[r] values at result[displs[r]:][:counts[r]].
	// total is the sum of counts and the length of the result returned to
	// root; non-root ranks receive a nil slice.
	GatherV(root int, send []S, counts, displs []int, total int) ([]S, error)

	// AllGatherV is GatherV with every rank receiving the concatenated
	// result.
	AllGatherV(send []S, counts, displs []int, total int) ([]S, error)

	// GatherVInts is GatherV specialised to plain int buffers, used to
	// exchange row/column index arrays whose element type need not match
	// the reducer's scalar type S.
	GatherVInts(root int, send []int, counts, displs []int, total int) ([]int, error)

	// AllGatherVInts is GatherVInts with every rank receiving the
	// concatenated result.
	AllGatherVInts(send []int, counts, displs []int, total int) ([]int, error)
}
