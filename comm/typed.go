package comm

import (
	"fmt"

	"github.com/pkg/errors"

	sparse "github.com/jrbaldwin/sparsereduce"
)

// Typed wraps a Backend[S], presenting the narrower surface reduce's
// algorithms actually call, resolving S's datatype handle once at
// construction, and converting every backend failure into a
// *sparse.Error{Kind: sparse.CommunicationFailure}.
type Typed[S sparse.Numeric] struct {
	backend Backend[S]
	cfg     config
	dtype   string
}

// NewTyped wraps backend. NewTyped fails with Kind UnknownType if S has no
// substrate datatype handle, which the Numeric constraint should make
// unreachable in practice.
func NewTyped[S sparse.Numeric](backend Backend[S], opts ...Option) (*Typed[S], error) {
	name, err := datatypeName[S]()
	if err != nil {
		return nil, err
	}
	return &Typed[S]{backend: backend, cfg: applyOptions(opts), dtype: name}, nil
}

// Rank returns the wrapped backend's rank.
func (t *Typed[S]) Rank() int { return t.backend.Rank() }

// Size returns the wrapped backend's group size.
func (t *Typed[S]) Size() int { return t.backend.Size() }

// Barrier blocks until every rank has called Barrier.
func (t *Typed[S]) Barrier() { t.backend.Barrier() }

// Reduce sums sendRecv across the group in place. If root is ReduceToAll
// every rank's buffer holds the sum on return; otherwise only root's does.
// Reduce fails with Kind InsufficientRanks if the group has fewer than two
// ranks.
func (t *Typed[S]) Reduce(root int, sendRecv []S) error {
	if t.backend.Size() < 2 {
		return &sparse.Error{
			Kind:    sparse.InsufficientRanks,
			Message: fmt.Sprintf("reduce over %s requires at least 2 ranks, got %d", t.dtype, t.backend.Size()),
		}
	}
	if err := t.backend.Reduce(root, sendRecv, SumOp); err != nil {
		return t.wrap(err, "reduce")
	}
	return nil
}

// AllGatherCounts exchanges one int per rank, used to compute the
// gatherv/all-gatherv displacement table ahead of a value exchange.
func (t *Typed[S]) AllGatherCounts(local int) ([]int, error) {
	counts, err := t.backend.AllGatherInts(local)
	if err != nil {
		return nil, t.wrap(err, "all-gather counts")
	}
	return counts, nil
}

// GatherV concatenates send across the group into root's result (or every
// rank's result, if root is ReduceToAll).
func (t *Typed[S]) GatherV(root int, send []S, counts, displs []int, total int) ([]S, error) {
	var (
		out []S
		err error
	)
	if root == ReduceToAll {
		out, err = t.backend.AllGatherV(send, counts, displs, total)
	} else {
		out, err = t.backend.GatherV(root, send, counts, displs, total)
	}
	if err != nil {
		return nil, t.wrap(err, "gatherv")
	}
	return out, nil
}

// GatherVIndices is GatherV specialised to index arrays (plain ints),
// used to exchange row/column indices alongside the scalar values GatherV
// exchanges. The index datatype is not looked up against S's handle since
// indices are always plain ints on the wire, independent of the reducer's
// scalar type.
func (t *Typed[S]) GatherVIndices(root int, send []int, counts, displs []int, total int) ([]int, error) {
	var (
		out []int
		err error
	)
	if root == ReduceToAll {
		out, err = t.backend.AllGatherVInts(send, counts, displs, total)
	} else {
		out, err = t.backend.GatherVInts(root, send, counts, displs, total)
	}
	if err != nil {
		return nil, t.wrap(err, "gatherv-indices")
	}
	return out, nil
}

func (t *Typed[S]) wrap(cause error, op string) error {
	t.cfg.logger.WithError(cause).WithFields(map[string]any{
		"op":    op,
		"dtype": t.dtype,
		"rank":  t.backend.Rank(),
	}).Warn("collective operation failed")
	return &sparse.Error{
		Kind:    sparse.CommunicationFailure,
		Message: errors.Wrapf(cause, "comm: %s (%s) failed", op, t.dtype).Error(),
		Cause:   cause,
	}
}
