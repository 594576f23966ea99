package reduce

import (
	"github.com/sirupsen/logrus"

	sparse "github.com/jrbaldwin/sparsereduce"
	"github.com/jrbaldwin/sparsereduce/comm"
)

// minInitialCapacity is the floor on the output CSC's preallocated
// backing storage, regardless of how sparse the input is.
const minInitialCapacity = 32

// Dense reduces x across the group typed is bound to by densifying each
// column and performing one typed reduce per column: a column is
// extracted, densified into an m-length scratch buffer, reduced
// element-wise by sum, and (on receiving ranks) sparsified back and
// appended to the output matrix. It trades per-column traffic of m
// scalars for a single collective round trip per column, favouring inputs
// whose columns aren't much sparser than m.
//
// Dense is collective: every rank in typed's group must call it, with
// column-identical x (same dims) and in the same order relative to other
// collective calls. When root is comm.ReduceToAll every rank's returned
// matrix holds the sum; otherwise only root's does, and other ranks
// receive an empty-but-valid matrix of the same dimensions.
func Dense[I sparse.Index, S sparse.Numeric](root int, x sparse.CSCView[I, S], typed *comm.Typed[S], opts ...Option) (*sparse.CSC[I, S], error) {
	cfg := applyOptions(opts)
	if typed.Size() < 2 {
		return nil, &sparse.Error{
			Kind:    sparse.InsufficientRanks,
			Message: "reduce.Dense requires at least 2 ranks",
		}
	}

	rows, cols := x.Shape()
	receiving := root == comm.ReduceToAll || typed.Rank() == root

	capacity := int(float64(x.MaxColNNZ()) * cfg.growthFactor)
	if capacity < minInitialCapacity {
		capacity = minInitialCapacity
	}
	out := sparse.NewCSCWithCapacity[I, S](rows, cols, capacity, sparse.WithGrowthFactor(cfg.growthFactor))

	d := sparse.NewDense[I, S](rows)
	for j := I(0); j < cols; j++ {
		col := x.Col(j)

		d.Zero()
		if err := col.Densify(d); err != nil {
			return nil, err
		}

		if err := typed.Reduce(root, d.Raw()); err != nil {
			return nil, err
		}

		if !receiving {
			continue
		}

		d.UpdateNNZ()
		var reduced sparse.Vector[I, S]
		reduced.Set(d)
		reduced.Each(func(i I, s S) {
			// reduced's indices are strictly ascending within column j and
			// j itself only increases across the outer loop, so this Insert
			// satisfies out's append-only contract by construction; an
			// error here means that invariant broke somewhere upstream.
			if err := out.Insert(j, i, s); err != nil {
				panic(err)
			}
		})
	}
	out.Finalize()

	cfg.logger.WithFields(logrus.Fields{
		"rows": rows,
		"cols": cols,
		"nnz":  out.NNZ(),
	}).Debug("reduce.Dense: complete")

	return out, nil
}
