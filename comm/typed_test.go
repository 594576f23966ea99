package comm

import (
	"context"
	"testing"

	sparse "github.com/jrbaldwin/sparsereduce"
)

func TestTypedReduce(t *testing.T) {
	const size = 3
	g := NewLocalGroup[float64](size)
	results := make([][]float64, size)
	errs := Run(context.Background(), g, func(_ context.Context, backend Backend[float64]) error {
		typed, err := NewTyped[float64](backend)
		if err != nil {
			return err
		}
		buf := []float64{1, 2}
		if err := typed.Reduce(ReduceToAll, buf); err != nil {
			return err
		}
		results[typed.Rank()] = buf
		return nil
	})
	for _, err := range errs {
		if err != nil {
			t.Fatalf("Reduce: %v", err)
		}
	}
	for rank, got := range results {
		if got[0] != size || got[1] != 2*size {
			t.Errorf("rank %d: expected [%v %v] but received %v", rank, float64(size), float64(2*size), got)
		}
	}
}

func TestTypedReduceInsufficientRanks(t *testing.T) {
	g := NewLocalGroup[float64](1)
	backend := g.Backend(0)
	typed, err := NewTyped[float64](backend)
	if err != nil {
		t.Fatalf("NewTyped: %v", err)
	}
	err = typed.Reduce(ReduceToAll, []float64{1})
	if err == nil {
		t.Fatal("expected an error for a single-rank group")
	}
	serr, ok := err.(*sparse.Error)
	if !ok || serr.Kind != sparse.InsufficientRanks {
		t.Errorf("expected Kind InsufficientRanks, got %v", err)
	}
}

func TestTypedGatherVAllVariant(t *testing.T) {
	const size = 2
	g := NewLocalGroup[int64](size)
	results := make([][]int64, size)
	errs := Run(context.Background(), g, func(_ context.Context, backend Backend[int64]) error {
		typed, err := NewTyped[int64](backend)
		if err != nil {
			return err
		}
		counts, err := typed.AllGatherCounts(typed.Rank() + 1)
		if err != nil {
			return err
		}
		total := 0
		displs := make([]int, len(counts))
		for i, c := range counts {
			displs[i] = total
			total += c
		}
		send := make([]int64, counts[typed.Rank()])
		for i := range send {
			send[i] = int64(typed.Rank())
		}
		out, err := typed.GatherV(ReduceToAll, send, counts, displs, total)
		if err != nil {
			return err
		}
		results[typed.Rank()] = out
		return nil
	})
	for _, err := range errs {
		if err != nil {
			t.Fatalf("GatherV: %v", err)
		}
	}
	for rank, got := range results {
		if len(got) != 3 { // rank0 sends 1 value, rank1 sends 2
			t.Errorf("rank %d: expected 3 gathered values, got %v", rank, got)
		}
	}
}
