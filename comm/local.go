package comm

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	sparse "github.com/jrbaldwin/sparsereduce"
)

// runConcurrency bounds how many simulated-rank goroutines may be running
// at once across every LocalGroup live in the process, so a test suite
// that spins up many groups (or groups with many ranks) doesn't explode
// the number of live goroutines.
var runConcurrency = semaphore.NewWeighted(256)

// LocalGroup is an in-process reference Backend: it simulates size ranks
// as goroutines that rendezvous on a shared barrier rather than talking to
// an external transport. Every collective call blocks the calling rank
// until all size ranks have made the matching call, then combines their
// contributions and releases everyone with the combined result, the same
// lockstep discipline a real collective library imposes.
type LocalGroup[S sparse.Numeric] struct {
	size int

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int
	contrib []any
	result  any
	ready   bool
}

// NewLocalGroup returns a LocalGroup simulating size ranks. size must be
// at least 1.
func NewLocalGroup[S sparse.Numeric](size int) *LocalGroup[S] {
	if size < 1 {
		panic("comm: LocalGroup size must be at least 1")
	}
	g := &LocalGroup[S]{size: size, contrib: make([]any, size)}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Size returns the number of simulated ranks.
func (g *LocalGroup[S]) Size() int { return g.size }

// Backend returns a Backend[S] bound to the given rank, in [0, Size()).
func (g *LocalGroup[S]) Backend(rank int) Backend[S] {
	if rank < 0 || rank >= g.size {
		panic("comm: rank out of range")
	}
	return &LocalBackend[S]{group: g, rank: rank}
}

// rendezvous blocks rank until every rank has arrived with a contribution
// for the current step, combines every contribution exactly once (by
// whichever goroutine happens to arrive last), and returns the combined
// result to all of them. Calls for distinct logical steps must not
// interleave across ranks; like a real collective, calling out of lockstep
// deadlocks the group.
func (g *LocalGroup[S]) rendezvous(rank int, contribution any, combine func([]any) any) any {
	g.mu.Lock()
	defer g.mu.Unlock()

	// A rank that has already collected the previous step's result waits
	// here until every other rank has collected it too, so it cannot mix
	// its next contribution into the step still being released.
	for g.ready {
		g.cond.Wait()
	}
	g.contrib[rank] = contribution
	g.arrived++
	if g.arrived == g.size {
		g.result = combine(g.contrib)
		g.ready = true
		g.cond.Broadcast()
	} else {
		for !g.ready {
			g.cond.Wait()
		}
	}

	result := g.result
	g.arrived--
	if g.arrived == 0 {
		g.ready = false
		g.result = nil
		g.contrib = make([]any, g.size)
		g.cond.Broadcast()
	}
	return result
}

// LocalBackend is a Backend[S] bound to one rank of a LocalGroup.
type LocalBackend[S sparse.Numeric] struct {
	group *LocalGroup[S]
	rank  int
}

func (b *LocalBackend[S]) Rank() int { return b.rank }
func (b *LocalBackend[S]) Size() int { return b.group.size }

func (b *LocalBackend[S]) Barrier() {
	b.group.rendezvous(b.rank, nil, func(_ []any) any { return nil })
}

func (b *LocalBackend[S]) Reduce(root int, sendRecv []S, _ Op) error {
	contribution := append([]S(nil), sendRecv...)
	combined := b.group.rendezvous(b.rank, contribution, func(all []any) any {
		n := len(all[0].([]S))
		sum := make([]S, n)
		for _, c := range all {
			for i, v := range c.([]S) {
				sum[i] += v
			}
		}
		return sum
	}).([]S)

	if root == ReduceToAll || b.rank == root {
		copy(sendRecv, combined)
	}
	return nil
}

func (b *LocalBackend[S]) AllGatherInts(local int) ([]int, error) {
	combined := b.group.rendezvous(b.rank, local, func(all []any) any {
		counts := make([]int, len(all))
		for i, c := range all {
			counts[i] = c.(int)
		}
		return counts
	}).([]int)
	return combined, nil
}

func (b *LocalBackend[S]) GatherV(root int, send []S, counts, displs []int, total int) ([]S, error) {
	return b.gatherV(root, send, counts, displs, total, false)
}

func (b *LocalBackend[S]) AllGatherV(send []S, counts, displs []int, total int) ([]S, error) {
	return b.gatherV(ReduceToAll, send, counts, displs, total, true)
}

func (b *LocalBackend[S]) gatherV(root int, send []S, counts, displs []int, total int, all bool) ([]S, error) {
	contribution := append([]S(nil), send...)
	combined := b.group.rendezvous(b.rank, contribution, func(contribs []any) any {
		out := make([]S, total)
		for r, c := range contribs {
			copy(out[displs[r]:displs[r]+counts[r]], c.([]S))
		}
		return out
	}).([]S)

	if all || b.rank == root {
		return combined, nil
	}
	return nil, nil
}

func (b *LocalBackend[S]) GatherVInts(root int, send []int, counts, displs []int, total int) ([]int, error) {
	return b.gatherVInts(root, send, counts, displs, total, false)
}

func (b *LocalBackend[S]) AllGatherVInts(send []int, counts, displs []int, total int) ([]int, error) {
	return b.gatherVInts(ReduceToAll, send, counts, displs, total, true)
}

func (b *LocalBackend[S]) gatherVInts(root int, send []int, counts, displs []int, total int, all bool) ([]int, error) {
	contribution := append([]int(nil), send...)
	combined := b.group.rendezvous(b.rank, contribution, func(contribs []any) any {
		out := make([]int, total)
		for r, c := range contribs {
			copy(out[displs[r]:displs[r]+counts[r]], c.([]int))
		}
		return out
	}).([]int)

	if all || b.rank == root {
		return combined, nil
	}
	return nil, nil
}

// Run launches one goroutine per rank in g, each invoking fn with its own
// Backend[S] handle, and blocks until every rank has returned. Launches
// are bounded by a package-wide semaphore shared across every LocalGroup
// in the process, so a large test suite doesn't accumulate unbounded
// goroutines across many concurrently-running groups.
func Run[S sparse.Numeric](ctx context.Context, g *LocalGroup[S], fn func(ctx context.Context, backend Backend[S]) error) []error {
	errs := make([]error, g.size)
	var wg sync.WaitGroup
	for r := 0; r < g.size; r++ {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runConcurrency.Acquire(ctx, 1); err != nil {
				errs[r] = err
				return
			}
			defer runConcurrency.Release(1)
			errs[r] = fn(ctx, g.Backend(r))
		}()
	}
	wg.Wait()
	return errs
}
