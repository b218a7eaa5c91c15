// Package transport is the distributed collaborator §5 describes: a
// messaging layer providing broadcast, scatter_v, all_gather_v, rank and
// size. No MPI or gRPC binding exists anywhere in the retrieved example
// corpus, so Transport is a genuine Go-native interface rather than a
// wrapper around a fetched messaging library — Local and InProcess below
// are its only implementations.
package transport

// Transport is the collaborator contract the solver façade depends on.
// Every method is a collective: all participants must call it in the same
// order, with the same shapes, or behavior is undefined (per §5's
// ordering guarantee).
type Transport interface {
	Rank() int
	Size() int

	// Broadcast sends root's copy of data to every participant and
	// returns the agreed-upon slice (root's own data is returned
	// unchanged).
	Broadcast(data []float64, root int) ([]float64, error)

	// BroadcastInt is Broadcast specialised to a single integer, used for
	// propagating an error code consistently across ranks per §7.
	BroadcastInt(code int, root int) (int, error)

	// ScatterV splits a root-owned slice into per-rank chunks sized by
	// counts (length Size()) and returns this rank's chunk.
	ScatterV(data []float64, counts []int, root int) ([]float64, error)

	// AllGatherV gathers every rank's chunk (length counts[Rank()]) into
	// one slice ordered by rank, visible identically to all ranks.
	AllGatherV(chunk []float64, counts []int) ([]float64, error)
}

// BlockRange computes the contiguous block-row partition of §5: rank r
// owns rows [r*base+min(r,rem), (r+1)*base+min(r+1,rem)) where
// base = n/size, rem = n mod size.
func BlockRange(n, size, rank int) (lo, hi int) {
	base := n / size
	rem := n % size
	min := func(a, b int) int {
		if a < b {
			return a
		}
		return b
	}
	lo = rank*base + min(rank, rem)
	hi = (rank+1)*base + min(rank+1, rem)
	return lo, hi
}

// Counts returns, for every rank, the row count of its BlockRange slice —
// the "counts" argument ScatterV/AllGatherV expect.
func Counts(n, size int) []int {
	counts := make([]int, size)
	for r := 0; r < size; r++ {
		lo, hi := BlockRange(n, size, r)
		counts[r] = hi - lo
	}
	return counts
}
