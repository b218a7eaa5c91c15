package transport

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/brnoble/dsolve/matrix"
)

// InProcessHub coordinates a simulated multi-rank run within one process:
// each simulated rank runs on its own goroutine and calls into an
// InProcessRank bound to this hub, which rendezvous-barriers at every
// collective the way real distributed ranks would synchronize through a
// messaging layer.
type InProcessHub struct {
	size int

	mu   sync.Mutex
	cond *sync.Cond

	floatGen, floatArrived int
	floatContrib           [][]float64
	floatResult            [][]float64

	intGen, intArrived int
	intContrib         []int
	intResult          []int
}

// NewInProcessHub creates a hub for size simulated ranks.
func NewInProcessHub(size int) *InProcessHub {
	h := &InProcessHub{size: size, floatContrib: make([][]float64, size), intContrib: make([]int, size)}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// Rank returns the Transport view for simulated rank r.
func (h *InProcessHub) Rank(r int) Transport {
	return &InProcessRank{hub: h, rank: r}
}

// RunRanks launches fn concurrently for every rank 0..size-1 and waits for
// all to finish, returning the first error encountered (if any).
func RunRanks(size int, fn func(rank int) error) error {
	var g errgroup.Group
	for r := 0; r < size; r++ {
		r := r
		g.Go(func() error { return fn(r) })
	}
	return g.Wait()
}

func (h *InProcessHub) rendezvousFloat(rank int, contribution []float64, combine func([][]float64) [][]float64) []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	myGen := h.floatGen
	h.floatContrib[rank] = contribution
	h.floatArrived++
	if h.floatArrived == h.size {
		h.floatResult = combine(h.floatContrib)
		h.floatContrib = make([][]float64, h.size)
		h.floatArrived = 0
		h.floatGen++
		h.cond.Broadcast()
	} else {
		for h.floatGen == myGen {
			h.cond.Wait()
		}
	}
	return h.floatResult[rank]
}

func (h *InProcessHub) rendezvousInt(rank int, contribution int, combine func([]int) []int) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	myGen := h.intGen
	h.intContrib[rank] = contribution
	h.intArrived++
	if h.intArrived == h.size {
		h.intResult = combine(h.intContrib)
		h.intContrib = make([]int, h.size)
		h.intArrived = 0
		h.intGen++
		h.cond.Broadcast()
	} else {
		for h.intGen == myGen {
			h.cond.Wait()
		}
	}
	return h.intResult[rank]
}

// InProcessRank is one simulated rank's Transport handle into a shared
// InProcessHub.
type InProcessRank struct {
	hub  *InProcessHub
	rank int
}

func (r *InProcessRank) Rank() int { return r.rank }
func (r *InProcessRank) Size() int { return r.hub.size }

func (r *InProcessRank) Broadcast(data []float64, root int) ([]float64, error) {
	if root < 0 || root >= r.hub.size {
		return nil, matrix.Wrapf(matrix.ErrTransport, "transport: broadcast root %d out of range", root)
	}
	result := r.hub.rendezvousFloat(r.rank, data, func(contrib [][]float64) [][]float64 {
		out := make([][]float64, len(contrib))
		for i := range out {
			out[i] = append([]float64(nil), contrib[root]...)
		}
		return out
	})
	return result, nil
}

func (r *InProcessRank) BroadcastInt(code int, root int) (int, error) {
	if root < 0 || root >= r.hub.size {
		return 0, matrix.Wrapf(matrix.ErrTransport, "transport: broadcast root %d out of range", root)
	}
	return r.hub.rendezvousInt(r.rank, code, func(contrib []int) []int {
		out := make([]int, len(contrib))
		for i := range out {
			out[i] = contrib[root]
		}
		return out
	}), nil
}

func (r *InProcessRank) ScatterV(data []float64, counts []int, root int) ([]float64, error) {
	if root < 0 || root >= r.hub.size {
		return nil, matrix.Wrapf(matrix.ErrTransport, "transport: scatter root %d out of range", root)
	}
	result := r.hub.rendezvousFloat(r.rank, data, func(contrib [][]float64) [][]float64 {
		full := contrib[root]
		out := make([][]float64, len(contrib))
		offset := 0
		for i, c := range counts {
			out[i] = append([]float64(nil), full[offset:offset+c]...)
			offset += c
		}
		return out
	})
	return result, nil
}

func (r *InProcessRank) AllGatherV(chunk []float64, counts []int) ([]float64, error) {
	result := r.hub.rendezvousFloat(r.rank, chunk, func(contrib [][]float64) [][]float64 {
		var full []float64
		for _, c := range contrib {
			full = append(full, c...)
		}
		out := make([][]float64, len(contrib))
		for i := range out {
			out[i] = full
		}
		return out
	})
	return result, nil
}
