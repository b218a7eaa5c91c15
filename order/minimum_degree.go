package order

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/brnoble/dsolve/matrix"
)

// MinimumDegree produces a fill-reducing permutation by repeatedly
// eliminating the uneliminated vertex of smallest degree (ties broken by
// lowest index), decrementing its live neighbors' degrees. This is the
// simplified heuristic form named in §4.2: it does not add fill-in edges
// to the working graph, trading ordering quality for simplicity.
func MinimumDegree(a *matrix.CSR) (*matrix.Permutation, error) {
	n := a.N
	adj := adjacency(a)
	degree := make([]int, n)
	for i := range adj {
		degree[i] = len(adj[i])
	}

	eliminated := bitset.New(uint(n))
	order := make([]int, 0, n)

	for step := 0; step < n; step++ {
		best := -1
		bestDeg := -1
		for v := 0; v < n; v++ {
			if eliminated.Test(uint(v)) {
				continue
			}
			if best == -1 || degree[v] < bestDeg {
				best = v
				bestDeg = degree[v]
			}
		}
		order = append(order, best)
		eliminated.Set(uint(best))
		for _, u := range adj[best] {
			if !eliminated.Test(uint(u)) {
				degree[u]--
			}
		}
	}

	return matrix.NewFromPerm(order)
}
