package order

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/brnoble/dsolve/matrix"
)

// NestedDissection recursively partitions the graph of A+Aᵀ: pick the
// highest-degree vertex within the current subgraph as a separator, place
// it last in the subgraph's slot, split the remaining vertices into those
// adjacent to the separator and those not, and recurse on both before the
// separator. Subgraphs of size ≤ 1 are emitted directly; subgraphs of size
// 2 are emitted as two singletons rather than invoking Minimum Degree,
// keeping the two orderings independent of each other.
func NestedDissection(a *matrix.CSR) (*matrix.Permutation, error) {
	n := a.N
	adj := adjacency(a)

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	out := make([]int, n)
	nd := &ndState{adj: adj, n: n}
	nd.recurse(all, out, 0)

	return matrix.NewFromPerm(out)
}

type ndState struct {
	adj [][]int
	n   int
}

// recurse orders vertices into out[pos:pos+len(vertices)] and returns the
// next free position.
func (s *ndState) recurse(vertices []int, out []int, pos int) int {
	switch len(vertices) {
	case 0:
		return pos
	case 1:
		out[pos] = vertices[0]
		return pos + 1
	case 2:
		out[pos] = vertices[0]
		out[pos+1] = vertices[1]
		return pos + 2
	}

	member := bitset.New(uint(s.n))
	for _, v := range vertices {
		member.Set(uint(v))
	}

	sep := vertices[0]
	sepDeg := -1
	for _, v := range vertices {
		deg := 0
		for _, u := range s.adj[v] {
			if member.Test(uint(u)) {
				deg++
			}
		}
		if deg > sepDeg {
			sep = v
			sepDeg = deg
		}
	}

	sepNeighbors := bitset.New(uint(s.n))
	for _, u := range s.adj[sep] {
		if member.Test(uint(u)) {
			sepNeighbors.Set(uint(u))
		}
	}

	var partAdjacent, partOther []int
	for _, v := range vertices {
		if v == sep {
			continue
		}
		if sepNeighbors.Test(uint(v)) {
			partAdjacent = append(partAdjacent, v)
		} else {
			partOther = append(partOther, v)
		}
	}

	pos = s.recurse(partOther, out, pos)
	pos = s.recurse(partAdjacent, out, pos)
	out[pos] = sep
	return pos + 1
}
