package order

import "github.com/brnoble/dsolve/matrix"

// adjacency builds the undirected neighbor lists of A+Aᵀ (diagonal and
// duplicates excluded), the graph both Minimum Degree and Nested
// Dissection operate on per §4.2.
func adjacency(a *matrix.CSR) [][]int {
	n := a.N
	seen := make([]map[int]bool, n)
	for i := range seen {
		seen[i] = make(map[int]bool)
	}
	add := func(i, j int) {
		if i == j {
			return
		}
		if !seen[i][j] {
			seen[i][j] = true
		}
		if !seen[j][i] {
			seen[j][i] = true
		}
	}
	for i := 0; i < n; i++ {
		lo, hi := a.RowRange(i)
		for k := lo; k < hi; k++ {
			add(i, a.ColIdx[k])
		}
	}
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		adj[i] = make([]int, 0, len(seen[i]))
		for j := range seen[i] {
			adj[i] = append(adj[i], j)
		}
	}
	return adj
}
