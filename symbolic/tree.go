package symbolic

import (
	"sort"

	"github.com/brnoble/dsolve/matrix"
)

// BuildEliminationTree computes parent[i] as the smallest j > i with a
// nonzero in row i of the pattern, per §4.3. For a non-symmetric matrix the
// pattern used is A+Aᵀ (symmetrized) rather than A alone.
func BuildEliminationTree(a *matrix.CSR, symmetric bool) *matrix.EliminationTree {
	n := a.N
	pattern := rowPattern(a, symmetric)

	parent := make([]int, n)
	for i := 0; i < n; i++ {
		parent[i] = -1
		for _, j := range pattern[i] {
			if j > i {
				parent[i] = j
				break
			}
		}
	}
	return matrix.NewEliminationTree(parent)
}

// rowPattern returns, for each row, the sorted ascending column indices
// present — symmetrized (A+Aᵀ) when symmetric is false, taken directly
// from a otherwise (a is already expected to carry both triangles when its
// IsSymmetric flag is set by the caller's convention).
func rowPattern(a *matrix.CSR, symmetric bool) [][]int {
	n := a.N
	if symmetric {
		rows := make([][]int, n)
		for i := 0; i < n; i++ {
			lo, hi := a.RowRange(i)
			rows[i] = append([]int(nil), a.ColIdx[lo:hi]...)
		}
		return rows
	}

	sets := make([]map[int]bool, n)
	for i := range sets {
		sets[i] = make(map[int]bool)
	}
	for i := 0; i < n; i++ {
		lo, hi := a.RowRange(i)
		for k := lo; k < hi; k++ {
			j := a.ColIdx[k]
			sets[i][j] = true
			sets[j][i] = true
		}
	}
	rows := make([][]int, n)
	for i := 0; i < n; i++ {
		row := make([]int, 0, len(sets[i]))
		for j := range sets[i] {
			row = append(row, j)
		}
		sort.Ints(row)
		rows[i] = row
	}
	return rows
}
