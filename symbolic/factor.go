package symbolic

import (
	"sort"

	"github.com/brnoble/dsolve/matrix"
)

// Factorize computes the sparsity pattern of L (and of U for a
// NonSymmetric matrix type) from the permuted pattern of a, per §4.4's
// classical fill-in rule, and returns a Factors with those patterns
// attached and all values zeroed. The elimination tree governs the
// column elimination order the rule assumes (ascending column index,
// which NewEliminationTree's parent[i] > i invariant already guarantees
// for any pattern this package is handed); the fill sweep itself only
// needs a's own pattern and its transpose for column access.
//
// A row's fill-in is intentionally computed from A's own row k pattern at
// each step (not the evolving L pattern) — this is the rule spec.md states
// textually, a single static pass rather than a full transitive multi-step
// propagation. It deliberately does not reproduce the source's bug where
// fill-in counts are tallied but never written into the emitted column
// array; every marked position here is actually emitted.
func Factorize(a *matrix.CSR, mtype matrix.Type) *matrix.Factors {
	at := matrix.Transpose(a)

	f := matrix.NewFactors(a.N, mtype)
	f.L = buildCSRFromPattern(a.N, lowerFillPattern(a, at))

	if mtype == matrix.NonSymmetric {
		// U's pattern is the fill of Aᵀ's lower triangle, transposed back
		// into upper-triangular form.
		lPrime := buildCSRFromPattern(a.N, lowerFillPattern(at, a))
		f.U = matrix.Transpose(lPrime)
	}

	return f
}

// lowerFillPattern seeds row i with the lower-triangle columns of a (plus
// the diagonal, always present per §3) and then, for each k, marks L[i][j]
// for every i>k with a[i][k]≠0 and every j<i with a[k][j]≠0 — the
// classical fill-in rule. at must be a's transpose, used for column access
// to a[i][k] without an O(n) scan per k.
func lowerFillPattern(a, at *matrix.CSR) [][]int {
	n := a.N
	pat := make([]map[int]bool, n)
	for i := range pat {
		pat[i] = map[int]bool{i: true}
	}
	for i := 0; i < n; i++ {
		lo, hi := a.RowRange(i)
		for k := lo; k < hi; k++ {
			if col := a.ColIdx[k]; col <= i {
				pat[i][col] = true
			}
		}
	}

	for k := 0; k < n; k++ {
		colLo, colHi := at.RowRange(k) // rows i with a[i][k] != 0
		rowKLo, rowKHi := a.RowRange(k)
		for ik := colLo; ik < colHi; ik++ {
			i := at.ColIdx[ik]
			if i <= k {
				continue
			}
			for jk := rowKLo; jk < rowKHi; jk++ {
				if j := a.ColIdx[jk]; j < i {
					pat[i][j] = true
				}
			}
		}
	}

	result := make([][]int, n)
	for i := 0; i < n; i++ {
		row := make([]int, 0, len(pat[i]))
		for j := range pat[i] {
			row = append(row, j)
		}
		sort.Ints(row)
		result[i] = row
	}
	return result
}

func buildCSRFromPattern(n int, pattern [][]int) *matrix.CSR {
	rowPtr := make([]int, n+1)
	var colIdx []int
	for i := 0; i < n; i++ {
		colIdx = append(colIdx, pattern[i]...)
		rowPtr[i+1] = len(colIdx)
	}
	return &matrix.CSR{N: n, RowPtr: rowPtr, ColIdx: colIdx, Values: make([]float64, len(colIdx))}
}
