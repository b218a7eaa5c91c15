package order

import (
	"sort"

	"github.com/brnoble/dsolve/matrix"
)

// ApplyPermutation rewrites a in place so that a[i][j] afterward equals the
// original a[perm[i]][perm[j]] — always two-sided, which is the fix §9
// documents for the source's ambiguous row-only/two-sided split (the
// solve pipelines in §4.6 assume two-sided permutation uniformly).
// Each new row's columns come out sorted ascending. The rewrite is built
// into fresh slices first and only assigned onto a at the end, so a
// caller's existing *CSR handle stays valid throughout and is never left
// half-rewritten on error.
func ApplyPermutation(a *matrix.CSR, p *matrix.Permutation) error {
	if err := p.Validate(); err != nil {
		return err
	}
	n := a.N
	if len(p.Perm) != n {
		return matrix.Wrapf(matrix.ErrInvalidInput, "order: permutation order %d does not match matrix order %d", len(p.Perm), n)
	}

	newRowPtr := make([]int, n+1)
	newColIdx := make([]int, 0, len(a.ColIdx))
	newValues := make([]float64, 0, len(a.Values))

	type entry struct {
		col int
		val float64
	}

	for newRow := 0; newRow < n; newRow++ {
		oldRow := p.Perm[newRow]
		lo, hi := a.RowRange(oldRow)
		row := make([]entry, 0, hi-lo)
		for k := lo; k < hi; k++ {
			oldCol := a.ColIdx[k]
			newCol := p.InvPerm[oldCol]
			row = append(row, entry{newCol, a.Values[k]})
		}
		sort.Slice(row, func(i, j int) bool { return row[i].col < row[j].col })
		for _, e := range row {
			newColIdx = append(newColIdx, e.col)
			newValues = append(newValues, e.val)
		}
		newRowPtr[newRow+1] = len(newColIdx)
	}

	a.RowPtr = newRowPtr
	a.ColIdx = newColIdx
	a.Values = newValues
	return nil
}
