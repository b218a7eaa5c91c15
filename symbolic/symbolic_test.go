package symbolic

import (
	"testing"

	"github.com/brnoble/dsolve/matrix"
)

func tridiagonal(n int) *matrix.CSR {
	rowPtr := []int{0}
	var colIdx []int
	var values []float64
	for i := 0; i < n; i++ {
		if i > 0 {
			colIdx = append(colIdx, i-1)
			values = append(values, -1)
		}
		colIdx = append(colIdx, i)
		values = append(values, float64(n+1))
		if i < n-1 {
			colIdx = append(colIdx, i+1)
			values = append(values, -1)
		}
		rowPtr = append(rowPtr, len(colIdx))
	}
	return &matrix.CSR{N: n, RowPtr: rowPtr, ColIdx: colIdx, Values: values, IsSymmetric: true}
}

func TestEliminationTreeParentGreaterThanSelf(t *testing.T) {
	t.Parallel()
	a := tridiagonal(10)
	tree := BuildEliminationTree(a, true)
	for i, p := range tree.Parent {
		if p != -1 && p <= i {
			t.Fatalf("parent[%d] = %d, want > %d or -1", i, p, i)
		}
	}
}

func TestEliminationTreeChildLinks(t *testing.T) {
	t.Parallel()
	a := tridiagonal(8)
	tree := BuildEliminationTree(a, true)
	seen := make([]bool, len(tree.Parent))
	for p := range tree.Parent {
		for c := tree.FirstChild[p]; c != -1; c = tree.NextSibling[c] {
			if tree.Parent[c] != p {
				t.Fatalf("child %d of %d disagrees with parent[%d]=%d", c, p, c, tree.Parent[c])
			}
			seen[c] = true
		}
	}
}

func TestSymbolicFactorizeSeedsLowerTriangle(t *testing.T) {
	t.Parallel()
	a := tridiagonal(6)
	f := Factorize(a, matrix.SymPosDef)
	if f.L == nil {
		t.Fatal("expected L pattern to be populated")
	}
	for i := 0; i < a.N; i++ {
		lo, hi := a.RowRange(i)
		for k := lo; k < hi; k++ {
			if col := a.ColIdx[k]; col <= i {
				if f.L.FindInRow(i, col) == -1 {
					t.Fatalf("L missing original lower entry (%d,%d)", i, col)
				}
			}
		}
	}
}

func TestSymbolicFactorizeNonSymmetricHasU(t *testing.T) {
	t.Parallel()
	a := tridiagonal(6)
	a.IsSymmetric = false
	f := Factorize(a, matrix.NonSymmetric)
	if f.U == nil {
		t.Fatal("expected U pattern for NonSymmetric matrix type")
	}
	for i := 0; i < a.N; i++ {
		if f.U.FindInRow(i, i) == -1 {
			t.Fatalf("U missing diagonal at row %d", i)
		}
	}
}

func TestFillInRuleAddsNonOriginalEntry(t *testing.T) {
	t.Parallel()
	// A[0][2] and A[2][0] link column 0 to row 2; A[0][1] and A[1][0] link
	// column 0 to row 1. Eliminating column 0 should fill L[2][1] even
	// though A[2][1] is zero in the original pattern.
	a := &matrix.CSR{
		N:      3,
		RowPtr: []int{0, 3, 5, 7},
		ColIdx: []int{0, 1, 2, 0, 1, 0, 2},
		Values: []float64{4, 1, 1, 1, 4, 1, 4},
	}
	f := Factorize(a, matrix.SymPosDef)
	if f.L.FindInRow(2, 1) == -1 {
		t.Fatal("expected fill-in at L[2][1]")
	}
}
