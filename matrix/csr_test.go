package matrix

import (
	"math"
	"testing"
)

func triCSR(n int) *CSR {
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
	return &CSR{N: n, RowPtr: rowPtr, ColIdx: colIdx, Values: values, IsSymmetric: true}
}

func TestCSRInvariantRowPtrMonotone(t *testing.T) {
	t.Parallel()
	a := triCSR(8)
	if a.RowPtr[0] != 0 {
		t.Fatalf("RowPtr[0] = %d, want 0", a.RowPtr[0])
	}
	if a.RowPtr[a.N] != len(a.ColIdx) {
		t.Fatalf("RowPtr[n] = %d, want %d", a.RowPtr[a.N], len(a.ColIdx))
	}
	for i := 1; i <= a.N; i++ {
		if a.RowPtr[i] < a.RowPtr[i-1] {
			t.Fatalf("RowPtr not monotone at %d", i)
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	t.Parallel()
	a := triCSR(10)
	b := Transpose(a)
	c := Transpose(b)
	for i := 0; i < a.N; i++ {
		for j := 0; j < a.N; j++ {
			if math.Abs(a.At(i, j)-c.At(i, j)) > 1e-12 {
				t.Fatalf("(Aᵀ)ᵀ mismatch at (%d,%d): %g vs %g", i, j, a.At(i, j), c.At(i, j))
			}
		}
	}
}

func TestMultiplyIdentity(t *testing.T) {
	t.Parallel()
	n := 5
	id, err := NewCSR(n, n)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		id.RowPtr[i+1] = i + 1
		id.ColIdx[i] = i
		id.Values[i] = 1
	}
	a := triCSR(n)
	c, err := Multiply(a, id)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(a.At(i, j)-c.At(i, j)) > 1e-12 {
				t.Fatalf("A*I mismatch at (%d,%d)", i, j)
			}
		}
	}
}

func TestVerifySymmetric(t *testing.T) {
	t.Parallel()
	a := triCSR(6)
	if !a.VerifySymmetric(1e-12) {
		t.Fatal("tridiagonal SPD matrix should be symmetric")
	}
}
