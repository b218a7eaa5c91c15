// Package numeric fills the sparsity patterns symbolic factorization
// allocated with numerical values: LU with partial pivoting, LDLT with
// Bunch-Kaufman pivoting, and Cholesky. All three operate on a dense
// working copy of the permuted matrix (the naive baseline spec.md
// describes as acceptable), built and torn down once per factorization
// call.
package numeric

import (
	"github.com/brnoble/dsolve/matrix"
	"gonum.org/v1/gonum/mat"
)

// denseFromCSR scatters a's stored entries into an n×n dense matrix.
// mirror also scatters each off-diagonal entry into its transposed
// position, needed when a only carries one triangle of a symmetric
// matrix.
func denseFromCSR(a *matrix.CSR, mirror bool) *mat.Dense {
	n := a.N
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		lo, hi := a.RowRange(i)
		for k := lo; k < hi; k++ {
			j := a.ColIdx[k]
			v := a.Values[k]
			d.Set(i, j, v)
			if mirror && i != j {
				d.Set(j, i, v)
			}
		}
	}
	return d
}

// scatterLowerUnit writes w's strictly-lower entries into l's pre-sized
// pattern and sets the diagonal to 1 (LU/LDLT's unit-diagonal convention).
func scatterLowerUnit(w *mat.Dense, l *matrix.CSR) {
	for i := 0; i < l.N; i++ {
		lo, hi := l.RowRange(i)
		for k := lo; k < hi; k++ {
			if j := l.ColIdx[k]; j == i {
				l.Values[k] = 1.0
			} else {
				l.Values[k] = w.At(i, j)
			}
		}
	}
}

// scatterLowerDiag writes w's lower-or-equal entries into l's pattern
// verbatim (Cholesky's diagonal is the computed sqrt-pivot, not 1).
func scatterLowerDiag(w *mat.Dense, l *matrix.CSR) {
	for i := 0; i < l.N; i++ {
		lo, hi := l.RowRange(i)
		for k := lo; k < hi; k++ {
			j := l.ColIdx[k]
			l.Values[k] = w.At(i, j)
		}
	}
}

// scatterUpper writes w's upper-or-equal entries into u's pre-sized
// pattern.
func scatterUpper(w *mat.Dense, u *matrix.CSR) {
	for i := 0; i < u.N; i++ {
		lo, hi := u.RowRange(i)
		for k := lo; k < hi; k++ {
			j := u.ColIdx[k]
			u.Values[k] = w.At(i, j)
		}
	}
}

func swapRows(w *mat.Dense, a, b int) {
	if a == b {
		return
	}
	ra := w.RawRowView(a)
	rb := w.RawRowView(b)
	tmp := append([]float64(nil), ra...)
	copy(ra, rb)
	copy(rb, tmp)
}

func swapSymmetric(w *mat.Dense, a, b int) {
	if a == b {
		return
	}
	n, _ := w.Dims()
	for k := 0; k < n; k++ {
		va, vb := w.At(a, k), w.At(b, k)
		w.Set(a, k, vb)
		w.Set(b, k, va)
	}
	for k := 0; k < n; k++ {
		va, vb := w.At(k, a), w.At(k, b)
		w.Set(k, a, vb)
		w.Set(k, b, va)
	}
}
