package numeric

import (
	"math"

	"github.com/brnoble/dsolve/matrix"
)

// FactorizeCholesky computes a sparse-pattern Cholesky factor of a
// symmetric positive-definite a: for each column j, the diagonal becomes
// its square root, the column below is scaled by it, and the trailing
// sub-block receives a rank-1 update — the same dot-product shape the
// teacher's cholCSR uses, run here against a dense working copy per the
// naive-baseline contract in §4.5.
func FactorizeCholesky(a *matrix.CSR, f *matrix.Factors) error {
	n := a.N
	w := denseFromCSR(a, true)

	for j := 0; j < n; j++ {
		if w.At(j, j) <= 0 {
			return matrix.Wrapf(matrix.ErrNumerical, "numeric: non-positive cholesky pivot at column %d", j)
		}
		ljj := math.Sqrt(w.At(j, j))
		w.Set(j, j, ljj)

		for i := j + 1; i < n; i++ {
			w.Set(i, j, w.At(i, j)/ljj)
		}
		for i := j + 1; i < n; i++ {
			lij := w.At(i, j)
			for k := j + 1; k <= i; k++ {
				w.Set(i, k, w.At(i, k)-lij*w.At(k, j))
			}
		}
	}

	scatterLowerDiag(w, f.L)
	return nil
}
