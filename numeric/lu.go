package numeric

import (
	"math"

	"github.com/brnoble/dsolve/matrix"
)

// FactorizeLU computes an LU factorization with partial row pivoting of a
// (already permuted by C2/C3/C4) into f.L/f.U, updating f.Perm on every
// row swap. The symbolic pattern in f.L/f.U is trusted to bound the actual
// fill produced here — a known, accepted limitation shared by
// static-pattern direct solvers, consistent with the "no dynamic
// re-pivoting" non-goal.
func FactorizeLU(a *matrix.CSR, f *matrix.Factors) error {
	n := a.N
	w := denseFromCSR(a, false)

	for k := 0; k < n; k++ {
		r := k
		maxAbs := math.Abs(w.At(k, k))
		for i := k + 1; i < n; i++ {
			if v := math.Abs(w.At(i, k)); v > maxAbs {
				maxAbs, r = v, i
			}
		}
		if maxAbs < 1e-15 {
			return matrix.Wrapf(matrix.ErrNumerical, "numeric: singular pivot at column %d", k)
		}
		if r != k {
			swapRows(w, k, r)
			f.Perm[k], f.Perm[r] = f.Perm[r], f.Perm[k]
		}

		pivot := w.At(k, k)
		for i := k + 1; i < n; i++ {
			factor := w.At(i, k) / pivot
			w.Set(i, k, factor)
			for j := k + 1; j < n; j++ {
				w.Set(i, j, w.At(i, j)-factor*w.At(k, j))
			}
		}
	}

	scatterLowerUnit(w, f.L)
	scatterUpper(w, f.U)
	return nil
}
