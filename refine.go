package dsolve

import (
	"github.com/brnoble/dsolve/blas"
	"github.com/brnoble/dsolve/matrix"
	"github.com/brnoble/dsolve/solve"
)

// RefineDefault runs Refine with the solver's configured tolerance and
// iteration cap (1e-10 / 10 unless overridden by WithTolerance /
// WithMaxRefineIter at construction).
func (s *Solver) RefineDefault(nrhs int, rhs, sol []float64) error {
	return s.Refine(nrhs, rhs, sol, s.maxRefineIter, s.tolerance)
}

// Refine implements the fixed-point residual correction loop of §4.7,
// computing the residual r = b − A·x in the caller's original numbering
// from the caller's matrix handle (mutated in place by Symbolic, per the
// ownership contract — there is no separate unpermuted copy), by mapping
// x and b through the symbolic permutation. It returns Success on
// convergence or on exhausting maxIter; failing to converge within
// maxIter is not itself an error.
func (s *Solver) Refine(nrhs int, rhs, sol []float64, maxIter int, tol float64) error {
	if s.phase != phaseFactored {
		return matrix.Wrapf(matrix.ErrInvalidInput, "dsolve: Refine called out of order")
	}
	n := s.factors.L.N

	// s.a[i][j] == A[perm[i]][perm[j]], so (A·x)[perm[i]] == (s.a·xp)[i].
	perm := s.perm.Perm
	xp, ax := make([]float64, n), make([]float64, n)
	residual := func(r, b, x []float64) {
		for j := range xp {
			xp[j], ax[j] = x[perm[j]], 0
		}
		blas.Dusmv(false, 1, s.a.RowPtr, s.a.ColIdx, s.a.Values, n, xp, ax)
		for i := range ax {
			r[perm[i]] = b[perm[i]] - ax[i]
		}
	}

	for c := 0; c < nrhs; c++ {
		b := rhs[c*n : (c+1)*n]
		x := sol[c*n : (c+1)*n]

		r := make([]float64, n)
		residual(r, b, x)

		for iter := 0; iter < maxIter; iter++ {
			if blas.Norm2(r) < tol {
				break
			}

			delta := make([]float64, n)
			if err := solve.Solve(s.factors, 1, r, delta); err != nil {
				return err
			}
			for i := 0; i < n; i++ {
				x[i] += delta[i]
			}

			residual(r, b, x)
		}
	}
	return nil
}
