// Package solve implements the triangular-solve pipelines of §4.6: one for
// LU, one shared by LDLT and Cholesky (which differ only in whether a D
// step runs between forward and backward substitution).
package solve

import (
	"math"

	"github.com/brnoble/dsolve/matrix"
)

// Solve fills sol with the solution of factors·x = rhs for nrhs right-hand
// sides of length n each, laid out column-major: rhs[r*n+i].
func Solve(f *matrix.Factors, nrhs int, rhs, sol []float64) error {
	n := f.L.N
	if len(rhs) != nrhs*n || len(sol) != nrhs*n {
		return matrix.Wrapf(matrix.ErrInvalidInput, "solve: rhs/sol length mismatch for n=%d nrhs=%d", n, nrhs)
	}

	switch f.MatrixType {
	case matrix.NonSymmetric:
		return solveLU(f, nrhs, rhs, sol)
	case matrix.SymIndef:
		return solveLDLT(f, nrhs, rhs, sol)
	case matrix.SymPosDef:
		return solveCholesky(f, nrhs, rhs, sol)
	default:
		return matrix.Wrapf(matrix.ErrInvalidInput, "solve: unknown matrix type %v", f.MatrixType)
	}
}

func solveLU(f *matrix.Factors, nrhs int, rhs, sol []float64) error {
	n := f.L.N
	for r := 0; r < nrhs; r++ {
		b := make([]float64, n)
		for i := 0; i < n; i++ {
			b[i] = rhs[r*n+f.Perm[i]]
		}

		y := forwardLower(f.L, b)
		x, err := backwardUpper(f.U, y)
		if err != nil {
			return err
		}

		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[f.Perm[i]] = x[i]
		}
		copy(sol[r*n:(r+1)*n], out)
	}
	return nil
}

func solveLDLT(f *matrix.Factors, nrhs int, rhs, sol []float64) error {
	return solveSymmetric(f, nrhs, rhs, sol, true)
}

func solveCholesky(f *matrix.Factors, nrhs int, rhs, sol []float64) error {
	return solveSymmetric(f, nrhs, rhs, sol, false)
}

func solveSymmetric(f *matrix.Factors, nrhs int, rhs, sol []float64, withD bool) error {
	n := f.L.N
	if f.Lt == nil {
		f.Lt = matrix.Transpose(f.L)
	}

	for r := 0; r < nrhs; r++ {
		b := make([]float64, n)
		for i := 0; i < n; i++ {
			b[i] = rhs[r*n+f.Perm[i]]
		}

		y := forwardLower(f.L, b)

		z := y
		if withD {
			z = applyDinv(f, y)
		}

		x, err := backwardLt(f.Lt, z)
		if err != nil {
			return err
		}

		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[f.Perm[i]] = x[i]
		}
		copy(sol[r*n:(r+1)*n], out)
	}
	return nil
}

// forwardLower solves L·y = b with L lower triangular, dividing by the
// stored diagonal (1 for LU/LDLT, the square-root pivot for Cholesky).
func forwardLower(l *matrix.CSR, b []float64) []float64 {
	n := l.N
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		lo, hi := l.RowRange(i)
		sum := b[i]
		diag := 1.0
		for k := lo; k < hi; k++ {
			if j := l.ColIdx[k]; j < i {
				sum -= l.Values[k] * y[j]
			} else if j == i {
				diag = l.Values[k]
			}
		}
		y[i] = sum / diag
	}
	return y
}

// backwardUpper solves U·x = y by descending row, locating U[i][i] by
// scanning row i (rows are short and sorted ascending).
func backwardUpper(u *matrix.CSR, y []float64) ([]float64, error) {
	n := u.N
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		lo, hi := u.RowRange(i)
		sum := y[i]
		diag := 0.0
		for k := lo; k < hi; k++ {
			j := u.ColIdx[k]
			if j > i {
				sum -= u.Values[k] * x[j]
			} else if j == i {
				diag = u.Values[k]
			}
		}
		if math.Abs(diag) < 1e-15 {
			return nil, matrix.Wrapf(matrix.ErrNumerical, "solve: zero U diagonal at row %d", i)
		}
		x[i] = sum / diag
	}
	return x, nil
}

// backwardLt solves Lᵀ·x = z where lt (= Lᵀ) is upper triangular, dividing
// by the stored diagonal (1 for LDLT, the square-root pivot for Cholesky) —
// the LDLT/Cholesky backward step.
func backwardLt(lt *matrix.CSR, z []float64) ([]float64, error) {
	n := lt.N
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		lo, hi := lt.RowRange(i)
		sum := z[i]
		diag := 1.0
		for k := lo; k < hi; k++ {
			if j := lt.ColIdx[k]; j > i {
				sum -= lt.Values[k] * x[j]
			} else if j == i {
				diag = lt.Values[k]
			}
		}
		x[i] = sum / diag
	}
	return x, nil
}

// applyDinv multiplies y by D⁻¹ in place semantics (returns a new slice),
// handling 2×2 Bunch-Kaufman blocks per §4.6: for pivot_type[i]==2, (y[i],
// y[i+1]) is multiplied by the symmetric 2×2 Dinv block stored across
// DValues[i], DValues[i+1] and DOffDiag[i].
func applyDinv(f *matrix.Factors, y []float64) []float64 {
	n := f.L.N
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		if f.PivotType[i] == 2 {
			d00, d11, d01 := f.DValues[i], f.DValues[i+1], f.DOffDiag[i]
			y0, y1 := y[i], y[i+1]
			z[i] = d00*y0 + d01*y1
			z[i+1] = d01*y0 + d11*y1
			i++
			continue
		}
		z[i] = f.DValues[i] * y[i]
	}
	return z
}
