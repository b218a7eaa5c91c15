package numeric

import (
	"math"

	"github.com/brnoble/dsolve/matrix"
	"gonum.org/v1/gonum/mat"
)

// bunchKaufmanC is the classical Bunch-Kaufman stability constant
// (1+√17)/8 ≈ 0.6404 used to decide between a 1×1 and a 2×2 pivot.
var bunchKaufmanC = (1 + math.Sqrt(17)) / 8

// FactorizeLDLT computes a Bunch-Kaufman LDLᵀ factorization of symmetric
// indefinite a, with full 1×1/2×2 pivoting (the Open Question in §9 is
// resolved to option (b): the solve pipeline in solve.Solve mirrors this
// choice so factor and solve agree). d_values stores D⁻¹ per §9's storage
// convention.
func FactorizeLDLT(a *matrix.CSR, f *matrix.Factors) error {
	n := a.N
	w := denseFromCSR(a, true)

	maxDiag := 0.0
	for i := 0; i < n; i++ {
		if v := math.Abs(w.At(i, i)); v > maxDiag {
			maxDiag = v
		}
	}
	if maxDiag == 0 {
		maxDiag = 1
	}
	floor := 1e-12 * maxDiag

	k := 0
	for k < n {
		alpha := math.Abs(w.At(k, k))

		lambda, p := 0.0, -1
		for i := k + 1; i < n; i++ {
			if v := math.Abs(w.At(i, k)); v > lambda {
				lambda, p = v, i
			}
		}

		if p == -1 || lambda == 0 {
			if err := pivot1x1(w, f, k, floor); err != nil {
				return err
			}
			k++
			continue
		}

		if alpha >= bunchKaufmanC*lambda {
			if err := pivot1x1(w, f, k, floor); err != nil {
				return err
			}
			k++
			continue
		}

		sigma := 0.0
		for j := k + 1; j < n; j++ {
			if j == p {
				continue
			}
			if v := math.Abs(w.At(p, j)); v > sigma {
				sigma = v
			}
		}

		switch {
		case alpha*sigma >= bunchKaufmanC*lambda*lambda:
			if err := pivot1x1(w, f, k, floor); err != nil {
				return err
			}
			k++
		case math.Abs(w.At(p, p)) >= bunchKaufmanC*sigma:
			swapSymmetric(w, k, p)
			f.Perm[k], f.Perm[p] = f.Perm[p], f.Perm[k]
			if err := pivot1x1(w, f, k, floor); err != nil {
				return err
			}
			k++
		default:
			if p != k+1 {
				swapSymmetric(w, k+1, p)
				f.Perm[k+1], f.Perm[p] = f.Perm[p], f.Perm[k+1]
			}
			if err := pivot2x2(w, f, k); err != nil {
				return err
			}
			k += 2
		}
	}

	scatterLowerUnit(w, f.L)
	return nil
}

func pivot1x1(w *mat.Dense, f *matrix.Factors, k int, floor float64) error {
	n := f.L.N
	pivot := w.At(k, k)
	if math.Abs(pivot) < floor {
		return matrix.Wrapf(matrix.ErrNumerical, "numeric: ldlt 1x1 pivot below stability floor at %d", k)
	}

	f.DValues[k] = 1 / pivot
	f.PivotType[k] = 1

	mult := getFloats(n)
	defer putFloats(mult)
	for i := k + 1; i < n; i++ {
		mult[i] = w.At(i, k) / pivot
	}
	for i := k + 1; i < n; i++ {
		for j := k + 1; j < n; j++ {
			w.Set(i, j, w.At(i, j)-mult[i]*w.At(k, j))
		}
	}
	for i := k + 1; i < n; i++ {
		w.Set(i, k, mult[i])
	}
	return nil
}

func pivot2x2(w *mat.Dense, f *matrix.Factors, k int) error {
	n := f.L.N
	a11, a12, a22 := w.At(k, k), w.At(k, k+1), w.At(k+1, k+1)
	det := a11*a22 - a12*a12
	if math.Abs(det) < 1e-15 {
		return matrix.Wrapf(matrix.ErrNumerical, "numeric: ldlt 2x2 pivot determinant zero at %d", k)
	}

	dinv00, dinv01, dinv11 := a22/det, -a12/det, a11/det
	f.DValues[k] = dinv00
	f.DValues[k+1] = dinv11
	f.DOffDiag[k] = dinv01
	f.PivotType[k] = 2
	f.PivotType[k+1] = 2

	lik := getFloats(n)
	lik1 := getFloats(n)
	defer putFloats(lik)
	defer putFloats(lik1)
	for i := k + 2; i < n; i++ {
		wik, wik1 := w.At(i, k), w.At(i, k+1)
		lik[i] = wik*dinv00 + wik1*dinv01
		lik1[i] = wik*dinv01 + wik1*dinv11
	}

	for i := k + 2; i < n; i++ {
		for j := k + 2; j < n; j++ {
			w.Set(i, j, w.At(i, j)-lik[i]*w.At(k, j)-lik1[i]*w.At(k+1, j))
		}
	}
	for i := k + 2; i < n; i++ {
		w.Set(i, k, lik[i])
		w.Set(i, k+1, lik1[i])
	}
	// a12 belongs to the D block; L is the identity within the block.
	w.Set(k+1, k, 0)
	return nil
}
