// Package blas implements the handful of sparse BLAS-like kernels the
// factorization and solve pipelines need, operating directly on raw CSR
// slices rather than a dedicated sparse-matrix type — matrix.CSR already
// plays that role, so a parallel wrapper type would just be dead weight.
package blas

import "gonum.org/v1/gonum/floats"

// Dusmv computes y ← alpha*A*x + y (or alpha*Aᵀ*x + y when trans is true)
// for A given in CSR form (rowPtr, colIdx, values, order n). This is the
// kernel correctness-critical residual computation uses: it keeps every
// stored entry regardless of magnitude, unlike matrix.Multiply's
// drop-below-threshold symbolic-multiply utility.
func Dusmv(trans bool, alpha float64, rowPtr, colIdx []int, values []float64, n int, x, y []float64) {
	if !trans {
		for i := 0; i < n; i++ {
			lo, hi := rowPtr[i], rowPtr[i+1]
			var sum float64
			for k := lo; k < hi; k++ {
				sum += values[k] * x[colIdx[k]]
			}
			y[i] += alpha * sum
		}
		return
	}
	for i := 0; i < n; i++ {
		lo, hi := rowPtr[i], rowPtr[i+1]
		axi := alpha * x[i]
		for k := lo; k < hi; k++ {
			y[colIdx[k]] += values[k] * axi
		}
	}
}

// Dusaxpy computes y ← alpha*x + y for a sparse x given as (idx, val) pairs
// scattered into the dense vector y.
func Dusaxpy(alpha float64, idx []int, val []float64, y []float64) {
	for k, i := range idx {
		y[i] += alpha * val[k]
	}
}

// Dusdot computes the dot product of a sparse row (idx, val) against a
// dense vector y.
func Dusdot(idx []int, val []float64, y []float64) float64 {
	var sum float64
	for k, i := range idx {
		sum += val[k] * y[i]
	}
	return sum
}

// Norm2 computes the Euclidean norm of a dense vector via gonum/floats,
// used by the refinement loop's convergence check.
func Norm2(v []float64) float64 {
	return floats.Norm(v, 2)
}
