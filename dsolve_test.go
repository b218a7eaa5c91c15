package dsolve

import (
	"math"
	"testing"

	"github.com/brnoble/dsolve/matrix"
	"github.com/brnoble/dsolve/transport"
)

func tridiagonalSPD(n int) *matrix.CSR {
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

func residual(a *matrix.CSR, x, b []float64) float64 {
	n := a.N
	maxAbs := 0.0
	for i := 0; i < n; i++ {
		lo, hi := a.RowRange(i)
		sum := 0.0
		for k := lo; k < hi; k++ {
			sum += a.Values[k] * x[a.ColIdx[k]]
		}
		if d := math.Abs(sum - b[i]); d > maxAbs {
			maxAbs = d
		}
	}
	return maxAbs
}

func TestSolverLifecycleSymPosDef(t *testing.T) {
	t.Parallel()
	n := 16
	a := tridiagonalSPD(n)
	original := matrix.Copy(a)

	s := New(matrix.SymPosDef)
	if err := s.Symbolic(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Factor(); err != nil {
		t.Fatal(err)
	}

	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i + 1)
	}
	x := make([]float64, n)
	if err := s.Solve(1, b, x); err != nil {
		t.Fatal(err)
	}
	if r := residual(original, x, b); r > 1e-7 {
		t.Fatalf("residual too large against original A: %g", r)
	}

	counters := s.Counters()
	if counters.FillInNNZ <= 0 {
		t.Fatal("expected FillInNNZ to be populated after Factor")
	}
	if err := s.Cleanup(); err != nil {
		t.Fatal(err)
	}
}

func TestSolverLifecycleSymIndef(t *testing.T) {
	t.Parallel()
	a := &matrix.CSR{
		N:           4,
		RowPtr:      []int{0, 2, 4, 6, 8},
		ColIdx:      []int{0, 1, 0, 1, 2, 3, 2, 3},
		Values:      []float64{2, 1, 1, -3, 2, 1, 1, -3},
		IsSymmetric: true,
	}
	original := matrix.Copy(a)

	s := New(matrix.SymIndef)
	if err := s.Symbolic(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Factor(); err != nil {
		t.Fatal(err)
	}

	b := []float64{1, 1, 1, 1}
	x := make([]float64, 4)
	if err := s.Solve(1, b, x); err != nil {
		t.Fatal(err)
	}
	if r := residual(original, x, b); r > 1e-7 {
		t.Fatalf("residual too large against original A: %g", r)
	}
}

// TestSolverLifecycleNonSymmetric exercises the NonSymmetric path with a
// matrix whose hub-and-spoke adjacency forces MinimumDegree to produce a
// genuinely non-identity permutation (spokes 1-3 have degree 1 and are
// eliminated before the hub), and whose row/column values actually differ
// across the transpose (not just a symmetric pattern with a NonSymmetric
// tag) — the combination that exposed the missing output-permutation
// scatter in solveLU.
func TestSolverLifecycleNonSymmetric(t *testing.T) {
	t.Parallel()
	a := &matrix.CSR{
		N:      5,
		RowPtr: []int{0, 5, 7, 9, 11, 13},
		ColIdx: []int{0, 1, 2, 3, 4, 0, 1, 0, 2, 0, 3, 0, 4},
		Values: []float64{6, 2, 1, 1, 1, 1, 4, 1, 4, 1, 4, 1, 4},
	}
	original := matrix.Copy(a)

	s := New(matrix.NonSymmetric)
	if err := s.Symbolic(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Factor(); err != nil {
		t.Fatal(err)
	}

	b := []float64{1, 2, 3, 4, 5}
	x := make([]float64, 5)
	if err := s.Solve(1, b, x); err != nil {
		t.Fatal(err)
	}
	if r := residual(original, x, b); r > 1e-7 {
		t.Fatalf("residual too large against original A: %g", r)
	}
}

func TestSolverRejectsOutOfOrderPhases(t *testing.T) {
	t.Parallel()
	s := New(matrix.SymPosDef)
	if err := s.Factor(); err == nil {
		t.Fatal("expected error calling Factor before Symbolic")
	}
	x := make([]float64, 4)
	if err := s.Solve(1, x, x); err == nil {
		t.Fatal("expected error calling Solve before Symbolic/Factor")
	}
}

func TestSolverRefineRunsToCompletion(t *testing.T) {
	t.Parallel()
	n := 10
	a := tridiagonalSPD(n)

	s := New(matrix.SymPosDef)
	if err := s.Symbolic(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Factor(); err != nil {
		t.Fatal(err)
	}

	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)
	if err := s.Solve(1, b, x); err != nil {
		t.Fatal(err)
	}
	if err := s.Refine(1, b, x, 5, 1e-10); err != nil {
		t.Fatal(err)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("x[%d] is non-finite after Refine: %v", i, v)
		}
	}
}

func TestSolverRefineDefaultUsesConfiguredTolerance(t *testing.T) {
	t.Parallel()
	n := 10
	a := tridiagonalSPD(n)

	s := New(matrix.SymPosDef, WithTolerance(1e-8), WithMaxRefineIter(3))
	if err := s.Symbolic(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Factor(); err != nil {
		t.Fatal(err)
	}

	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)
	if err := s.Solve(1, b, x); err != nil {
		t.Fatal(err)
	}
	if err := s.RefineDefault(1, b, x); err != nil {
		t.Fatal(err)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("x[%d] is non-finite after RefineDefault: %v", i, v)
		}
	}
}

func TestSolverDistributedMatchesSerial(t *testing.T) {
	t.Parallel()
	n := 12
	size := 3

	serialA := tridiagonalSPD(n)
	serial := New(matrix.SymPosDef)
	if err := serial.Symbolic(serialA); err != nil {
		t.Fatal(err)
	}
	if err := serial.Factor(); err != nil {
		t.Fatal(err)
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i + 1)
	}
	serialSol := make([]float64, n)
	if err := serial.Solve(1, b, serialSol); err != nil {
		t.Fatal(err)
	}

	hub := transport.NewInProcessHub(size)
	distTemplate := tridiagonalSPD(n)
	distSols := make([][]float64, size)

	err := transport.RunRanks(size, func(rank int) error {
		// Each rank factors its own full view (§5's simplified, non-scalable
		// distributed factor) — a private copy avoids concurrent mutation of
		// one shared CSR across goroutines.
		distA := matrix.Copy(distTemplate)
		s := New(matrix.SymPosDef, WithTransport(hub.Rank(rank)))
		if err := s.Symbolic(distA); err != nil {
			return err
		}
		if err := s.Factor(); err != nil {
			return err
		}
		sol := make([]float64, n)
		if err := s.Solve(1, b, sol); err != nil {
			return err
		}
		distSols[rank] = sol
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for r, sol := range distSols {
		for i := range sol {
			if math.Abs(sol[i]-serialSol[i]) > 1e-7 {
				t.Fatalf("rank %d sol[%d] = %g, want %g (serial)", r, i, sol[i], serialSol[i])
			}
		}
	}
}
