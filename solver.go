// Package dsolve is the solver façade (C7): it orchestrates reordering,
// symbolic factorization, numerical factorization, triangular solve and
// iterative refinement behind a PARDISO-style phase lifecycle.
package dsolve

import (
	"time"

	"github.com/brnoble/dsolve/matrix"
	"github.com/brnoble/dsolve/numeric"
	"github.com/brnoble/dsolve/order"
	"github.com/brnoble/dsolve/solve"
	"github.com/brnoble/dsolve/symbolic"
	"github.com/brnoble/dsolve/transport"
)

type phase int

const (
	phaseInit phase = iota
	phaseSymbolic
	phaseFactored
)

// Solver aggregates the borrowed matrix handle, the owned permutation and
// factors, the transport collaborator, and the running counters. It is
// created empty and populated strictly Init(implicit) → Symbolic → Factor
// → Solve → optional Refine → Cleanup; calling a phase out of order
// returns ErrInvalidInput and leaves the solver unchanged.
type Solver struct {
	matrixType    matrix.Type
	transport     transport.Transport
	tolerance     float64
	maxRefineIter int

	phase phase

	a       *matrix.CSR // borrowed: caller retains ownership
	perm    *matrix.Permutation
	tree    *matrix.EliminationTree
	factors *matrix.Factors

	counters matrix.Counters
}

// New constructs a Solver for the given matrix type with transport.Local{}
// (no distribution), a 1e-10 default refinement tolerance and a 10-iteration
// default refinement cap, both overridable via Option.
func New(mtype matrix.Type, opts ...Option) *Solver {
	s := &Solver{
		matrixType:    mtype,
		transport:     transport.Local{},
		tolerance:     1e-10,
		maxRefineIter: 10,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Counters returns the solver's running wall-time and size metrics.
func (s *Solver) Counters() matrix.Counters { return s.counters }

// Symbolic stores a handle to a, runs C2 to obtain a fill-reducing
// permutation, applies it to a in place, builds the elimination tree and
// runs symbolic factorization. a is mutated but its identity is
// preserved; Cleanup never frees it.
func (s *Solver) Symbolic(a *matrix.CSR) error {
	if s.phase != phaseInit {
		return matrix.Wrapf(matrix.ErrInvalidInput, "dsolve: Symbolic called out of order")
	}
	if a == nil {
		return matrix.Wrapf(matrix.ErrInvalidInput, "dsolve: nil matrix")
	}

	start := time.Now()

	var perm *matrix.Permutation
	var err error
	symmetric := s.matrixType != matrix.NonSymmetric
	if symmetric {
		perm, err = order.NestedDissection(a)
	} else {
		perm, err = order.MinimumDegree(a)
	}
	if err != nil {
		return err
	}
	if err := order.ApplyPermutation(a, perm); err != nil {
		return err
	}

	s.a = a
	s.perm = perm
	s.tree = symbolic.BuildEliminationTree(a, symmetric)
	s.factors = symbolic.Factorize(a, s.matrixType)
	s.factors.Perm = append([]int(nil), perm.Perm...)

	s.counters.AnalysisTime = time.Since(start)
	s.phase = phaseSymbolic
	return nil
}

// Factor dispatches to C5 by matrix type, or to the distributed variant of
// §5 when the transport reports more than one participant.
func (s *Solver) Factor() error {
	if s.phase != phaseSymbolic {
		return matrix.Wrapf(matrix.ErrInvalidInput, "dsolve: Factor called out of order")
	}
	start := time.Now()

	err := s.factorLocal()
	err = s.reconcileError(err)
	if err != nil {
		return err
	}

	s.counters.FactorizationTime = time.Since(start)
	s.counters.FillInNNZ = len(s.factors.L.ColIdx)
	if s.factors.U != nil {
		s.counters.FillInNNZ += len(s.factors.U.ColIdx)
	}
	s.counters.PeakMemoryBytes = matrix.EstimateFactorsBytes(s.factors)
	s.phase = phaseFactored
	return nil
}

// factorLocal runs the serial factorization of this process's full view
// of a — the simplified distributed factor of §5 has every rank do
// exactly this (correct, not scalable).
func (s *Solver) factorLocal() error {
	switch s.matrixType {
	case matrix.NonSymmetric:
		return numeric.FactorizeLU(s.a, s.factors)
	case matrix.SymIndef:
		return numeric.FactorizeLDLT(s.a, s.factors)
	case matrix.SymPosDef:
		return numeric.FactorizeCholesky(s.a, s.factors)
	default:
		return matrix.Wrapf(matrix.ErrInvalidInput, "dsolve: unknown matrix type %v", s.matrixType)
	}
}

// Solve dispatches to C6 serially, or to the distributed pipeline of §5
// when running with more than one transport participant.
func (s *Solver) Solve(nrhs int, rhs, sol []float64) error {
	if s.phase != phaseFactored {
		return matrix.Wrapf(matrix.ErrInvalidInput, "dsolve: Solve called out of order")
	}
	start := time.Now()

	var err error
	if s.transport.Size() > 1 {
		err = s.solveDistributed(nrhs, rhs, sol)
	} else {
		err = solve.Solve(s.factors, nrhs, rhs, sol)
	}
	err = s.reconcileError(err)

	s.counters.SolveTime += time.Since(start)
	return err
}

// Cleanup releases everything the solver owns. It never touches the
// caller's matrix handle.
func (s *Solver) Cleanup() error {
	s.a = nil
	s.perm = nil
	s.tree = nil
	s.factors = nil
	s.phase = phaseInit
	return nil
}

// reconcileError implements the distributed error-propagation policy of
// §7: rank 0's error code is broadcast so every rank returns the same
// code from Factor/Solve.
func (s *Solver) reconcileError(localErr error) error {
	if s.transport.Size() <= 1 {
		return localErr
	}
	code := matrix.Code(localErr)
	agreed, err := s.transport.BroadcastInt(code, 0)
	if err != nil {
		return matrix.Wrapf(matrix.ErrTransport, "dsolve: broadcasting error code: %v", err)
	}
	if agreed == 0 {
		return nil
	}
	if s.transport.Rank() == 0 {
		return localErr
	}
	return codeToError(agreed)
}

func codeToError(code int) error {
	switch code {
	case -1:
		return matrix.ErrInvalidInput
	case -2:
		return matrix.ErrMemory
	case -3:
		return matrix.ErrNumerical
	case -4:
		return matrix.ErrTransport
	default:
		return matrix.ErrInvalidInput
	}
}
