package dsolve

import (
	"github.com/brnoble/dsolve/matrix"
	"github.com/brnoble/dsolve/solve"
	"github.com/brnoble/dsolve/transport"
)

// solveDistributed implements §5's simplified distributed solve: every
// rank all-gathers its row-range slice of rhs to reconstruct the full
// right-hand side, rank 0 solves serially, then the solution is scattered
// back by row range and all-gathered again so every rank ends up with the
// same fully-assembled sol.
func (s *Solver) solveDistributed(nrhs int, rhs, sol []float64) error {
	n := s.factors.L.N
	size := s.transport.Size()
	rank := s.transport.Rank()
	counts := transport.Counts(n, size)
	lo, hi := transport.BlockRange(n, size, rank)

	fullRhs := make([]float64, nrhs*n)
	for c := 0; c < nrhs; c++ {
		col := rhs[c*n : (c+1)*n]
		gathered, err := s.transport.AllGatherV(col[lo:hi], counts)
		if err != nil {
			return matrix.Wrapf(matrix.ErrTransport, "dsolve: all-gather rhs: %v", err)
		}
		copy(fullRhs[c*n:(c+1)*n], gathered)
	}

	var fullSol []float64
	var solveErr error
	if rank == 0 {
		fullSol = make([]float64, nrhs*n)
		solveErr = solve.Solve(s.factors, nrhs, fullRhs, fullSol)
	}

	for c := 0; c < nrhs; c++ {
		var rootCol []float64
		if rank == 0 {
			rootCol = fullSol[c*n : (c+1)*n]
		}
		localChunk, err := s.transport.ScatterV(rootCol, counts, 0)
		if err != nil {
			return matrix.Wrapf(matrix.ErrTransport, "dsolve: scatter solution: %v", err)
		}
		gathered, err := s.transport.AllGatherV(localChunk, counts)
		if err != nil {
			return matrix.Wrapf(matrix.ErrTransport, "dsolve: all-gather solution: %v", err)
		}
		copy(sol[c*n:(c+1)*n], gathered)
	}

	return solveErr
}
