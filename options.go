package dsolve

import "github.com/brnoble/dsolve/transport"

// Option configures a Solver at construction time, following the
// functional-options idiom the error-handling style donor uses for its
// builders.
type Option func(*Solver)

// WithTransport selects the distributed collaborator. Defaults to
// transport.Local{} (single participant, no distribution).
func WithTransport(t transport.Transport) Option {
	return func(s *Solver) { s.transport = t }
}

// WithTolerance sets the default convergence tolerance that RefineDefault
// passes to Refine; Refine itself always uses its own tol argument.
func WithTolerance(tol float64) Option {
	return func(s *Solver) { s.tolerance = tol }
}

// WithMaxRefineIter sets the default refinement iteration cap.
func WithMaxRefineIter(n int) Option {
	return func(s *Solver) { s.maxRefineIter = n }
}
