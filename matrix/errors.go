// Package matrix holds the shared data model for the solver: the CSR
// container, permutations, elimination trees, factor buffers, counters and
// the error taxonomy every other package reports through.
package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four taxonomy classes from the error-handling
// design. Check with errors.Is; wrap with fmt.Errorf("%s: %w", ...) to add
// context without losing the class.
var (
	ErrInvalidInput = errors.New("dsolve: invalid input")
	ErrMemory       = errors.New("dsolve: allocation failure")
	ErrNumerical    = errors.New("dsolve: numerical failure")
	ErrTransport    = errors.New("dsolve: transport failure")
)

// Code maps err to the historical PARDISO-style integer ABI contract:
// 0 success, -1 invalid input, -2 memory, -3 numerical, -4 transport.
// When err wraps more than one sentinel, InvalidInput wins over Numerical,
// which wins over Transport, which wins over Memory; this mirrors the
// propagation policy's ordering (structural/input problems are diagnosed
// before numerical ones, which are diagnosed before collective-transport
// ones).
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidInput):
		return -1
	case errors.Is(err, ErrNumerical):
		return -3
	case errors.Is(err, ErrTransport):
		return -4
	case errors.Is(err, ErrMemory):
		return -2
	default:
		return -1
	}
}

// Wrapf wraps one of the sentinel errors with additional context, keeping
// it discoverable via errors.Is(wrapped, sentinel).
func Wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
