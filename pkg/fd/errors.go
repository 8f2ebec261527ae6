package fd

import (
	"errors"
	"fmt"
)

// Error kinds. A search driver backtracks on ErrFailure only; ErrModel and
// ErrOverflow abort.
var (
	// ErrFailure is matched by every propagation failure: a domain that
	// would become empty, an over-committed Hall interval, a premature
	// sub-tour, and so on. Only search-level code should recover from it.
	ErrFailure = errors.New("fd: propagation failure")

	// ErrModel is matched by errors raised while building a model, before
	// any constraint is imposed.
	ErrModel = errors.New("fd: invalid model")

	// ErrOverflow is returned by the checked arithmetic helpers. It is a
	// fatal error and never a reason to backtrack.
	ErrOverflow = errors.New("fd: arithmetic overflow")
)

// Failure describes why the current propagation pass cannot continue.
type Failure struct {
	// Constraint is the constraint that was running, or nil when the
	// failure came from a decision taken outside the fixpoint loop.
	Constraint Constraint
	// Var is the variable whose domain would have become empty, if any.
	Var *IntVar
}

// Error implements error.
func (f *Failure) Error() string {
	switch {
	case f.Constraint != nil && f.Var != nil:
		return fmt.Sprintf("fd: propagation failure in %s: %s has an empty domain", f.Constraint, f.Var.Name())
	case f.Constraint != nil:
		return fmt.Sprintf("fd: propagation failure in %s", f.Constraint)
	case f.Var != nil:
		return fmt.Sprintf("fd: propagation failure: %s has an empty domain", f.Var.Name())
	default:
		return ErrFailure.Error()
	}
}

// Unwrap makes errors.Is(err, ErrFailure) hold for every *Failure.
func (f *Failure) Unwrap() error { return ErrFailure }

// IsFailure reports whether err signals an unsatisfiable branch.
func IsFailure(err error) bool {
	return errors.Is(err, ErrFailure)
}

// ModelError is a construction-time error.
type ModelError struct {
	Kind   Kind
	Reason string
}

// Error implements error.
func (e *ModelError) Error() string {
	return fmt.Sprintf("fd: invalid %s: %s", e.Kind, e.Reason)
}

// Unwrap makes errors.Is(err, ErrModel) hold for every *ModelError.
func (e *ModelError) Unwrap() error { return ErrModel }

func modelErrorf(kind Kind, format string, args ...interface{}) error {
	return &ModelError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
