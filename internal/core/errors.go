package core

import "fmt"

// NotFoundError is returned by catalog lookups for unknown identifiers.
type NotFoundError struct {
	Kind string // "agent" or "skill"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in catalog", e.Kind, e.Name)
}

// ValidationError reports invalid user input: an unknown agent identifier,
// a malformed count, or an empty selection where one is required. It is
// always raised before any writes, so nothing is partially applied.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PreconditionError reports a failed mode precondition: the target is not
// initialized for an operation that requires it, or a required external tool
// is missing. The run aborts before any writes.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// ErrNotInitialized builds the precondition error for operations that need
// an already-installed target.
func ErrNotInitialized(targetDir string) *PreconditionError {
	return &PreconditionError{
		Message: fmt.Sprintf("target not yet initialized: %s (run 'deckhand install' first)", targetDir),
	}
}

// ErrToolUnavailable builds the precondition error for a missing external
// dependency of the requested mode.
func ErrToolUnavailable(tool string) *PreconditionError {
	return &PreconditionError{
		Message: fmt.Sprintf("required external tool unavailable: %s", tool),
	}
}
