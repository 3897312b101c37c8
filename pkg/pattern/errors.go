package pattern

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnboundVariable   = errors.New("variable is not bound")
	ErrRebound           = errors.New("variable is already bound")
	ErrArity             = errors.New("wrong number of variables")
	ErrNotGenerative     = errors.New("constraint cannot generate")
	ErrKindMismatch      = errors.New("variable kind does not fit constraint")
	ErrInvalidConstraint = errors.New("invalid constraint")
)

// PatternDefinitionError reports a constraint that cannot be added to a pattern.
// It is a configuration error and is raised while the pattern is built, never
// while it is searched.
type PatternDefinitionError struct {
	Pattern    string   // Anchor label of the pattern
	Constraint string   // Constraint name
	Labels     []string // Labels the constraint was added with
	Cause      error
}

// Error implements the error interface.
func (e *PatternDefinitionError) Error() string {
	return fmt.Sprintf("pattern %q: constraint %s%v: %v", e.Pattern, e.Constraint, e.Labels, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *PatternDefinitionError) Unwrap() error {
	return e.Cause
}

// IsDefinitionError returns true if the error is a PatternDefinitionError.
func IsDefinitionError(err error) bool {
	var pe *PatternDefinitionError
	return errors.As(err, &pe)
}
