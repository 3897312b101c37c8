package model

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrDanglingReference = errors.New("dangling reference")
	ErrDuplicateNode     = errors.New("duplicate node id")
	ErrSealed            = errors.New("graph is sealed")
	ErrMalformedModel    = errors.New("malformed model document")
	ErrEmptyModel        = errors.New("model contains no data")
)

// GraphIntegrityError reports a reference in the graph that does not resolve
// to a node of the same graph.
type GraphIntegrityError struct {
	NodeID string // Node holding the reference
	Field  string // Field the reference was found in (e.g., "controlled")
	Ref    string // Unresolved id
}

// Error implements the error interface.
func (e *GraphIntegrityError) Error() string {
	return fmt.Sprintf("node %s (field %s): %v %q", e.NodeID, e.Field, ErrDanglingReference, e.Ref)
}

// Unwrap returns ErrDanglingReference for error chain support.
func (e *GraphIntegrityError) Unwrap() error {
	return ErrDanglingReference
}

// LoadError reports a model source that could not be parsed.
type LoadError struct {
	Source string
	Cause  error
}

func (e *LoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("load %s: %v: %v", e.Source, ErrMalformedModel, e.Cause)
	}
	return fmt.Sprintf("load: %v: %v", ErrMalformedModel, e.Cause)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrMalformedModel, e.Cause}
}

// EmptyModelError reports a well-formed model source without any node.
type EmptyModelError struct {
	Source string
}

func (e *EmptyModelError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("load %s: %v", e.Source, ErrEmptyModel)
	}
	return fmt.Sprintf("load: %v", ErrEmptyModel)
}

func (e *EmptyModelError) Unwrap() error {
	return ErrEmptyModel
}

// IsIntegrityError returns true if the error is caused by a dangling reference.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrDanglingReference)
}

// IsEmptyModel returns true if the error reports an empty model.
func IsEmptyModel(err error) bool {
	return errors.Is(err, ErrEmptyModel)
}
