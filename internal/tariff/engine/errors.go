package engine

import (
	"errors"
	"fmt"
)

// ErrCodeNotFound is returned when the classification code is unknown.
// The code-existence check lives upstream of the engine (in the
// calculation service); the engine itself never performs it.
var ErrCodeNotFound = errors.New("classification code not found")

// InvalidInputError reports a calculation input rejected before any
// repository call is made.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// DependencyFailureError reports a failed repository lookup. It is
// fatal for the calculation; no partial or default result is
// fabricated in its place.
type DependencyFailureError struct {
	Lookup string
	Err    error
}

func (e *DependencyFailureError) Error() string {
	return fmt.Sprintf("rate lookup %s failed: %v", e.Lookup, e.Err)
}

func (e *DependencyFailureError) Unwrap() error {
	return e.Err
}
