package api

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports an invalid argument at construction time.
// It is always surfaced synchronously to the caller of the constructor
// and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// CycleError reports that a graph topology contains a dependency cycle.
// Steps holds the steps forming the cycle, in the order the resolver
// walked into them; the cycle closes back on Steps[0].
type CycleError struct {
	Steps []*Step
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Steps))
	for i, s := range e.Steps {
		names[i] = s.Name()
	}
	return "cycle detected among steps: " + strings.Join(names, " -> ")
}

// IsCycleError returns the CycleError if err is (or wraps) one.
func IsCycleError(err error) (*CycleError, bool) {
	var c *CycleError
	if errors.As(err, &c) {
		return c, true
	}
	return nil, false
}
