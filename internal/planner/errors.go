package planner

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of a specific id or name that matched nothing.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected request field. Its message is surfaced
// verbatim in import row errors and API responses.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// DuplicateError reports a uniqueness-constraint collision. Its message is
// surfaced verbatim in import row errors and API responses.
type DuplicateError struct {
	Kind  string
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s '%s' already exists", e.Kind, e.Field, e.Value)
}
