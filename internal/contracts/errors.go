package contracts

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookup misses: unknown recovery options, segment pairs
// absent from a route, unknown alert ids.
var ErrNotFound = errors.New("not found")

// ValidationError names the offending input field so callers can surface it.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
