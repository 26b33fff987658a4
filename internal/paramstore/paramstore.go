// Package paramstore reads configuration parameters from a parameter store.
package paramstore

import (
	"context"
	"fmt"
)

// Getter looks up the value of a named parameter.
type Getter interface {
	Get(ctx context.Context, name string) (string, error)
}

// LookupError reports a failed parameter lookup. NotFound is set when the
// store confirmed the parameter does not exist.
type LookupError struct {
	Name     string
	NotFound bool
	Err      error
}

func (e *LookupError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("parameter %q not found: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("lookup parameter %q: %v", e.Name, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
