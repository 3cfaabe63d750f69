// errors.go
package unipkg

import (
	"errors"
	"fmt"

	"github.com/unicorn-engine/unipkg/pkg/builder"
	"github.com/unicorn-engine/unipkg/pkg/hooks"
)

var (
	// ErrUnknownVerb indicates the command names no lifecycle verb
	ErrUnknownVerb = hooks.ErrUnknownVerb

	// ErrSharedLibraryMissing indicates the native build produced no shared library
	ErrSharedLibraryMissing = builder.ErrSharedLibraryMissing

	// ErrMissingAuxiliary indicates a runtime DLL was missing while publishing
	ErrMissingAuxiliary = builder.ErrMissingAuxiliary

	// ErrInvalidDescriptor indicates the package descriptor could not be used
	ErrInvalidDescriptor = errors.New("invalid package descriptor")
)

// Error wraps an error with additional context
type Error struct {
	Op   string // Operation that failed
	Verb string // Lifecycle verb if applicable
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Verb != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Verb, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
