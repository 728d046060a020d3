package docker

import (
	"errors"
	"fmt"
)

// ErrNoImageID indicates the build stream ended without reporting an image ID.
var ErrNoImageID = errors.New("build produced no image id")

// BuildError is a failed engine operation.
type BuildError struct {
	// Op is the failed operation, "build" or "tag".
	Op string

	// Ref is the image reference the operation targeted.
	Ref string

	Err error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Ref, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}
