package prepare

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound indicates a base template is missing from every search directory.
var ErrTemplateNotFound = errors.New("template not found")

// Error is a preparation failure: bad descriptor, template error or unwritable output.
type Error struct {
	// Op is the failed step, e.g. "parse", "render", "write".
	Op string

	// Path is the file involved.
	Path string

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
