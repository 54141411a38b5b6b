package capture

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrLaunch          = errors.New("browser launch failure")
	ErrNavigation      = errors.New("navigation failure")
	ErrElementNotFound = errors.New("element not found")
	ErrFilesystem      = errors.New("filesystem error")
	ErrCapture         = errors.New("capture failure")
)

// Error is a failed capture step. It matches both its Kind and the
// underlying cause under errors.Is.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
