package mutation

import (
	"errors"
	"fmt"
)

// Validation failures detected before anything is sent to the backend.
var (
	ErrStatusCategory = errors.New("status belongs to another category")
	ErrUnknownStatus  = errors.New("unknown status")
	ErrFileTooLarge   = errors.New("file exceeds upload limit")
	ErrInvalidRef     = errors.New("invalid item reference")
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrNoFiles        = errors.New("no files selected")
)

// Error is returned by every failed controller operation. Op names the
// user action, e.g. "create task".
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(op string, err error) error {
	return &Error{Op: op, Err: err}
}
