package shapz

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the library's single error kind. It is returned
// (wrapped in an *ArgumentError) only when a mandatory target mapping is nil
// in AssignWithin or AssignWithout. Every other malformed input degrades to
// a no-op by contract.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports which operation rejected its arguments and why.
// It matches ErrInvalidArgument under errors.Is.
type ArgumentError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("shapz: %s: %s", e.Op, e.Reason)
}

// Unwrap returns ErrInvalidArgument, supporting errors.Is matching.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func nilTargetError(op string) *ArgumentError {
	return &ArgumentError{Op: op, Reason: "target mapping is nil"}
}
