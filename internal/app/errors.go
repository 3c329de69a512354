package app

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrQuit signals that the user asked to stop reading keys.
	ErrQuit = errors.New("quit requested")

	// ErrMalformedSignal indicates a source could not parse one signal.
	// Sessions skip such signals and keep reading.
	ErrMalformedSignal = errors.New("malformed signal")

	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "parse signal", "write event")
	Target string // Target of the operation (e.g., "line 3")
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
