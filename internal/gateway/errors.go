package gateway

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped by errors for operations a backend does not perform.
var ErrUnsupported = errors.New("operation not supported")

// Error is a backend failure carrying a human-readable message.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error for op.
func Errorf(op, format string, args ...any) *Error {
	return &Error{Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap turns err into an Error for op, keeping it reachable by errors.Is.
// A nil err returns nil; an existing *Error is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}
	return &Error{Op: op, Message: err.Error(), Err: err}
}

// Unsupported reports that op is not available in this backend.
func Unsupported(op string) *Error {
	return &Error{Op: op, Message: ErrUnsupported.Error(), Err: ErrUnsupported}
}

// Message returns the user-facing text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return err.Error()
}
