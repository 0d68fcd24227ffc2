package runtime

import (
	"errors"
	"fmt"
)

var (
	ErrUndefined       = errors.New("undefined variable")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrArity           = errors.New("wrong number of arguments")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrKeyNotFound     = errors.New("key not found")
	ErrNotCallable     = errors.New("not callable")
	ErrLengthMismatch  = errors.New("lengths must match")
	ErrNotIterable     = errors.New("not iterable")
	ErrSignalEscape    = errors.New("control flow outside its construct")
	ErrCallDepth       = errors.New("maximum call depth exceeded")
	ErrNative          = errors.New("native function failed")
	ErrNotImplemented  = errors.New("evaluation for this node type not implemented")
)

// RuntimeError is a failure raised while evaluating, tagged with the source
// line of the node that raised it.
type RuntimeError struct {
	Line int
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// Message is the error text without the line prefix.  This is what a
// wea_fail block sees in wea_error.
func (e *RuntimeError) Message() string {
	return e.Err.Error()
}

// failf builds a RuntimeError at node wrapping sentinel with a formatted detail.
func failf(node Node, sentinel error, format string, args ...any) error {
	return &RuntimeError{Line: node.Pos(), Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}

// atNode attaches a line to err unless it already carries one.
func atNode(node Node, err error) error {
	if err == nil {
		return nil
	}
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return err
	}
	return &RuntimeError{Line: node.Pos(), Err: err}
}

// ErrorMessage returns the user facing message of err, dropping the line
// prefix of RuntimeErrors.
func ErrorMessage(err error) string {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr.Message()
	}
	return err.Error()
}
