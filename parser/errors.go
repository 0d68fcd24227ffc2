package parser

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedChar     = errors.New("unexpected character")
	ErrUnterminatedString = errors.New("unterminated string")
	ErrSyntax             = errors.New("syntax error")
	ErrTooManyErrors      = errors.New("too many errors")
)

// ScanError is a fatal lexing failure.
type ScanError struct {
	Err  error
	Char rune
	Line int
}

func (e *ScanError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("line %d: %v '%c'", e.Line, e.Err, e.Char)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// SyntaxError is one recoverable parse failure.
type SyntaxError struct {
	Line int
	Near string // the offending token as written
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d near %s: %s", e.Line, e.Near, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }
