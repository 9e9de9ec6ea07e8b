package service

import (
	"errors"
	"fmt"
)

// Error kinds. Callers test them with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence error")
)

// Error carries a client-facing message next to its kind and, for
// persistence failures, the underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == ErrPersistence {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationf(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func persistence(op string, err error) error {
	return &Error{Kind: ErrPersistence, Msg: op, Err: err}
}

// Message returns the text safe to show a client for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != ErrPersistence {
		return e.Msg
	}
	return "internal server error"
}
