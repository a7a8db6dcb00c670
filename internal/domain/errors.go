package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these onto HTTP statuses; services attach
// the caller-facing message via E().
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

// E wraps a kind sentinel with a message that is safe to return to clients.
func E(kind error, msg string) error { return &Error{kind: kind, msg: msg} }

// Ef is E with formatting.
func Ef(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}
