// Package errs holds the ledger error taxonomy. Every error returned by a
// ledger or registry operation is an *Error carrying one Kind; callers branch
// with errors.Is against the Err* sentinels.
package errs

import (
	"context"
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindUnavailable
	KindInvalidMember
	KindInvalidState
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	case KindInvalidMember:
		return "invalid_member"
	case KindInvalidState:
		return "invalid_state"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Op   string // operation name, e.g. "ledger.CreateLoan"
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == ""
}

var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrUnavailable   = &Error{Kind: KindUnavailable}
	ErrInvalidMember = &Error{Kind: KindInvalidMember}
	ErrInvalidState  = &Error{Kind: KindInvalidState}
	ErrStorage       = &Error{Kind: KindStorage}
)

func E(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func Validation(op, format string, args ...any) *Error {
	return E(KindValidation, op, format, args...)
}

func NotFound(op, format string, args ...any) *Error {
	return E(KindNotFound, op, format, args...)
}

func Conflict(op, format string, args ...any) *Error {
	return E(KindConflict, op, format, args...)
}

func Unavailable(op, format string, args ...any) *Error {
	return E(KindUnavailable, op, format, args...)
}

func InvalidMember(op, format string, args ...any) *Error {
	return E(KindInvalidMember, op, format, args...)
}

func InvalidState(op, format string, args ...any) *Error {
	return E(KindInvalidState, op, format, args...)
}

// Storage wraps a persistence failure. A nil err yields nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Op: op, Msg: "storage failure", Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Classify passes taxonomy errors through and turns everything else (driver
// errors, context deadlines) into a storage error for op. A taxonomy error
// raised without an op, as the storage layer does, is attributed to op.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok && e.Op == "" {
		tagged := *e
		tagged.Op = op
		return &tagged
	}
	if KindOf(err) != 0 {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindStorage, Op: op, Msg: "timed out", Err: err}
	}
	return Storage(op, err)
}
