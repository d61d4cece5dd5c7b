package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure returned by the negotiation core.
type ErrorKind string

const (
	KindInvalidInput   ErrorKind = "INVALID_INPUT"
	KindInvalidLine    ErrorKind = "INVALID_LINE"
	KindForbidden      ErrorKind = "FORBIDDEN"
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindDemandNotOpen  ErrorKind = "DEMAND_NOT_OPEN"
	KindDuplicateQuote ErrorKind = "DUPLICATE_QUOTE"
	KindFrozen         ErrorKind = "FROZEN"
	KindAlreadyDecided ErrorKind = "ALREADY_DECIDED"
	KindStorage        ErrorKind = "STORAGE_ERROR"
)

// Error is a typed domain error. Line is the 1-based index of the offending
// quote line for INVALID_LINE and INVALID_INPUT on lines, zero otherwise.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.ToLower(strings.ReplaceAll(string(e.Kind), "_", " "))
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches on kind. A target carrying a message must match it as well.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Kind sentinels, usable with errors.Is against any error of that kind.
var (
	ErrInvalidInput   = &Error{Kind: KindInvalidInput}
	ErrInvalidLine    = &Error{Kind: KindInvalidLine}
	ErrForbidden      = &Error{Kind: KindForbidden}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrDemandNotOpen  = &Error{Kind: KindDemandNotOpen}
	ErrDuplicateQuote = &Error{Kind: KindDuplicateQuote}
	ErrFrozen         = &Error{Kind: KindFrozen}
	ErrAlreadyDecided = &Error{Kind: KindAlreadyDecided}
	ErrStorage        = &Error{Kind: KindStorage}
)

// NewError builds a domain error of the given kind.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// AtLine returns a copy of e pinned to a 1-based line index.
func (e *Error) AtLine(line int) *Error {
	c := *e
	c.Line = line
	return &c
}

// StorageError wraps a persistence failure as STORAGE_ERROR.
// Domain errors pass through unchanged.
func StorageError(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindStorage, Message: "storage error", cause: err}
}

// KindOf returns the kind of err. Errors outside the taxonomy are STORAGE_ERROR.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorage
}
