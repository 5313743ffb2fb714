package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindInvalidRequest ErrorKind = "INVALID_REQUEST"
	KindForbidden      ErrorKind = "FORBIDDEN"
	KindConflict       ErrorKind = "CONFLICT"
)

// Error is a terminal, non-retryable domain failure surfaced to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewNotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewInvalidRequest(msg string) error {
	return &Error{Kind: KindInvalidRequest, Message: msg}
}

func NewForbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NewConflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// KindOf returns the domain kind of err, or "" for internal failures.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
