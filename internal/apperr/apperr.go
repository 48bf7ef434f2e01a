// Package apperr defines the closed set of failure kinds the domain
// services report. Handlers map kinds to HTTP statuses; anything that is
// not an *Error is treated as internal.
package apperr

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindAlreadyExists
	KindInvalidCredentials
	KindUnauthorized
	KindNotFound
	KindValidation
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func AlreadyExists(message string) *Error {
	return New(KindAlreadyExists, message)
}

func InvalidCredentials(message string) *Error {
	return New(KindInvalidCredentials, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

// KindOf reports the kind of err, or KindInternal when err is not an
// *Error produced by this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
