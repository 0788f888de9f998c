package services

import "errors"

type ErrorKind string

const (
	KindInvalid      ErrorKind = "invalid"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
)

// Error is a client-facing failure. Anything that is not an *Error is treated
// as an internal error at the HTTP boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	// Details is merged into the error payload, e.g. a blocking usage count.
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) With(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func NewInvalidError(msg string) *Error      { return &Error{Kind: KindInvalid, Message: msg} }
func NewUnauthorizedError(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func NewForbiddenError(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NewNotFoundError(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func NewConflictError(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

// AsError unwraps err into an *Error if it carries one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
