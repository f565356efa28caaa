package model

import "errors"

// ErrNotFound is returned by stores when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrorKind classifies a failure for the boundary layer.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindInternal        ErrorKind = "internal"
)

// FieldViolation describes a single invalid input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a structured failure with a stable kind and a human-readable
// message. Validation errors additionally carry the offending fields.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldViolation
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string, fields ...FieldViolation) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NewUnauthenticatedError(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf extracts the kind from an error chain, defaulting to KindInternal
// for unclassified failures (store or IO errors).
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
