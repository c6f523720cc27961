package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the transport layer can map it to an
// HTTP status without inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindUnavailable
	KindValidation
	KindConflict
	KindUnsupported
)

// Error is the error type produced by the domain and application layers.
type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string { return e.message }

// Kind returns the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// NewNotFoundError signals that a referenced entity does not exist.
func NewNotFoundError(resource string, id int64) *Error {
	return &Error{kind: KindNotFound, message: fmt.Sprintf("%s with id %d not found", resource, id)}
}

// NewNotFoundMessageError signals a not-found condition with a custom message.
func NewNotFoundMessageError(message string) *Error {
	return &Error{kind: KindNotFound, message: message}
}

// NewForbiddenError signals that the actor lacks the required relationship
// to the entity.
func NewForbiddenError(message string) *Error {
	return &Error{kind: KindForbidden, message: message}
}

// NewItemNotAvailableError signals that an item cannot be booked right now.
func NewItemNotAvailableError(message string) *Error {
	return &Error{kind: KindUnavailable, message: message}
}

// NewValidationError signals malformed or temporally invalid input.
func NewValidationError(message string) *Error {
	return &Error{kind: KindValidation, message: message}
}

// NewConflictError signals that the requested change collides with current
// state.
func NewConflictError(message string) *Error {
	return &Error{kind: KindConflict, message: message}
}

// NewUnsupportedError signals an unrecognized filter keyword or option.
func NewUnsupportedError(message string) *Error {
	return &Error{kind: KindUnsupported, message: message}
}

// KindOf extracts the Kind from an error chain, or KindUnknown for errors
// that did not originate in the domain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind()
	}
	return KindUnknown
}
