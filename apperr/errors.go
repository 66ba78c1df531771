// Package apperr defines the HTTP error taxonomy understood by the global
// error handler. Each member carries a human message, the HTTP status it maps
// to and an optional map of structured details.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Names reported in the "name" field of error responses.
const (
	NameValidation     = "ValidationError"
	NameAuthentication = "AuthenticationError"
	NameAuthorization  = "AuthorizationError"
	NameNotFound       = "NotFoundError"
	NameConflict       = "ConflictError"
	NameBasic          = "BasicError"
	NameInternal       = "INTERNAL_SERVER_ERROR"
)

// BasicError is the root of the taxonomy.
type BasicError struct {
	Name    string
	Message string
	Status  int
	Errors  map[string]any

	cause error
}

func (e *BasicError) Error() string {
	return e.Message
}

func (e *BasicError) Unwrap() error {
	return e.cause
}

// Is matches another *BasicError by name so that callers can test the kind
// with errors.Is(err, apperr.ErrNotFound).
func (e *BasicError) Is(target error) bool {
	t, ok := target.(*BasicError)
	if !ok {
		return false
	}

	return t.Name == e.Name && (t.Message == "" || t.Message == e.Message)
}

// WithCause records the error that triggered e.
func (e *BasicError) WithCause(err error) *BasicError {
	e.cause = err
	return e
}

// Kind sentinels, usable with errors.Is.
var (
	ErrValidation     = &BasicError{Name: NameValidation}
	ErrAuthentication = &BasicError{Name: NameAuthentication}
	ErrAuthorization  = &BasicError{Name: NameAuthorization}
	ErrNotFound       = &BasicError{Name: NameNotFound}
	ErrConflict       = &BasicError{Name: NameConflict}
)

// New returns a generic taxonomy error with an explicit status.
func New(message string, status int) *BasicError {
	return &BasicError{Name: NameBasic, Message: message, Status: status}
}

// Validation maps to 400 and usually carries per-field details.
func Validation(message string, details map[string]any) *BasicError {
	return &BasicError{Name: NameValidation, Message: message, Status: http.StatusBadRequest, Errors: details}
}

func Authentication(message string) *BasicError {
	return &BasicError{Name: NameAuthentication, Message: message, Status: http.StatusUnauthorized}
}

func Authorization(message string) *BasicError {
	return &BasicError{Name: NameAuthorization, Message: message, Status: http.StatusForbidden}
}

func NotFound(message string) *BasicError {
	return &BasicError{Name: NameNotFound, Message: message, Status: http.StatusNotFound}
}

func Conflict(message string) *BasicError {
	return &BasicError{Name: NameConflict, Message: message, Status: http.StatusConflict}
}

// Newf is New with a formatted message.
func Newf(status int, format string, args ...any) *BasicError {
	return New(fmt.Sprintf(format, args...), status)
}

// As extracts a taxonomy error from err's chain.
func As(err error) (*BasicError, bool) {
	var be *BasicError
	if errors.As(err, &be) && be.Status != 0 {
		return be, true
	}

	return nil, false
}
