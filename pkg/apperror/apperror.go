package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is an error that already knows how it should be reported to the client.
type HTTPError struct {
	Status  int
	Message string
	Details any
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

func New(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// WithDetails returns a copy carrying client-facing details.
func (e *HTTPError) WithDetails(details any) *HTTPError {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap attaches the underlying cause, which is logged but never sent to the client.
func (e *HTTPError) Wrap(err error) *HTTPError {
	cp := *e
	cp.Err = err
	return &cp
}

func BadRequest(message string) *HTTPError   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *HTTPError { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *HTTPError    { return New(http.StatusForbidden, message) }
func NotFound(message string) *HTTPError     { return New(http.StatusNotFound, message) }
func Conflict(message string) *HTTPError     { return New(http.StatusConflict, message) }

// As extracts an *HTTPError from err's chain.
func As(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
