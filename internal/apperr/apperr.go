package apperr

import (
	"errors"
	"net/http"
)

// Error is an operational error with an HTTP status.
// Handlers pass these to the shared responder instead of picking codes locally.
type Error struct {
	Status  int
	Message string
	// Data is attached to the failure envelope (e.g. userId for unverified logins).
	Data map[string]interface{}
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func (e *Error) WithData(data map[string]interface{}) *Error {
	e.Data = data
	return e
}

// As unwraps err into *Error when possible.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
