package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a cache miss.
	RedisNotFoundMessage = "redis key not found"
	// BackendErrorMessage describes failures talking to the travel backend.
	BackendErrorMessage = "backend request failed"
	// BackendDecodeMessage describes a backend body that could not be decoded.
	BackendDecodeMessage = "backend response malformed"
)

// Error wraps an underlying error with an HTTP status and safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapBackend wraps a transport failure against the travel backend.
func WrapBackend(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, BackendErrorMessage)
}

// WrapDecode wraps a JSON decoding failure of a backend body.
func WrapDecode(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, BackendDecodeMessage)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an *Error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the safe message carried by err, or SystemErrorMessage.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return SystemErrorMessage
}
