package api

import (
	"errors"
	"fmt"
)

// Error is a failed API call. Message is the one line to show the user: the server's
// explanation when it sent one, otherwise the operation's fixed default.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail is Error() plus the operation, status and cause, for logs.
func (e *Error) Detail() string {
	s := fmt.Sprintf("%s: %s", e.Op, e.Message)
	if e.StatusCode != 0 {
		s = fmt.Sprintf("%s (status %d)", s, e.StatusCode)
	}

	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}

	return s
}

// Message extracts the user-facing message from err, or returns fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}
