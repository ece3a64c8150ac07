// Package upstream turns errors from the backend and the front-end state into HTTP answers.
package upstream

import (
	"errors"
	"net/http"

	"campusEvents/internal/api"
	"campusEvents/internal/regstate"
	"campusEvents/internal/views"
)

// Status picks the status code to answer with for err. Client errors from the backend are
// passed through; anything else from it is a bad gateway.
func Status(err error) int {
	switch {
	case errors.Is(err, regstate.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, views.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, regstate.ErrInFlight):
		return http.StatusConflict
	}

	if code := api.StatusCode(err); code >= 400 && code < 500 {
		return code
	}

	return http.StatusBadGateway
}

// Message is the user-facing line for err.
func Message(err error, fallback string) string {
	return views.ErrorMessage(err, fallback)
}
