// Package views holds the state behind the three read screens of the front-end: the events
// listing, a single event and the viewer's registration history. Registration status always
// comes from the shared regstate.Store, never from a view's own copy.
package views

import (
	"context"
	"errors"

	"campusEvents/internal/api"
	"campusEvents/internal/models"
	"campusEvents/internal/regstate"
)

var (
	// ErrStale is returned when a response arrives for a query the view has since moved away from.
	ErrStale    = errors.New("response no longer matches the view")
	ErrNotOwner = errors.New(MsgNotOwner)
)

const (
	MsgRegistered   = "Successfully registered for the event!"
	MsgCancelled    = "Registration cancelled successfully!"
	MsgEventCreated = "Event created successfully!"
	MsgEventUpdated = "Event updated successfully!"
	MsgEventDeleted = "Event deleted successfully!"
	MsgNotOwner     = "You are not authorized to edit this event"

	FailedListEvents    = "Failed to fetch events"
	FailedGetEvent      = "Failed to fetch event details"
	FailedRegistrations = "Failed to fetch registrations"
	FailedRegister      = "Failed to register for event"
	FailedCancel        = "Failed to cancel registration"
	FailedDelete        = "Failed to delete event"
)

// Registrations is the part of regstate.Store the views read and act through.
type Registrations interface {
	Statuses(ctx context.Context, eventIDs []string) map[string]bool
	Registrations(ctx context.Context) ([]models.Registration, error)
	Register(ctx context.Context, eventID string) error
	Cancel(ctx context.Context, eventID string) error
	InFlight(eventID string) bool
}

var _ Registrations = (*regstate.Store)(nil)

// ErrorMessage is the single line shown to the user for err.
func ErrorMessage(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, regstate.ErrUnauthenticated), errors.Is(err, regstate.ErrInFlight), errors.Is(err, ErrNotOwner):
		return err.Error()
	default:
		return api.Message(err, fallback)
	}
}
