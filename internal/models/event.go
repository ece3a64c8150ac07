package models

import "time"

type Organizer struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EventMeta struct {
	Views int `json:"views"`
}

type Event struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image,omitempty"`
	Location    string     `json:"location,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	StartAt     time.Time  `json:"startAt"`
	EndAt       *time.Time `json:"endAt,omitempty"`
	Tags        []string   `json:"tags"`
	Organizer   Organizer  `json:"organizer"`
	IsPublished bool       `json:"isPublished"`
	Meta        EventMeta  `json:"meta"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Phase is the display classification of an event relative to a point in time.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhasePast     Phase = "past"
	PhaseLive     Phase = "live"
)

// PhaseAt classifies the event by its start time. The exact instant of the start is neither
// past nor upcoming.
func (e *Event) PhaseAt(now time.Time) Phase {
	switch {
	case e.StartAt.Before(now):
		return PhasePast
	case e.StartAt.After(now):
		return PhaseUpcoming
	default:
		return PhaseLive
	}
}

// EventsPage is one server-side page of the events collection. Totals are the server's.
type EventsPage struct {
	Events     []Event `json:"events"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
	TotalItems int     `json:"totalItems"`
}
