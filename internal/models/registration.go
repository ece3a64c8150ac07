package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationCancelled  RegistrationStatus = "cancelled"
	RegistrationAttended   RegistrationStatus = "attended"
)

type Registration struct {
	ID        string             `json:"_id"`
	Event     Event              `json:"event"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Attendee is a registration as seen by the organizer of the event.
type Attendee struct {
	ID        string             `json:"_id"`
	User      User               `json:"user"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// UnmarshalJSON accepts the event either populated or as a bare id, since the backend only
// populates it on list endpoints.
func (r *Registration) UnmarshalJSON(b []byte) error {
	type alias Registration

	aux := struct {
		*alias
		Event json.RawMessage `json:"event"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Event)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		return json.Unmarshal(raw, &r.Event.ID)
	}

	return json.Unmarshal(raw, &r.Event)
}
