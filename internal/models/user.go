package models

import "time"

type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CanCreateEvents reports whether the role is offered event creation.
// Like CanEdit it only shapes what the front-end offers; the backend decides.
func (u *User) CanCreateEvents() bool {
	return u != nil && (u.Role == RoleOrganizer || u.Role == RoleAdmin)
}

// CanEdit reports whether the user should be offered edit and delete actions for e:
// admins for every event, organizers for their own.
func (u *User) CanEdit(e *Event) bool {
	if u == nil || e == nil {
		return false
	}

	switch u.Role {
	case RoleAdmin:
		return true
	case RoleOrganizer:
		return e.Organizer.ID == u.ID
	default:
		return false
	}
}
