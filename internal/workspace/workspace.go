// Package workspace keeps, per browser session, the API client, registration store and
// listing state the server answers with, and exposes them as one facade to the handlers.
package workspace

import (
	"sync"
	"sync/atomic"
	"time"

	"campusEvents/internal/api"
	"campusEvents/internal/regstate"
	"campusEvents/internal/session"
	"campusEvents/internal/views"
)

// Workspace is the front-end state of one session.
type Workspace struct {
	session atomic.Pointer[session.Session]

	Client *api.Client
	Store  *regstate.Store
	Events *views.EventsList

	mu       sync.Mutex
	lastUsed time.Time
}

// Token implements api.TokenSource for the workspace client.
func (w *Workspace) Token() string {
	return w.session.Load().Token()
}

// Authenticated implements regstate.Viewer.
func (w *Workspace) Authenticated() bool {
	return w.session.Load().Authenticated()
}

// bind points the workspace at the current copy of its session. A different token means a
// different viewer, so the registration store starts over.
func (w *Workspace) bind(s *session.Session, now time.Time) {
	prev := w.session.Swap(s)
	if prev != nil && prev.AccessToken != s.AccessToken {
		w.Store.Reset()
	}

	w.mu.Lock()
	w.lastUsed = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(before time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.lastUsed.Before(before)
}
