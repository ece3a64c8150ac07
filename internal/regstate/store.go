// Package regstate keeps one viewer's registrations, indexed by event id, and answers
// "is the viewer registered for this event" for every view that asks.
//
// The registration list is fetched once and then kept current by local updates after each
// successful register or cancel. Those updates are reconciled against the server by Resync.
package regstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
)

var (
	ErrUnauthenticated = errors.New("please login to register for events")
	ErrInFlight        = errors.New("a registration change for this event is already in progress")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationsAPI
type RegistrationsAPI interface {
	MyRegistrations(ctx context.Context) ([]models.Registration, error)
	RegisterForEvent(ctx context.Context, eventID string) (*models.Registration, error)
	CancelRegistration(ctx context.Context, eventID string) error
}

// Viewer reports whether anyone is signed in.
type Viewer interface {
	Authenticated() bool
}

// maxFetchAttempts bounds how often a first load that raced a local change is retried.
const maxFetchAttempts = 3

type Store struct {
	api    RegistrationsAPI
	viewer Viewer
	log    *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	rows     []models.Registration
	loaded   bool
	loadedAt time.Time
	dirty    bool
	// pending is set when a local row lacks its event's details; history reads refetch.
	pending  bool
	gen      uint64
	inFlight map[string]struct{}
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(api RegistrationsAPI, viewer Viewer, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		api:      api,
		viewer:   viewer,
		log:      log.With(slog.String("component", "regstate")),
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Statuses reports, for each id, whether the viewer holds some registration for it in
// status registered. Without a signed-in viewer everything is false and nothing is fetched.
// A failed fetch is logged and reads as false.
func (s *Store) Statuses(ctx context.Context, eventIDs []string) map[string]bool {
	const op = "regstate.Store.Statuses"

	out := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		out[id] = false
	}

	if !s.viewer.Authenticated() {
		return out
	}

	if err := s.ensure(ctx, false); err != nil {
		s.log.Warn("registration status unavailable", slog.String("op", op), sl.Err(err))
		return out
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rows {
		if _, asked := out[r.Event.ID]; asked && r.Status == models.RegistrationRegistered {
			out[r.Event.ID] = true
		}
	}

	return out
}

func (s *Store) IsRegistered(ctx context.Context, eventID string) bool {
	return s.Statuses(ctx, []string{eventID})[eventID]
}

// Registrations returns every registration of the viewer in server order, newest local
// ones first. Rows registered without event details are refetched before being shown.
func (s *Store) Registrations(ctx context.Context) ([]models.Registration, error) {
	if !s.viewer.Authenticated() {
		return []models.Registration{}, nil
	}

	if err := s.ensure(ctx, true); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return append(make([]models.Registration, 0, len(s.rows)), s.rows...), nil
}

// InFlight reports whether a register or cancel for the event has not returned yet.
func (s *Store) InFlight(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.inFlight[eventID]

	return ok
}

// Register registers the viewer for eventID and records the server's registration locally.
// A registration the server already listed is updated in place, a new one goes first.
func (s *Store) Register(ctx context.Context, eventID string) error {
	const op = "regstate.Store.Register"

	if !s.viewer.Authenticated() {
		return ErrUnauthenticated
	}

	if !s.begin(eventID) {
		return ErrInFlight
	}
	defer s.end(eventID)

	reg, err := s.api.RegisterForEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rec models.Registration
	if reg != nil {
		rec = *reg
	}
	rec.Event.ID = eventID
	rec.Status = models.RegistrationRegistered

	if !populated(rec.Event) {
		if e, ok := s.eventDetails(eventID); ok {
			rec.Event = e
		} else {
			s.pending = true
		}
	}

	i := -1
	if rec.ID != "" {
		i = slices.IndexFunc(s.rows, func(r models.Registration) bool { return r.ID == rec.ID })
	}

	if i >= 0 {
		s.rows[i] = rec
	} else {
		s.rows = slices.Insert(s.rows, 0, rec)
	}

	s.changed()

	return nil
}

// Cancel cancels the viewer's registration for eventID. Every row for the event flips to
// cancelled in place.
func (s *Store) Cancel(ctx context.Context, eventID string) error {
	const op = "regstate.Store.Cancel"

	if !s.viewer.Authenticated() {
		return ErrUnauthenticated
	}

	if !s.begin(eventID) {
		return ErrInFlight
	}
	defer s.end(eventID)

	if err := s.api.CancelRegistration(ctx, eventID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].Event.ID == eventID {
			s.rows[i].Status = models.RegistrationCancelled
		}
	}

	s.changed()

	return nil
}

// changed records a local mutation. Callers hold mu.
func (s *Store) changed() {
	s.dirty = true
	s.gen++
}

// eventDetails finds the event as some other row already carries it. Callers hold mu.
func (s *Store) eventDetails(eventID string) (models.Event, bool) {
	for _, r := range s.rows {
		if r.Event.ID == eventID && populated(r.Event) {
			return r.Event, true
		}
	}

	return models.Event{}, false
}

func populated(e models.Event) bool {
	return !e.StartAt.IsZero()
}

// Resync re-fetches the list when local changes await reconciliation or the list is older
// than maxAge. Stores nobody has read yet are left alone.
func (s *Store) Resync(ctx context.Context, maxAge time.Duration) error {
	if !s.viewer.Authenticated() {
		s.Reset()
		return nil
	}

	s.mu.Lock()
	due := s.dirty || (s.loaded && s.now().Sub(s.loadedAt) >= maxAge)
	s.mu.Unlock()

	if !due {
		return nil
	}

	return s.fetch(ctx)
}

// Invalidate forces the next read to fetch and discards any fetch already under way.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.gen++
}

// Reset forgets everything, as on sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = nil
	s.loaded = false
	s.dirty = false
	s.pending = false
	s.gen++
}

// ensure fetches the list if it was never loaded. With details set it also refetches when
// a row lacks its event's details; that refetch failing leaves the local rows in use.
func (s *Store) ensure(ctx context.Context, details bool) error {
	const op = "regstate.Store.ensure"

	s.mu.Lock()
	loaded, pending := s.loaded, s.pending
	s.mu.Unlock()

	if loaded && !(details && pending) {
		return nil
	}

	err := s.fetch(ctx)
	if err != nil && loaded {
		s.log.Warn("failed to refetch registration details", slog.String("op", op), sl.Err(err))
		return nil
	}

	return err
}

// fetch replaces the list with the server's, unless a local change or invalidation
// happened while the request was out. A discarded result leaves the store due for resync.
// A first load that raced a change is retried, since the server already holds the change.
func (s *Store) fetch(ctx context.Context) error {
	const op = "regstate.Store.fetch"

	for attempt := 1; ; attempt++ {
		s.mu.Lock()
		gen := s.gen
		s.mu.Unlock()

		regs, err := s.api.MyRegistrations(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		s.mu.Lock()

		stale := gen != s.gen

		if stale && s.loaded {
			s.log.Debug("discarding registration list fetched before a local change", slog.String("op", op))
			s.dirty = true
			s.mu.Unlock()

			return nil
		}

		if stale && attempt < maxFetchAttempts {
			s.mu.Unlock()
			continue
		}

		s.rows = slices.Clone(regs)
		s.loaded = true
		s.loadedAt = s.now()
		s.dirty = stale
		s.pending = false
		s.mu.Unlock()

		return nil
	}
}

func (s *Store) begin(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[eventID]; busy {
		return false
	}

	s.inFlight[eventID] = struct{}{}

	return true
}

func (s *Store) end(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, eventID)
}
