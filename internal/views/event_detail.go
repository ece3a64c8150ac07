package views

import (
	"context"
	"sync"
	"time"

	"campusEvents/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventAPI
type EventAPI interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type DetailSnapshot struct {
	Event      *models.Event `json:"event"`
	Phase      models.Phase  `json:"phase,omitempty"`
	Registered bool          `json:"isRegistered"`
	InFlight   bool          `json:"inFlight"`
	CanEdit    bool          `json:"canEdit"`
	Error      string        `json:"error,omitempty"`
}

// EventDetail shows one event to one viewer. CanEdit is an offer, not a permission.
type EventDetail struct {
	api    EventAPI
	regs   Registrations
	viewer *models.User
	now    func() time.Time

	mu    sync.Mutex
	id    string
	seq   uint64
	event *models.Event
	err   string
}

func NewEventDetail(eventAPI EventAPI, regs Registrations, viewer *models.User) *EventDetail {
	return &EventDetail{
		api:    eventAPI,
		regs:   regs,
		viewer: viewer,
		now:    time.Now,
	}
}

// Open switches the view to event id and loads it, then its registration status.
// If another Open overtakes this one its response is dropped with ErrStale.
func (d *EventDetail) Open(ctx context.Context, id string) (*DetailSnapshot, error) {
	d.mu.Lock()
	if d.id != id {
		d.event = nil
		d.err = ""
	}
	d.id = id
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	event, err := d.api.GetEvent(ctx, id)

	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return nil, ErrStale
	}

	if err != nil {
		d.err = ErrorMessage(err, FailedGetEvent)
	} else {
		d.event = event
		d.err = ""
	}
	d.mu.Unlock()

	return d.Snapshot(ctx), err
}

func (d *EventDetail) Snapshot(ctx context.Context) *DetailSnapshot {
	d.mu.Lock()
	id, event, errMsg := d.id, d.event, d.err
	d.mu.Unlock()

	snap := &DetailSnapshot{Event: event, Error: errMsg}
	if event == nil {
		return snap
	}

	snap.Phase = event.PhaseAt(d.now())
	snap.Registered = d.regs.Statuses(ctx, []string{id})[id]
	snap.InFlight = d.regs.InFlight(id)
	snap.CanEdit = d.viewer.CanEdit(event)

	return snap
}

func (d *EventDetail) Register(ctx context.Context) error {
	return d.regs.Register(ctx, d.current())
}

func (d *EventDetail) Cancel(ctx context.Context) error {
	return d.regs.Cancel(ctx, d.current())
}

// Delete removes the open event. The ownership hint is checked first so a viewer is not
// sent on a request the backend is certain to refuse.
func (d *EventDetail) Delete(ctx context.Context) error {
	d.mu.Lock()
	id, event := d.id, d.event
	d.mu.Unlock()

	if event != nil && !d.viewer.CanEdit(event) {
		return ErrNotOwner
	}

	return d.api.DeleteEvent(ctx, id)
}

func (d *EventDetail) current() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.id
}
