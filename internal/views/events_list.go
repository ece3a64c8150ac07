package views

import (
	"context"
	"sync"
	"time"

	"campusEvents/internal/api"
	"campusEvents/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsAPI
type EventsAPI interface {
	ListEvents(ctx context.Context, filters api.EventFilters, page, size int) (*models.EventsPage, error)
}

// Query is what the listing currently shows.
type Query struct {
	Filters api.EventFilters `json:"filters"`
	Page    int              `json:"page"`
}

type EventCard struct {
	models.Event
	Phase      models.Phase `json:"phase"`
	Registered bool         `json:"isRegistered"`
	InFlight   bool         `json:"inFlight"`
}

type EventsSnapshot struct {
	Query      Query       `json:"query"`
	Events     []EventCard `json:"events"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
	TotalItems int         `json:"totalItems"`
	Error      string      `json:"error,omitempty"`
}

// EventsList is the paginated, filtered events listing. Filters and page live here and are
// sent to the server as is; the server's page and totals are trusted verbatim.
type EventsList struct {
	api      EventsAPI
	regs     Registrations
	pageSize int
	now      func() time.Time

	mu    sync.Mutex
	query Query
	seq   uint64
	page  *models.EventsPage
	err   string
}

func NewEventsList(eventsAPI EventsAPI, regs Registrations, pageSize int) *EventsList {
	return &EventsList{
		api:      eventsAPI,
		regs:     regs,
		pageSize: pageSize,
		now:      time.Now,
		query:    Query{Page: 1},
	}
}

func (l *EventsList) Query() Query {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.query
}

// SetFilters replaces the filters. Any change sends the listing back to page 1.
func (l *EventsList) SetFilters(f api.EventFilters) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f == l.query.Filters {
		return false
	}

	l.query.Filters = f
	l.query.Page = 1

	return true
}

func (l *EventsList) SetPage(page int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.query.Page = max(page, 1)
}

// Move sets the listing to q without fetching and returns where it lands. A page in q is
// honoured only when the filters are unchanged; a filter change always lands on page 1.
func (l *EventsList) Move(q Query) Query {
	l.mu.Lock()
	defer l.mu.Unlock()

	if q.Filters != l.query.Filters {
		l.query.Filters = q.Filters
		l.query.Page = 1
	} else {
		l.query.Page = max(q.Page, 1)
	}

	return l.query
}

// Apply moves the listing to q, as Move does, and refreshes it.
func (l *EventsList) Apply(ctx context.Context, q Query) (*EventsSnapshot, error) {
	l.Move(q)

	return l.Refresh(ctx)
}

// Refresh fetches the current page. When the query changes while the request is out the
// response is dropped and ErrStale returned. A failed fetch keeps the previous page and
// records the error on the view.
func (l *EventsList) Refresh(ctx context.Context) (*EventsSnapshot, error) {
	l.mu.Lock()
	l.seq++
	seq, q := l.seq, l.query
	l.mu.Unlock()

	page, err := l.api.ListEvents(ctx, q.Filters, q.Page, l.pageSize)

	l.mu.Lock()
	if seq != l.seq || q != l.query {
		l.mu.Unlock()
		return nil, ErrStale
	}

	if err != nil {
		l.err = ErrorMessage(err, FailedListEvents)
	} else {
		l.page = page
		l.err = ""
	}
	l.mu.Unlock()

	return l.Snapshot(ctx), err
}

// Snapshot renders the last fetched page with registration status read from the store.
func (l *EventsList) Snapshot(ctx context.Context) *EventsSnapshot {
	l.mu.Lock()
	snap := &EventsSnapshot{
		Query:      l.query,
		Events:     []EventCard{},
		PageSize:   l.pageSize,
		TotalPages: 1,
		Error:      l.err,
	}
	page := l.page
	l.mu.Unlock()

	if page == nil {
		return snap
	}

	snap.TotalPages = page.TotalPages
	snap.TotalItems = page.TotalItems

	ids := make([]string, 0, len(page.Events))
	for _, e := range page.Events {
		ids = append(ids, e.ID)
	}

	registered := l.regs.Statuses(ctx, ids)
	now := l.now()

	for _, e := range page.Events {
		snap.Events = append(snap.Events, EventCard{
			Event:      e,
			Phase:      e.PhaseAt(now),
			Registered: registered[e.ID],
			InFlight:   l.regs.InFlight(e.ID),
		})
	}

	return snap
}
