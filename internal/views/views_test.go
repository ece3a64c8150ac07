package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campusEvents/internal/api"
	"campusEvents/internal/models"
	"campusEvents/internal/regstate"
	"campusEvents/internal/views/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeRegs struct {
	mu         sync.Mutex
	registered map[string]bool
	history    []models.Registration
	err        error
	inFlight   map[string]bool
}

func (f *fakeRegs) Statuses(_ context.Context, ids []string) map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = f.registered[id]
	}

	return out
}

func (f *fakeRegs) Registrations(context.Context) ([]models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.history, f.err
}

func (f *fakeRegs) Register(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.registered == nil {
		f.registered = map[string]bool{}
	}
	f.registered[id] = true

	return nil
}

func (f *fakeRegs) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.registered, id)

	return nil
}

func (f *fakeRegs) InFlight(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.inFlight[id]
}

var now = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func event(id string, start time.Time) models.Event {
	return models.Event{ID: id, Title: "Event " + id, StartAt: start, Tags: []string{}}
}

func TestSetFiltersResetsPage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		filters api.EventFilters
		page    int
	}{
		{name: "search", filters: api.EventFilters{Search: "jazz"}, page: 1},
		{name: "upcoming", filters: api.EventFilters{Upcoming: true}, page: 1},
		{name: "tags", filters: api.EventFilters{Tags: "music"}, page: 1},
		{name: "organizer", filters: api.EventFilters{Organizer: "u1"}, page: 1},
		{name: "unchanged", filters: api.EventFilters{}, page: 4},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := NewEventsList(mocks.NewEventsAPI(t), &fakeRegs{}, 12)
			l.SetPage(4)

			l.SetFilters(tc.filters)
			assert.Equal(t, tc.page, l.Query().Page)
		})
	}
}

func TestSetPageClampsToFirst(t *testing.T) {
	t.Parallel()

	l := NewEventsList(mocks.NewEventsAPI(t), &fakeRegs{}, 12)
	l.SetPage(0)

	assert.Equal(t, 1, l.Query().Page)
}

func TestMoveDoesNotFetch(t *testing.T) {
	t.Parallel()

	l := NewEventsList(mocks.NewEventsAPI(t), &fakeRegs{}, 12)

	q := l.Move(Query{Page: 0})
	assert.Equal(t, 1, q.Page)

	q = l.Move(Query{Page: 4})
	assert.Equal(t, 4, q.Page)

	q = l.Move(Query{Filters: api.EventFilters{Tags: "music"}, Page: 4})
	assert.Equal(t, Query{Filters: api.EventFilters{Tags: "music"}, Page: 1}, q)
	assert.Equal(t, q, l.Query())
}

func TestApply(t *testing.T) {
	t.Parallel()

	eventsAPI := mocks.NewEventsAPI(t)
	eventsAPI.On("ListEvents", mock.Anything, api.EventFilters{}, 3, 12).
		Return(&models.EventsPage{Events: []models.Event{}, Page: 3, TotalPages: 5, TotalItems: 50}, nil).
		Once()
	eventsAPI.On("ListEvents", mock.Anything, api.EventFilters{Search: "jazz"}, 1, 12).
		Return(&models.EventsPage{Events: []models.Event{}, Page: 1, TotalPages: 1, TotalItems: 2}, nil).
		Once()

	l := NewEventsList(eventsAPI, &fakeRegs{}, 12)
	ctx := context.Background()

	snap, err := l.Apply(ctx, Query{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Query.Page)
	assert.Equal(t, 5, snap.TotalPages)
	assert.Equal(t, 50, snap.TotalItems)

	// A new search lands on page 1 even when a page is asked for.
	snap, err = l.Apply(ctx, Query{Filters: api.EventFilters{Search: "jazz"}, Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Query.Page)
	assert.Equal(t, 2, snap.TotalItems)
}

func TestSnapshotReadsRegistrationsFromStore(t *testing.T) {
	t.Parallel()

	eventsAPI := mocks.NewEventsAPI(t)
	eventsAPI.On("ListEvents", mock.Anything, api.EventFilters{}, 1, 12).Return(&models.EventsPage{
		Events: []models.Event{
			event("e1", now.Add(time.Hour)),
			event("e2", now.Add(-time.Hour)),
			event("e3", now),
		},
		Page:       1,
		TotalPages: 1,
		TotalItems: 3,
	}, nil).Once()

	regs := &fakeRegs{registered: map[string]bool{"e2": true}, inFlight: map[string]bool{"e3": true}}

	l := NewEventsList(eventsAPI, regs, 12)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	snap, err := l.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Events, 3)

	assert.Equal(t, models.PhaseUpcoming, snap.Events[0].Phase)
	assert.Equal(t, models.PhasePast, snap.Events[1].Phase)
	assert.Equal(t, models.PhaseLive, snap.Events[2].Phase)
	assert.False(t, snap.Events[0].Registered)
	assert.True(t, snap.Events[1].Registered)
	assert.True(t, snap.Events[2].InFlight)

	// A registration made elsewhere shows without another fetch.
	require.NoError(t, regs.Register(ctx, "e1"))
	assert.True(t, l.Snapshot(ctx).Events[0].Registered)
}

func TestRefreshFailureKeepsLastPage(t *testing.T) {
	t.Parallel()

	eventsAPI := mocks.NewEventsAPI(t)
	eventsAPI.On("ListEvents", mock.Anything, api.EventFilters{}, 1, 12).Return(&models.EventsPage{
		Events:     []models.Event{event("e1", now)},
		Page:       1,
		TotalPages: 1,
		TotalItems: 1,
	}, nil).Once()
	eventsAPI.On("ListEvents", mock.Anything, api.EventFilters{}, 1, 12).
		Return(nil, &api.Error{Op: "events.list", Message: "Failed to fetch events"}).
		Once()

	l := NewEventsList(eventsAPI, &fakeRegs{}, 12)
	ctx := context.Background()

	_, err := l.Refresh(ctx)
	require.NoError(t, err)

	snap, err := l.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch events", snap.Error)
	assert.Len(t, snap.Events, 1)
}

func TestRefreshDiscardsStaleResponse(t *testing.T) {
	t.Parallel()

	eventsAPI := mocks.NewEventsAPI(t)

	var l *EventsList

	eventsAPI.On("ListEvents", mock.Anything, api.EventFilters{}, 1, 12).
		Run(func(mock.Arguments) {
			l.SetFilters(api.EventFilters{Search: "late"})
		}).
		Return(&models.EventsPage{Events: []models.Event{event("old", now)}, TotalPages: 1}, nil).
		Once()

	l = NewEventsList(eventsAPI, &fakeRegs{}, 12)

	snap, err := l.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrStale)
	assert.Nil(t, snap)
	assert.Empty(t, l.Snapshot(context.Background()).Events)
}

func TestEventDetailOpen(t *testing.T) {
	t.Parallel()

	e := event("e1", now.Add(time.Hour))
	e.Organizer = models.Organizer{ID: "org1"}

	eventAPI := mocks.NewEventAPI(t)
	eventAPI.On("GetEvent", mock.Anything, "e1").Return(&e, nil).Once()

	testCases := []struct {
		name    string
		viewer  *models.User
		canEdit bool
	}{
		{name: "anonymous", viewer: nil},
		{name: "student", viewer: &models.User{ID: "s1", Role: models.RoleStudent}},
		{name: "owner", viewer: &models.User{ID: "org1", Role: models.RoleOrganizer}, canEdit: true},
		{name: "other organizer", viewer: &models.User{ID: "org2", Role: models.RoleOrganizer}},
		{name: "admin", viewer: &models.User{ID: "a1", Role: models.RoleAdmin}, canEdit: true},
	}

	d := NewEventDetail(eventAPI, &fakeRegs{registered: map[string]bool{"e1": true}}, nil)
	d.now = func() time.Time { return now }

	snap, err := d.Open(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseUpcoming, snap.Phase)
	assert.True(t, snap.Registered)

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.canEdit, tc.viewer.CanEdit(snap.Event))
		})
	}
}

func TestEventDetailFailure(t *testing.T) {
	t.Parallel()

	eventAPI := mocks.NewEventAPI(t)
	eventAPI.On("GetEvent", mock.Anything, "missing").
		Return(nil, &api.Error{Op: "events.get", StatusCode: 404, Message: "Event not found"}).
		Once()

	d := NewEventDetail(eventAPI, &fakeRegs{}, nil)

	snap, err := d.Open(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, snap.Event)
	assert.Equal(t, "Event not found", snap.Error)
}

func TestEventDetailDiscardsOvertakenOpen(t *testing.T) {
	t.Parallel()

	first := event("e1", now)
	second := event("e2", now)

	eventAPI := mocks.NewEventAPI(t)

	var d *EventDetail

	eventAPI.On("GetEvent", mock.Anything, "e2").Return(&second, nil).Once()
	eventAPI.On("GetEvent", mock.Anything, "e1").
		Run(func(mock.Arguments) {
			_, err := d.Open(context.Background(), "e2")
			assert.NoError(t, err)
		}).
		Return(&first, nil).
		Once()

	d = NewEventDetail(eventAPI, &fakeRegs{}, nil)

	_, err := d.Open(context.Background(), "e1")
	assert.ErrorIs(t, err, ErrStale)

	snap := d.Snapshot(context.Background())
	require.NotNil(t, snap.Event)
	assert.Equal(t, "e2", snap.Event.ID)
}

func TestEventDetailDelete(t *testing.T) {
	t.Parallel()

	e := event("e1", now)
	e.Organizer = models.Organizer{ID: "org1"}

	eventAPI := mocks.NewEventAPI(t)
	eventAPI.On("GetEvent", mock.Anything, "e1").Return(&e, nil)
	eventAPI.On("DeleteEvent", mock.Anything, "e1").Return(nil).Once()

	ctx := context.Background()

	stranger := NewEventDetail(eventAPI, &fakeRegs{}, &models.User{ID: "org2", Role: models.RoleOrganizer})
	_, err := stranger.Open(ctx, "e1")
	require.NoError(t, err)
	assert.ErrorIs(t, stranger.Delete(ctx), ErrNotOwner)

	owner := NewEventDetail(eventAPI, &fakeRegs{}, &models.User{ID: "org1", Role: models.RoleOrganizer})
	_, err = owner.Open(ctx, "e1")
	require.NoError(t, err)
	assert.NoError(t, owner.Delete(ctx))
}

func TestParseHistoryFilter(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]HistoryFilter{
		"":          HistoryAll,
		"all":       HistoryAll,
		"upcoming":  HistoryUpcoming,
		"past":      HistoryPast,
		"cancelled": HistoryCancelled,
	} {
		got, err := ParseHistoryFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseHistoryFilter("attended")
	assert.Error(t, err)
}

func TestFilterRegistrations(t *testing.T) {
	t.Parallel()

	r := func(id string, status models.RegistrationStatus, start time.Time) models.Registration {
		return models.Registration{ID: id, Event: event("e"+id, start), Status: status}
	}

	regs := []models.Registration{
		r("1", models.RegistrationRegistered, now.Add(time.Hour)),
		r("2", models.RegistrationRegistered, now.Add(-time.Hour)),
		r("3", models.RegistrationCancelled, now.Add(time.Hour)),
		r("4", models.RegistrationCancelled, now.Add(-time.Hour)),
		r("5", models.RegistrationAttended, now.Add(-time.Hour)),
		r("6", models.RegistrationRegistered, now),
	}

	testCases := []struct {
		filter HistoryFilter
		want   []string
	}{
		{filter: HistoryAll, want: []string{"1", "2", "3", "4", "5", "6"}},
		{filter: HistoryUpcoming, want: []string{"1"}},
		{filter: HistoryPast, want: []string{"2", "4", "5", "6"}},
		{filter: HistoryCancelled, want: []string{"3", "4"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(string(tc.filter), func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, reg := range FilterRegistrations(regs, tc.filter, now) {
				got = append(got, reg.ID)
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHistoryLoad(t *testing.T) {
	t.Parallel()

	regs := &fakeRegs{history: []models.Registration{
		{ID: "1", Event: event("e1", now.Add(time.Hour)), Status: models.RegistrationRegistered},
		{ID: "2", Event: event("e2", now.Add(time.Hour)), Status: models.RegistrationCancelled},
	}}

	h := NewHistory(regs)
	h.now = func() time.Time { return now }

	snap, err := h.Load(context.Background(), HistoryCancelled)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Total)
	require.Len(t, snap.Registrations, 1)
	assert.Equal(t, "2", snap.Registrations[0].ID)
	assert.Equal(t, models.PhaseUpcoming, snap.Registrations[0].Phase)
}

func TestHistoryLoadFailure(t *testing.T) {
	t.Parallel()

	h := NewHistory(&fakeRegs{err: errors.New("connection refused")})

	snap, err := h.Load(context.Background(), HistoryAll)
	require.Error(t, err)
	assert.Equal(t, FailedRegistrations, snap.Error)
	assert.Empty(t, snap.Registrations)
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ErrorMessage(nil, FailedRegister))
	assert.Equal(t, "Event is full", ErrorMessage(&api.Error{Message: "Event is full"}, FailedRegister))
	assert.Equal(t, FailedRegister, ErrorMessage(errors.New("dial tcp"), FailedRegister))
	assert.Equal(t, "please login to register for events", ErrorMessage(regstate.ErrUnauthenticated, FailedRegister))
	assert.Equal(t, MsgNotOwner, ErrorMessage(ErrNotOwner, FailedDelete))
}
