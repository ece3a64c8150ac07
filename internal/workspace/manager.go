package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"campusEvents/internal/api"
	"campusEvents/internal/forms"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/regstate"
	"campusEvents/internal/session"
	"campusEvents/internal/views"
)

type Options struct {
	PageSize int
	// MaxAge is how old a registration list may get before Resync refetches it.
	MaxAge   time.Duration
	Location *time.Location
}

type Manager struct {
	log      *slog.Logger
	client   *api.Client
	sessions session.Store
	opts     Options
	now      func() time.Time

	mu     sync.Mutex
	spaces map[string]*Workspace
}

func NewManager(log *slog.Logger, client *api.Client, sessions session.Store, opts Options) *Manager {
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Manager{
		log:      log,
		client:   client,
		sessions: sessions,
		opts:     opts,
		now:      time.Now,
		spaces:   make(map[string]*Workspace),
	}
}

func (m *Manager) Location() *time.Location {
	return m.opts.Location
}

// For returns the workspace of s, creating it on first use.
func (m *Manager) For(s *session.Session) *Workspace {
	m.mu.Lock()
	ws, ok := m.spaces[s.ID]
	if !ok {
		ws = &Workspace{}
		ws.Client = m.client.WithTokens(ws)
		ws.Store = regstate.New(ws.Client, ws, m.log.With(slog.String("session", s.ID)))
		ws.Events = views.NewEventsList(ws.Client, ws.Store, m.opts.PageSize)
		m.spaces[s.ID] = ws
	}
	m.mu.Unlock()

	ws.bind(s, m.now())

	return ws
}

func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.spaces, sessionID)
}

// Resync reconciles every workspace's registration store with the backend. It is meant to
// run on a ticker; failures are logged and retried on the next tick.
func (m *Manager) Resync(ctx context.Context) {
	const op = "workspace.Manager.Resync"

	log := m.log.With(slog.String("op", op))

	for id, ws := range m.snapshot() {
		if err := ws.Store.Resync(ctx, m.opts.MaxAge); err != nil {
			log.Warn("failed to resync registrations", slog.String("session", id), sl.Err(err))
		}
	}
}

// Evict drops workspaces unused since before and reports how many went.
func (m *Manager) Evict(before time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for id, ws := range m.spaces {
		if ws.idleSince(before) {
			delete(m.spaces, id)
			n++
		}
	}

	return n
}

func (m *Manager) snapshot() map[string]*Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]*Workspace, len(m.spaces))
	for id, ws := range m.spaces {
		out[id] = ws
	}

	return out
}

func (m *Manager) ListEvents(ctx context.Context, s *session.Session, q views.Query) (*views.EventsSnapshot, error) {
	ws := m.For(s)

	// The session list only tracks position; the fetch runs on a list owned by this request.
	q = ws.Events.Move(q)

	list := views.NewEventsList(ws.Client, ws.Store, m.opts.PageSize)
	list.SetFilters(q.Filters)
	list.SetPage(q.Page)

	return list.Refresh(ctx)
}

func (m *Manager) EventDetail(ctx context.Context, s *session.Session, id string) (*views.DetailSnapshot, error) {
	ws := m.For(s)

	return views.NewEventDetail(ws.Client, ws.Store, s.Viewer()).Open(ctx, id)
}

func (m *Manager) CreateEvent(ctx context.Context, s *session.Session, in api.EventInput) (*models.Event, error) {
	return m.For(s).Client.CreateEvent(ctx, in)
}

// UpdateEvent saves in over event id after checking the ownership hint.
func (m *Manager) UpdateEvent(ctx context.Context, s *session.Session, id string, in api.EventInput) (*models.Event, error) {
	ws := m.For(s)

	if _, err := m.editable(ctx, ws, s, id); err != nil {
		return nil, err
	}

	return ws.Client.UpdateEvent(ctx, id, in)
}

func (m *Manager) DeleteEvent(ctx context.Context, s *session.Session, id string) error {
	ws := m.For(s)

	detail := views.NewEventDetail(ws.Client, ws.Store, s.Viewer())
	if _, err := detail.Open(ctx, id); err != nil {
		return err
	}

	return detail.Delete(ctx)
}

// EditForm loads event id into a form for editing.
func (m *Manager) EditForm(ctx context.Context, s *session.Session, id string) (*forms.EventForm, error) {
	e, err := m.editable(ctx, m.For(s), s, id)
	if err != nil {
		return nil, err
	}

	return forms.FromEvent(e, m.opts.Location), nil
}

func (m *Manager) editable(ctx context.Context, ws *Workspace, s *session.Session, id string) (*models.Event, error) {
	e, err := ws.Client.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.Viewer().CanEdit(e) {
		return nil, views.ErrNotOwner
	}

	return e, nil
}

func (m *Manager) Attendees(ctx context.Context, s *session.Session, eventID string) ([]models.Attendee, error) {
	return m.For(s).Client.EventRegistrations(ctx, eventID)
}

func (m *Manager) Register(ctx context.Context, s *session.Session, eventID string) error {
	return m.For(s).Store.Register(ctx, eventID)
}

func (m *Manager) Cancel(ctx context.Context, s *session.Session, eventID string) error {
	return m.For(s).Store.Cancel(ctx, eventID)
}

func (m *Manager) History(ctx context.Context, s *session.Session, f views.HistoryFilter) (*views.HistorySnapshot, error) {
	return views.NewHistory(m.For(s).Store).Load(ctx, f)
}

func (m *Manager) Login(ctx context.Context, s *session.Session, in api.Credentials) (*models.User, error) {
	res, err := m.client.WithTokens(api.StaticToken("")).Login(ctx, in)
	if err != nil {
		return nil, err
	}

	return m.signIn(ctx, s, res)
}

func (m *Manager) SignUp(ctx context.Context, s *session.Session, in api.SignUp) (*models.User, error) {
	res, err := m.client.WithTokens(api.StaticToken("")).Register(ctx, in)
	if err != nil {
		return nil, err
	}

	return m.signIn(ctx, s, res)
}

func (m *Manager) signIn(ctx context.Context, s *session.Session, res *api.AuthResult) (*models.User, error) {
	const op = "workspace.Manager.signIn"

	s.SignIn(res.Token, res.User)

	if err := m.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.For(s)

	return s.User, nil
}

// Logout forgets the token. Like the browser client it does not call the backend.
func (m *Manager) Logout(ctx context.Context, s *session.Session) error {
	const op = "workspace.Manager.Logout"

	s.SignOut()
	m.Drop(s.ID)

	if err := m.sessions.Save(ctx, s); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Profile refreshes the signed-in user from the backend.
func (m *Manager) Profile(ctx context.Context, s *session.Session) (*models.User, error) {
	const op = "workspace.Manager.Profile"

	user, err := m.For(s).Client.Profile(ctx)
	if err != nil {
		return nil, err
	}

	s.User = user

	if err = m.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
