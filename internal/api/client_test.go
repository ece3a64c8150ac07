package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusEvents/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, setup func(r chi.Router)) *httptest.Server {
	t.Helper()

	router := chi.NewRouter()
	setup(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func TestListEventsQuery(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		filters   EventFilters
		wantQuery map[string]string
		absent    []string
	}{
		{
			name:      "no filters",
			filters:   EventFilters{},
			wantQuery: map[string]string{"page": "1", "size": "12"},
			absent:    []string{"q", "upcoming", "tags", "organizer"},
		},
		{
			name:    "all filters",
			filters: EventFilters{Search: "jazz", Upcoming: true, Tags: "music", Organizer: "org-1"},
			wantQuery: map[string]string{
				"page": "1", "size": "12", "q": "jazz", "upcoming": "true", "tags": "music", "organizer": "org-1",
			},
		},
		{
			name:      "upcoming off is omitted",
			filters:   EventFilters{Search: "chess"},
			wantQuery: map[string]string{"q": "chess"},
			absent:    []string{"upcoming", "tags", "organizer"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := newBackend(t, func(r chi.Router) {
				r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
					q := r.URL.Query()
					for k, v := range tc.wantQuery {
						assert.Equal(t, v, q.Get(k), k)
					}
					for _, k := range tc.absent {
						assert.False(t, q.Has(k), "unexpected parameter %s", k)
					}

					render.JSON(w, r, map[string]any{
						"success":    true,
						"data":       []map[string]any{{"_id": "e1", "title": "Jazz"}},
						"totalPages": 3,
						"totalItems": 25,
					})
				})
			})

			c := New(srv.URL, nil)

			page, err := c.ListEvents(context.Background(), tc.filters, 1, 12)
			require.NoError(t, err)

			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 25, page.TotalItems)
			require.Len(t, page.Events, 1)
			assert.Equal(t, "e1", page.Events[0].ID)
		})
	}
}

func TestListEventsDefaultsTotals(t *testing.T) {
	t.Parallel()

	srv := newBackend(t, func(r chi.Router) {
		r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, map[string]any{"success": true})
		})
	})

	page, err := New(srv.URL, nil).ListEvents(context.Background(), EventFilters{}, 2, 12)
	require.NoError(t, err)

	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.TotalItems)
	assert.NotNil(t, page.Events)
	assert.Empty(t, page.Events)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	srv := newBackend(t, func(r chi.Router) {
		r.Get("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") == "missing" {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, map[string]any{"success": false, "message": "Event not found"})
				return
			}

			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>upstream exploded</html>"))
		})
		r.Delete("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	})

	c := New(srv.URL, nil)

	_, err := c.GetEvent(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Event not found", err.Error())
	assert.Equal(t, http.StatusNotFound, StatusCode(err))

	_, err = c.GetEvent(context.Background(), "broken")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch event details", err.Error())

	err = c.DeleteEvent(context.Background(), "e1")
	require.Error(t, err)
	assert.Equal(t, "Failed to delete event", err.Error())

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "events.delete", apiErr.Op)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestTransportFailureUsesFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL, nil).MyRegistrations(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch registrations", err.Error())
	assert.Equal(t, "Failed to fetch registrations", Message(err, "other"))
	assert.Equal(t, "other", Message(errors.New("plain"), "other"))
}

func TestBearerTokenAndRequestID(t *testing.T) {
	t.Parallel()

	token := StaticToken("abc.def.ghi")

	srv := newBackend(t, func(r chi.Router) {
		r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer abc.def.ghi", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			render.JSON(w, r, map[string]any{
				"success": true,
				"data":    map[string]any{"id": "u1", "name": "Ada", "email": "ada@uni.edu", "role": "organizer"},
			})
		})
		r.Get("/registrations", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			render.JSON(w, r, map[string]any{"success": true, "data": []any{}})
		})
	})

	c := New(srv.URL, token)

	user, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganizer, user.Role)

	_, err = c.WithTokens(StaticToken("")).MyRegistrations(context.Background())
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	srv := newBackend(t, func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var creds Credentials
			assert.NoError(t, render.DecodeJSON(r.Body, &creds))

			if creds.Password != "secret" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]any{"success": false, "message": "Invalid credentials"})
				return
			}

			render.JSON(w, r, map[string]any{
				"success": true,
				"data": map[string]any{
					"token": "tok",
					"user":  map[string]any{"id": "u1", "name": "Ada", "role": "student"},
				},
			})
		})
	})

	c := New(srv.URL, nil)

	res, err := c.Login(context.Background(), Credentials{Email: "ada@uni.edu", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "u1", res.User.ID)

	_, err = c.Login(context.Background(), Credentials{Email: "ada@uni.edu", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestRegistrations(t *testing.T) {
	t.Parallel()

	srv := newBackend(t, func(r chi.Router) {
		r.Post("/registrations/{eventId}", func(w http.ResponseWriter, r *http.Request) {
			render.Status(r, http.StatusCreated)
			render.JSON(w, r, map[string]any{
				"success": true,
				"data":    map[string]any{"_id": "r1", "event": chi.URLParam(r, "eventId"), "status": "registered"},
			})
		})
		r.Delete("/registrations/{eventId}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "eventId") == "full" {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]any{"success": false, "message": "Not registered for this event"})
				return
			}
			render.JSON(w, r, map[string]any{"success": true})
		})
		r.Get("/registrations", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, map[string]any{
				"success": true,
				"data": []map[string]any{
					{"_id": "r1", "status": "registered", "event": map[string]any{"_id": "e1", "title": "A"}},
					{"_id": "r2", "status": "cancelled", "event": map[string]any{"_id": "e2", "title": "B"}},
				},
			})
		})
	})

	c := New(srv.URL, StaticToken("tok"))
	ctx := context.Background()

	reg, err := c.RegisterForEvent(ctx, "e9")
	require.NoError(t, err)
	assert.Equal(t, "e9", reg.Event.ID)
	assert.Equal(t, models.RegistrationRegistered, reg.Status)

	require.NoError(t, c.CancelRegistration(ctx, "e9"))

	err = c.CancelRegistration(ctx, "full")
	require.Error(t, err)
	assert.Equal(t, "Not registered for this event", err.Error())

	regs, err := c.MyRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "e2", regs[1].Event.ID)
	assert.Equal(t, models.RegistrationCancelled, regs[1].Status)
}

type part struct {
	name, filename, value string
}

func readParts(t *testing.T, r *http.Request) []part {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !assert.NoError(t, err) || !assert.Equal(t, "multipart/form-data", mediaType) {
		return nil
	}

	var parts []part

	mr := multipart.NewReader(r.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) || !assert.NoError(t, err) {
			break
		}

		b, err := io.ReadAll(p)
		assert.NoError(t, err)

		parts = append(parts, part{name: p.FormName(), filename: p.FileName(), value: string(b)})
	}

	return parts
}

func TestCreateEventMultipart(t *testing.T) {
	t.Parallel()

	var got []part

	srv := newBackend(t, func(r chi.Router) {
		r.Post("/events", func(w http.ResponseWriter, r *http.Request) {
			got = readParts(t, r)

			render.Status(r, http.StatusCreated)
			render.JSON(w, r, map[string]any{"success": true, "data": map[string]any{"_id": "new-1"}})
		})
	})

	title := "Robotics Expo"
	desc := "Bots"
	capacity := 40
	published := true
	start := time.Date(2026, 11, 2, 17, 30, 0, 0, time.FixedZone("CET", 3600))

	in := EventInput{
		Title:       &title,
		Description: &desc,
		Capacity:    &capacity,
		StartAt:     &start,
		Tags:        []string{"tech", "robots", "tech"},
		IsPublished: &published,
		Image:       &File{Name: "poster.png", ContentType: "image/png", Content: strings.NewReader("PNG")},
	}

	event, err := New(srv.URL, StaticToken("tok")).CreateEvent(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "new-1", event.ID)

	want := []part{
		{name: "title", value: "Robotics Expo"},
		{name: "description", value: "Bots"},
		{name: "capacity", value: "40"},
		{name: "startAt", value: "2026-11-02T16:30:00.000Z"},
		{name: "tags", value: "tech"},
		{name: "tags", value: "robots"},
		{name: "tags", value: "tech"},
		{name: "isPublished", value: "true"},
		{name: "image", filename: "poster.png", value: "PNG"},
	}
	assert.Equal(t, want, got)
}

func TestUpdateEventOmitsNilFields(t *testing.T) {
	t.Parallel()

	var got []part

	srv := newBackend(t, func(r chi.Router) {
		r.Put("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "e1", chi.URLParam(r, "id"))
			got = readParts(t, r)
			render.JSON(w, r, map[string]any{"success": true, "data": map[string]any{"_id": "e1"}})
		})
	})

	location := "Hall B"

	_, err := New(srv.URL, nil).UpdateEvent(context.Background(), "e1", EventInput{Location: &location})
	require.NoError(t, err)

	assert.Equal(t, []part{{name: "location", value: "Hall B"}}, got)
}

func TestMetricsObserved(t *testing.T) {
	t.Parallel()

	srv := newBackend(t, func(r chi.Router) {
		r.Get("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, map[string]any{"success": true, "data": map[string]any{"_id": "e1"}})
		})
	})

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	c := New(srv.URL, nil, WithMetrics(m))

	_, err := c.GetEvent(context.Background(), "e1")
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}
