// Package mwsession binds each request to a server-side session named by a cookie.
package mwsession

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/session"

	"github.com/go-chi/render"
)

type ctxKey struct{}

type Cookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// New loads the session named by the cookie, or starts an anonymous one, and puts it in the
// request context.
func New(log *slog.Logger, store session.Store, cookie Cookie) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/session"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			s, err := load(r, store, cookie.Name)
			if err != nil {
				log.Error("failed to load session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to load session"))

				return
			}

			if s == nil {
				s = session.New()

				if err = store.Save(r.Context(), s); err != nil {
					log.Error("failed to save session", sl.Err(err))
					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, response.Error("failed to save session"))

					return
				}

				SetCookie(w, cookie, s.ID)
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		}

		return http.HandlerFunc(fn)
	}
}

func load(r *http.Request, store session.Store, name string) (*session.Session, error) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	s, err := store.Get(r.Context(), c.Value)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}

	return s, err
}

// RequireAuth answers 401 unless the session carries a token. An expired-looking JWT still
// passes; the backend decides whether the token is any good.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := FromContext(r.Context()); !ok || !s.Authenticated() {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("login required"))

			return
		}

		next.ServeHTTP(w, r)
	})
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*session.Session)

	return s, ok && s != nil
}

func SetCookie(w http.ResponseWriter, c Cookie, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
