// Package session holds who is using the front-end: the backend bearer token and the
// profile that came with it. Token presence is the only authentication signal.
package session

import (
	"context"
	"errors"
	"time"

	"campusEvents/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID          string       `json:"id" yaml:"id"`
	AccessToken string       `json:"token,omitempty" yaml:"token,omitempty"`
	User        *models.User `json:"user,omitempty" yaml:"user,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" yaml:"updated_at"`
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	// DeleteIdle removes sessions not updated since before and reports how many went.
	DeleteIdle(ctx context.Context, before time.Time) (int64, error)
}

func New() *Session {
	now := time.Now().UTC()

	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Authenticated reports whether the session carries a token. Presence is the only test;
// the backend decides whether the token is still good.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// ExpiredAt reports whether the token is a JWT whose exp claim has passed at now. It is a
// hint for the user; an expired-looking token is still sent.
func (s *Session) ExpiredAt(now time.Time) bool {
	if !s.Authenticated() {
		return false
	}

	return tokenExpired(s.AccessToken, now)
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}

	return s.AccessToken
}

// Viewer is the signed-in user, or nil.
func (s *Session) Viewer() *models.User {
	if !s.Authenticated() {
		return nil
	}

	return s.User
}

func (s *Session) SignIn(token string, user models.User) {
	s.AccessToken = token
	s.User = &user
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) SignOut() {
	s.AccessToken = ""
	s.User = nil
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) clone() *Session {
	cp := *s
	if s.User != nil {
		u := *s.User
		cp.User = &u
	}

	return &cp
}

func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims

	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		// Opaque tokens carry no expiry we can read.
		return false
	}

	if claims.ExpiresAt == nil {
		return false
	}

	return !now.Before(claims.ExpiresAt.Time)
}
