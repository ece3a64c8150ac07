package mwsession

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/models"
	"campusEvents/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cookie = Cookie{Name: "campus_session", TTL: time.Hour}

func echoSession(t *testing.T, got **session.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := FromContext(r.Context())
		assert.True(t, ok)
		*got = s
	})
}

func TestNewStartsAnonymousSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()

	var got *session.Session
	h := New(slogdiscard.NewDiscardLogger(), store, cookie)(echoSession(t, &got))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.NotNil(t, got)
	assert.False(t, got.Authenticated())

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "campus_session", cookies[0].Name)
	assert.Equal(t, got.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	_, err := store.Get(context.Background(), got.ID)
	assert.NoError(t, err)
}

func TestNewLoadsExistingSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()

	s := session.New()
	s.SignIn("tok", models.User{ID: "u1"})
	require.NoError(t, store.Save(context.Background(), s))

	var got *session.Session
	h := New(slogdiscard.NewDiscardLogger(), store, cookie)(echoSession(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.AddCookie(&http.Cookie{Name: "campus_session", Value: s.ID})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.NotNil(t, got)
	assert.Equal(t, s.ID, got.ID)
	assert.True(t, got.Authenticated())
	assert.Empty(t, rr.Result().Cookies())
}

func TestNewReplacesUnknownSession(t *testing.T) {
	t.Parallel()

	var got *session.Session
	h := New(slogdiscard.NewDiscardLogger(), session.NewMemoryStore(), cookie)(echoSession(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.AddCookie(&http.Cookie{Name: "campus_session", Value: "gone"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.NotNil(t, got)
	assert.NotEqual(t, "gone", got.ID)
	assert.Len(t, rr.Result().Cookies(), 1)
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	signedIn := session.New()
	signedIn.SignIn("tok", models.User{ID: "u1"})

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	staleToken := session.New()
	staleToken.SignIn(expired, models.User{ID: "u1"})

	testCases := []struct {
		name           string
		session        *session.Session
		expectedStatus int
	}{
		{name: "no session", expectedStatus: http.StatusUnauthorized},
		{name: "anonymous", session: session.New(), expectedStatus: http.StatusUnauthorized},
		{name: "signed in", session: signedIn, expectedStatus: http.StatusOK},
		{name: "expired jwt is still a token", session: staleToken, expectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			req := httptest.NewRequest(http.MethodPost, "/registrations/e1", nil)
			if tc.session != nil {
				req = req.WithContext(WithSession(req.Context(), tc.session))
			}

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"status":"Error","error":"login required"}`, rr.Body.String())
			}
		})
	}
}
