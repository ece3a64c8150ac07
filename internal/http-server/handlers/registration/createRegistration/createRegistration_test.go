package createRegistration

import (
	"campusEvents/internal/api"
	"campusEvents/internal/http-server/handlers/registration/createRegistration/mocks"
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/models"
	"campusEvents/internal/regstate"
	"campusEvents/internal/session"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateRegistrationHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		mockErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":"OK","message":"Successfully registered for the event!","eventId":"e1","isRegistered":true}`,
		},
		{
			name:           "Event full",
			mockErr:        &api.Error{StatusCode: http.StatusBadRequest, Message: "Event is full"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"Event is full"}`,
		},
		{
			name:           "Already in progress",
			mockErr:        regstate.ErrInFlight,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"a registration change for this event is already in progress"}`,
		},
		{
			name:           "Not signed in",
			mockErr:        regstate.ErrUnauthenticated,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"please login to register for events"}`,
		},
		{
			name:           "No server message",
			mockErr:        errors.New("EOF"),
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"Failed to register for event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := session.New()
			s.SignIn("tok", models.User{ID: "u1"})

			mockRegisterer := mocks.NewRegisterer(t)
			mockRegisterer.On("Register", mock.Anything, s, "e1").Return(tc.mockErr)

			router := chi.NewRouter()
			router.Post("/registrations/{eventId}", New(logger, mockRegisterer))

			req := httptest.NewRequest(http.MethodPost, "/registrations/e1", nil)
			req = req.WithContext(mwsession.WithSession(req.Context(), s))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
