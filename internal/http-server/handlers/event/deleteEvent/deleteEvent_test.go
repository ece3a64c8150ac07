package deleteEvent

import (
	"campusEvents/internal/api"
	"campusEvents/internal/http-server/handlers/event/deleteEvent/mocks"
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/session"
	"campusEvents/internal/views"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDeleteEventHandler(t *testing.T) {
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
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","message":"Event deleted successfully!"}`,
		},
		{
			name:           "Not the owner",
			mockErr:        views.ErrNotOwner,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"You are not authorized to edit this event"}`,
		},
		{
			name:           "Backend message",
			mockErr:        &api.Error{StatusCode: http.StatusConflict, Message: "Event has registrations"},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"Event has registrations"}`,
		},
		{
			name:           "Unexpected failure",
			mockErr:        errors.New("connection reset"),
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"Failed to delete event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := session.New()

			mockDeleter := mocks.NewEventDeleter(t)
			mockDeleter.On("DeleteEvent", mock.Anything, s, "e1").Return(tc.mockErr)

			router := chi.NewRouter()
			router.Delete("/events/{id}", New(logger, mockDeleter))

			req := httptest.NewRequest(http.MethodDelete, "/events/e1", nil)
			req = req.WithContext(mwsession.WithSession(req.Context(), s))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
