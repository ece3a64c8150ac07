package cancelRegistration

import (
	"campusEvents/internal/api"
	"campusEvents/internal/http-server/handlers/registration/cancelRegistration/mocks"
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/session"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCancelRegistrationHandler(t *testing.T) {
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
			expectedBody:   `{"status":"OK","message":"Registration cancelled successfully!","eventId":"e1","isRegistered":false}`,
		},
		{
			name:           "Not registered",
			mockErr:        &api.Error{StatusCode: http.StatusNotFound, Message: "Registration not found"},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"Registration not found"}`,
		},
		{
			name:           "Backend down",
			mockErr:        &api.Error{StatusCode: http.StatusServiceUnavailable, Message: "Failed to cancel registration"},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"Failed to cancel registration"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockCanceller := mocks.NewCanceller(t)
			mockCanceller.On("Cancel", mock.Anything, mock.Anything, "e1").Return(tc.mockErr)

			router := chi.NewRouter()
			router.Delete("/registrations/{eventId}", New(logger, mockCanceller))

			req := httptest.NewRequest(http.MethodDelete, "/registrations/e1", nil)
			req = req.WithContext(mwsession.WithSession(req.Context(), session.New()))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
