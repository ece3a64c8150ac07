package getRegistrations

import (
	"campusEvents/internal/http-server/handlers/registration/getRegistrations/mocks"
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/models"
	"campusEvents/internal/session"
	"campusEvents/internal/views"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetRegistrationsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		target         string
		mockSetup      func(m *mocks.HistoryGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:   "Default filter is all",
			target: "/registrations",
			mockSetup: func(m *mocks.HistoryGetter) {
				m.On("History", mock.Anything, mock.Anything, views.HistoryAll).Return(&views.HistorySnapshot{
					Filter: views.HistoryAll,
					Registrations: []views.HistoryItem{{
						Registration: models.Registration{ID: "r1", Status: models.RegistrationCancelled},
						Phase:        models.PhasePast,
					}},
					Total: 1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp HistoryResponse
				require.NoError(t, json.Unmarshal(body, &resp))

				require.NotNil(t, resp.History)
				assert.Equal(t, views.HistoryAll, resp.History.Filter)
				require.Len(t, resp.History.Registrations, 1)
				assert.Equal(t, models.RegistrationCancelled, resp.History.Registrations[0].Status)
			},
		},
		{
			name:   "Cancelled filter",
			target: "/registrations?filter=cancelled",
			mockSetup: func(m *mocks.HistoryGetter) {
				m.On("History", mock.Anything, mock.Anything, views.HistoryCancelled).
					Return(&views.HistorySnapshot{Filter: views.HistoryCancelled, Registrations: []views.HistoryItem{}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","history":{"filter":"cancelled","registrations":[],"total":0}}`,
		},
		{
			name:           "Unknown filter",
			target:         "/registrations?filter=attended",
			mockSetup:      func(m *mocks.HistoryGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field filter must be one of [all upcoming past cancelled]"}`,
		},
		{
			name:   "Fetch failure",
			target: "/registrations?filter=past",
			mockSetup: func(m *mocks.HistoryGetter) {
				m.On("History", mock.Anything, mock.Anything, views.HistoryPast).Return(nil, errors.New("timeout"))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"Failed to fetch registrations"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewHistoryGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			req = req.WithContext(mwsession.WithSession(req.Context(), session.New()))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.Bytes())
			}
		})
	}
}
