package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"campusEvents/internal/api"
	"campusEvents/internal/regstate"
	"campusEvents/internal/views"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "unauthenticated", err: regstate.ErrUnauthenticated, want: http.StatusUnauthorized},
		{name: "not owner", err: views.ErrNotOwner, want: http.StatusForbidden},
		{name: "in flight", err: fmt.Errorf("wrapped: %w", regstate.ErrInFlight), want: http.StatusConflict},
		{name: "not found", err: &api.Error{StatusCode: http.StatusNotFound}, want: http.StatusNotFound},
		{name: "backend failure", err: &api.Error{StatusCode: http.StatusInternalServerError}, want: http.StatusBadGateway},
		{name: "transport", err: &api.Error{Err: errors.New("dial tcp")}, want: http.StatusBadGateway},
		{name: "plain", err: errors.New("boom"), want: http.StatusBadGateway},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}
