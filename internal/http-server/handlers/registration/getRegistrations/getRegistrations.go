package getRegistrations

import (
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/api/upstream"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/session"
	"campusEvents/internal/views"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type HistoryResponse struct {
	response.Response
	History *views.HistorySnapshot `json:"history"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=HistoryGetter
type HistoryGetter interface {
	History(ctx context.Context, s *session.Session, f views.HistoryFilter) (*views.HistorySnapshot, error)
}

// New answers the registration history, filtered by ?filter=all|upcoming|past|cancelled.
func New(log *slog.Logger, getter HistoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.getRegistrations.New"

		log := log.With(slog.String("op", op))

		s, ok := mwsession.FromContext(r.Context())
		if !ok {
			log.Error("no session in request context")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load session"))
			return
		}

		filter, err := views.ParseHistoryFilter(r.URL.Query().Get("filter"))
		if err != nil {
			log.Error("invalid filter", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("field filter must be one of [all upcoming past cancelled]"))
			return
		}

		history, err := getter.History(r.Context(), s, filter)
		if err != nil {
			log.Error("failed to get registrations", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, views.FailedRegistrations)))
			return
		}

		render.JSON(w, r, HistoryResponse{
			Response: response.OK(),
			History:  history,
		})
	}
}
