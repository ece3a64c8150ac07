package getEventInfo

import (
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/api/upstream"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/session"
	"campusEvents/internal/views"
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type EventInfoResponse struct {
	response.Response
	Detail *views.DetailSnapshot `json:"detail"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	EventDetail(ctx context.Context, s *session.Session, id string) (*views.DetailSnapshot, error)
}

func New(log *slog.Logger, info EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventInfo.New"

		log := log.With(slog.String("op", op))

		s, ok := mwsession.FromContext(r.Context())
		if !ok {
			log.Error("no session in request context")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load session"))
			return
		}

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		snap, err := info.EventDetail(r.Context(), s, eventID)
		if err != nil {
			log.Error("failed to get event information", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, views.FailedGetEvent)))
			return
		}

		log.Info("event info successfully received")

		responseOK(w, r, snap)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, snap *views.DetailSnapshot) {
	render.JSON(w, r, EventInfoResponse{
		Response: response.OK(),
		Detail:   snap,
	})
}
