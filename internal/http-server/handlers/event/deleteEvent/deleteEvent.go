package deleteEvent

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

type DeleteResponse struct {
	response.Response
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventDeleter
type EventDeleter interface {
	DeleteEvent(ctx context.Context, s *session.Session, id string) error
}

func New(log *slog.Logger, event EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.deleteEvent.New"

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

		if err := event.DeleteEvent(r.Context(), s, eventID); err != nil {
			log.Error("failed to delete event", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, views.FailedDelete)))
			return
		}

		log.Info("event deleted")

		render.JSON(w, r, DeleteResponse{
			Response: response.OK(),
			Message:  views.MsgEventDeleted,
		})
	}
}
