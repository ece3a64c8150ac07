package getAttendees

import (
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/api/upstream"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/session"
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type AttendeesResponse struct {
	response.Response
	Attendees []models.Attendee `json:"attendees"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AttendeesGetter
type AttendeesGetter interface {
	Attendees(ctx context.Context, s *session.Session, eventID string) ([]models.Attendee, error)
}

func New(log *slog.Logger, getter AttendeesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAttendees.New"

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

		attendees, err := getter.Attendees(r.Context(), s, eventID)
		if err != nil {
			log.Error("failed to get attendees", slog.String("event_id", eventID), sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, "Failed to fetch attendees")))
			return
		}

		if attendees == nil {
			attendees = []models.Attendee{}
		}

		render.JSON(w, r, AttendeesResponse{
			Response:  response.OK(),
			Attendees: attendees,
		})
	}
}
