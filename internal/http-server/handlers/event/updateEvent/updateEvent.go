package updateEvent

import (
	"campusEvents/internal/api"
	"campusEvents/internal/forms"
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/api/upstream"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/session"
	"campusEvents/internal/views"
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"time"
)

type EventResponse struct {
	response.Response
	Message string        `json:"message"`
	Event   *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	UpdateEvent(ctx context.Context, s *session.Session, id string, in api.EventInput) (*models.Event, error)
}

// New saves the edit form. Unlike creation a start date in the past is accepted.
func New(log *slog.Logger, event EventUpdater, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

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

		form, err := forms.FromRequest(w, r)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if errs := form.Validate(time.Now(), forms.ModeEdit, loc); len(errs) > 0 {
			log.Info("invalid event form", slog.Any("fields", errs))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.FieldErrors(errs))
			return
		}

		in, err := form.ToInput(loc)
		if err != nil {
			log.Error("failed to convert form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		updated, err := event.UpdateEvent(r.Context(), s, eventID, in)
		if err != nil {
			log.Error("failed to update event", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, "Failed to update event")))
			return
		}

		log.Info("event updated")

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Message:  views.MsgEventUpdated,
			Event:    updated,
		})
	}
}
