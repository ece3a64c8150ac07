package createEvent

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, s *session.Session, in api.EventInput) (*models.Event, error)
}

// New accepts the create form as multipart or urlencoded. Dates in the form are wall-clock
// times in loc.
func New(log *slog.Logger, event EventCreator, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		s, ok := mwsession.FromContext(r.Context())
		if !ok {
			log.Error("no session in request context")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load session"))

			return
		}

		form, err := forms.FromRequest(w, r)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if errs := form.Validate(time.Now(), forms.ModeCreate, loc); len(errs) > 0 {
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

		created, err := event.CreateEvent(r.Context(), s, in)
		if err != nil {
			log.Error("failed to create event", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, "Failed to create event")))

			return
		}

		log.Info("event created", slog.String("id", created.ID))

		render.Status(r, http.StatusCreated)
		responseOK(w, r, created)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, event *models.Event) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Message:  views.MsgEventCreated,
		Event:    event,
	})
}
