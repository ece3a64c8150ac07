package getEditForm

import (
	"campusEvents/internal/forms"
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

type FormResponse struct {
	response.Response
	Form *forms.EventForm `json:"form"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=FormProvider
type FormProvider interface {
	EditForm(ctx context.Context, s *session.Session, id string) (*forms.EventForm, error)
}

// New returns the edit form pre-filled from the stored event: tags joined with ", " and
// times in the local input format.
func New(log *slog.Logger, provider FormProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEditForm.New"

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

		form, err := provider.EditForm(r.Context(), s, eventID)
		if err != nil {
			log.Error("failed to load edit form", slog.String("event_id", eventID), sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, views.FailedGetEvent)))
			return
		}

		render.JSON(w, r, FormResponse{
			Response: response.OK(),
			Form:     form,
		})
	}
}
