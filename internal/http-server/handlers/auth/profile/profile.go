package profile

import (
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/api/upstream"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/session"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type ProfileResponse struct {
	response.Response
	User *models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProfileGetter
type ProfileGetter interface {
	Profile(ctx context.Context, s *session.Session) (*models.User, error)
}

func New(log *slog.Logger, getter ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.profile.New"

		log := log.With(slog.String("op", op))

		s, ok := mwsession.FromContext(r.Context())
		if !ok {
			log.Error("no session in request context")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load session"))
			return
		}

		user, err := getter.Profile(r.Context(), s)
		if err != nil {
			log.Error("failed to fetch profile", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, "Failed to fetch profile")))
			return
		}

		render.JSON(w, r, ProfileResponse{
			Response: response.OK(),
			User:     user,
		})
	}
}
