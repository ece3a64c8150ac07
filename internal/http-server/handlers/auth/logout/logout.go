package logout

import (
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/session"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Logouter
type Logouter interface {
	Logout(ctx context.Context, s *session.Session) error
}

// New forgets the token held for the session. The backend is not told.
func New(log *slog.Logger, logouter Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		log := log.With(slog.String("op", op))

		s, ok := mwsession.FromContext(r.Context())
		if !ok {
			log.Error("no session in request context")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load session"))
			return
		}

		if err := logouter.Logout(r.Context(), s); err != nil {
			log.Error("failed to log out", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log out"))
			return
		}

		log.Info("session logged out")

		render.JSON(w, r, response.OK())
	}
}
