package login

import (
	"campusEvents/internal/api"
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/api/upstream"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"campusEvents/internal/session"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	response.Response
	User *models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Authenticator
type Authenticator interface {
	Login(ctx context.Context, s *session.Session, in api.Credentials) (*models.User, error)
}

func New(log *slog.Logger, auth Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

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

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		user, err := auth.Login(r.Context(), s, api.Credentials{Email: req.Email, Password: req.Password})
		if err != nil {
			log.Error("login failed", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, "Login failed")))

			return
		}

		log.Info("user logged in", slog.String("user_id", user.ID))

		render.JSON(w, r, UserResponse{
			Response: response.OK(),
			User:     user,
		})
	}
}
