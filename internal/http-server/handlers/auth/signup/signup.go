package signup

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
	Name     string      `json:"name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role,omitempty" validate:"omitempty,oneof=student organizer"`
}

type UserResponse struct {
	response.Response
	User *models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Registrar
type Registrar interface {
	SignUp(ctx context.Context, s *session.Session, in api.SignUp) (*models.User, error)
}

// New creates an account and signs the session in as it. Admin accounts cannot be asked for.
func New(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.signup.New"

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

		user, err := registrar.SignUp(r.Context(), s, api.SignUp{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			log.Error("registration failed", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, "Registration failed")))

			return
		}

		log.Info("user registered", slog.String("user_id", user.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, UserResponse{
			Response: response.OK(),
			User:     user,
		})
	}
}
