package api

import (
	"context"
	"net/http"

	"campusEvents/internal/models"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUp struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

// AuthResult is what login and sign-up hand back: the bearer token and its owner.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, in SignUp) (*AuthResult, error) {
	return c.authenticate(ctx, opRegister, "/auth/register", in)
}

func (c *Client) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	return c.authenticate(ctx, opLogin, "/auth/login", in)
}

func (c *Client) authenticate(ctx context.Context, op operation, path string, payload any) (*AuthResult, error) {
	req, err := jsonRequest(http.MethodPost, path, payload)
	if err != nil {
		return nil, &Error{Op: op.name, Message: op.fallback, Err: err}
	}

	env, err := c.do(ctx, op, req)
	if err != nil {
		return nil, err
	}

	var res AuthResult
	if err = env.decode(op, &res); err != nil {
		return nil, err
	}

	if res.Token == "" {
		return nil, &Error{Op: op.name, Message: op.fallback}
	}

	return &res, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, opProfile, request{method: http.MethodGet, path: "/auth/me"})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err = env.decode(opProfile, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
