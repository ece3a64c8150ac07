package api

import (
	"context"
	"net/http"
	"net/url"

	"campusEvents/internal/models"
)

// RegisterForEvent claims a seat. The returned registration may reference the event by id only.
func (c *Client) RegisterForEvent(ctx context.Context, eventID string) (*models.Registration, error) {
	env, err := c.do(ctx, opRegisterForEvent, request{method: http.MethodPost, path: registrationPath(eventID)})
	if err != nil {
		return nil, err
	}

	var reg models.Registration
	if err = env.decode(opRegisterForEvent, &reg); err != nil {
		return nil, err
	}

	if reg.Event.ID == "" {
		reg.Event.ID = eventID
	}

	if reg.Status == "" {
		reg.Status = models.RegistrationRegistered
	}

	return &reg, nil
}

func (c *Client) CancelRegistration(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, opCancelRegistration, request{method: http.MethodDelete, path: registrationPath(eventID)})

	return err
}

// MyRegistrations returns every registration of the authenticated user, in any status.
func (c *Client) MyRegistrations(ctx context.Context) ([]models.Registration, error) {
	env, err := c.do(ctx, opMyRegistrations, request{method: http.MethodGet, path: "/registrations"})
	if err != nil {
		return nil, err
	}

	var regs []models.Registration
	if err = env.decode(opMyRegistrations, &regs); err != nil {
		return nil, err
	}

	return regs, nil
}

func registrationPath(eventID string) string {
	return "/registrations/" + url.PathEscape(eventID)
}
