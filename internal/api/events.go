package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"campusEvents/internal/models"
)

// EventFilters are the listing filters. Zero-valued filters are not sent.
type EventFilters struct {
	Search    string `json:"q,omitempty"`
	Upcoming  bool   `json:"upcoming,omitempty"`
	Tags      string `json:"tags,omitempty"`
	Organizer string `json:"organizer,omitempty"`
}

func (f EventFilters) values() url.Values {
	v := url.Values{}

	if f.Search != "" {
		v.Set("q", f.Search)
	}

	if f.Upcoming {
		v.Set("upcoming", "true")
	}

	if f.Tags != "" {
		v.Set("tags", f.Tags)
	}

	if f.Organizer != "" {
		v.Set("organizer", f.Organizer)
	}

	return v
}

func (c *Client) ListEvents(ctx context.Context, filters EventFilters, page, size int) (*models.EventsPage, error) {
	query := filters.values()
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	env, err := c.do(ctx, opListEvents, request{method: http.MethodGet, path: "/events", query: query})
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err = env.decode(opListEvents, &events); err != nil {
		return nil, err
	}

	result := &models.EventsPage{
		Events:     events,
		Page:       page,
		TotalPages: env.TotalPages,
		TotalItems: env.TotalItems,
	}

	if result.Events == nil {
		result.Events = []models.Event{}
	}

	if result.TotalPages == 0 {
		result.TotalPages = 1
	}

	return result, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	env, err := c.do(ctx, opGetEvent, request{method: http.MethodGet, path: eventPath(id)})
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err = env.decode(opGetEvent, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	return c.sendEvent(ctx, opCreateEvent, http.MethodPost, "/events", in)
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in EventInput) (*models.Event, error) {
	return c.sendEvent(ctx, opUpdateEvent, http.MethodPut, eventPath(id), in)
}

func (c *Client) sendEvent(ctx context.Context, op operation, method, path string, in EventInput) (*models.Event, error) {
	body, contentType, err := in.encode()
	if err != nil {
		return nil, &Error{Op: op.name, Message: op.fallback, Err: err}
	}

	env, err := c.do(ctx, op, request{method: method, path: path, body: body, contentType: contentType})
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err = env.decode(op, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	_, err := c.do(ctx, opDeleteEvent, request{method: http.MethodDelete, path: eventPath(id)})

	return err
}

// EventRegistrations lists the attendees of an event. The backend restricts it to the
// organizer and admins.
func (c *Client) EventRegistrations(ctx context.Context, id string) ([]models.Attendee, error) {
	env, err := c.do(ctx, opEventRegistrations, request{
		method: http.MethodGet,
		path:   eventPath(id) + "/registrations",
	})
	if err != nil {
		return nil, err
	}

	var attendees []models.Attendee
	if err = env.decode(opEventRegistrations, &attendees); err != nil {
		return nil, err
	}

	return attendees, nil
}

func eventPath(id string) string {
	return "/events/" + url.PathEscape(id)
}
