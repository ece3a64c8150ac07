// Package api is the client for the campus events backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxResponseSize = 10 << 20

// TokenSource yields the bearer token for the next request. An empty token sends the
// request unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string {
	return string(t)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	metrics    *Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every call. Without it calls run until the context ends.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTokens returns a client sharing transport and metrics but authenticating with tokens.
func (c *Client) WithTokens(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens

	return &cp
}

type operation struct {
	name     string
	fallback string
}

var (
	opRegister           = operation{"auth.register", "Registration failed"}
	opLogin              = operation{"auth.login", "Login failed"}
	opProfile            = operation{"auth.profile", "Failed to fetch profile"}
	opListEvents         = operation{"events.list", "Failed to fetch events"}
	opGetEvent           = operation{"events.get", "Failed to fetch event details"}
	opCreateEvent        = operation{"events.create", "Failed to create event"}
	opUpdateEvent        = operation{"events.update", "Failed to update event"}
	opDeleteEvent        = operation{"events.delete", "Failed to delete event"}
	opEventRegistrations = operation{"events.registrations", "Failed to fetch attendees"}
	opRegisterForEvent   = operation{"registrations.create", "Failed to register for event"}
	opCancelRegistration = operation{"registrations.cancel", "Failed to cancel registration"}
	opMyRegistrations    = operation{"registrations.list", "Failed to fetch registrations"}
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	TotalPages int             `json:"totalPages"`
	TotalItems int             `json:"totalItems"`
}

func (e *envelope) decode(op operation, v any) error {
	data := bytes.TrimSpace(e.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Op: op.name, Message: op.fallback, Err: fmt.Errorf("decode data: %w", err)}
	}

	return nil
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, err
	}

	return request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(b),
		contentType: "application/json",
	}, nil
}

func (c *Client) do(ctx context.Context, op operation, r request) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, &Error{Op: op.name, Message: op.fallback, Err: err}
	}

	if len(r.query) > 0 {
		req.URL.RawQuery = r.query.Encode()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))

	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(op.name, "error", time.Since(start))

		return nil, &Error{Op: op.name, Message: op.fallback, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.observe(op.name, strconv.Itoa(resp.StatusCode), time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Error{Op: op.name, StatusCode: resp.StatusCode, Message: op.fallback, Err: err}
	}

	var env envelope

	if len(bytes.TrimSpace(raw)) > 0 {
		if err = json.Unmarshal(raw, &env); err != nil && isSuccess(resp.StatusCode) {
			return nil, &Error{
				Op:         op.name,
				StatusCode: resp.StatusCode,
				Message:    op.fallback,
				Err:        fmt.Errorf("decode response: %w", err),
			}
		}
	}

	if !isSuccess(resp.StatusCode) {
		msg := env.Message
		if msg == "" {
			msg = op.fallback
		}

		return nil, &Error{Op: op.name, StatusCode: resp.StatusCode, Message: msg}
	}

	return &env, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}

	return uuid.NewString()
}
