// Package api talks to the work-tracker backend: it fetches a user's status
// snapshot and posts session events.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/fakeyudi/worktrack/internal/session"
)

// ErrEmptyUsername is returned before any request is made when the username
// is blank after trimming.
var ErrEmptyUsername = errors.New("username cannot be empty")

// Config configures a Client.
type Config struct {
	BaseURL     string // e.g. http://localhost:5000/api
	HTTPClient  *http.Client
	UpperEvents bool // send START/PAUSE/... instead of start/pause/...
}

// Client is an HTTP client for the backend's status and event endpoints.
type Client struct {
	base        string
	http        *http.Client
	upperEvents bool
}

// New builds a Client. A nil HTTPClient falls back to http.DefaultClient.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{
		base:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:        cfg.HTTPClient,
		upperEvents: cfg.UpperEvents,
	}
}

type eventRequest struct {
	Username  string `json:"username"`
	EventType string `json:"event_type"`
}

// Status fetches the current snapshot for username.
func (c *Client) Status(ctx context.Context, username string) (session.Snapshot, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return session.Snapshot{}, ErrEmptyUsername
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/status/"+url.PathEscape(username), nil)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("build status request: %w", err)
	}
	return c.do(req)
}

// PostEvent records ev for username and returns the resulting snapshot.
// Each call sends exactly one request; nothing is retried.
func (c *Client) PostEvent(ctx context.Context, username string, ev session.EventType) (session.Snapshot, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return session.Snapshot{}, ErrEmptyUsername
	}
	body, err := json.Marshal(eventRequest{Username: username, EventType: ev.Wire(c.upperEvents)})
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("marshal event request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/event", bytes.NewReader(body))
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("build event request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (session.Snapshot, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	res, err := c.http.Do(req)
	if err != nil {
		log.Printf("api: %s %s request=%s failed: %v", req.Method, req.URL.Path, requestID, err)
		return session.Snapshot{}, &TransportError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	defer res.Body.Close()
	log.Printf("api: %s %s request=%s status=%d", req.Method, req.URL.Path, requestID, res.StatusCode)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return session.Snapshot{}, statusError(res)
	}

	var snap session.Snapshot
	if err := json.NewDecoder(res.Body).Decode(&snap); err != nil {
		return session.Snapshot{}, &DecodeError{Err: err}
	}
	if snap.WorkedTodaySeconds < 0 {
		snap.WorkedTodaySeconds = 0
	}
	return snap, nil
}

// statusError builds a StatusError from a non-2xx response, pulling the
// backend's {"error": "..."} message when the body carries one.
func statusError(res *http.Response) *StatusError {
	e := &StatusError{Code: res.StatusCode}
	data, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err != nil {
		return e
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		e.Message = strings.TrimSpace(payload.Error)
	}
	return e
}
