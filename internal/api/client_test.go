package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"pgregory.net/rapid"

	"github.com/fakeyudi/worktrack/internal/api"
	"github.com/fakeyudi/worktrack/internal/session"
)

func TestStatusSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/status/ana" {
			t.Errorf("path = %q, want /api/status/ana", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Write([]byte(`{"status":"NOT_STARTED_TODAY","worked_today_seconds":5425}`))
	}))
	defer srv.Close()

	c := api.New(api.Config{BaseURL: srv.URL + "/api/"})
	snap, err := c.Status(context.Background(), "  ana ")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if snap.Status != session.StatusNotStarted || snap.WorkedTodaySeconds != 5425 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestStatusEscapesUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/status/a%2Fb%20c" {
			t.Errorf("escaped path = %q", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"status":"WORKING","worked_today_seconds":1}`))
	}))
	defer srv.Close()

	c := api.New(api.Config{BaseURL: srv.URL})
	if _, err := c.Status(context.Background(), "a/b c"); err != nil {
		t.Fatalf("Status: %v", err)
	}
}

// Feature: worktrack, Property: blank usernames never reach the network
func TestBlankUsernameNeverHitsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()
	c := api.New(api.Config{BaseURL: srv.URL})

	rapid.Check(t, func(t *rapid.T) {
		blank := rapid.StringMatching(`[ \t]{0,8}`).Draw(t, "blank")
		if _, err := c.Status(context.Background(), blank); !errors.Is(err, api.ErrEmptyUsername) {
			t.Fatalf("Status(%q): expected ErrEmptyUsername, got %v", blank, err)
		}
		if _, err := c.PostEvent(context.Background(), blank, session.EventStart); !errors.Is(err, api.ErrEmptyUsername) {
			t.Fatalf("PostEvent(%q): expected ErrEmptyUsername, got %v", blank, err)
		}
	})
	if n := hits.Load(); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
}

func TestStatusBadRequestCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Username is required in path"}`))
	}))
	defer srv.Close()

	_, err := api.New(api.Config{BaseURL: srv.URL}).Status(context.Background(), "x")
	var se *api.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.Code != http.StatusBadRequest || !se.IsClientError() {
		t.Errorf("Code = %d, IsClientError = %v", se.Code, se.IsClientError())
	}
	if se.Message != "Username is required in path" {
		t.Errorf("Message = %q", se.Message)
	}
}

func TestStatusServerErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := api.New(api.Config{BaseURL: srv.URL}).Status(context.Background(), "x")
	var se *api.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.Message != "" || se.IsClientError() {
		t.Errorf("unexpected %+v", se)
	}
	if se.Error() != "HTTP error! status: 500" {
		t.Errorf("Error() = %q", se.Error())
	}
}

func TestStatusTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := api.New(api.Config{BaseURL: base}).Status(context.Background(), "x")
	var te *api.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestStatusMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"SLEEPING","worked_today_seconds":1}`))
	}))
	defer srv.Close()

	_, err := api.New(api.Config{BaseURL: srv.URL}).Status(context.Background(), "x")
	var de *api.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
}

func TestPostEventBody(t *testing.T) {
	cases := []struct {
		upper bool
		want  string
	}{
		{upper: true, want: "PAUSE"},
		{upper: false, want: "pause"},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/event" {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode body: %v", err)
				return
			}
			if body["username"] != "ana" || body["event_type"] != tc.want {
				t.Errorf("body = %v, want username=ana event_type=%s", body, tc.want)
			}
			w.Write([]byte(`{"status":"PAUSED","worked_today_seconds":60}`))
		}))

		c := api.New(api.Config{BaseURL: srv.URL, UpperEvents: tc.upper})
		snap, err := c.PostEvent(context.Background(), "ana", session.EventPause)
		srv.Close()
		if err != nil {
			t.Fatalf("PostEvent: %v", err)
		}
		if snap.Status != session.StatusPaused {
			t.Errorf("Status = %s, want PAUSED", snap.Status)
		}
	}
}

func TestPostEventSendsExactlyOneRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := api.New(api.Config{BaseURL: srv.URL}).PostEvent(context.Background(), "ana", session.EventEnd)
	if err == nil {
		t.Fatal("expected error")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server received %d requests, want 1", n)
	}
}
