package advisory_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fakeyudi/worktrack/internal/advisory"
)

func TestGenerateReturnsFirstPart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "k3y" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}
		var body struct {
			Contents []struct {
				Role  string `json:"role"`
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if len(body.Contents) != 1 || body.Contents[0].Role != "user" ||
			len(body.Contents[0].Parts) != 1 || body.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected request body %+v", body)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Keep going."},{"text":"ignored"}]}},{"content":{"parts":[{"text":"second"}]}}]}`))
	}))
	defer srv.Close()

	c := advisory.New(advisory.Config{URL: srv.URL, APIKey: "k3y"})
	got, err := c.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Keep going." {
		t.Errorf("Generate = %q", got)
	}
}

func TestGenerateMalformedResponses(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{}]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`not json`,
	}
	for _, b := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(b))
		}))
		_, err := advisory.New(advisory.Config{URL: srv.URL}).Generate(context.Background(), "x")
		srv.Close()
		if !errors.Is(err, advisory.ErrNoCompletion) {
			t.Errorf("body %q: expected ErrNoCompletion, got %v", b, err)
		}
	}
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := advisory.New(advisory.Config{URL: srv.URL}).Generate(context.Background(), "x")
	var apiErr *advisory.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "API key not valid" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestGenerateAPIErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := advisory.New(advisory.Config{URL: srv.URL}).Generate(context.Background(), "x")
	var apiErr *advisory.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Too Many Requests" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestPlanPromptMentionsUser(t *testing.T) {
	if p := advisory.PlanHour.Prompt("ana"); !strings.Contains(p, "My username is ana.") {
		t.Errorf("prompt = %q", p)
	}
	if p := advisory.PlanHour.Prompt(""); !strings.Contains(p, "My username is User.") {
		t.Errorf("prompt = %q", p)
	}
	if advisory.Quote.Title() == advisory.PlanHour.Title() {
		t.Error("titles should differ")
	}
}
