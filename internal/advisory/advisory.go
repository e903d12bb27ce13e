// Package advisory asks a generative-text endpoint for short motivational or
// planning text. Requests are single-shot: no retries, no streaming and no
// conversation state.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// DefaultURL is the Gemini generateContent endpoint used when none is configured.
const DefaultURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// ErrNoCompletion means the endpoint answered but the response carried no text.
var ErrNoCompletion = errors.New("no completion in response")

// APIError is a non-2xx answer from the endpoint.
type APIError struct {
	Code    int
	Message string // error.message from the body, or the HTTP status text
}

func (e *APIError) Error() string {
	return "Gemini API error: " + e.Message
}

// Config configures a Client.
type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// Client posts prompts to a generateContent-style endpoint.
type Client struct {
	cfg Config
}

// New builds a Client, filling in DefaultURL and http.DefaultClient.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultURL
	}
	return &Client{cfg: cfg}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt and returns the first text part of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(c.cfg.APIKey); key != "" {
		req.Header.Set("x-goog-api-key", key)
	}

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		log.Printf("advisory: request failed: %v", err)
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()
	log.Printf("advisory: status=%d", res.StatusCode)

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{Code: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var payload struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error.Message != "" {
			apiErr.Message = payload.Error.Message
		}
		return "", apiErr
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		log.Printf("advisory: unexpected response: %v", err)
		return "", ErrNoCompletion
	}
	if len(out.Candidates) == 0 || out.Candidates[0].Content == nil || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCompletion
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
