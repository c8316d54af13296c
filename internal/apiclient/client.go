// Package apiclient is the HTTP client the CLI uses to talk to a running
// daemon.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"recap/internal/analysis"
	"recap/internal/daemon"
)

// Client talks to the daemon API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New constructs a client for the given base URL, e.g.
// "http://127.0.0.1:8321". An empty token disables authentication headers.
// The client carries no request timeout of its own; analyze calls can run
// for minutes, so deadlines belong to the caller's context.
func New(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// BaseURLForBind derives the client base URL from a daemon bind address.
func BaseURLForBind(bind string) string {
	trimmed := strings.TrimSpace(bind)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "http://" + trimmed
}

type analyzePayload struct {
	URL    string `json:"url"`
	Lang   string `json:"lang,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// Analyze submits one analysis request and waits for the result.
func (c *Client) Analyze(ctx context.Context, url, lang, prompt string) (*analysis.Result, error) {
	var result analysis.Result
	payload := analyzePayload{URL: url, Lang: lang, Prompt: prompt}
	if err := c.do(ctx, http.MethodPost, "/api/analyze", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks that the daemon is reachable.
func (c *Client) Health(ctx context.Context) error {
	var payload map[string]string
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &payload); err != nil {
		return err
	}
	if payload["status"] != "ok" {
		return fmt.Errorf("unexpected health payload: %v", payload)
	}
	return nil
}

// Status fetches daemon runtime information.
func (c *Client) Status(ctx context.Context) (daemon.Status, error) {
	var status daemon.Status
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &status)
	return status, err
}

func (c *Client) do(ctx context.Context, method, path string, payload, target any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr struct {
			Error string `json:"error"`
		}
		if unmarshalErr := json.Unmarshal(raw, &apiErr); unmarshalErr == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon error (http %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("daemon error (http %d)", resp.StatusCode)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
