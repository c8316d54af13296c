package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"recap/internal/config"
	"recap/internal/logging"
	"recap/internal/services"
)

const (
	jsonResponseType   = "json_object"
	defaultHTTPTimeout = 60 * time.Second
	defaultBaseURL     = "https://openrouter.ai/api/v1/chat/completions"

	// transcriptRuneBudget bounds how much transcript is sent upstream.
	// Longer transcripts are clipped, not chunked.
	transcriptRuneBudget = 12000

	requestTemperature = 0.2

	disabledSummary = "Summarization is disabled: no API key is configured."
)

// Summary is the structured reply expected from the model.
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Client calls the OpenRouter chat completions endpoint. One synchronous
// request per transcript, no retries; callers decide how failures surface.
type Client struct {
	cfg        config.LLMConfig
	httpClient *http.Client
	logger     *slog.Logger
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

// WithBaseURL overrides the completions endpoint (useful for tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.cfg.BaseURL = baseURL
		}
	}
}

// New constructs a summarizer client from the configuration snapshot.
func New(cfg config.LLMConfig, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewComponentLogger(logger, "summarizer"),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	return client
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		// Some providers return the streaming schema even when stream=false.
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize sends the transcript for analysis. Without an API key it returns
// a fixed placeholder and no error so the pipeline can still hand the
// transcript back. The model reply is parsed leniently; content that is not
// valid JSON becomes the summary verbatim.
func (c *Client) Summarize(ctx context.Context, transcript, instruction string) (Summary, error) {
	if !c.Enabled() {
		c.logger.Warn("no API key configured, returning placeholder summary")
		return Summary{Summary: disabledSummary}, nil
	}

	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(instruction, clipRunes(transcript, transcriptRuneBudget))},
		},
		Temperature:    requestTemperature,
		ResponseFormat: map[string]string{"type": jsonResponseType},
	}

	content, err := c.complete(ctx, payload)
	if err != nil {
		return Summary{}, err
	}

	var parsed Summary
	if decodeErr := decodeModelJSON(content, &parsed); decodeErr != nil {
		c.logger.Warn("model reply is not valid JSON, using raw content",
			logging.Error(decodeErr),
		)
		return Summary{Summary: content}, nil
	}
	return parsed, nil
}

func (c *Client) complete(ctx context.Context, payload chatCompletionRequest) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarizer", "encode request", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarizer", "build request", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarizer", "send request", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarizer", "read response", "", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := fmt.Sprintf("http %d: %s", resp.StatusCode, payloadSnippet(string(body)))
		return "", services.Wrap(services.ErrTransient, "summarizer", "complete", message, nil)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", services.Wrap(services.ErrTransient, "summarizer", "decode response", "", err)
	}
	if completion.Error != nil && completion.Error.Message != "" {
		return "", services.Wrap(services.ErrTransient, "summarizer", "complete", completion.Error.Message, nil)
	}
	for _, choice := range completion.Choices {
		if content := firstNonEmpty(choice.Message.Content, choice.Delta.Content, choice.Text); content != "" {
			return content, nil
		}
	}
	return "", services.Wrap(services.ErrTransient, "summarizer", "complete",
		fmt.Sprintf("empty completion content: %s", payloadSnippet(string(body))), nil)
}

func clipRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
