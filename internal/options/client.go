package options

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable means the options server could not be reached or did not
// answer with JSON.
var ErrUnavailable = errors.New("options server unavailable")

// APIError is an {"error": ...} answer from the options server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("options server: %s (status %d)", e.Message, e.StatusCode)
}

// MaxPromptLength bounds prompts in runes. Keep it in step with the
// validate tag below.
const MaxPromptLength = 200

type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=200"`
}

type GenerateResponse struct {
	Options []string `json:"options,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Client is what a wheel host uses to fetch and regenerate its labels.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Current(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/current-options", nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) Generate(ctx context.Context, prompt string) ([]string, error) {
	body, err := json.Marshal(GenerateRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-options", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", ErrUnavailable, resp.StatusCode, err)
	}
	if out.Error != "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return out.Options, nil
}
