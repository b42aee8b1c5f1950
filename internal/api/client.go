// Package api is the client for the storybook backend.
//
// The backend is a plain request/response JSON service: the client sends the
// conversation (or a lookup request) and receives one reply with its source
// citations. Reply content is passed through untouched; formatting is the
// caller's concern.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gerunddev/storybook/internal/logger"
)

const (
	// DefaultTimeout is used when NewClient is given a non-positive timeout.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024
)

var (
	ErrHealthCheck = errors.New("health check failed")
	ErrSendMessage = errors.New("failed to send message")
	ErrSummarize   = errors.New("failed to generate summary")
	ErrClearMemory = errors.New("failed to clear memory")
)

// Client talks to the storybook backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// BaseURL returns the backend root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks that the backend is up
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out, ErrHealthCheck, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage sends the conversation and returns the assistant's reply
func (c *Client) SendMessage(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &out, ErrSendMessage, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summarize requests an encyclopedia entry. The error includes the
// backend's error body when it sends one.
func (c *Client) Summarize(ctx context.Context, req *SummaryRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/summarize", req, &out, ErrSummarize, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearMemory asks the backend to forget the conversation
func (c *Client) ClearMemory(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/clear-memory", nil, &out, ErrClearMemory, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one JSON round trip. Failures wrap sentinel so callers can
// match them with errors.Is.
func (c *Client) do(ctx context.Context, method, endpoint string, in, out any, sentinel error, detail bool) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", sentinel, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.RequestStarted(method, endpoint)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.RequestFailed(endpoint, err)
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		c.log.RequestFailed(endpoint, err)
		return fmt.Errorf("%w: failed to read response: %w", sentinel, err)
	}
	c.log.RequestCompleted(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := statusError(sentinel, resp.StatusCode, data, detail)
		c.log.RequestFailed(endpoint, err)
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", sentinel, err)
	}
	return nil
}

// statusError describes a non-2xx response. With detail set, the backend's
// JSON error body is included, or {} when it sent none.
func statusError(sentinel error, status int, body []byte, detail bool) error {
	if !detail {
		return fmt.Errorf("%w: HTTP %d", sentinel, status)
	}

	errorData := "{}"
	var probe any
	if json.Unmarshal(body, &probe) == nil {
		if compact, err := json.Marshal(probe); err == nil {
			errorData = string(compact)
		}
	}
	return fmt.Errorf("%w: HTTP %d: %s", sentinel, status, errorData)
}
