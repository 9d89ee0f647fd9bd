// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/godbot-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the GodBot client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeNotFound
	ErrTypeBackend
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrBackendDown = &ClientError{Type: ErrTypeConnection, Message: "GodBot backend is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrNotFound    = &ClientError{Type: ErrTypeNotFound, Message: "not found"}
)

// IsBackendDown checks if an error indicates the backend is unreachable.
func IsBackendDown(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeConnection
	}
	return errors.Is(err, ErrBackendDown)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsNotFound checks if an error is a missing-entity error.
func IsNotFound(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// UserMessage extracts the text shown in an error toast: the backend detail
// string when one was returned, else the error's own message.
func UserMessage(err error, fallback string) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Message != "" {
		return clientErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the GodBot client.
type ClientConfig struct {
	// BaseURL of the backend, without the /api suffix (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout per request (default: 30s)
	Timeout time.Duration

	// MaxRetries for idempotent reads (default: 3). Writes are never retried.
	MaxRetries int

	// RetryDelay is the base backoff between read retries (default: 500ms)
	RetryDelay time.Duration

	// RequestsPerSecond caps outbound request rate (default: 10)
	RequestsPerSecond float64

	// Burst for the rate limiter (default: 5)
	Burst int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:8000",
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryDelay:        500 * time.Millisecond,
		RequestsPerSecond: 10,
		Burst:             5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the GodBot backend.
//
// The Client is stateless and safe for concurrent use.
//
// Example:
//
//	client := api.NewClient()
//	personas, err := client.ListPersonas(ctx)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new GodBot client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new GodBot client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 500 * time.Millisecond
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 10
	}
	if config.Burst == 0 {
		config.Burst = 5
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// apiURL joins the base URL with a path under /api.
func (c *Client) apiURL(path string) string {
	return c.config.BaseURL + "/api" + path
}

// =============================================================================
// PERSONAS
// =============================================================================

// ListPersonas retrieves the available personas.
func (c *Client) ListPersonas(ctx context.Context) ([]model.Persona, error) {
	var personas []model.Persona
	if err := c.getJSON(ctx, "/personas", &personas); err != nil {
		return nil, err
	}
	return personas, nil
}

// =============================================================================
// SESSIONS
// =============================================================================

// ListSessions retrieves all sessions, most recently updated first.
func (c *Client) ListSessions(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	if err := c.getJSON(ctx, "/sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetMessages retrieves the ordered message history for a session.
func (c *Client) GetMessages(ctx context.Context, sessionID string) ([]model.Message, error) {
	var messages []model.Message
	if err := c.getJSON(ctx, "/sessions/"+sessionID+"/messages", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteSession asks the backend to delete a session. Never retried: a
// repeated delete after a slow first attempt would 404.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return wrapTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.apiURL("/sessions/"+sessionID), nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer drainAndClose(resp.Body)

	return checkStatus(resp, "failed to delete session")
}

// =============================================================================
// CHAT
// =============================================================================

// SendChat dispatches one chat message and returns the assistant's reply.
// Exactly one request hits the wire per call regardless of outcome.
func (c *Client) SendChat(ctx context.Context, chatReq ChatRequest) (*ChatResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, wrapTransportError(err)
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/chat"), bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "chat request failed"); err != nil {
		return nil, err
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// STATUS & TELEMETRY
// =============================================================================

// GetStatus retrieves the current system status snapshot.
func (c *Client) GetStatus(ctx context.Context) (*model.SystemStatus, error) {
	var status model.SystemStatus
	if err := c.getJSON(ctx, "/status", &status); err != nil {
		return nil, err
	}
	status.FetchedAt = time.Now()
	return &status, nil
}

// GetDashboard retrieves the dashboard snapshot.
func (c *Client) GetDashboard(ctx context.Context) (*model.DashboardSnapshot, error) {
	var snapshot model.DashboardSnapshot
	if err := c.getJSON(ctx, "/dashboard", &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetInsights retrieves the DreamChain insight feed.
func (c *Client) GetInsights(ctx context.Context) ([]model.Insight, error) {
	var feed insightFeed
	if err := c.getJSON(ctx, "/dreamchain", &feed); err != nil {
		return nil, err
	}
	return feed.Insights, nil
}

// AcknowledgeInsight marks an insight as reviewed server-side. Not retried.
func (c *Client) AcknowledgeInsight(ctx context.Context, insightID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return wrapTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/dreamchain/acknowledge/"+insightID), nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer drainAndClose(resp.Body)

	return checkStatus(resp, "failed to acknowledge insight")
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// getJSON performs an idempotent GET with bounded retry and decodes the JSON
// body into out. Connection failures and 5xx responses are retried with
// linear backoff; 4xx responses fail immediately.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return wrapTransportError(ctx.Err())
			case <-time.After(time.Duration(attempt) * c.config.RetryDelay):
			}
		}

		lastErr = c.getJSONOnce(ctx, path, out)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

func (c *Client) getJSONOnce(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return wrapTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(path), nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "request failed"); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return nil
}

// isRetryable reports whether a failed read is worth another attempt.
func isRetryable(err error) bool {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	switch clientErr.Type {
	case ErrTypeConnection, ErrTypeTimeout, ErrTypeBackend:
		return true
	default:
		return false
	}
}

// checkStatus converts a non-2xx response into a ClientError, preferring the
// backend's detail string when the body carries one.
func checkStatus(resp *http.Response, fallback string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errType ErrorType
	switch {
	case resp.StatusCode == http.StatusNotFound:
		errType = ErrTypeNotFound
	case resp.StatusCode >= 500:
		errType = ErrTypeBackend
	default:
		errType = ErrTypeInvalidResponse
	}

	var body apiError
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		return &ClientError{Type: errType, Message: body.Detail}
	}

	return &ClientError{Type: errType, Message: fallback + ": " + resp.Status}
}

// wrapTransportError maps low-level transport failures to the error taxonomy.
func wrapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return &ClientError{Type: ErrTypeTimeout, Message: "request canceled", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "GodBot backend is not reachable", Cause: err}
}

// Helper to drain response body so the connection can be reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
