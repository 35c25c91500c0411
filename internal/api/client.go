// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tandem chat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/tandem-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the chat API client.
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

// ErrorType categorizes client errors. Transport failures, non-2xx statuses
// and decode failures carry distinct types, but callers treat all of them as
// one error value; no recovery behavior differs by category.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// ErrTimeout is returned when a send exceeds the configured timeout and the
// in-flight request is aborted.
var ErrTimeout = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultSendTimeout bounds how long a send may stay in flight before the
// request is aborted.
const DefaultSendTimeout = 60 * time.Second

// ClientConfig holds configuration options for the chat API client.
type ClientConfig struct {
	// BaseURL is the origin servicing API operations (default: http://127.0.0.1:8001)
	BaseURL string

	// Timeout for history and reset requests (default: 30s)
	Timeout time.Duration

	// SendTimeout for the send operation (default: 60s). A send that has not
	// completed within this window is aborted and fails with ErrTimeout.
	SendTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:     "http://127.0.0.1:8001",
		Timeout:     30 * time.Second,
		SendTimeout: DefaultSendTimeout,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the chat backend.
//
// The Client is safe for concurrent use, though the view issues at most one
// send at a time.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new chat API client. A nil config uses defaults; zero
// fields are filled in.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8001"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.SendTimeout == 0 {
		config.SendTimeout = DefaultSendTimeout
	}

	return &Client{
		config: config,
		// The send timeout is enforced per-request via context, so the
		// transport-level timeout only needs to cover history and reset.
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HISTORY
// =============================================================================

// History retrieves the full ordered message sequence held by the server.
func (c *Client) History(ctx context.Context) ([]*model.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/history", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to fetch history", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ClientError{
			Type:    ErrTypeStatus,
			Message: "history request failed: " + resp.Status,
		}
	}

	var result historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode history", Cause: err}
	}

	return result.History, nil
}

// =============================================================================
// SEND
// =============================================================================

// Send posts a message addressed to the given tags and returns the server's
// acknowledgment. The caller is expected to pass trimmed, non-empty content
// and a non-empty tag list; tags travel in marker form and in order.
//
// The configured send timeout bounds the round-trip: on expiry the in-flight
// request is aborted and the call fails with ErrTimeout.
func (c *Client) Send(ctx context.Context, content string, tags []string) (*SendResult, error) {
	body, err := json.Marshal(sendRequest{Content: content, Tags: tags})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.SendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/send", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	// The send uses its own client so the shorter transport timeout for
	// history/reset does not cut the round-trip ahead of the context.
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &ClientError{
				Type:    ErrTypeTimeout,
				Message: "send aborted after " + c.config.SendTimeout.String(),
			}
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to send message", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Best effort: include the response body in the error. A body read
		// failure must not mask the status error.
		msg := "send request failed: " + resp.Status
		if text, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil {
			if trimmed := strings.TrimSpace(string(text)); trimmed != "" {
				msg += ": " + trimmed
			}
		}
		return nil, &ClientError{Type: ErrTypeStatus, Message: msg}
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode send response", Cause: err}
	}

	replies := make([]*model.Message, 0, len(result.Replies))
	for _, r := range result.Replies {
		replies = append(replies, r.message())
	}

	return &SendResult{
		UserMessageID: result.UserMessageID,
		Replies:       replies,
	}, nil
}

// =============================================================================
// RESET
// =============================================================================

// Reset instructs the server to clear stored history. Only the status matters;
// the response body is ignored.
func (c *Client) Reset(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/reset", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "failed to reset conversation", Cause: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{
			Type:    ErrTypeStatus,
			Message: "reset request failed: " + resp.Status,
		}
	}

	return nil
}

// drainAndClose drains a response body so the connection can be reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
