// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the client for the remote chat service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/parley-tui/internal/model"
)

// Configuration constants for the chat service.
const (
	// DefaultEndpoint is the default chat service URL.
	DefaultEndpoint = "http://localhost:8000/chat"

	// DefaultTimeout is the default timeout for chat requests.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// genericDetail is the error detail used when the service gives none.
	genericDetail = "network response was not ok"
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all chat requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// ERRORS
// =============================================================================

// NetworkError represents a failed chat exchange: connection failure,
// non-success status, or a malformed response body. Detail carries the
// service's human-readable explanation when one was available. Err
// holds the underlying cause, so callers can match sentinel errors
// such as context.Canceled through errors.Is.
type NetworkError struct {
	Status int
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("chat request failed (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("chat request failed: %s", e.Detail)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// chatRequest is the request body for the chat endpoint.
type chatRequest struct {
	Message string       `json:"message"`
	Model   string       `json:"model"`
	History []model.Turn `json:"history"`
}

// chatResponse is the success response body.
type chatResponse struct {
	Response string `json:"response"`
}

// errorResponse is the failure response body.
type errorResponse struct {
	Detail string `json:"detail"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client issues chat requests to the remote service.
type Client struct {
	endpoint   string
	httpClient *http.Client

	// limiter smooths out accidental rapid resubmits; it never queues
	// more than a burst of one extra request.
	limiter *rate.Limiter
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: sharedHTTPClient,
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

// WithHTTPClient sets a custom HTTP client. Tests use this to control
// timeouts.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// Endpoint returns the configured chat service URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send performs one chat exchange: the message, the model identifier,
// and the prior history go to the service; the reply text comes back.
// The caller suspends until resolution or failure. All failure modes
// return *NetworkError.
func (c *Client) Send(ctx context.Context, message, modelID string, history []model.Turn) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &NetworkError{Detail: err.Error(), Err: err}
	}

	if history == nil {
		history = []model.Turn{}
	}
	bodyBytes, err := json.Marshal(chatRequest{
		Message: message,
		Model:   modelID,
		History: history,
	})
	if err != nil {
		return "", &NetworkError{Detail: fmt.Sprintf("failed to marshal request: %v", err), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &NetworkError{Detail: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "parley/0.1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return "", &NetworkError{Status: resp.StatusCode, Detail: err.Error(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", handleErrorResponse(resp.StatusCode, body)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &NetworkError{Status: resp.StatusCode, Detail: "malformed response body"}
	}
	return chatResp.Response, nil
}

// =============================================================================
// RESPONSE HANDLING
// =============================================================================

// readResponse reads the response body with a size cap.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts a non-success response into a
// NetworkError, lifting the service's detail string when present.
func handleErrorResponse(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return &NetworkError{Status: statusCode, Detail: errResp.Detail}
	}
	return &NetworkError{Status: statusCode, Detail: genericDetail}
}
