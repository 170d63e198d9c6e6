// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// SUCCESS PATH TESTS
// =============================================================================

func TestSend_Success(t *testing.T) {
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "Hi there"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	history := []model.Turn{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	reply, err := client.Send(context.Background(), "Hello", "gpt-5.2-codex", history)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "Hi there" {
		t.Errorf("reply = %q, want 'Hi there'", reply)
	}

	if gotBody.Message != "Hello" {
		t.Errorf("request message = %q", gotBody.Message)
	}
	if gotBody.Model != "gpt-5.2-codex" {
		t.Errorf("request model = %q", gotBody.Model)
	}
	if len(gotBody.History) != 2 || gotBody.History[1].Role != "assistant" {
		t.Errorf("request history = %+v", gotBody.History)
	}
}

func TestSend_EmptyHistoryEncodesAsList(t *testing.T) {
	var rawBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&rawBody)
		w.Write([]byte(`{"response": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Send(context.Background(), "first", "gpt-5", nil); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if string(rawBody["history"]) != "[]" {
		t.Errorf("history encoded as %s, want []", rawBody["history"])
	}
}

// =============================================================================
// FAILURE PATH TESTS
// =============================================================================

func TestSend_ErrorWithDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail": "rate limited"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Send(context.Background(), "Hello", "gpt-5", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", err)
	}
	if netErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want 429", netErr.Status)
	}
	if netErr.Detail != "rate limited" {
		t.Errorf("Detail = %q, want 'rate limited'", netErr.Detail)
	}
}

func TestSend_ErrorWithoutDetailFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`watch out, not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Send(context.Background(), "Hello", "gpt-5", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", err)
	}
	if netErr.Detail != genericDetail {
		t.Errorf("Detail = %q, want generic fallback", netErr.Detail)
	}
}

func TestSend_ConnectionFailure(t *testing.T) {
	// A server that is immediately closed guarantees a refused connection.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.Send(context.Background(), "Hello", "gpt-5", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", err)
	}
	if netErr.Status != 0 {
		t.Errorf("Status = %d, want 0 for connection failure", netErr.Status)
	}
}

func TestSend_BadEndpointReturnsNetworkError(t *testing.T) {
	client := NewClient("http://bad\x7fendpoint")
	_, err := client.Send(context.Background(), "Hello", "gpt-5", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", err)
	}
	if netErr.Err == nil {
		t.Error("Err should carry the underlying cause")
	}
}

func TestSend_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": `)) // truncated
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Send(context.Background(), "Hello", "gpt-5", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", err)
	}
}

func TestSend_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Send(ctx, "Hello", "gpt-5", nil)
	if err == nil {
		t.Fatal("Send should fail when the context is cancelled")
	}

	// The cancellation must survive the NetworkError wrapping, so
	// callers can distinguish an interrupt from a transport fault.
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("errors.Is(err, context.Canceled) = false, err = %v", err)
	}
}

func TestNetworkError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := &NetworkError{Detail: "wrapped", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
}

// =============================================================================
// CONSTRUCTION TESTS
// =============================================================================

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("")
	if client.Endpoint() != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want default", client.Endpoint())
	}

	trimmed := NewClient("http://example.test/chat/")
	if trimmed.Endpoint() != "http://example.test/chat" {
		t.Errorf("Endpoint = %q, trailing slash should be trimmed", trimmed.Endpoint())
	}
}

func TestNetworkError_Error(t *testing.T) {
	withStatus := &NetworkError{Status: 503, Detail: "overloaded"}
	if msg := withStatus.Error(); msg != "chat request failed (HTTP 503): overloaded" {
		t.Errorf("Error() = %q", msg)
	}

	withoutStatus := &NetworkError{Detail: "connection refused"}
	if msg := withoutStatus.Error(); msg != "chat request failed: connection refused" {
		t.Errorf("Error() = %q", msg)
	}
}

func TestSend_LimiterDoesNotBlockNormalUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := client.Send(ctx, "msg", "gpt-5", nil); err != nil {
			t.Fatalf("Send %d failed: %v", i, err)
		}
	}
}
