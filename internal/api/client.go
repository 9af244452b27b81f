// Package api is the single transport used for every call to the library
// server. It attaches the current credential, unwraps the {data, message}
// response envelope, and surfaces authentication rejection as a process-wide
// event instead of a per-call failure.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource yields the bearer credential to attach, empty when no session
// is active.
type TokenSource interface {
	Credential() string
}

// Error is a server-reported failure carrying the server's own message when
// it sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is the server rejecting the credential.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Config wires the client to its collaborators.
type Config struct {
	BaseURL string
	Tokens  TokenSource
	Timeout time.Duration
	// OnUnauthorized runs whenever any call observes a 401, before the call
	// returns. A single top-level listener clears the session there.
	OnUnauthorized func()
}

// Client calls the library server over HTTP.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient constructs a library server client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		tokens:         cfg.Tokens,
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) doJSON(method, path string, query url.Values, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Credential(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	slog.Debug("api_call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		// Global side effect: any rejected credential ends the session,
		// regardless of which endpoint was being called.
		slog.Warn("credential rejected, ending session", "path", path, "request_id", requestID)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{Status: resp.StatusCode, Message: "session expired, please log in again"}
	}
	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = resp.Status
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		// Absent payload leaves out at its zero value (0 for scalars,
		// empty slice for lists).
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s payload: %w", method, path, err)
	}
	return nil
}
