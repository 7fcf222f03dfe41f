// Package api is the single HTTP entry point to the CSpace backend.
// Every request carries the current credential and an X-Request-Id for
// log correlation; failures normalize to *Error. The client does not
// retry and imposes no timeout of its own — a stalled call is cancelled
// through its context, never coalesced or repeated.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource supplies the credential attached to outgoing requests.
// The session store implements it; reads happen at the start of every
// request, writes only on login/register/logout.
type TokenSource interface {
	Token() string
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// New creates a client for the given base URL. tokens may not be nil.
func New(baseURL string, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     log.Named("api"),
	}
}

// serverError is the message envelope the backend uses for failures.
type serverError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues one request and decodes the response into out (when non-nil).
// All endpoint methods funnel through here.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Buffer
	if body != nil {
		payload = &bytes.Buffer{}
		if err := json.NewEncoder(payload).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &Error{Transport: true, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var se serverError
		_ = json.NewDecoder(resp.Body).Decode(&se)
		msg := se.Message
		if msg == "" {
			msg = se.Error
		}
		c.log.Warn("server rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	c.log.Debug("request ok",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode))
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
