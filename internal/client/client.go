// Package client is the single choke point for every call to the remote
// allocation service. It attaches the session's bearer token, classifies
// non-2xx responses into typed failures, and recognizes the two server
// codes that invalidate a session.
package client

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
)

// ErrNoSession is returned when a protected route is called without a
// token. The request is refused locally; no network call is made.
var ErrNoSession = errors.New("no active session")

// Machine error codes the allocation service is known to return.
const (
	CodeAlreadyLoggedIn   = "ALREADY_LOGGED_IN"
	CodeSessionTerminated = "SESSION_TERMINATED"
	CodeTokenExpired      = "TOKEN_EXPIRED"
)

// sessionFatal is the closed set of codes that end the current session.
// Adding a new invalidation reason means adding one entry here.
var sessionFatal = map[string]bool{
	CodeSessionTerminated: true,
	CodeTokenExpired:      true,
}

// APIError is any non-2xx answer from the allocation service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsSessionInvalidated reports whether err means the session was ended on
// the server side (superseded by another login, or the token expired).
// Callers must clear all persisted session state when this returns true.
func IsSessionInvalidated(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return sessionFatal[apiErr.Code]
}

// Route namespaces that require a bearer token.
var protectedPrefixes = []string{"/admin", "/faculty", "/batch", "/files", "/auth/logout"}

func isProtected(path string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// do sends one request to the allocation service. The token is passed in
// explicitly so every call site carries its own session context.
func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	if isProtected(path) && token == "" {
		return ErrNoSession
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("allocation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(method, resp, out)
}

// decodeResponse maps an HTTP response onto out or a typed error. Delete
// endpoints sometimes answer 200/204 with an inconsistent body; those are
// treated as success without looking at the body.
func decodeResponse(method string, resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if method == http.MethodDelete && (resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent) {
		ok = true
	}

	if !ok {
		return parseError(resp, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseError extracts {message, code} from an error body, falling back to
// the HTTP status text when the body is absent or not JSON.
func parseError(resp *http.Response, data []byte) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
