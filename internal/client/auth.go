package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/egspgoi/projectverse/internal/models"
)

// Credentials identify an account. Batch accounts log in by username,
// admin and faculty by email.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// LoginResult is the outcome of a login attempt. AlreadyLoggedIn is a
// valid, expected outcome (another device holds the session), not an
// error: the caller decides between cancelling and forcing.
type LoginResult struct {
	AlreadyLoggedIn bool
	Token           string
	UserID          string
	Role            models.Role
	UserName        string
	Message         string
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	User    struct {
		ID   string      `json:"id"`
		Role models.Role `json:"role"`
		Name string      `json:"name"`
	} `json:"user"`
}

func (c *Client) login(ctx context.Context, path string, creds Credentials, role models.Role) (*LoginResult, error) {
	body := struct {
		Credentials
		Role models.Role `json:"role"`
	}{creds, role}

	var resp loginResponse
	err := c.do(ctx, "", http.MethodPost, path, body, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == CodeAlreadyLoggedIn {
			return &LoginResult{AlreadyLoggedIn: true, Message: apiErr.Message}, nil
		}
		return nil, err
	}

	return &LoginResult{
		Token:    resp.Token,
		UserID:   resp.User.ID,
		Role:     resp.User.Role,
		UserName: resp.User.Name,
		Message:  resp.Message,
	}, nil
}

// Login authenticates against the allocation service. When the account is
// already active on another device the result carries AlreadyLoggedIn and
// no token; nothing may be persisted until ForceLogin succeeds.
func (c *Client) Login(ctx context.Context, creds Credentials, role models.Role) (*LoginResult, error) {
	return c.login(ctx, "/auth/login", creds, role)
}

// ForceLogin asks the service to terminate the other active session and
// issue a fresh token for this one.
func (c *Client) ForceLogin(ctx context.Context, creds Credentials, role models.Role) (*LoginResult, error) {
	return c.login(ctx, "/auth/force-login", creds, role)
}

// Logout notifies the service on a best-effort basis. Failures are
// swallowed: the caller clears its local session state regardless.
func (c *Client) Logout(ctx context.Context, token string) {
	_ = c.do(ctx, token, http.MethodPost, "/auth/logout", nil, nil)
}
