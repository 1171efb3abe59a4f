package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/models"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cse-batch-01", body["username"])
		assert.Equal(t, "batch", body["role"])
		assert.Empty(t, body["email"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"remote-tok","message":"Welcome","user":{"id":"b1","role":"batch","name":"CSE Batch 01"}}`))
	}))
	defer srv.Close()

	creds := client.Credentials{Username: "cse-batch-01", Password: "secret"}
	res, err := newClient(srv.URL).Login(context.Background(), creds, models.RoleBatch)
	require.NoError(t, err)

	assert.False(t, res.AlreadyLoggedIn)
	assert.Equal(t, "remote-tok", res.Token)
	assert.Equal(t, "b1", res.UserID)
	assert.Equal(t, models.RoleBatch, res.Role)
	assert.Equal(t, "CSE Batch 01", res.UserName)
}

func TestLoginConflictIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"You are already logged in on another device","code":"ALREADY_LOGGED_IN"}`))
	}))
	defer srv.Close()

	creds := client.Credentials{Email: "admin@egspec.org", Password: "secret"}
	res, err := newClient(srv.URL).Login(context.Background(), creds, models.RoleAdmin)
	require.NoError(t, err)

	// The conflict is a decision point for the user, not a failure, and
	// no token exists until the force path succeeds.
	assert.True(t, res.AlreadyLoggedIn)
	assert.Empty(t, res.Token)
	assert.Equal(t, "You are already logged in on another device", res.Message)
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))
	defer srv.Close()

	creds := client.Credentials{Email: "admin@egspec.org", Password: "wrong"}
	_, err := newClient(srv.URL).Login(context.Background(), creds, models.RoleAdmin)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, client.IsSessionInvalidated(err))
}

func TestForceLoginUsesForcePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/force-login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"fresh-tok","user":{"id":"f1","role":"faculty","name":"Dr. Kumar"}}`))
	}))
	defer srv.Close()

	creds := client.Credentials{Email: "kumar@egspec.org", Password: "secret"}
	res, err := newClient(srv.URL).ForceLogin(context.Background(), creds, models.RoleFaculty)
	require.NoError(t, err)
	assert.Equal(t, "fresh-tok", res.Token)
}

func TestLogoutIsBestEffort(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		assert.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cli := newClient(srv.URL)

	// Failure is swallowed; the caller clears local state regardless.
	cli.Logout(context.Background(), "tok")
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))

	// Without a token logout short-circuits locally.
	cli.Logout(context.Background(), "")
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}
