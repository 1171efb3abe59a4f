package cron_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/cron"
)

func TestMonitorRecordsProbeOutcome(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cli := client.New(srv.URL, 5*time.Second)
	m := cron.NewMonitor()

	// Before the first probe the portal reports itself degraded.
	assert.False(t, m.Status().Reachable)
	assert.True(t, m.Status().CheckedAt.IsZero())

	m.Check(context.Background(), cli)
	status := m.Status()
	assert.True(t, status.Reachable)
	assert.Empty(t, status.Error)
	assert.False(t, status.CheckedAt.IsZero())

	healthy.Store(false)
	m.Check(context.Background(), cli)
	status = m.Status()
	assert.False(t, status.Reachable)
	assert.NotEmpty(t, status.Error)
}

func TestMonitorUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	m := cron.NewMonitor()
	m.Check(context.Background(), client.New(srv.URL, time.Second))

	status := m.Status()
	assert.False(t, status.Reachable)
	assert.Contains(t, status.Error, "allocation service unreachable")
}
