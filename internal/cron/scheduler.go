package cron

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/egspgoi/projectverse/internal/client"
)

// Monitor remembers the outcome of the latest upstream probe. The portal
// is useless when the allocation service is down, so /health reports the
// upstream state rather than its own.
type Monitor struct {
	mu        sync.Mutex
	reachable bool
	checkedAt time.Time
	lastError string
}

type Status struct {
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) record(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkedAt = time.Now()
	if err != nil {
		m.reachable = false
		m.lastError = err.Error()
		return
	}
	m.reachable = true
	m.lastError = ""
}

func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{Reachable: m.reachable, CheckedAt: m.checkedAt, Error: m.lastError}
}

// Check probes the allocation service once and records the outcome.
func (m *Monitor) Check(ctx context.Context, cli *client.Client) {
	err := cli.Ping(ctx)
	m.record(err)
	if err != nil {
		log.Println("❌ Allocation service unreachable:", err)
		return
	}
	log.Println("✅ Allocation service reachable")
}

// StartJobs schedules the recurring upstream probe and runs one probe
// immediately so /health has an answer from the start.
func StartJobs(spec string, cli *client.Client, m *Monitor) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		m.Check(ctx, cli)
	}); err != nil {
		log.Println("⚠️ Invalid health cron spec, probe disabled:", err)
		return c
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		m.Check(ctx, cli)
	}()

	c.Start()
	return c
}
