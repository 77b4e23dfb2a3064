// Package health probes the service's backing collaborators on a cron schedule
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Overall states reported by Status
const (
	StateUnknown  = "unknown"
	StateOK       = "ok"
	StateDegraded = "degraded"
)

const probeTimeout = 5 * time.Second

// Check probes one collaborator; nil means healthy
type Check func(ctx context.Context) error

// Status is the result of the most recent probe round
type Status struct {
	State     string            `json:"status"`
	CheckedAt time.Time         `json:"checked_at,omitzero"`
	Checks    map[string]string `json:"checks"`
}

// Monitor runs registered checks on a schedule and keeps the latest result
type Monitor struct {
	cron     *cron.Cron
	schedule string
	checks   map[string]Check

	mu     sync.RWMutex
	status Status
}

// NewMonitor creates a monitor. schedule uses the seconds-aware cron syntax
// ("*/30 * * * * *") or a descriptor such as "@every 30s".
func NewMonitor(schedule string) *Monitor {
	return &Monitor{
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		checks:   make(map[string]Check),
		status:   Status{State: StateUnknown, Checks: map[string]string{}},
	}
}

// Register adds a named check. Call before Start.
func (m *Monitor) Register(name string, check Check) {
	m.checks[name] = check
}

// Start probes once synchronously and then on every tick
func (m *Monitor) Start() error {
	log.Info().Str("schedule", m.schedule).Msg("Starting health monitor")

	if _, err := m.cron.AddFunc(m.schedule, func() {
		m.RunChecks(context.Background())
	}); err != nil {
		return err
	}

	m.RunChecks(context.Background())
	m.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running probe to finish
func (m *Monitor) Stop() {
	log.Info().Msg("Stopping health monitor")
	ctx := m.cron.Stop()
	<-ctx.Done()
}

// RunChecks runs every check once and stores the outcome
func (m *Monitor) RunChecks(ctx context.Context) Status {
	names := make([]string, 0, len(m.checks))
	for name := range m.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := Status{State: StateOK, CheckedAt: time.Now().UTC(), Checks: make(map[string]string, len(names))}
	for _, name := range names {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := m.checks[name](probeCtx)
		cancel()

		if err != nil {
			log.Warn().Err(err).Str("check", name).Msg("Health check failed")
			status.State = StateDegraded
			status.Checks[name] = err.Error()
			continue
		}
		status.Checks[name] = StateOK
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

// Status returns a copy of the latest probe result
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	checks := make(map[string]string, len(m.status.Checks))
	for k, v := range m.status.Checks {
		checks[k] = v
	}
	return Status{State: m.status.State, CheckedAt: m.status.CheckedAt, Checks: checks}
}
