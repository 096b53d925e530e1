package app

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/moresonsunn/lynxtop/internal/state"
)

// Task names double as kick targets.
const (
	taskServers   = "servers"
	taskStats     = "stats"
	taskAccounts  = "accounts"
	taskDashboard = "dashboard"
	taskHealth    = "health"
	taskAlerts    = "alerts"
)

const (
	serversInterval   = 5 * time.Second
	statsInterval     = 4 * time.Second
	accountsInterval  = 10 * time.Second
	dashboardInterval = 15 * time.Second
	healthInterval    = 15 * time.Second
	alertsInterval    = 30 * time.Second
)

// Task is one independently scheduled refresh: a name, a cadence, and a
// closure that fetches and commits its domain.
type Task struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

// Refresher drives a set of Tasks, each on its own ticker. Ticks for
// different tasks are independent and may overlap; each task writes only
// its own domain. A failed run is logged and the task simply waits for
// its next tick — no retry, no backoff. Every tick re-checks the
// suppression gate and is skipped entirely (no request issued) while the
// gate is held; forced kicks honor the gate the same way.
type Refresher struct {
	clock clock.Clock
	gate  *state.Gate
	log   *zap.Logger
	tasks []Task
	kicks map[string]chan struct{}
}

// NewRefresher builds a refresher for the given task table.
func NewRefresher(clk clock.Clock, gate *state.Gate, log *zap.Logger, tasks []Task) *Refresher {
	kicks := make(map[string]chan struct{}, len(tasks))
	for _, t := range tasks {
		kicks[t.Name] = make(chan struct{}, 1)
	}
	return &Refresher{clock: clk, gate: gate, log: log, tasks: tasks, kicks: kicks}
}

// Start launches one goroutine per task. It returns immediately; the
// goroutines run until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	for _, t := range r.tasks {
		go r.loop(ctx, t)
	}
}

// Kick schedules an immediate out-of-cadence run for each named task.
// Unknown names are ignored; a kick on a task that already has one
// pending coalesces.
func (r *Refresher) Kick(names ...string) {
	for _, name := range names {
		ch, ok := r.kicks[name]
		if !ok {
			continue
		}
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (r *Refresher) loop(ctx context.Context, t Task) {
	ticker := r.clock.Ticker(t.Every)
	defer ticker.Stop()
	kick := r.kicks[t.Name]

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-kick:
		}
		if r.gate.Held() {
			continue
		}
		if err := t.Run(ctx); err != nil {
			r.log.Warn("refresh failed", zap.String("task", t.Name), zap.Error(err))
		}
	}
}

// refreshTasks declares the per-domain cadence table. Each closure
// commits only on success; on failure the previous cached value stays
// untouched.
func (e *Engine) refreshTasks() []Task {
	tasks := []Task{
		{taskServers, serversInterval, func(ctx context.Context) error {
			servers, err := e.client.FetchServers(ctx)
			if err != nil {
				return err
			}
			e.store.Apply(func(st *state.State) { st.Servers = servers })
			return nil
		}},
		{taskStats, statsInterval, func(ctx context.Context) error {
			stats, err := e.client.FetchStats(ctx, statsTTLSeconds)
			if err != nil {
				return err
			}
			e.store.Apply(func(st *state.State) {
				st.ServerStats = state.MergeStats(st.ServerStats, stats)
			})
			return nil
		}},
		{taskAccounts, accountsInterval, func(ctx context.Context) error {
			users, uErr := e.client.FetchUsers(ctx)
			if uErr == nil {
				e.store.Apply(func(st *state.State) { st.Users = users })
			}
			roles, rErr := e.client.FetchRoles(ctx)
			if rErr == nil {
				e.store.Apply(func(st *state.State) { st.Roles = roles })
			}
			return errors.Join(uErr, rErr)
		}},
		{taskDashboard, dashboardInterval, func(ctx context.Context) error {
			data, err := e.client.FetchDashboard(ctx)
			if err != nil {
				return err
			}
			e.store.Apply(func(st *state.State) { st.Dashboard = data })
			return nil
		}},
		{taskHealth, healthInterval, func(ctx context.Context) error {
			health, err := e.client.FetchSystemHealth(ctx)
			if err != nil {
				return err
			}
			e.store.Apply(func(st *state.State) { st.Health = health })
			return nil
		}},
		{taskAlerts, alertsInterval, func(ctx context.Context) error {
			alerts, err := e.client.FetchAlerts(ctx)
			if err != nil {
				return err
			}
			e.store.Apply(func(st *state.State) { st.Alerts = alerts })
			return nil
		}},
	}
	if !e.authed {
		// Unauthenticated sessions only poll the public catalog.
		return []Task{{"server-types", alertsInterval, func(ctx context.Context) error {
			types, err := e.client.FetchServerTypes(ctx)
			if err != nil {
				return err
			}
			e.store.Apply(func(st *state.State) { st.ServerTypes = types })
			return nil
		}}}
	}
	return tasks
}
