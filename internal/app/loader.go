package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/state"
)

const statsTTLSeconds = 5

// preloadResult collects whatever the batch managed to fetch. Each field
// is written by exactly one goroutine; the errgroup Wait is the barrier
// before anything reads them.
type preloadResult struct {
	serverTypes []lynx.ServerType
	servers     []lynx.Server
	dashboard   *lynx.DashboardData
	health      *lynx.SystemHealth
	alerts      []lynx.Alert
	users       []lynx.User
	roles       []lynx.Role
	auditLogs   []lynx.AuditLog
	featured    []lynx.Modpack
}

// Preload performs the one-shot parallel bulk fetch and commits the union
// of results to the store in a single patch, then flips Initialized. A
// failing endpoint contributes nothing and fails nothing else. When the
// roster came back non-empty a secondary bulk-stats fetch follows; its
// failure is swallowed too.
func (e *Engine) Preload(ctx context.Context) {
	var res preloadResult

	type endpoint struct {
		name  string
		fetch func(ctx context.Context) error
	}

	endpoints := []endpoint{
		{"server-types", func(ctx context.Context) error {
			v, err := e.client.FetchServerTypes(ctx)
			if err == nil {
				res.serverTypes = v
			}
			return err
		}},
	}
	if e.authed {
		endpoints = append(endpoints,
			endpoint{"servers", func(ctx context.Context) error {
				v, err := e.client.FetchServers(ctx)
				if err == nil {
					res.servers = v
				}
				return err
			}},
			endpoint{"dashboard", func(ctx context.Context) error {
				v, err := e.client.FetchDashboard(ctx)
				if err == nil {
					res.dashboard = v
				}
				return err
			}},
			endpoint{"system-health", func(ctx context.Context) error {
				v, err := e.client.FetchSystemHealth(ctx)
				if err == nil {
					res.health = v
				}
				return err
			}},
			endpoint{"alerts", func(ctx context.Context) error {
				v, err := e.client.FetchAlerts(ctx)
				if err == nil {
					res.alerts = v
				}
				return err
			}},
			endpoint{"users", func(ctx context.Context) error {
				v, err := e.client.FetchUsers(ctx)
				if err == nil {
					res.users = v
				}
				return err
			}},
			endpoint{"roles", func(ctx context.Context) error {
				v, err := e.client.FetchRoles(ctx)
				if err == nil {
					res.roles = v
				}
				return err
			}},
			endpoint{"audit-logs", func(ctx context.Context) error {
				v, err := e.client.FetchAuditLogs(ctx, 1, 50)
				if err == nil {
					res.auditLogs = v
				}
				return err
			}},
			endpoint{"featured", func(ctx context.Context) error {
				v, err := e.client.FetchFeatured(ctx, 6)
				if err == nil {
					res.featured = v
				}
				return err
			}},
		)
	}

	g := new(errgroup.Group)
	for _, ep := range endpoints {
		epCtx, cancel := context.WithCancel(ctx)
		e.registry.add(ep.name, cancel)
		g.Go(func() error {
			defer e.registry.done(ep.name)
			if err := ep.fetch(epCtx); err != nil {
				e.log.Warn("preload endpoint failed",
					zap.String("endpoint", ep.name), zap.Error(err))
			}
			// Endpoint failures never fail the batch.
			return nil
		})
	}
	_ = g.Wait()

	e.store.Apply(func(st *state.State) {
		if res.serverTypes != nil {
			st.ServerTypes = res.serverTypes
		}
		if res.servers != nil {
			st.Servers = res.servers
		}
		if res.dashboard != nil {
			st.Dashboard = res.dashboard
		}
		if res.health != nil {
			st.Health = res.health
		}
		if res.alerts != nil {
			st.Alerts = res.alerts
		}
		if res.users != nil {
			st.Users = res.users
		}
		if res.roles != nil {
			st.Roles = res.roles
		}
		if res.auditLogs != nil {
			st.AuditLogs = res.auditLogs
		}
		if res.featured != nil {
			st.Featured = res.featured
		}
		st.Initialized = true
	})

	if len(res.servers) == 0 {
		return
	}
	stats, err := e.client.FetchStats(ctx, statsTTLSeconds)
	if err != nil {
		e.log.Warn("initial stats fetch failed", zap.Error(err))
		return
	}
	e.store.Apply(func(st *state.State) {
		st.ServerStats = state.MergeStats(st.ServerStats, stats)
	})
}
