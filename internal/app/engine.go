package app

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/state"
)

// Engine owns the sync machinery around the shared store: the one-shot
// preload, the periodic refreshers, the push-stream consumer and the
// detail cascade. It never returns an error to its callers; every fetch
// failure is logged and the store keeps its best known state.
type Engine struct {
	client    lynx.Fetcher
	store     *state.Store
	gate      *state.Gate
	log       *zap.Logger
	authed    bool
	registry  *cancelRegistry
	refresher *Refresher

	// streamServers opens the push channel; nil when unauthenticated.
	streamServers streamOpener
}

// NewEngine wires an engine around client and store. authenticated
// selects the full preload set and enables the push stream; an
// unauthenticated session only ever sees the public catalog.
func NewEngine(client *lynx.Client, store *state.Store, gate *state.Gate, clk clock.Clock, log *zap.Logger, authenticated bool) *Engine {
	e := &Engine{
		client:   client,
		store:    store,
		gate:     gate,
		log:      log,
		authed:   authenticated,
		registry: newCancelRegistry(),
	}
	if authenticated {
		e.streamServers = client.StreamServers
	}
	e.refresher = NewRefresher(clk, gate, log, e.refreshTasks())
	return e
}

// Start launches the preload, the refresh tickers, the cascade watcher
// and (for authenticated sessions) the push-stream consumer. It returns
// immediately; everything runs until ctx is cancelled.
func (e *Engine) Start(ctx context.Context) {
	go e.runCascade(ctx)
	go e.Preload(ctx)
	e.refresher.Start(ctx)
	if e.streamServers != nil {
		go e.consumeStream(ctx)
	}
}

// Abort cancels whatever the preload still has in flight. Used on
// teardown and before starting a fresh load cycle.
func (e *Engine) Abort() {
	e.registry.abort()
}

// ForegroundSync forces an immediate refresh of the volatile domains
// (roster, accounts, dashboard counters) when the application regains
// foreground attention. Alerts and the per-server detail map keep their
// regular cadence.
func (e *Engine) ForegroundSync() {
	e.refresher.Kick(taskServers, taskAccounts, taskDashboard)
}
