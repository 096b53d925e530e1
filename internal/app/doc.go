// Package app provides the orchestration layer for lynxtop: the sync
// engine that keeps the shared fleet cache fresh, and the composition
// root that wires it to the UI.
//
// # Overview
//
// The engine combines five independent producers around one
// state.Store:
//
//  1. Preload — a one-shot parallel bulk fetch at startup. The endpoint
//     list depends on whether the session is authenticated; every
//     endpoint runs concurrently with its own cancellation handle in the
//     registry; per-endpoint failures are isolated. All results commit
//     in a single atomic patch, after which Initialized flips true. A
//     non-empty roster triggers one secondary bulk-stats fetch.
//  2. Refresher — a declarative cadence table (roster 5s, stats 4s,
//     users+roles 10s, dashboard 15s, health 15s, alerts 30s). Every
//     tick re-checks the suppression gate; a held gate skips the tick
//     before any request is issued. Failures are logged and swallowed;
//     the next tick is the only retry.
//  3. Push stream — one NDJSON channel per authenticated session whose
//     "servers" envelopes replace the roster immediately, out of band
//     from the polling cadence. The channel is never reopened after an
//     error; polling is the fallback.
//  4. Cascade — watches the store and fans out per-server detail
//     requests whenever the roster length changes after initialization,
//     merging whatever succeeded.
//  5. Foreground sync — the UI reports focus regained and the engine
//     kicks the volatile tasks (roster, accounts, dashboard) for an
//     immediate out-of-cadence run.
//
// # Failure policy
//
// Nothing in this package throws at its callers. A fetch that fails
// leaves its domain exactly as it was, writes one log line, and that is
// the end of it. There are no retries, no backoff, and no timeouts
// beyond the API client's per-request timeout.
//
// # Ordering
//
// Producers are not mutually excluded. Two responses landing on the same
// domain in overlapping windows resolve by completion order — last
// response to resolve wins, not last request issued. The stats tick and
// the preload's secondary stats fetch can interleave this way; that is
// accepted behavior, not a race to fix.
package app
