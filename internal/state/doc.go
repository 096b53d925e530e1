// Package state provides the shared fleet-state cache for lynxtop.
//
// # Overview
//
// This package implements the in-memory container that every other part
// of the program reads and patches: the preloader commits the initial
// snapshot here, the background refreshers land their periodic updates
// here, the push stream overrides the roster here, and the UI renders
// from snapshots taken here. The cache is volatile; it is rebuilt from
// scratch on every launch and discarded on exit.
//
// # Architecture
//
//	Producers:                         Consumers:
//	┌─────────────────┐
//	│ Loader (once)   │──┐
//	│ Refresher ticks │──┤           ┌──────────────────┐
//	│ Push stream     │──┼─ Apply ──→│ Store            │─ Snapshot ─→ UI
//	│ Cascade fetch   │──┤  (lock)   │ Watch ─→ Cascade │
//	│ Optimistic UI   │──┘           └──────────────────┘
//
// All mutation funnels through Store.Apply, which runs a Patch function
// under the store lock. That gives three guarantees the rest of the
// design leans on:
//
//   - Atomic commits: a reader never observes a half-applied patch, even
//     when a patch touches several domains (the preload commit does).
//   - No lost updates: producers that touch disjoint domains can overlap
//     freely; each patch sees the state left by the previous one.
//   - Last-applied-wins: two producers racing on the same domain resolve
//     by completion order. A slow stats response landing after a newer
//     tick overwrites it. That ordering is deliberate and tested; do not
//     add per-domain exclusion to "fix" it.
//
// # Domains
//
// State carries one field per domain: the server roster, the per-server
// stats and detail maps, dashboard and health singletons, alerts, users,
// roles, audit logs, settings, the public server-type catalog and the
// featured catalog items, plus the Initialized flag. Initialized flips
// true exactly once, when the preload commits; Apply pins it so no later
// patch can revert it.
//
// A failed refresh never writes at all, so a populated domain can only be
// replaced by data, never regressed to empty by an error path.
//
// # Merge policies
//
// Sequence and singleton domains are replaced wholesale on refresh. The
// two maps keyed by server id merge instead: entries absent from an
// incoming payload are kept, and MergeStats additionally preserves a
// previous player list when the incoming entry omits one. See merge.go.
//
// # Suppression
//
// Gate is the process-wide pause switch for background refresh. Holders
// are counted, so independent panels can raise it without coordinating.
//
// # Snapshots
//
// Snapshot returns a deep copy. The UI holds snapshots across frames and
// mutates nothing shared; the copying cost is a handful of small slices
// and maps per second and buys freedom from any read-side locking.
package state
