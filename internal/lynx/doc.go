// Package lynx provides the HTTP client for the Lynx control-plane API.
//
// # Overview
//
// The client covers the read surface the sync engine polls (roster,
// bulk stats, per-server detail, monitoring, accounts, audit trail,
// catalog), the power actions the UI issues, and the NDJSON push stream.
//
// # Request handling
//
// All requests take a context, send Accept: application/json and a
// lynxtop User-Agent, and carry the Authorization header produced by the
// Credentials collaborator — this package never builds auth material
// itself. Regular requests share a 5 second timeout; the push stream
// uses a separate client with no timeout because it is expected to stay
// open for the whole session.
//
// # Response shapes
//
// Most list endpoints wrap their payload in a keyed envelope
// ({"users": [...]}, {"alerts": [...]}); the client unwraps these so
// callers only see the typed slices. /servers returns a bare array and
// /servers/stats a bare map keyed by server id.
//
// # Errors
//
// Transport failures, non-2xx statuses and malformed JSON all surface as
// wrapped errors. The client does not retry; refresh policy belongs to
// the caller.
package lynx
