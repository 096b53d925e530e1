package state

import (
	"sync"

	"github.com/moresonsunn/lynxtop/internal/lynx"
)

// State holds every cached domain. Values are either entity sequences
// (unique by id), maps keyed by server id, or nullable singletons.
type State struct {
	Servers     []lynx.Server
	ServerStats map[string]lynx.ServerStats
	ServerInfo  map[string]lynx.ServerInfo
	Dashboard   *lynx.DashboardData
	Health      *lynx.SystemHealth
	Alerts      []lynx.Alert
	Users       []lynx.User
	Roles       []lynx.Role
	AuditLogs   []lynx.AuditLog
	Settings    map[string]string
	ServerTypes []lynx.ServerType
	Featured    []lynx.Modpack

	// Initialized flips true exactly once, when the initial preload
	// commits, and never reverts for the rest of the session.
	Initialized bool
}

// ServerByID returns the roster entry for id, if present.
func (s State) ServerByID(id string) (lynx.Server, bool) {
	for _, srv := range s.Servers {
		if srv.ID == id {
			return srv, true
		}
	}
	return lynx.Server{}, false
}

// Patch mutates a State in place. Patches run under the store's lock and
// must not block; they see the state left by the previous patch and their
// result becomes visible to readers atomically.
type Patch func(*State)

// Store is the single shared state container. All mutation goes through
// Apply, so readers never observe a half-written patch; concurrent
// writers to disjoint domains cannot lose each other's commits, and
// writers to the same domain resolve as last-applied-wins.
type Store struct {
	mu    sync.RWMutex
	state State
	watch chan struct{}
}

// NewStore returns an empty store with all domains at their defaults.
func NewStore() *Store {
	return &Store{
		state: State{
			ServerStats: map[string]lynx.ServerStats{},
			ServerInfo:  map[string]lynx.ServerInfo{},
			Settings:    map[string]string{},
		},
		watch: make(chan struct{}, 1),
	}
}

// Apply runs patch atomically and signals the watch channel.
func (s *Store) Apply(patch Patch) {
	s.mu.Lock()
	wasInitialized := s.state.Initialized
	patch(&s.state)
	if wasInitialized {
		s.state.Initialized = true
	}
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns a deep copy of the current state. The copy is safe to
// read and mutate without affecting the store.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Servers = cloneSlice(s.state.Servers)
	snap.ServerStats = cloneStats(s.state.ServerStats)
	snap.ServerInfo = cloneMap(s.state.ServerInfo)
	snap.Dashboard = clonePtr(s.state.Dashboard)
	snap.Health = clonePtr(s.state.Health)
	snap.Alerts = cloneSlice(s.state.Alerts)
	snap.Users = cloneSlice(s.state.Users)
	snap.Roles = cloneSlice(s.state.Roles)
	snap.AuditLogs = cloneSlice(s.state.AuditLogs)
	snap.Settings = cloneMap(s.state.Settings)
	snap.ServerTypes = cloneSlice(s.state.ServerTypes)
	snap.Featured = cloneSlice(s.state.Featured)
	return snap
}

// Initialized reports whether the initial preload has committed.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Initialized
}

// Watch returns a channel that receives a coalesced signal after every
// Apply. Intended for a single consumer; a slow consumer sees at most one
// pending signal.
func (s *Store) Watch() <-chan struct{} {
	return s.watch
}

func (s *Store) notify() {
	select {
	case s.watch <- struct{}{}:
	default:
	}
}

func cloneSlice[T any](items []T) []T {
	if items == nil {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	dup := make(map[K]V, len(m))
	for k, v := range m {
		dup[k] = v
	}
	return dup
}

func cloneStats(m map[string]lynx.ServerStats) map[string]lynx.ServerStats {
	if m == nil {
		return nil
	}
	dup := make(map[string]lynx.ServerStats, len(m))
	for id, entry := range m {
		entry.Players = cloneSlice(entry.Players)
		dup[id] = entry
	}
	return dup
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
