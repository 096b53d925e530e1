package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moresonsunn/lynxtop/internal/lynx"
)

func TestStore_ApplyCommitsAtomically(t *testing.T) {
	s := NewStore()

	s.Apply(func(st *State) {
		st.Servers = []lynx.Server{{ID: "a", Name: "lobby"}}
		st.Users = []lynx.User{{ID: "u1", Username: "admin"}}
		st.Initialized = true
	})

	snap := s.Snapshot()
	assert.True(t, snap.Initialized)
	require.Len(t, snap.Servers, 1)
	assert.Equal(t, "lobby", snap.Servers[0].Name)
	require.Len(t, snap.Users, 1)
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	s := NewStore()
	s.Apply(func(st *State) {
		st.Servers = []lynx.Server{{ID: "a", Status: "running"}}
		st.ServerStats["a"] = lynx.ServerStats{Players: []lynx.Player{{Name: "steve"}}}
		st.Dashboard = &lynx.DashboardData{TotalServers: 1}
	})

	snap := s.Snapshot()
	snap.Servers[0].Status = "mutated"
	snap.ServerStats["a"] = lynx.ServerStats{CPUPercent: 99}
	snap.Dashboard.TotalServers = 42

	again := s.Snapshot()
	assert.Equal(t, "running", again.Servers[0].Status)
	assert.Equal(t, float64(0), again.ServerStats["a"].CPUPercent)
	require.Len(t, again.ServerStats["a"].Players, 1)
	assert.Equal(t, 1, again.Dashboard.TotalServers)
}

func TestStore_InitializedNeverReverts(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Initialized())

	s.Apply(func(st *State) { st.Initialized = true })
	require.True(t, s.Initialized())

	// A later patch cannot flip it back, even deliberately.
	s.Apply(func(st *State) { st.Initialized = false })
	assert.True(t, s.Initialized())
}

func TestStore_WatchSignalsAndCoalesces(t *testing.T) {
	s := NewStore()

	s.Apply(func(st *State) { st.Alerts = []lynx.Alert{{ID: "1"}} })
	s.Apply(func(st *State) { st.Alerts = []lynx.Alert{{ID: "2"}} })

	select {
	case <-s.Watch():
	default:
		t.Fatal("expected a pending watch signal after Apply")
	}
	select {
	case <-s.Watch():
		t.Fatal("watch signals should coalesce to one")
	default:
	}
}

func TestStore_SetServerStatus(t *testing.T) {
	s := NewStore()
	s.Apply(func(st *State) {
		st.Servers = []lynx.Server{
			{ID: "a", Status: "running"},
			{ID: "b", Status: "running"},
		}
	})

	s.SetServerStatus("a", "stopped")

	snap := s.Snapshot()
	assert.Equal(t, "stopped", snap.Servers[0].Status)
	assert.Equal(t, "running", snap.Servers[1].Status)
}

func TestStore_SetServerStatusUnknownIDIsNoop(t *testing.T) {
	s := NewStore()
	s.Apply(func(st *State) {
		st.Servers = []lynx.Server{{ID: "a", Status: "running"}}
	})

	s.SetServerStatus("missing", "stopped")

	snap := s.Snapshot()
	require.Len(t, snap.Servers, 1)
	assert.Equal(t, "running", snap.Servers[0].Status)
}

func TestStore_PutSetting(t *testing.T) {
	s := NewStore()
	s.PutSetting("motd", "welcome")
	assert.Equal(t, "welcome", s.Snapshot().Settings["motd"])
}

// An optimistic patch survives a later refresh that does not mention the
// entity: the stats tick below touches a different domain and a roster
// replacement for other ids leaves the patched entry alone.
func TestStore_OptimisticPatchSurvivesUnrelatedRefresh(t *testing.T) {
	s := NewStore()
	s.Apply(func(st *State) {
		st.Servers = []lynx.Server{{ID: "a", Status: "running"}}
	})
	s.SetServerStatus("a", "stopped")

	// Stats refresh tick that does not mention server "a".
	s.Apply(func(st *State) {
		st.ServerStats = MergeStats(st.ServerStats, map[string]lynx.ServerStats{
			"b": {CPUPercent: 10},
		})
	})

	srv, ok := s.Snapshot().ServerByID("a")
	require.True(t, ok)
	assert.Equal(t, "stopped", srv.Status)
}
