package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/state"
)

func TestFetchServerInfo_BestEffortMerge(t *testing.T) {
	b := newFakeBackend(t)
	b.respond("/servers/a/info", `{"id":"a","world":"overworld"}`)
	b.respond("/servers/b/info", `{"id":"b"}`)
	b.respond("/servers/c/info", `{"id":"c"}`)
	b.setFail("/servers/d/info", true)
	e := newTestEngine(t, b, true)

	// A pre-existing entry outside this batch must survive the merge.
	e.store.Apply(func(st *state.State) {
		st.ServerInfo["z"] = lynx.ServerInfo{ID: "z"}
	})

	e.fetchServerInfo(context.Background(), []string{"a", "b", "c", "d"})

	snap := e.store.Snapshot()
	assert.Len(t, snap.ServerInfo, 4)
	assert.Equal(t, "overworld", snap.ServerInfo["a"].World)
	assert.NotContains(t, snap.ServerInfo, "d")
	assert.Contains(t, snap.ServerInfo, "z")

	for _, id := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, 1, b.count("/servers/"+id+"/info"), id)
	}
}

func TestRunCascade_TriggersOnRosterLengthChange(t *testing.T) {
	b := newFakeBackend(t)
	b.respond("/servers/a/info", `{"id":"a"}`)
	b.respond("/servers/b/info", `{"id":"b"}`)
	b.respond("/servers/c/info", `{"id":"c"}`)
	e := newTestEngine(t, b, true)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go e.runCascade(ctx)

	// Commits before initialization do not trigger the cascade.
	e.store.Apply(func(st *state.State) {
		st.Servers = []lynx.Server{{ID: "a"}}
	})
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, b.count("/servers/a/info"))

	e.store.Apply(func(st *state.State) {
		st.Servers = []lynx.Server{{ID: "a"}, {ID: "b"}}
		st.Initialized = true
	})
	require.Eventually(t, func() bool {
		return len(e.store.Snapshot().ServerInfo) == 2
	}, time.Second, 5*time.Millisecond)

	// Replacing the roster without changing its length does not re-fire:
	// the trigger is the count, not the id set.
	e.store.Apply(func(st *state.State) {
		st.Servers = []lynx.Server{{ID: "a"}, {ID: "c"}}
	})
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, b.count("/servers/c/info"))

	// A length change fires one request per currently known id.
	e.store.Apply(func(st *state.State) {
		st.Servers = []lynx.Server{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	})
	require.Eventually(t, func() bool {
		return b.count("/servers/c/info") == 1
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(e.store.Snapshot().ServerInfo) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, b.count("/servers/a/info"))
}
