package app

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/state"
)

// fakeBackend is an httptest-backed Lynx API that serves static bodies,
// counts hits per path and can be told to fail specific paths.
type fakeBackend struct {
	t      *testing.T
	mu     sync.Mutex
	hits   map[string]int
	fail   map[string]bool
	bodies map[string]string
	srv    *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		t:      t,
		hits:   map[string]int{},
		fail:   map[string]bool{},
		bodies: map[string]string{},
	}
	b.srv = httptest.NewServer(b)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits[r.URL.Path]++
	failed := b.fail[r.URL.Path]
	body, known := b.bodies[r.URL.Path]
	b.mu.Unlock()
	if failed {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	if !known {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// respond registers (or replaces) a static JSON body for path.
func (b *fakeBackend) respond(path, body string) {
	b.mu.Lock()
	b.bodies[path] = body
	b.mu.Unlock()
}

// setFail toggles a 500 response for path.
func (b *fakeBackend) setFail(path string, fail bool) {
	b.mu.Lock()
	b.fail[path] = fail
	b.mu.Unlock()
}

func (b *fakeBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

// respondAll registers the happy-path payloads for every preload
// endpoint: two servers, one of everything else.
func (b *fakeBackend) respondAll() {
	b.respond("/server-types", `{"types":[{"id":"paper","name":"Paper","game":"minecraft"}]}`)
	b.respond("/servers", `[{"id":"a","name":"lobby","status":"running"},{"id":"b","name":"survival","status":"stopped"}]`)
	b.respond("/monitoring/dashboard-data", `{"totalServers":2,"runningServers":1,"totalPlayers":7}`)
	b.respond("/monitoring/system-health", `{"status":"ok","containers":2}`)
	b.respond("/monitoring/alerts", `{"alerts":[{"id":"al1","severity":"warning","message":"disk"}]}`)
	b.respond("/users", `{"users":[{"id":"u1","username":"admin"}]}`)
	b.respond("/users/roles", `{"roles":[{"id":"r1","name":"owner"}]}`)
	b.respond("/users/audit-logs", `{"logs":[{"id":"l1","action":"login"}]}`)
	b.respond("/catalog/search", `{"results":[{"id":"m1","name":"AllTheMods"}]}`)
	b.respond("/servers/stats", `{"a":{"cpuPercent":12.5,"players":[{"name":"steve"}]},"b":{"cpuPercent":0}}`)
}

func newTestEngine(t *testing.T, b *fakeBackend, authenticated bool) *Engine {
	t.Helper()
	var creds lynx.Credentials
	if authenticated {
		creds = lynx.TokenCredentials("test-token")
	}
	client, err := lynx.NewClient(b.srv.URL, creds)
	require.NoError(t, err)
	return NewEngine(client, state.NewStore(), &state.Gate{}, clock.NewMock(), zaptest.NewLogger(t), authenticated)
}

func findTask(t *testing.T, tasks []Task, name string) Task {
	t.Helper()
	for _, task := range tasks {
		if task.Name == name {
			return task
		}
	}
	t.Fatalf("no task named %q", name)
	return Task{}
}
