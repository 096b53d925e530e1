package app

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/state"
)

// runCascade watches the store and fans out per-server detail fetches
// whenever the roster length changes after initialization. The trigger is
// deliberately the length, not the id set: a replacement that keeps the
// count does not re-fire (the next roster poll or count change covers
// it). One request per known id, best-effort settle: failed ids are
// simply left out of the merge, and ids outside this batch are never
// removed.
func (e *Engine) runCascade(ctx context.Context) {
	lastCount := -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.store.Watch():
		}
		snap := e.store.Snapshot()
		if !snap.Initialized {
			continue
		}
		if len(snap.Servers) == lastCount {
			continue
		}
		lastCount = len(snap.Servers)

		ids := make([]string, 0, len(snap.Servers))
		for _, srv := range snap.Servers {
			ids = append(ids, srv.ID)
		}
		e.fetchServerInfo(ctx, ids)
	}
}

func (e *Engine) fetchServerInfo(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}

	var mu sync.Mutex
	fetched := make(map[string]lynx.ServerInfo, len(ids))

	g := new(errgroup.Group)
	for _, id := range ids {
		g.Go(func() error {
			info, err := e.client.FetchServerInfo(ctx, id)
			if err != nil {
				e.log.Debug("server info fetch failed",
					zap.String("server", id), zap.Error(err))
				return nil
			}
			mu.Lock()
			fetched[id] = *info
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(fetched) == 0 {
		return
	}
	e.store.Apply(func(st *state.State) {
		st.ServerInfo = state.MergeServerInfo(st.ServerInfo, fetched)
	})
}
