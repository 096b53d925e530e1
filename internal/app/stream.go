package app

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/state"
)

type streamOpener func(ctx context.Context) (io.ReadCloser, error)

// consumeStream reads the server push channel until it ends, applying
// roster envelopes as out-of-band wholesale replacements. Malformed lines
// and unknown envelope types are dropped without comment.
//
// When the channel errors it is closed and not reopened; the 5s roster
// poll is the only fallback. Whether a reconnect-with-backoff belongs
// here is unresolved — changing it would change observable behavior, so
// the connect-once semantics stay.
func (e *Engine) consumeStream(ctx context.Context) {
	body, err := e.streamServers(ctx)
	if err != nil {
		e.log.Warn("push stream unavailable", zap.Error(err))
		return
	}
	defer func() { _ = body.Close() }()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var env lynx.StreamEnvelope
		if err := json.Unmarshal(line, &env); err != nil {
			continue
		}
		if env.Type != "servers" {
			continue
		}
		servers := env.Servers
		e.store.Apply(func(st *state.State) { st.Servers = servers })
	}
	if err := scanner.Err(); err != nil {
		e.log.Warn("push stream closed", zap.Error(err))
	} else {
		e.log.Info("push stream ended")
	}
}
