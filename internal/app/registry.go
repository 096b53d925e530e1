package app

import (
	"context"
	"sync"
)

// cancelRegistry tracks in-flight request cancel functions so a teardown
// or a fresh load cycle can abort whatever the previous cycle still has
// on the wire. Only the preload batch registers here; periodic ticks and
// the detail fan-out are not cancellable mid-flight.
type cancelRegistry struct {
	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func newCancelRegistry() *cancelRegistry {
	return &cancelRegistry{cancels: map[string]context.CancelFunc{}}
}

// add registers a cancel function under name, aborting any previous
// in-flight request registered under the same name.
func (r *cancelRegistry) add(name string, cancel context.CancelFunc) {
	r.mu.Lock()
	prev := r.cancels[name]
	r.cancels[name] = cancel
	r.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// done releases the entry for name, cancelling its context to free the
// request's resources.
func (r *cancelRegistry) done(name string) {
	r.mu.Lock()
	cancel := r.cancels[name]
	delete(r.cancels, name)
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// abort cancels everything still registered.
func (r *cancelRegistry) abort() {
	r.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(r.cancels))
	for name, cancel := range r.cancels {
		cancels = append(cancels, cancel)
		delete(r.cancels, name)
	}
	r.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}
