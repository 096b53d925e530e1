package state

import "sync/atomic"

// Gate is the process-wide refresh suppression flag. Any foreground
// component performing a heavy operation may hold it; background refresh
// ticks check it fresh on every tick and skip entirely while it is held.
// Holds nest: the gate stays raised until every holder has released.
type Gate struct {
	holds atomic.Int32
}

// Hold raises the gate and returns a release function. Release is
// idempotent per hold.
func (g *Gate) Hold() (release func()) {
	g.holds.Add(1)
	var done atomic.Bool
	return func() {
		if done.CompareAndSwap(false, true) {
			g.holds.Add(-1)
		}
	}
}

// Held reports whether any component currently holds the gate.
func (g *Gate) Held() bool {
	return g.holds.Load() > 0
}
