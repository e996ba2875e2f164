package importer

import (
	"errors"
	"sync/atomic"
)

// ErrBusy indicates a search or import is already in progress against the
// same destination.
var ErrBusy = errors.New("importer: another search or import is in progress")

// Gate serializes search and import. It is a single busy flag covering both
// paths: whoever holds it excludes everyone else until Release.
type Gate struct {
	busy atomic.Bool
}

// TryAcquire claims the gate or fails with ErrBusy. It never blocks.
func (g *Gate) TryAcquire() error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

// Release returns the gate to the idle state.
func (g *Gate) Release() {
	g.busy.Store(false)
}
