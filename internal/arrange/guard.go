package arrange

import "sync/atomic"

// passGuard is a process-wide single-flight gate for arrangement passes.
// A trigger that loses the race is dropped, never queued.
type passGuard struct {
	busy atomic.Bool
}

// TryBegin claims the guard. It returns false when a pass is already running.
func (g *passGuard) TryBegin() bool {
	return g.busy.CompareAndSwap(false, true)
}

// End releases the guard.
func (g *passGuard) End() {
	g.busy.Store(false)
}
