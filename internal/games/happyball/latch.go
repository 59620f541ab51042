package happyball

import "sync/atomic"

// JumpLatch is an edge-triggered jump command.
// Raise may be called from any goroutine; any number of raises between two
// ticks collapse into a single pending jump, which the tick consumes.
type JumpLatch struct {
	pending atomic.Bool
}

// Raise marks a jump as pending.
func (l *JumpLatch) Raise() {
	l.pending.Store(true)
}

// Consume reports whether a jump was pending and clears it.
func (l *JumpLatch) Consume() bool {
	return l.pending.Swap(false)
}

// Pending reports whether a jump is waiting for the next tick.
func (l *JumpLatch) Pending() bool {
	return l.pending.Load()
}
