package filtering

import "sync"

// Guard tags each outbound option fetch with a monotonically increasing
// sequence number per cascade step. A response is applied only if it carries
// the latest sequence issued for its step, so a slow earlier fetch can never
// overwrite the result of a later one.
type Guard struct {
	mu     sync.Mutex
	issued [stepCount]uint64
}

// NewGuard creates a new request guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Issue allocates the next sequence number for a step. Issuing for a step
// implicitly invalidates every in-flight request for that step.
func (g *Guard) Issue(step Step) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if step < 0 || step >= stepCount {
		return 0
	}
	g.issued[step]++
	return g.issued[step]
}

// Accept reports whether a response tagged with seq is still current for the
// step. Stale responses must be discarded by the caller.
func (g *Guard) Accept(step Step, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if step < 0 || step >= stepCount {
		return false
	}
	return seq == g.issued[step]
}
