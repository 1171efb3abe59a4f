package workflow

import "sync"

// Guard refuses a second in-flight submission for the same key. It is the
// structural version of "disable the button while the spinner runs":
// the commit handler begins before calling the service and ends when the
// response lands, so a duplicate submit is rejected instead of raced.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]struct{})}
}

// Begin reports whether the action may proceed. A false return means the
// same key already has a submission in flight.
func (g *Guard) Begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[key]; busy {
		return false
	}
	g.inflight[key] = struct{}{}
	return true
}

func (g *Guard) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
}
