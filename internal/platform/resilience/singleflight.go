package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution. The zero value is ready to use.
type SingleFlight struct {
	mu     sync.Mutex
	active map[string]*flightCall
}

type flightCall struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key across concurrent callers. The bool reports whether
// the result was shared from another caller's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.active == nil {
		g.active = make(map[string]*flightCall)
	}
	if c, ok := g.active[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}

	c := &flightCall{done: make(chan struct{})}
	g.active[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()

	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
	close(c.done)

	return c.val, c.err, false
}
