package refresh

import (
	"log/slog"
	"sync"
)

// Registry holds one Coordinator per session, created on first use.
type Registry struct {
	cfg  Config
	deps Deps

	mu     sync.Mutex
	coords map[string]*Coordinator
	closed bool

	// Sessions ended since the last two sweeps. Get refuses them so a request
	// racing a logout cannot start a fresh coordinator.
	ended, endedPrev map[string]struct{}
}

func NewRegistry(cfg Config, deps Deps) *Registry {
	return &Registry{
		cfg:    cfg,
		deps:   deps,
		coords: map[string]*Coordinator{},
		ended:  map[string]struct{}{},
	}
}

// Get returns the session's coordinator, starting a new one if needed.
func (r *Registry) Get(sessionID string) (*Coordinator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if r.isEnded(sessionID) {
		return nil, ErrClosed
	}
	if c, ok := r.coords[sessionID]; ok {
		return c, nil
	}

	c := New(sessionID, r.cfg, r.deps)
	r.coords[sessionID] = c
	r.deps.Metrics.CoordinatorOpened()
	c.Start()
	return c, nil
}

// Lookup returns an existing coordinator without creating one.
func (r *Registry) Lookup(sessionID string) (*Coordinator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coords[sessionID]
	return c, ok
}

func (r *Registry) isEnded(sessionID string) bool {
	if _, ok := r.ended[sessionID]; ok {
		return true
	}
	_, ok := r.endedPrev[sessionID]
	return ok
}

// End tears down the session's coordinator, if any. The session can't be
// reopened afterwards.
func (r *Registry) End(sessionID string) {
	r.mu.Lock()
	r.ended[sessionID] = struct{}{}
	c, ok := r.coords[sessionID]
	if ok {
		delete(r.coords, sessionID)
	}
	r.mu.Unlock()

	if ok {
		c.Close()
		r.deps.Metrics.CoordinatorClosed()
	}
}

// Reap ends every coordinator whose session keep rejects and returns how
// many were ended. keep is called without the registry lock held.
func (r *Registry) Reap(keep func(sessionID string) bool) int {
	r.mu.Lock()
	r.endedPrev, r.ended = r.ended, map[string]struct{}{}
	ids := make([]string, 0, len(r.coords))
	for id := range r.coords {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	var n int
	for _, id := range ids {
		if keep(id) {
			continue
		}
		r.End(id)
		n++
	}
	if n > 0 && r.deps.Logger != nil {
		r.deps.Logger.Info("reaped refresh coordinators", slog.Int("count", n))
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.coords)
}

// Close ends every coordinator and refuses new ones.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	coords := r.coords
	r.coords = map[string]*Coordinator{}
	r.mu.Unlock()

	for _, c := range coords {
		c.Close()
		r.deps.Metrics.CoordinatorClosed()
	}
}
