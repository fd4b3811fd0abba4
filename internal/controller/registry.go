// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package controller

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	once     sync.Once
	ctrl     *Controller
	err      error
	lastSeen time.Time
}

// Registry hands out one controller per browser session id.
type Registry struct {
	deps Deps

	mu      sync.Mutex
	entries map[string]*entry
	pending sync.WaitGroup
}

func NewRegistry(deps Deps) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Registry{deps: deps, entries: map[string]*entry{}}
}

// Get returns the controller of sid. A new controller restores the session
// persisted for sid before it is returned.
func (r *Registry) Get(ctx context.Context, sid string) (*Controller, error) {
	r.mu.Lock()
	e, ok := r.entries[sid]
	if !ok {
		e = &entry{ctrl: newController(sid, r.deps, &r.pending)}
		r.entries[sid] = e
	}
	e.lastSeen = r.deps.Now()
	r.mu.Unlock()

	e.once.Do(func() { e.err = e.ctrl.Load(ctx) })
	if e.err != nil {
		r.mu.Lock()
		if r.entries[sid] == e {
			delete(r.entries, sid)
		}
		r.mu.Unlock()
		return nil, e.err
	}
	return e.ctrl, nil
}

// Evict drops controllers not used for longer than idle. Their sessions stay
// persisted and are restored on the next request. A controller charging a
// booking is kept until the charge settled.
func (r *Registry) Evict(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	cutoff := r.deps.Now().Add(-idle)
	for sid, e := range r.entries {
		if e.lastSeen.Before(cutoff) && !e.ctrl.booking.Load() {
			delete(r.entries, sid)
			n++
		}
	}
	return n
}

// Wait blocks until the background work of every controller handed out so
// far has finished, evicted ones included.
func (r *Registry) Wait() {
	r.pending.Wait()
}

// Len is the number of live controllers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
