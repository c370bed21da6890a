package cache

import (
	"context"
	"sync"
	"time"
)

// CallState tracks a coalesced request through its lifecycle.
type CallState int

const (
	StateIdle CallState = iota
	StateInFlight
	StateSettled
)

// Call is one coalesced upstream request. The leader performs the fetch
// and settles the call; everyone else waits on it.
type Call struct {
	started time.Time
	done    chan struct{}

	mu    sync.Mutex
	state CallState
	value any
	err   error
}

// State reports where the call is in its lifecycle.
func (c *Call) State() CallState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until the call settles or the context is cancelled.
func (c *Call) Wait(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.value, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Inflight coalesces concurrent requests for the same key: while a call is
// in flight, joiners within the admission window share it instead of
// issuing their own. Settled calls leave the registry immediately, so a
// failed fetch is retried by the next caller rather than waiting out a TTL.
type Inflight struct {
	window time.Duration

	mu    sync.Mutex
	calls map[string]*Call
}

// NewInflight creates a registry whose calls admit joiners for window.
func NewInflight(window time.Duration) *Inflight {
	if window <= 0 {
		window = time.Minute
	}
	return &Inflight{
		window: window,
		calls:  make(map[string]*Call),
	}
}

// Join returns the call for key and whether this caller leads it. The
// leader must eventually call Settle; joiners just Wait.
func (f *Inflight) Join(key string) (*Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.calls[key]; ok && time.Since(c.started) < f.window {
		return c, false
	}

	c := &Call{
		started: time.Now(),
		done:    make(chan struct{}),
		state:   StateInFlight,
	}
	f.calls[key] = c
	return c, true
}

// Settle records the leader's result, wakes all joiners, and removes the
// call from the registry.
func (f *Inflight) Settle(key string, c *Call, value any, err error) {
	c.mu.Lock()
	c.state = StateSettled
	c.value = value
	c.err = err
	c.mu.Unlock()
	close(c.done)

	f.mu.Lock()
	if f.calls[key] == c {
		delete(f.calls, key)
	}
	f.mu.Unlock()
}

// Pending reports whether a joinable call is currently in flight for key.
func (f *Inflight) Pending(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.calls[key]
	return ok && time.Since(c.started) < f.window
}
