package web

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/session"
)

// ErrUnknownSession is returned for ids that were never issued or have
// been swept.
var ErrUnknownSession = errors.New("unknown session")

type entry struct {
	state   session.State
	touched time.Time
}

// Registry keeps every browser's quiz state in memory, keyed by the id
// carried in its session cookie. All access is serialized by one mutex, so
// events for the same session apply one at a time.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewRegistry creates an empty registry whose idle entries expire after ttl.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create registers a fresh NotStarted session and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &entry{touched: r.now()}
	return id
}

// Get returns the state for id and marks it as used.
func (r *Registry) Get(id string) (session.State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return session.State{}, false
	}
	e.touched = r.now()
	return e.state, true
}

// Apply runs session.Apply for id under the registry lock and stores the
// result. The resulting state is returned even when ev was rejected.
func (r *Registry) Apply(id string, ev session.Event) (session.State, error) {
	return r.Update(id, func(s session.State) (session.State, error) {
		return session.Apply(s, ev)
	})
}

// Update replaces the state for id with fn's result. fn runs under the
// registry lock and must not block.
func (r *Registry) Update(id string, fn func(session.State) (session.State, error)) (session.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return session.State{}, ErrUnknownSession
	}
	next, err := fn(e.state)
	if err != nil {
		return e.state, err
	}
	e.state = next
	e.touched = r.now()
	return next, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed. Sessions waiting on a generation are kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.state.Phase == session.PhaseGenerating {
			continue
		}
		if e.touched.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logging.Logger().WithField("removed", n).Debug("swept idle sessions")
			}
		}
	}
}
