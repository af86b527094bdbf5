// Package pagelock serializes write access to pages within one site. The
// registry is the only synchronization point concurrent edit workflows
// share; everything else on a site is read-mostly after initialization.
package pagelock

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"wikisite/internal/site/metrics"
	pstrings "wikisite/pkg/platform/strings"
)

// PageInUseError signals that a page is already reserved for writing by
// another workflow. Expected contention, not a bug: returned only from
// non-blocking acquisition, and the caller decides whether to retry, queue
// or abort.
type PageInUseError struct {
	Title string
}

func (e *PageInUseError) Error() string {
	return fmt.Sprintf("page %q is already reserved for writing", e.Title)
}

// Registry is a per-site page lock table. One instance per site, created
// with the site and never persisted: a site restored from a saved identity
// starts with zero held locks.
//
// All waiters share one condition variable, so releases broadcast rather
// than signal: a single wake-up could land on a waiter for an unrelated
// title and strand the rest. There is no FIFO fairness among waiters for
// the same title; under contention one of the re-checking waiters wins the
// race to re-insert.
type Registry struct {
	mu      sync.Mutex
	cond    *sync.Cond
	held    map[string]struct{}
	metrics *metrics.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithMetrics attaches lock metrics to the registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry constructs an empty lock registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{held: make(map[string]struct{})}
	r.cond = sync.NewCond(&r.mu)
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// NormalizeTitle maps a title to its lock key. Locks are page-grained, so a
// section fragment is dropped; underscore and space runs collapse to single
// spaces so spelling variants of one title share a key.
func NormalizeTitle(title string) string {
	if i := strings.IndexByte(title, '#'); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(pstrings.CollapseSeparators(title))
}

// Lock reserves a title for writing. With block=true the call suspends
// until the title is free; there is no timeout and no cancellation hook,
// so callers needing bounded waits must layer a deadline externally. With
// block=false the call never suspends and returns PageInUseError when the
// title is held.
func (r *Registry) Lock(title string, block bool) error {
	key := NormalizeTitle(title)

	r.mu.Lock()
	defer r.mu.Unlock()

	waited := false
	var start time.Time
	for {
		if _, taken := r.held[key]; !taken {
			break
		}
		if !block {
			r.metrics.LockContended()
			return &PageInUseError{Title: key}
		}
		if !waited {
			waited = true
			start = time.Now()
			r.metrics.LockContended()
		}
		// Re-check after every wake-up: broadcasts are shared by all
		// waiters and another one may have taken the title first.
		r.cond.Wait()
	}

	r.held[key] = struct{}{}
	r.metrics.SetPagesHeld(len(r.held))
	if waited {
		r.metrics.ObserveLockWait(time.Since(start).Seconds())
	}
	return nil
}

// Unlock releases a title. Releasing a title nobody holds is a safe no-op;
// cleanup paths may race. Every waiter is woken so each can re-check its
// own title.
func (r *Registry) Unlock(title string) {
	key := NormalizeTitle(title)

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.held, key)
	r.metrics.SetPagesHeld(len(r.held))
	r.cond.Broadcast()
}

// IsHeld reports whether a title is currently reserved.
func (r *Registry) IsHeld(title string) bool {
	key := NormalizeTitle(title)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, taken := r.held[key]
	return taken
}

// Held returns the number of currently reserved titles.
func (r *Registry) Held() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.held)
}
