package http

import (
	"sync"

	"github.com/pagelift/pagelift/pkg/dom"
	"github.com/pagelift/pagelift/pkg/view"
)

// session holds the live document and view for one location.
type session struct {
	doc  *dom.Document
	view *view.View
}

// sessionEntry holds the per-location mutex and its reference count.
type sessionEntry struct {
	mu   sync.Mutex
	refs int
	sess *session
}

// sessionRegistry serializes access per location so concurrent requests
// never overlap a render on the same view. Entries without an active
// session are garbage collected via reference counting.
type sessionRegistry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{entries: make(map[string]*sessionEntry)}
}

func (r *sessionRegistry) acquire(location string) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[location]
	if !exists {
		entry = &sessionEntry{}
		r.entries[location] = entry
	}
	entry.refs++
	return entry
}

func (r *sessionRegistry) release(location string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[location]
	if !exists {
		return
	}

	entry.refs--
	// Keep entries that hold a session; only lock bookkeeping is collected.
	if entry.refs <= 0 && entry.sess == nil {
		delete(r.entries, location)
	}
}

// with runs fn while holding the location's lock, creating the session on
// first use.
func (r *sessionRegistry) with(location string, init func() (*session, error), fn func(*session) error) error {
	entry := r.acquire(location)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		r.release(location)
	}()

	if entry.sess == nil {
		sess, err := init()
		if err != nil {
			return err
		}
		entry.sess = sess
	}
	return fn(entry.sess)
}

// drop discards the session for a location.
func (r *sessionRegistry) drop(location string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[location]
	if !exists {
		return
	}
	entry.sess = nil
	if entry.refs <= 0 {
		delete(r.entries, location)
	}
}
