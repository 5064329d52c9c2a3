// Package runtime owns the live session state: who is connected, and how
// intents become validated, enriched, broadcast and logged events.
package runtime

import (
	"sync"
	"time"

	"chatroom/contract"
	"chatroom/domain"
	"chatroom/errors"
)

// Registry tracks the connected participants and their delivery sinks.
// It only mutates membership; broadcasting the refreshed presence snapshot
// is the broker's job.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink
	order    []domain.Participant // join order
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]contract.EventSink)}
}

// Register claims an identifier for a live session. At most one live session
// per identifier: a colliding registration is rejected and leaves the
// registry untouched.
func (r *Registry) Register(identifier string, sink contract.EventSink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[identifier]; ok {
		return errors.ErrDuplicateIdentifier
	}
	r.sessions[identifier] = sink
	r.order = append(r.order, domain.Participant{Identifier: identifier, JoinedAt: time.Now().UTC()})
	return nil
}

// Unregister is idempotent: removing an absent identifier is a no-op. This
// covers transport-detected disconnects racing with explicit logout.
func (r *Registry) Unregister(identifier string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[identifier]; !ok {
		return
	}
	delete(r.sessions, identifier)
	for i, p := range r.order {
		if p.Identifier == identifier {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Snapshot returns the current membership in join order. Safe to call
// concurrently with Register and Unregister.
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.order))
	for _, p := range r.order {
		users = append(users, p.Identifier)
	}
	return users
}

// Sinks returns the delivery sinks of all connected sessions in join order.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.order))
	for _, p := range r.order {
		if sink, ok := r.sessions[p.Identifier]; ok {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}
