// Package hub fans out engine and monitoring events to live observers.
package hub

import (
	"log"
	"sync"

	"autosyndicate/domain"
)

// Conn is one live observer channel. Send delivers a single event; a non-nil
// error means the connection is broken and its owning transport should
// unregister it.
type Conn interface {
	Send(event domain.Event) error
}

// Hub owns the set of live observer connections. Register, Unregister and
// Broadcast are safe to call concurrently; Broadcast iterates a snapshot of
// the set so concurrent membership changes never corrupt a fan-out in flight.
type Hub struct {
	mu    sync.Mutex
	conns map[Conn]struct{}
}

func New() *Hub {
	return &Hub{conns: make(map[Conn]struct{})}
}

// Register adds an observer. Always succeeds.
func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes an observer if present. Removing an absent connection
// is a no-op.
func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

// Count reports the number of registered observers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast delivers an event to every registered connection. A failed send
// is logged and skipped; one bad observer never blocks the rest. Sends happen
// outside the lock, so delivery order across connections is unspecified, but
// sequential Broadcast calls reach any single connection in call order.
func (h *Hub) Broadcast(event domain.Event) {
	h.mu.Lock()
	snapshot := make([]Conn, 0, len(h.conns))
	for c := range h.conns {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	for _, c := range snapshot {
		if err := c.Send(event); err != nil {
			log.Printf("Warning: dropping event %q for observer: %v", event.Kind, err)
		}
	}
}
