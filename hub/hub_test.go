package hub

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"autosyndicate/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	events []domain.Event
	fail   bool
}

func (c *fakeConn) Send(event domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("send failed")
	}
	c.events = append(c.events, event)
	return nil
}

func (c *fakeConn) received() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Event(nil), c.events...)
}

func TestBroadcast_ReachesAllObservers(t *testing.T) {

	h := New()
	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		h.Register(c)
	}

	h.Broadcast(domain.Event{Kind: "test.event", Body: "payload"})

	for i, c := range conns {
		events := c.received()
		if len(events) != 1 {
			t.Errorf("observer %d received %d events, want 1", i, len(events))
		}
	}
}

func TestBroadcast_FailingObserverDoesNotBlockOthers(t *testing.T) {

	h := New()
	healthy1 := &fakeConn{}
	broken := &fakeConn{fail: true}
	healthy2 := &fakeConn{}
	h.Register(healthy1)
	h.Register(broken)
	h.Register(healthy2)

	h.Broadcast(domain.Event{Kind: "covenant.alert"})

	if got := len(healthy1.received()); got != 1 {
		t.Errorf("healthy1 received %d events, want 1", got)
	}
	if got := len(healthy2.received()); got != 1 {
		t.Errorf("healthy2 received %d events, want 1", got)
	}
	if got := len(broken.received()); got != 0 {
		t.Errorf("broken observer recorded %d deliveries", got)
	}
}

func TestUnregister_Idempotent(t *testing.T) {

	h := New()
	c := &fakeConn{}
	h.Register(c)
	h.Unregister(c)
	h.Unregister(c) // absent connection is a no-op

	if h.Count() != 0 {
		t.Errorf("expected empty hub, got %d", h.Count())
	}

	h.Broadcast(domain.Event{Kind: "test.event"})
	if len(c.received()) != 0 {
		t.Errorf("unregistered observer must not receive events")
	}
}

func TestBroadcast_PerConnectionOrder(t *testing.T) {

	h := New()
	c := &fakeConn{}
	h.Register(c)

	for i := 0; i < 5; i++ {
		h.Broadcast(domain.Event{Kind: fmt.Sprintf("event.%d", i)})
	}

	events := c.received()
	if len(events) != 5 {
		t.Fatalf("received %d events, want 5", len(events))
	}
	for i, event := range events {
		if want := fmt.Sprintf("event.%d", i); event.Kind != want {
			t.Errorf("event %d out of order: got %s, want %s", i, event.Kind, want)
		}
	}
}

func TestHub_ConcurrentMembershipDuringBroadcast(t *testing.T) {

	h := New()
	for i := 0; i < 10; i++ {
		h.Register(&fakeConn{})
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := &fakeConn{}
			h.Register(c)
			h.Unregister(c)
		}()
		go func() {
			defer wg.Done()
			h.Broadcast(domain.Event{Kind: "churn.event"})
		}()
	}
	wg.Wait()

	if h.Count() != 10 {
		t.Errorf("expected the original 10 observers, got %d", h.Count())
	}
}
