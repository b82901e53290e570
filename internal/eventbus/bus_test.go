package eventbus

import (
	"testing"
	"time"

	"pkt.systems/termtab/schema"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("main")
	defer cancel()

	event := schema.SessionEvent{
		Window:  "main",
		Session: schema.SessionSnapshot{ID: 1, Identity: "term://main/1"},
	}
	bus.OnSessionFocused(event)

	select {
	case got := <-ch:
		if got.Type != schema.EventSessionFocused {
			t.Fatalf("expected focused event, got %v", got.Type)
		}
		if got.Session.Session.ID != 1 {
			t.Fatalf("unexpected payload: %+v", got.Session)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for event")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("main")
	cancel()
	bus.OnSessionListChanged(schema.ListChangedEvent{Window: "main"})
	select {
	case got := <-ch:
		t.Fatalf("unexpected event after unsubscribe: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	bus := New(nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			bus.OnSessionListChanged(schema.ListChangedEvent{Window: "main"})
		}
	}()
	for i := 0; i < 1000; i++ {
		_, cancel := bus.Subscribe("main")
		cancel()
	}
	<-done
}

func TestPublishIsWindowScoped(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("main")
	defer cancel()

	bus.OnSessionListChanged(schema.ListChangedEvent{Window: "other"})
	select {
	case got := <-ch:
		t.Fatalf("unexpected event for other window: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	bus := New(nil)
	bus.depth = 1
	_, cancel := bus.Subscribe("main")
	defer cancel()

	var sendCh chan Event
	bus.mu.Lock()
	for ch := range bus.subs["main"] {
		sendCh = ch
		break
	}
	bus.mu.Unlock()
	if sendCh == nil {
		t.Fatalf("expected subscriber channel")
	}
	sendCh <- Event{Type: schema.EventListChanged}
	done := make(chan struct{})
	go func() {
		bus.OnSessionListChanged(schema.ListChangedEvent{Window: "main"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("publish blocked on full channel")
	}
}
