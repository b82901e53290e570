package eventbus

import (
	"context"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/termtab/schema"
)

// Event represents a UI-facing registry event.
type Event struct {
	Type    schema.RegistryEventType
	Session schema.SessionEvent
	Active  schema.ActiveChangedEvent
	List    schema.ListChangedEvent
}

// Bus fanouts registry events to per-window subscribers.
type Bus struct {
	mu    sync.Mutex
	subs  map[schema.WindowID]map[chan Event]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[schema.WindowID]map[chan Event]struct{}),
		log:   logger,
		depth: 256,
	}
}

// Subscribe registers a subscriber for the window and returns a channel + cancel.
func (b *Bus) Subscribe(window schema.WindowID) (<-chan Event, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan Event, b.depth)
	b.mu.Lock()
	windowSubs := b.subs[window]
	if windowSubs == nil {
		windowSubs = make(map[chan Event]struct{})
		b.subs[window] = windowSubs
	}
	windowSubs[ch] = struct{}{}
	count := len(windowSubs)
	b.mu.Unlock()
	if b.log != nil {
		b.log.With("window", window).Debug("eventbus subscribe", "subs", count)
	}
	// The channel stays open after cancel: publish sends outside the lock
	// against a snapshot of the subscriber set. Receivers exit on their own
	// context.
	return ch, func() {
		b.mu.Lock()
		if subs := b.subs[window]; subs != nil {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, window)
			}
		}
		b.mu.Unlock()
		if b.log != nil {
			b.log.With("window", window).Debug("eventbus unsubscribe")
		}
	}
}

// OnSessionDisposed publishes a session disposed event.
func (b *Bus) OnSessionDisposed(event schema.SessionEvent) {
	b.publish(event.Window, Event{Type: schema.EventSessionDisposed, Session: event})
}

// OnSessionFocused publishes a session focused event.
func (b *Bus) OnSessionFocused(event schema.SessionEvent) {
	b.publish(event.Window, Event{Type: schema.EventSessionFocused, Session: event})
}

// OnActiveChanged publishes an active selection event.
func (b *Bus) OnActiveChanged(event schema.ActiveChangedEvent) {
	b.publish(event.Window, Event{Type: schema.EventActiveChanged, Active: event})
}

// OnSessionListChanged publishes a list change event.
func (b *Bus) OnSessionListChanged(event schema.ListChangedEvent) {
	b.publish(event.Window, Event{Type: schema.EventListChanged, List: event})
}

func (b *Bus) publish(window schema.WindowID, event Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	windowSubs := b.subs[window]
	subs := make([]chan Event, 0, len(windowSubs))
	for sub := range windowSubs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	dropped := 0
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 && b.log != nil {
		b.log.With("window", window).Trace("eventbus dropped", "count", dropped)
	}
}
