package httpapi

import (
	"context"
	"sync"
	"time"

	"pkt.systems/termtab/internal/logx"
	"pkt.systems/termtab/schema"
)

// StreamEvent is sent to SSE clients.
type StreamEvent struct {
	Seq       uint64                   `json:"seq"`
	Type      string                   `json:"type"`
	Window    schema.WindowID          `json:"window,omitempty"`
	Session   *schema.SessionSnapshot  `json:"session,omitempty"`
	Sessions  []schema.SessionSnapshot `json:"sessions,omitempty"`
	Snapshot  *SnapshotPayload         `json:"snapshot,omitempty"`
	Timestamp time.Time                `json:"timestamp"`
}

// SnapshotPayload seeds client state on connect.
type SnapshotPayload struct {
	Sessions    []schema.SessionSnapshot `json:"sessions"`
	ActiveIndex int                      `json:"active_index"`
}

// Hub broadcasts registry events per window with sequence numbers and a
// bounded replay history.
type Hub struct {
	mu          sync.Mutex
	windows     map[schema.WindowID]*windowHub
	historySize int
}

// NewHub constructs a hub with the given history size.
func NewHub(historySize int) *Hub {
	if historySize <= 0 {
		historySize = 1000
	}
	return &Hub{
		windows:     make(map[schema.WindowID]*windowHub),
		historySize: historySize,
	}
}

// OnSessionDisposed implements core.EventSink.
func (h *Hub) OnSessionDisposed(event schema.SessionEvent) {
	log := logx.WithWindow(context.Background(), event.Window)
	log.Trace("hub disposed event", "session", event.Session.ID)
	session := event.Session
	h.publish(event.Window, StreamEvent{
		Type:      string(schema.EventSessionDisposed),
		Window:    event.Window,
		Session:   &session,
		Timestamp: time.Now(),
	})
}

// OnSessionFocused implements core.EventSink.
func (h *Hub) OnSessionFocused(event schema.SessionEvent) {
	log := logx.WithWindow(context.Background(), event.Window)
	log.Trace("hub focused event", "session", event.Session.ID)
	session := event.Session
	h.publish(event.Window, StreamEvent{
		Type:      string(schema.EventSessionFocused),
		Window:    event.Window,
		Session:   &session,
		Timestamp: time.Now(),
	})
}

// OnActiveChanged implements core.EventSink.
func (h *Hub) OnActiveChanged(event schema.ActiveChangedEvent) {
	log := logx.WithWindow(context.Background(), event.Window)
	log.Trace("hub active event", "has_session", event.Session != nil)
	h.publish(event.Window, StreamEvent{
		Type:      string(schema.EventActiveChanged),
		Window:    event.Window,
		Session:   event.Session,
		Timestamp: time.Now(),
	})
}

// OnSessionListChanged implements core.EventSink.
func (h *Hub) OnSessionListChanged(event schema.ListChangedEvent) {
	log := logx.WithWindow(context.Background(), event.Window)
	log.Trace("hub list event", "sessions", len(event.Sessions))
	h.publish(event.Window, StreamEvent{
		Type:      string(schema.EventListChanged),
		Window:    event.Window,
		Sessions:  event.Sessions,
		Timestamp: time.Now(),
	})
}

// Subscribe registers a subscriber for a window.
func (h *Hub) Subscribe(window schema.WindowID) (<-chan StreamEvent, func(), uint64, []StreamEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	wh := h.getOrCreateWindowHubLocked(window)
	ch := make(chan StreamEvent, 256)
	wh.subs[ch] = struct{}{}
	history := append([]StreamEvent(nil), wh.history...)
	seq := wh.seq
	log := logx.WithWindow(context.Background(), window)
	log.Info("hub subscribe", "subs", len(wh.subs), "history", len(history))
	// The channel is never closed: publish releases the lock before sending
	// and may still hold a snapshot of the subscriber set. Receivers exit on
	// their request context instead.
	unsub := func() {
		h.mu.Lock()
		delete(wh.subs, ch)
		remaining := len(wh.subs)
		h.mu.Unlock()
		log.Info("hub unsubscribe", "subs", remaining)
	}
	return ch, unsub, seq, history
}

// Replay returns events after the provided seq.
func (h *Hub) Replay(window schema.WindowID, after uint64) []StreamEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	wh := h.windows[window]
	if wh == nil {
		return nil
	}
	events := make([]StreamEvent, 0, len(wh.history))
	for _, event := range wh.history {
		if event.Seq > after {
			events = append(events, event)
		}
	}
	logx.WithWindow(context.Background(), window).Debug("hub replay", "after", after, "count", len(events))
	return events
}

func (h *Hub) publish(window schema.WindowID, event StreamEvent) {
	h.mu.Lock()
	wh := h.getOrCreateWindowHubLocked(window)
	wh.seq++
	event.Seq = wh.seq
	wh.history = append(wh.history, event)
	if len(wh.history) > h.historySize {
		wh.history = wh.history[len(wh.history)-h.historySize:]
	}
	subs := make([]chan StreamEvent, 0, len(wh.subs))
	for sub := range wh.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	dropped := 0
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		logx.WithWindow(context.Background(), window).Warn("hub event dropped", "type", event.Type, "dropped", dropped)
	}
}

func (h *Hub) getOrCreateWindowHubLocked(window schema.WindowID) *windowHub {
	wh := h.windows[window]
	if wh == nil {
		wh = &windowHub{
			subs: make(map[chan StreamEvent]struct{}),
		}
		h.windows[window] = wh
	}
	return wh
}

type windowHub struct {
	seq     uint64
	history []StreamEvent
	subs    map[chan StreamEvent]struct{}
}
