package schema

// RegistryEventType names the registry notification streams.
type RegistryEventType string

const (
	// EventSessionDisposed fires when a tracked session disposes itself.
	EventSessionDisposed RegistryEventType = "session_disposed"
	// EventSessionFocused fires when a tracked session receives focus.
	EventSessionFocused RegistryEventType = "session_focused"
	// EventActiveChanged fires when the active selection changes.
	EventActiveChanged RegistryEventType = "active_changed"
	// EventListChanged fires when the live session list changes.
	EventListChanged RegistryEventType = "list_changed"
)

// SessionEvent carries the session a disposed or focused notification is about.
type SessionEvent struct {
	Window  WindowID
	Session SessionSnapshot
}

// ActiveChangedEvent carries the new active session; Session is nil when no
// session is active.
type ActiveChangedEvent struct {
	Window  WindowID
	Session *SessionSnapshot
}

// ListChangedEvent carries the ordered live session list after a change.
type ListChangedEvent struct {
	Window   WindowID
	Sessions []SessionSnapshot
}
