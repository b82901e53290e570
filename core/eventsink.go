package core

import "pkt.systems/termtab/schema"

// EventSink receives registry notifications. For a single state change the
// firing order is: session-disposed (when the session ended itself), then
// list-changed. Active-changed fires only from explicit activation changes.
type EventSink interface {
	OnSessionDisposed(event schema.SessionEvent)
	OnSessionFocused(event schema.SessionEvent)
	OnActiveChanged(event schema.ActiveChangedEvent)
	OnSessionListChanged(event schema.ListChangedEvent)
}
