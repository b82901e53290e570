package core

import (
	"io"

	"pkt.systems/termtab/schema"
)

// Session is a live terminal process wrapper identified by a numeric id and a
// virtual-document identity. The registry references sessions, it never owns
// their processes; materialization goes through the SessionFactory.
type Session interface {
	ID() schema.SessionID
	Identity() schema.Identity
	Title() string

	Write(p []byte) (int, error)
	Resize(cols, rows int) error
	// Attach adds a sink for session output and returns a detach func.
	Attach(w io.Writer) (func(), error)

	// OnFocus registers a focus callback and returns its cancel func.
	OnFocus(fn func()) func()
	// OnDispose registers a dispose callback and returns its cancel func.
	// Dispose callbacks fire exactly once, when the session ends.
	OnDispose(fn func()) func()

	Dispose()
}
