package tabgroups

import (
	"pkt.systems/termtab/core"
	"pkt.systems/termtab/schema"
)

// TerminalTab is a tab widget wrapping a terminal session. Its fields are
// guarded by the owning manager's mutex.
type TerminalTab struct {
	manager  *Manager
	session  core.Session
	group    schema.GroupID
	pinned   bool
	disposed bool
}

// Group returns the tab group the tab lives in.
func (t *TerminalTab) Group() schema.GroupID {
	t.manager.mu.Lock()
	defer t.manager.mu.Unlock()
	return t.group
}

// Session returns the wrapped session, or nil once detached.
func (t *TerminalTab) Session() core.Session {
	t.manager.mu.Lock()
	defer t.manager.mu.Unlock()
	return t.session
}

// DetachSession clears the session reference without tearing the widget down.
func (t *TerminalTab) DetachSession() {
	t.manager.mu.Lock()
	t.session = nil
	t.manager.mu.Unlock()
}

// Dispose tears the widget down and removes it from the visible list.
// Disposing twice is a no-op.
func (t *TerminalTab) Dispose() {
	t.manager.mu.Lock()
	if t.disposed {
		t.manager.mu.Unlock()
		return
	}
	t.disposed = true
	t.manager.mu.Unlock()
	t.manager.removeVisible(t)
}

// Disposed reports whether the widget has been torn down.
func (t *TerminalTab) Disposed() bool {
	t.manager.mu.Lock()
	defer t.manager.mu.Unlock()
	return t.disposed
}

// Pinned reports whether the tab is pinned in its group.
func (t *TerminalTab) Pinned() bool {
	t.manager.mu.Lock()
	defer t.manager.mu.Unlock()
	return t.pinned
}
