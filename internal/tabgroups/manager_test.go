package tabgroups

import (
	"context"
	"io"
	"sync"
	"testing"

	"pkt.systems/termtab/core"
	"pkt.systems/termtab/schema"
)

type stubSession struct {
	id       schema.SessionID
	identity schema.Identity
	focused  int
}

func (s *stubSession) ID() schema.SessionID        { return s.id }
func (s *stubSession) Identity() schema.Identity   { return s.identity }
func (s *stubSession) Title() string               { return "stub" }
func (s *stubSession) Write(p []byte) (int, error) { return len(p), nil }
func (s *stubSession) Resize(cols, rows int) error { return nil }
func (s *stubSession) Attach(w io.Writer) (func(), error) {
	return func() {}, nil
}
func (s *stubSession) OnFocus(fn func()) func()   { return func() {} }
func (s *stubSession) OnDispose(fn func()) func() { return func() {} }
func (s *stubSession) Dispose()                   {}
func (s *stubSession) Focus()                     { s.focused++ }

type recordingListener struct {
	mu      sync.Mutex
	actives []*TerminalTab
	visible int
	closed  []*TerminalTab
}

func (l *recordingListener) ActiveTabChanged(tab *TerminalTab) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actives = append(l.actives, tab)
}

func (l *recordingListener) VisibleTabsChanged() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visible++
}

func (l *recordingListener) TabClosed(tab *TerminalTab) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = append(l.closed, tab)
}

func openTab(t *testing.T, m *Manager, session core.Session, opts core.OpenOptions) *TerminalTab {
	t.Helper()
	handle, err := m.CreateHandle(session)
	if err != nil {
		t.Fatalf("create handle: %v", err)
	}
	if err := m.OpenEditor(context.Background(), handle, opts); err != nil {
		t.Fatalf("open editor: %v", err)
	}
	return handle.(*TerminalTab)
}

func TestOpenEditorPlacesTabInGroup(t *testing.T) {
	m := NewManager(nil)
	listener := &recordingListener{}
	defer m.AddListener(listener)()

	tab := openTab(t, m, &stubSession{id: 1, identity: "term://main/1"}, core.OpenOptions{Pinned: true})
	if tab.Group() != "group-main" {
		t.Fatalf("expected main group, got %q", tab.Group())
	}
	if !tab.Pinned() {
		t.Fatalf("expected pinned tab")
	}
	if got := len(m.VisibleTerminalTabs()); got != 1 {
		t.Fatalf("expected one visible tab, got %d", got)
	}
	if listener.visible != 1 {
		t.Fatalf("expected one visible notification, got %d", listener.visible)
	}

	side := openTab(t, m, &stubSession{id: 2, identity: "term://main/2"}, core.OpenOptions{PreferSideGroup: true})
	if side.Group() != "group-side" {
		t.Fatalf("expected side group, got %q", side.Group())
	}
}

func TestReopenDoesNotDuplicate(t *testing.T) {
	m := NewManager(nil)
	tab := openTab(t, m, &stubSession{id: 1, identity: "term://main/1"}, core.OpenOptions{})
	if err := m.OpenEditor(context.Background(), tab, core.OpenOptions{ForceReload: true}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := len(m.VisibleTerminalTabs()); got != 1 {
		t.Fatalf("expected one visible tab after reopen, got %d", got)
	}
}

func TestActivateTabNotifiesAndFocuses(t *testing.T) {
	m := NewManager(nil)
	listener := &recordingListener{}
	defer m.AddListener(listener)()

	session := &stubSession{id: 1, identity: "term://main/1"}
	tab := openTab(t, m, session, core.OpenOptions{})

	m.ActivateTab(tab)
	m.ActivateTab(tab)
	if len(listener.actives) != 1 || listener.actives[0] != tab {
		t.Fatalf("expected one activation notification, got %+v", listener.actives)
	}
	if session.focused != 1 {
		t.Fatalf("expected one focus call, got %d", session.focused)
	}
	if m.ActiveTab() != tab {
		t.Fatalf("expected tab active")
	}
}

func TestCloseTabDisposesAndNotifies(t *testing.T) {
	m := NewManager(nil)
	listener := &recordingListener{}
	defer m.AddListener(listener)()

	tab := openTab(t, m, &stubSession{id: 1, identity: "term://main/1"}, core.OpenOptions{})
	m.ActivateTab(tab)

	m.CloseTab(tab)
	if !tab.Disposed() {
		t.Fatalf("expected tab disposed")
	}
	if got := len(m.VisibleTerminalTabs()); got != 0 {
		t.Fatalf("expected no visible tabs, got %d", got)
	}
	if len(listener.closed) != 1 || listener.closed[0] != tab {
		t.Fatalf("expected close notification, got %+v", listener.closed)
	}
	if m.ActiveTab() != nil {
		t.Fatalf("expected active cleared after close")
	}
	// The clear is observable as a nil activation.
	last := listener.actives[len(listener.actives)-1]
	if last != nil {
		t.Fatalf("expected nil active notification, got %+v", last)
	}

	m.CloseTab(tab)
	if len(listener.closed) != 2 {
		t.Fatalf("expected stale close still notified, got %d", len(listener.closed))
	}
}

func TestOpenOutOfBandIsVisible(t *testing.T) {
	m := NewManager(nil)
	session := &stubSession{id: 9, identity: "term://main/9"}
	tab := m.OpenOutOfBand(session)
	tabs := m.VisibleTerminalTabs()
	if len(tabs) != 1 || tabs[0] != core.TabHandle(tab) {
		t.Fatalf("expected out-of-band tab visible")
	}
	if tab.Session() != core.Session(session) {
		t.Fatalf("expected session attached to tab")
	}
}
