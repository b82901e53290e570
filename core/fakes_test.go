package core

import (
	"context"
	"io"
	"sync"

	"pkt.systems/termtab/schema"
)

type fakeSession struct {
	id       schema.SessionID
	identity schema.Identity
	title    string

	mu       sync.Mutex
	focus    []func()
	dispose  []func()
	disposed bool
}

func newFakeSession(identity schema.Identity) *fakeSession {
	_, id, err := schema.ParseIdentity(identity)
	if err != nil {
		id = 0
	}
	return &fakeSession{id: id, identity: identity, title: "fake"}
}

func (s *fakeSession) ID() schema.SessionID       { return s.id }
func (s *fakeSession) Identity() schema.Identity  { return s.identity }
func (s *fakeSession) Title() string              { return s.title }
func (s *fakeSession) Write(p []byte) (int, error) { return len(p), nil }
func (s *fakeSession) Resize(cols, rows int) error { return nil }

func (s *fakeSession) Attach(w io.Writer) (func(), error) {
	return func() {}, nil
}

func (s *fakeSession) OnFocus(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = append(s.focus, fn)
	return func() {}
}

func (s *fakeSession) OnDispose(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispose = append(s.dispose, fn)
	return func() {}
}

func (s *fakeSession) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	callbacks := append([]func(){}, s.dispose...)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

func (s *fakeSession) focusNow() {
	s.mu.Lock()
	callbacks := append([]func(){}, s.focus...)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

type fakeHandle struct {
	mu           sync.Mutex
	session      Session
	group        schema.GroupID
	detached     bool
	disposed     bool
	disposeCount int
}

func (h *fakeHandle) Group() schema.GroupID { return h.group }

func (h *fakeHandle) Session() Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

func (h *fakeHandle) DetachSession() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = nil
	h.detached = true
}

func (h *fakeHandle) Dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disposed = true
	h.disposeCount++
}

func (h *fakeHandle) Disposed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disposed
}

type fakeFramework struct {
	mu        sync.Mutex
	handles   []*fakeHandle
	opened    []OpenOptions
	activated []schema.GroupID
	visible   []TabHandle
}

func (f *fakeFramework) CreateHandle(session Session) (TabHandle, error) {
	h := &fakeHandle{session: session, group: "group1"}
	f.mu.Lock()
	f.handles = append(f.handles, h)
	f.mu.Unlock()
	return h, nil
}

func (f *fakeFramework) OpenEditor(ctx context.Context, handle TabHandle, opts OpenOptions) error {
	f.mu.Lock()
	f.opened = append(f.opened, opts)
	f.mu.Unlock()
	return nil
}

func (f *fakeFramework) ActivateGroup(group schema.GroupID) {
	f.mu.Lock()
	f.activated = append(f.activated, group)
	f.mu.Unlock()
}

func (f *fakeFramework) VisibleTerminalTabs() []TabHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]TabHandle(nil), f.visible...)
}

type fakeFactory struct {
	mu      sync.Mutex
	created []*fakeSession
	err     error
}

func (f *fakeFactory) Create(ctx context.Context, cfg schema.LaunchConfig, identity schema.Identity) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s := newFakeSession(identity)
	if cfg.Title != "" {
		s.title = cfg.Title
	}
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeFactory) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeFactory) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeBackend struct {
	mu     sync.Mutex
	launch schema.LaunchConfig
	err    error
	calls  []schema.SessionID
	done   chan struct{}
}

func (b *fakeBackend) RequestDetach(ctx context.Context, owner schema.WindowID, id schema.SessionID) (schema.LaunchConfig, error) {
	b.mu.Lock()
	b.calls = append(b.calls, id)
	launch, err := b.launch, b.err
	done := b.done
	b.mu.Unlock()
	if done != nil {
		defer close(done)
	}
	return launch, err
}

type recordingSink struct {
	mu       sync.Mutex
	disposed []schema.SessionEvent
	focused  []schema.SessionEvent
	actives  []schema.ActiveChangedEvent
	lists    []schema.ListChangedEvent
}

func (r *recordingSink) OnSessionDisposed(event schema.SessionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disposed = append(r.disposed, event)
}

func (r *recordingSink) OnSessionFocused(event schema.SessionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focused = append(r.focused, event)
}

func (r *recordingSink) OnActiveChanged(event schema.ActiveChangedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actives = append(r.actives, event)
}

func (r *recordingSink) OnSessionListChanged(event schema.ListChangedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists = append(r.lists, event)
}

func (r *recordingSink) listCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lists)
}

func (r *recordingSink) activeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actives)
}
