package core

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"pkt.systems/pslog"
	"pkt.systems/termtab/internal/persist"
	"pkt.systems/termtab/schema"
)

// Registry tracks which terminal sessions are shown as editor tabs. It owns
// the identity-to-handle map, the deferred launch configurations, the ordered
// live session list, and the active selection. All mutation happens under one
// mutex; events are emitted after the lock is released.
type Registry struct {
	cfg     schema.ServiceConfig
	frame   TabFramework
	factory SessionFactory
	backend Backend
	sink    EventSink
	store   *persist.Store
	logger  pslog.Logger

	mu          sync.Mutex
	entries     map[schema.Identity]*entry
	deferred    map[schema.Identity]schema.LaunchConfig
	live        []Session
	activeIndex int
	pending     map[schema.Identity]struct{}
	shutdown    bool
}

// ResolveTarget selects exactly one resolution input.
type ResolveTarget struct {
	Identity   schema.Identity
	Session    Session
	Descriptor *schema.BackendDescriptor
}

func (t ResolveTarget) validate() error {
	count := 0
	if t.Identity != "" {
		count++
	}
	if t.Session != nil {
		count++
	}
	if t.Descriptor != nil {
		count++
	}
	if count != 1 {
		return schema.ErrInvalidResolveTarget
	}
	return nil
}

// NewRegistry constructs the registry. Framework and Factory are required;
// Backend, EventSink, and Store are optional.
func NewRegistry(cfg schema.ServiceConfig, deps Deps) (*Registry, error) {
	normalized, err := schema.NormalizeServiceConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized
	if deps.Framework == nil {
		return nil, errors.New("tab framework is required")
	}
	if deps.Factory == nil {
		return nil, schema.ErrFactoryUnavailable
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	logger = logger.With("window", cfg.Window)
	r := &Registry{
		cfg:         cfg,
		frame:       deps.Framework,
		factory:     deps.Factory,
		backend:     deps.Backend,
		sink:        deps.EventSink,
		store:       deps.Store,
		logger:      logger,
		entries:     make(map[schema.Identity]*entry),
		deferred:    make(map[schema.Identity]schema.LaunchConfig),
		activeIndex: -1,
		pending:     make(map[schema.Identity]struct{}),
	}
	if r.store != nil {
		snapshot, ok, err := r.store.Load(cfg.Window)
		if err != nil {
			logger.Warn("registry deferred load failed", "err", err)
		} else if ok {
			for identity, launch := range snapshot.Deferred {
				r.deferred[identity] = launch
			}
			logger.Debug("registry deferred loaded", "count", len(snapshot.Deferred))
		}
	}
	return r, nil
}

// Window returns the identity namespace this registry owns.
func (r *Registry) Window() schema.WindowID {
	return r.cfg.Window
}

// ResolveOrCreate resolves the target to its tab handle, creating the session
// and registering the entry when needed. Repeated calls for the same identity
// return the identical handle and fire nothing. A cross-window identity
// triggers an asynchronous detach request and returns ErrResolvePending; the
// caller re-resolves once the deferred launch configuration has arrived.
func (r *Registry) ResolveOrCreate(ctx context.Context, target ResolveTarget) (TabHandle, error) {
	if ctx == nil {
		return nil, errors.New("missing context")
	}
	if err := target.validate(); err != nil {
		return nil, err
	}

	switch {
	case target.Session != nil:
		identity := target.Session.Identity()
		if handle, ok := r.lookupHandle(identity); ok {
			return handle, nil
		}
		return r.adopt(target.Session)

	case target.Descriptor != nil:
		identity := target.Descriptor.Identity()
		if handle, ok := r.lookupHandle(identity); ok {
			return handle, nil
		}
		launch := schema.LaunchConfig{Attach: target.Descriptor, Title: target.Descriptor.Title}
		return r.materialize(ctx, launch, identity)

	default:
		return r.resolveIdentity(ctx, target.Identity)
	}
}

func (r *Registry) resolveIdentity(ctx context.Context, identity schema.Identity) (TabHandle, error) {
	window, sessionID, err := schema.ParseIdentity(identity)
	if err != nil {
		return nil, err
	}
	if handle, ok := r.lookupHandle(identity); ok {
		return handle, nil
	}

	r.mu.Lock()
	launch, havedeferred := r.deferred[identity]
	if havedeferred {
		delete(r.deferred, identity)
	}
	r.mu.Unlock()

	if havedeferred {
		r.persistDeferred()
		handle, err := r.materialize(ctx, launch, identity)
		if err != nil {
			// Put the launch config back so the caller can re-resolve once
			// the transient failure clears.
			r.mu.Lock()
			if _, ok := r.deferred[identity]; !ok {
				r.deferred[identity] = launch
			}
			r.mu.Unlock()
			r.persistDeferred()
			return nil, err
		}
		return handle, nil
	}

	if window != r.cfg.Window {
		if r.backend == nil {
			return nil, schema.ErrBackendUnavailable
		}
		r.requestDetachAsync(ctx, window, sessionID, identity)
		return nil, schema.ErrResolvePending
	}

	r.logger.Warn("registry resolve failed", "identity", identity, "err", schema.ErrUnresolvedIdentity)
	return nil, schema.ErrUnresolvedIdentity
}

func (r *Registry) materialize(ctx context.Context, launch schema.LaunchConfig, identity schema.Identity) (TabHandle, error) {
	session, err := r.factory.Create(ctx, launch, identity)
	if err != nil {
		r.logger.Warn("registry session create failed", "identity", identity, "err", err)
		return nil, err
	}
	return r.adopt(session)
}

// adopt creates a tab handle for the session and registers the entry. When a
// concurrent resolution won the race, the fresh handle is disposed and the
// registered one returned.
func (r *Registry) adopt(session Session) (TabHandle, error) {
	handle, err := r.frame.CreateHandle(session)
	if err != nil {
		return nil, err
	}
	registered, created := r.register(session, handle)
	if !created {
		handle.DetachSession()
		handle.Dispose()
	}
	return registered, nil
}

// register wires the entry's cleanup subscriptions, appends the session to
// the live list, and fires list-changed. It reports false when an entry for
// the identity already existed.
func (r *Registry) register(session Session, handle TabHandle) (TabHandle, bool) {
	identity := session.Identity()

	r.mu.Lock()
	if existing := r.entries[identity]; existing != nil {
		r.mu.Unlock()
		return existing.handle, false
	}
	e := &entry{handle: handle}
	e.cleanups = append(e.cleanups,
		session.OnFocus(func() { r.emitFocused(session) }),
		session.OnDispose(func() { r.handleSessionDisposed(session) }),
	)
	r.entries[identity] = e
	r.live = append(r.live, session)
	listEvent := r.listEventLocked()
	r.mu.Unlock()

	r.logger.Info("registry session registered", "identity", identity, "session", session.ID())
	r.emitListChanged(listEvent)
	return handle, true
}

// OpenTarget opens (or reveals) the tab for the resolved target in the tab
// framework, pinned and forced to reload.
func (r *Registry) OpenTarget(ctx context.Context, target ResolveTarget, preferSideGroup bool) (TabHandle, error) {
	handle, err := r.ResolveOrCreate(ctx, target)
	if err != nil {
		return nil, err
	}
	opts := OpenOptions{
		PreferSideGroup: preferSideGroup,
		Pinned:          true,
		ForceReload:     true,
	}
	if err := r.frame.OpenEditor(ctx, handle, opts); err != nil {
		return nil, err
	}
	r.frame.ActivateGroup(handle.Group())
	return handle, nil
}

// SetActive marks the session as the active selection. An unknown session
// clears the selection. Every change fires exactly one active-changed event
// carrying the resolved current value.
func (r *Registry) SetActive(session Session) {
	r.mu.Lock()
	idx := -1
	if session != nil {
		for i, s := range r.live {
			if s == session {
				idx = i
				break
			}
		}
	}
	changed := idx != r.activeIndex
	r.activeIndex = idx
	var snapshot *schema.SessionSnapshot
	if idx >= 0 {
		s := r.snapshotSessionLocked(r.live[idx], true)
		snapshot = &s
	}
	r.mu.Unlock()

	if changed {
		r.emitActiveChanged(schema.ActiveChangedEvent{Window: r.cfg.Window, Session: snapshot})
	}
}

// ActiveSession returns the active session, or false when none is active.
func (r *Registry) ActiveSession() (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activeIndex < 0 || r.activeIndex >= len(r.live) {
		return nil, false
	}
	return r.live[r.activeIndex], true
}

// Detach removes the session from management: the tab handle's session
// reference is cleared, the entry and any deferred configuration are removed,
// cleanup subscriptions are released, and the handle is disposed unless the
// registry is shutting down. Detaching an unmanaged session is a no-op.
func (r *Registry) Detach(ctx context.Context, session Session) {
	_ = ctx
	r.detach(session, true)
}

// HandleTabClosed translates the framework's tab-close notification into the
// detach path. A handle disposed by a prior detach (drag/drop close) is not
// disposed again.
func (r *Registry) HandleTabClosed(ctx context.Context, handle TabHandle) {
	_ = ctx
	if handle == nil {
		return
	}
	session := handle.Session()
	if session == nil {
		session = r.sessionForHandle(handle)
	}
	if session == nil {
		return
	}
	r.detach(session, !handle.Disposed())
}

// ReattachFromTabFramework reconciles against the framework's visible tabs:
// one unknown visible terminal tab is adopted without a factory call (the
// session already exists). The framework adds at most one out-of-band tab per
// visible-tabs event.
func (r *Registry) ReattachFromTabFramework(ctx context.Context) {
	_ = ctx
	var adoptHandle TabHandle
	var adoptSession Session
	handles := r.frame.VisibleTerminalTabs()

	r.mu.Lock()
	for _, handle := range handles {
		session := handle.Session()
		if session == nil {
			continue
		}
		if _, ok := r.entries[session.Identity()]; ok {
			continue
		}
		adoptHandle, adoptSession = handle, session
		break
	}
	r.mu.Unlock()

	if adoptSession == nil {
		return
	}
	r.logger.Info("registry adopted out-of-band tab", "identity", adoptSession.Identity(), "session", adoptSession.ID())
	r.register(adoptSession, adoptHandle)
}

// HandleWillShutdown flips the shutdown flag: subsequent detaches keep tab
// handles alive (to avoid disrupting tab layout during teardown) but still
// clear in-memory bookkeeping.
func (r *Registry) HandleWillShutdown() {
	r.mu.Lock()
	r.shutdown = true
	r.mu.Unlock()
	r.logger.Info("registry shutdown flagged")
}

// Sessions returns the ordered live session list.
func (r *Registry) Sessions() []Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Session(nil), r.live...)
}

// SessionByID returns a live session by numeric id.
func (r *Registry) SessionByID(id schema.SessionID) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.live {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

// SessionByIdentity returns a live session by virtual-document identity.
func (r *Registry) SessionByIdentity(identity schema.Identity) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entries[identity]
	if e == nil {
		return nil, false
	}
	session := e.handle.Session()
	if session == nil {
		return nil, false
	}
	return session, true
}

func (r *Registry) lookupHandle(identity schema.Identity) (TabHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e := r.entries[identity]; e != nil {
		return e.handle, true
	}
	return nil, false
}

func (r *Registry) sessionForHandle(handle TabHandle) Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	for identity, e := range r.entries {
		if e.handle != handle {
			continue
		}
		for _, s := range r.live {
			if s.Identity() == identity {
				return s
			}
		}
	}
	return nil
}

// handleSessionDisposed runs from a session's dispose callback: it forwards
// the dispose notification and then triggers detachment.
func (r *Registry) handleSessionDisposed(session Session) {
	r.mu.Lock()
	_, tracked := r.entries[session.Identity()]
	snapshot := r.snapshotSessionLocked(session, false)
	r.mu.Unlock()
	if !tracked {
		return
	}
	r.logger.Info("registry session disposed", "identity", session.Identity(), "session", session.ID())
	r.emitDisposed(schema.SessionEvent{Window: r.cfg.Window, Session: snapshot})
	r.detach(session, true)
}

func (r *Registry) detach(session Session, disposeHandle bool) {
	if session == nil {
		return
	}
	identity := session.Identity()

	r.mu.Lock()
	e := r.entries[identity]
	if e == nil {
		r.mu.Unlock()
		return
	}
	delete(r.entries, identity)
	delete(r.deferred, identity)
	idx := -1
	for i, s := range r.live {
		if s == session {
			idx = i
			break
		}
	}
	if idx >= 0 {
		r.live = append(r.live[:idx], r.live[idx+1:]...)
	}
	switch {
	case idx >= 0 && idx == r.activeIndex:
		r.activeIndex = -1
	case idx >= 0 && idx < r.activeIndex:
		r.activeIndex--
	}
	handle := e.handle
	shutdown := r.shutdown
	listEvent := r.listEventLocked()
	r.mu.Unlock()

	e.release()
	handle.DetachSession()
	if disposeHandle && !shutdown && !handle.Disposed() {
		handle.Dispose()
	}
	r.persistDeferred()
	r.logger.Info("registry session detached", "identity", identity, "session", session.ID(), "disposed_handle", disposeHandle && !shutdown)
	r.emitListChanged(listEvent)
}

func (r *Registry) requestDetachAsync(ctx context.Context, owner schema.WindowID, id schema.SessionID, identity schema.Identity) {
	r.mu.Lock()
	if _, inflight := r.pending[identity]; inflight {
		r.mu.Unlock()
		return
	}
	r.pending[identity] = struct{}{}
	r.mu.Unlock()

	r.logger.Info("registry cross-window detach requested", "identity", identity, "owner", owner)
	detachCtx := context.WithoutCancel(ctx)
	go func() {
		launch, err := r.backend.RequestDetach(detachCtx, owner, id)

		r.mu.Lock()
		delete(r.pending, identity)
		if err != nil || r.shutdown {
			r.mu.Unlock()
			if err != nil {
				r.logger.Warn("registry cross-window detach failed", "identity", identity, "err", err)
			}
			return
		}
		r.deferred[identity] = launch
		r.mu.Unlock()

		r.persistDeferred()
		r.logger.Info("registry cross-window detach stored", "identity", identity)
	}()
}

func (r *Registry) persistDeferred() {
	if r.store == nil {
		return
	}
	r.mu.Lock()
	snapshot := persist.WindowSnapshot{Deferred: make(map[schema.Identity]schema.LaunchConfig, len(r.deferred))}
	for identity, launch := range r.deferred {
		snapshot.Deferred[identity] = launch
	}
	r.mu.Unlock()
	if err := r.store.Save(r.cfg.Window, snapshot); err != nil {
		r.logger.Warn("registry deferred save failed", "err", err)
	}
}

func (r *Registry) snapshotSessionLocked(session Session, active bool) schema.SessionSnapshot {
	snapshot := schema.SessionSnapshot{
		ID:       session.ID(),
		Identity: session.Identity(),
		Title:    truncateTitle(session.Title(), r.cfg.TitleMax),
		Active:   active,
	}
	if e := r.entries[session.Identity()]; e != nil {
		snapshot.Group = e.handle.Group()
	}
	return snapshot
}

func (r *Registry) listEventLocked() schema.ListChangedEvent {
	sessions := make([]schema.SessionSnapshot, 0, len(r.live))
	for i, s := range r.live {
		sessions = append(sessions, r.snapshotSessionLocked(s, i == r.activeIndex))
	}
	return schema.ListChangedEvent{Window: r.cfg.Window, Sessions: sessions}
}

func (r *Registry) emitFocused(session Session) {
	if r.sink == nil {
		return
	}
	r.mu.Lock()
	snapshot := r.snapshotSessionLocked(session, r.isActiveLocked(session))
	r.mu.Unlock()
	r.sink.OnSessionFocused(schema.SessionEvent{Window: r.cfg.Window, Session: snapshot})
}

func (r *Registry) emitDisposed(event schema.SessionEvent) {
	if r.sink == nil {
		return
	}
	r.sink.OnSessionDisposed(event)
}

func (r *Registry) emitActiveChanged(event schema.ActiveChangedEvent) {
	if r.sink == nil {
		return
	}
	r.sink.OnActiveChanged(event)
}

func (r *Registry) emitListChanged(event schema.ListChangedEvent) {
	if r.sink == nil {
		return
	}
	r.sink.OnSessionListChanged(event)
}

func (r *Registry) isActiveLocked(session Session) bool {
	return r.activeIndex >= 0 && r.activeIndex < len(r.live) && r.live[r.activeIndex] == session
}

func truncateTitle(title string, max int) string {
	if max <= 0 || len(title) <= max {
		return title
	}
	// Back up to a rune boundary so the cut never leaves invalid UTF-8.
	cut := max
	for cut > 0 && !utf8.RuneStart(title[cut]) {
		cut--
	}
	return title[:cut]
}
