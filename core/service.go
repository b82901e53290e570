package core

import (
	"context"

	"pkt.systems/termtab/schema"
)

// Service is the wire-facing registry surface used by the HTTP and SSH
// frontends. Requests and responses use schema types so the transports stay
// codec-only.
type Service interface {
	Resolve(ctx context.Context, req schema.ResolveRequest) (schema.ResolveResponse, error)
	Open(ctx context.Context, req schema.OpenRequest) (schema.OpenResponse, error)
	Activate(ctx context.Context, req schema.ActivateRequest) (schema.ActivateResponse, error)
	DetachSession(ctx context.Context, req schema.DetachRequest) (schema.DetachResponse, error)
	ListSessions(ctx context.Context, req schema.ListSessionsRequest) (schema.ListSessionsResponse, error)
}

var _ Service = (*Registry)(nil)

// Resolve implements Service over ResolveOrCreate for identity targets.
func (r *Registry) Resolve(ctx context.Context, req schema.ResolveRequest) (schema.ResolveResponse, error) {
	if req.Identity == "" {
		return schema.ResolveResponse{}, schema.ErrInvalidRequest
	}
	handle, err := r.ResolveOrCreate(ctx, ResolveTarget{Identity: req.Identity})
	if err != nil {
		return schema.ResolveResponse{}, err
	}
	return schema.ResolveResponse{Session: r.handleSnapshot(handle)}, nil
}

// Open implements Service over Open for identity targets.
func (r *Registry) Open(ctx context.Context, req schema.OpenRequest) (schema.OpenResponse, error) {
	if req.Identity == "" {
		return schema.OpenResponse{}, schema.ErrInvalidRequest
	}
	handle, err := r.OpenTarget(ctx, ResolveTarget{Identity: req.Identity}, req.PreferSideGroup)
	if err != nil {
		return schema.OpenResponse{}, err
	}
	return schema.OpenResponse{Session: r.handleSnapshot(handle)}, nil
}

// Activate implements Service. Session id 0 clears the active selection.
func (r *Registry) Activate(ctx context.Context, req schema.ActivateRequest) (schema.ActivateResponse, error) {
	_ = ctx
	if req.SessionID == 0 {
		r.SetActive(nil)
		return schema.ActivateResponse{}, nil
	}
	session, ok := r.SessionByID(req.SessionID)
	if !ok {
		return schema.ActivateResponse{}, schema.ErrSessionNotFound
	}
	r.SetActive(session)
	snapshot := r.snapshotSession(session)
	return schema.ActivateResponse{Session: &snapshot}, nil
}

// DetachSession implements Service. Detaching an unknown session reports
// Detached false rather than an error.
func (r *Registry) DetachSession(ctx context.Context, req schema.DetachRequest) (schema.DetachResponse, error) {
	session, ok := r.SessionByID(req.SessionID)
	if !ok {
		return schema.DetachResponse{Detached: false}, nil
	}
	snapshot := r.snapshotSession(session)
	r.Detach(ctx, session)
	return schema.DetachResponse{Detached: true, Session: snapshot}, nil
}

// ListSessions implements Service.
func (r *Registry) ListSessions(ctx context.Context, req schema.ListSessionsRequest) (schema.ListSessionsResponse, error) {
	_ = ctx
	_ = req
	r.mu.Lock()
	defer r.mu.Unlock()
	event := r.listEventLocked()
	return schema.ListSessionsResponse{Sessions: event.Sessions, ActiveIndex: r.activeIndex}, nil
}

func (r *Registry) snapshotSession(session Session) schema.SessionSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotSessionLocked(session, r.isActiveLocked(session))
}

func (r *Registry) handleSnapshot(handle TabHandle) schema.SessionSnapshot {
	session := handle.Session()
	if session == nil {
		return schema.SessionSnapshot{}
	}
	return r.snapshotSession(session)
}
