package schema

// Resolution.

// ResolveRequest asks the registry to resolve an identity to a tab handle.
// Transports resolve by identity only; in-process callers use the core
// package's tagged resolve target directly.
type ResolveRequest struct {
	Identity Identity `json:"identity"`
}

// ResolveResponse reports the resolved session.
type ResolveResponse struct {
	Session SessionSnapshot `json:"session"`
}

// OpenRequest asks the registry to open (or reveal) the tab for an identity.
type OpenRequest struct {
	Identity        Identity `json:"identity"`
	PreferSideGroup bool     `json:"prefer_side_group,omitempty"`
}

// OpenResponse reports the opened session.
type OpenResponse struct {
	Session SessionSnapshot `json:"session"`
}

// Active selection.

// ActivateRequest marks a session as the active selection.
type ActivateRequest struct {
	SessionID SessionID `json:"session_id"`
}

// ActivateResponse reports the active session after the change; Session is
// nil when the id was unknown and the selection was cleared.
type ActivateResponse struct {
	Session *SessionSnapshot `json:"session,omitempty"`
}

// Detach.

// DetachRequest removes a session from management.
type DetachRequest struct {
	SessionID SessionID `json:"session_id"`
}

// DetachResponse reports the detached session; Detached is false when the id
// was not under management (silent no-op).
type DetachResponse struct {
	Detached bool            `json:"detached"`
	Session  SessionSnapshot `json:"session"`
}

// Enumeration.

// ListSessionsRequest asks for the live session list.
type ListSessionsRequest struct{}

// ListSessionsResponse reports the ordered live list and active selection.
type ListSessionsResponse struct {
	Sessions []SessionSnapshot `json:"sessions"`
	// ActiveIndex is -1 when no session is active.
	ActiveIndex int `json:"active_index"`
}
