package schema

import "errors"

var (
	// ErrInvalidRequest indicates a malformed request payload.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidIdentity indicates a malformed virtual-document URI.
	ErrInvalidIdentity = errors.New("invalid terminal identity")
	// ErrInvalidWindow indicates an invalid window identifier.
	ErrInvalidWindow = errors.New("invalid window")
	// ErrInvalidResolveTarget indicates a resolve request that does not set
	// exactly one target variant.
	ErrInvalidResolveTarget = errors.New("resolve target must set exactly one of identity, session, or descriptor")
	// ErrSessionNotFound indicates the session is not under management.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionDetached indicates the session was already detached from its tab.
	ErrSessionDetached = errors.New("session already detached")
	// ErrNotTerminalTab indicates the addressed editor tab is not a terminal tab.
	ErrNotTerminalTab = errors.New("not a terminal tab")
	// ErrUnresolvedIdentity indicates an identity with neither a live session
	// nor a stored launch configuration.
	ErrUnresolvedIdentity = errors.New("no session or launch configuration for identity")
	// ErrResolvePending indicates a cross-window detach request was issued and
	// the caller must re-resolve once the launch configuration arrives.
	ErrResolvePending = errors.New("resolution pending cross-window detach")
	// ErrBackendUnavailable indicates no off-process backend is configured.
	ErrBackendUnavailable = errors.New("backend not configured")
	// ErrFactoryUnavailable indicates no session factory is configured.
	ErrFactoryUnavailable = errors.New("session factory not configured")
)
