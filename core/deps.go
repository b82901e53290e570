package core

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/termtab/internal/persist"
	"pkt.systems/termtab/schema"
)

// TabHandle is the editor-tab object representing a terminal session within
// the tab framework. The registry holds a reference and is responsible for
// disposing it at the right time; it does not own the tab's placement.
type TabHandle interface {
	Group() schema.GroupID
	// Session returns the wrapped session, or nil before attachment or after
	// DetachSession.
	Session() Session
	// DetachSession clears the handle's session reference without disposing
	// the session.
	DetachSession()
	Dispose()
	Disposed() bool
}

// OpenOptions control how a tab is revealed in the tab framework.
type OpenOptions struct {
	PreferSideGroup bool
	Pinned          bool
	ForceReload     bool
}

// TabFramework is the editor-tab layer the registry coordinates with. The
// registry only reaches it through these accessors; framework notifications
// flow the other way, translated by the composition root into registry
// operations.
type TabFramework interface {
	CreateHandle(session Session) (TabHandle, error)
	OpenEditor(ctx context.Context, handle TabHandle, opts OpenOptions) error
	ActivateGroup(group schema.GroupID)
	// VisibleTerminalTabs enumerates terminal tabs the framework currently
	// shows, including ones created out-of-band (e.g. via a split command).
	VisibleTerminalTabs() []TabHandle
}

// SessionFactory materializes live sessions from launch configurations or
// reattachable backend descriptors.
type SessionFactory interface {
	Create(ctx context.Context, cfg schema.LaunchConfig, identity schema.Identity) (Session, error)
}

// Backend is the off-process owner of detachable terminal sessions, possibly
// in a different window or host.
type Backend interface {
	// RequestDetach asks the owning backend to release a session and returns
	// the launch configuration needed to reattach it locally.
	RequestDetach(ctx context.Context, owner schema.WindowID, id schema.SessionID) (schema.LaunchConfig, error)
}

// Deps captures dependencies for the registry.
type Deps struct {
	Framework TabFramework
	Factory   SessionFactory
	Backend   Backend
	EventSink EventSink
	Store     *persist.Store
	Logger    pslog.Logger
}
