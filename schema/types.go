package schema

// SessionID is the opaque numeric id of a live terminal session.
type SessionID int64

// Identity is the virtual-document URI naming a terminal tab's backing document.
type Identity string

// WindowID identifies the window that owns a terminal session.
type WindowID string

// GroupID identifies an editor tab group.
type GroupID string

// TargetKind selects where a materialized session is shown.
type TargetKind string

const (
	// TargetEditor shows the session as an editor tab.
	TargetEditor TargetKind = "editor"
	// TargetPanel shows the session in the panel area.
	TargetPanel TargetKind = "panel"
)
