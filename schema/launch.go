package schema

// LaunchConfig carries what is needed to materialize or reattach a session.
type LaunchConfig struct {
	Shell      string            `json:"shell,omitempty"`
	Args       []string          `json:"args,omitempty"`
	Env        map[string]string `json:"env,omitempty"`
	WorkingDir string            `json:"working_dir,omitempty"`
	Title      string            `json:"title,omitempty"`
	Kind       TargetKind        `json:"kind,omitempty"`
	// Attach is set when the config reattaches a detached backend session
	// instead of spawning a fresh process.
	Attach *BackendDescriptor `json:"attach,omitempty"`
}

// BackendDescriptor identifies a detachable session owned by an off-process
// backend, with enough information to reattach it.
type BackendDescriptor struct {
	Owner      WindowID  `json:"owner"`
	SessionID  SessionID `json:"session_id"`
	SocketPath string    `json:"socket_path,omitempty"`
	Title      string    `json:"title,omitempty"`
}

// Identity returns the virtual-document URI of the described session.
func (d BackendDescriptor) Identity() Identity {
	return FormatIdentity(d.Owner, d.SessionID)
}
