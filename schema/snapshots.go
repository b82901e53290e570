package schema

// SessionSnapshot is a read-only view of a tracked session for transports.
type SessionSnapshot struct {
	ID       SessionID `json:"id"`
	Identity Identity  `json:"identity"`
	Title    string    `json:"title,omitempty"`
	Group    GroupID   `json:"group,omitempty"`
	Active   bool      `json:"active"`
}
