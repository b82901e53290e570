package backendgrpc

import "time"

// Config controls the backend gRPC server/client setup.
type Config struct {
	SocketPath        string
	KeepaliveInterval time.Duration
	KeepaliveMisses   int
	// Watchdog makes the server shut itself down when no peer pings for
	// KeepaliveMisses intervals. Only the handoff-only daemon sets it; a
	// combined server has its own frontends and no obligation to be pinged.
	Watchdog bool
}
