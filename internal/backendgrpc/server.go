package backendgrpc

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pkt.systems/pslog"
	"pkt.systems/termtab/internal/backendpb"
	"pkt.systems/termtab/internal/ptyhost"
	"pkt.systems/termtab/schema"
)

// SessionReleaser drops a session from the local registry bookkeeping when a
// remote window takes it over.
type SessionReleaser interface {
	DetachSession(ctx context.Context, req schema.DetachRequest) (schema.DetachResponse, error)
}

// Server exposes the local session host to other windows over gRPC and
// provides a ListenAndServe entrypoint.
type Server struct {
	backendpb.UnimplementedBackendServer

	cfg      Config
	host     *ptyhost.Host
	releaser SessionReleaser
	logger   pslog.Logger

	lastPingUnix int64
}

// NewServer constructs a backend server over the host. The releaser is
// optional; when set, granted detach requests also drop the session from the
// local registry.
func NewServer(cfg Config, host *ptyhost.Host, releaser SessionReleaser, logger pslog.Logger) *Server {
	return &Server{cfg: cfg, host: host, releaser: releaser, logger: logger}
}

// ListenAndServe starts the gRPC server over a Unix domain socket.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.cfg.SocketPath == "" {
		return errors.New("backend socket path is required")
	}
	if s.host == nil {
		return errors.New("session host is required")
	}
	if s.logger == nil {
		s.logger = pslog.Ctx(ctx)
	}
	if s.cfg.KeepaliveMisses <= 0 {
		s.cfg.KeepaliveMisses = 3
	}
	if s.cfg.KeepaliveInterval <= 0 {
		s.cfg.KeepaliveInterval = 10 * time.Second
	}
	if err := os.MkdirAll(filepath.Dir(s.cfg.SocketPath), 0o755); err != nil {
		return err
	}
	_ = os.Remove(s.cfg.SocketPath)

	listener, err := net.Listen("unix", s.cfg.SocketPath)
	if err != nil {
		return err
	}
	grpcServer := grpc.NewServer()
	backendpb.RegisterBackendServer(grpcServer, s)
	s.logger.Info("backend grpc listening", "socket", s.cfg.SocketPath)

	errCh := make(chan error, 1)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.setLastPing(time.Now())
	if s.cfg.Watchdog {
		go s.keepaliveLoop(runCtx, cancel, grpcServer)
	}
	go func() {
		errCh <- grpcServer.Serve(listener)
	}()

	select {
	case <-runCtx.Done():
		grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Ping updates the keepalive timer.
func (s *Server) Ping(ctx context.Context, _ *backendpb.PingRequest) (*backendpb.PingResponse, error) {
	s.setLastPing(time.Now())
	pslog.Ctx(ctx).Trace("backend ping")
	return &backendpb.PingResponse{Ok: true}, nil
}

// RequestDetach releases a session to the requesting window. The session
// keeps running here; its PTY is bridged over a per-session socket.
func (s *Server) RequestDetach(ctx context.Context, req *backendpb.DetachRequest) (*backendpb.DetachResponse, error) {
	id := schema.SessionID(req.GetSessionId())
	log := s.logger.With("session", id)
	launch, err := s.host.Detach(ctx, id)
	if err != nil {
		log.Warn("backend detach refused", "err", err)
		switch {
		case errors.Is(err, schema.ErrSessionNotFound):
			return nil, status.Error(codes.NotFound, err.Error())
		case errors.Is(err, schema.ErrSessionDetached):
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		default:
			return nil, status.Errorf(codes.Internal, "detach failed: %v", err)
		}
	}
	if s.releaser != nil {
		if _, err := s.releaser.DetachSession(ctx, schema.DetachRequest{SessionID: id}); err != nil {
			log.Warn("backend registry release failed", "err", err)
		}
	}
	log.Info("backend detach granted", "requester", req.GetOwner())
	return &backendpb.DetachResponse{Launch: toPBLaunchConfig(launch)}, nil
}

// ListSessions enumerates the sessions the host tracks.
func (s *Server) ListSessions(ctx context.Context, _ *backendpb.ListSessionsRequest) (*backendpb.ListSessionsResponse, error) {
	_ = ctx
	sessions := s.host.Sessions()
	resp := &backendpb.ListSessionsResponse{Sessions: make([]*backendpb.SessionInfo, 0, len(sessions))}
	for _, session := range sessions {
		resp.Sessions = append(resp.Sessions, &backendpb.SessionInfo{
			Id:       int64(session.ID()),
			Identity: string(session.Identity()),
			Title:    session.Title(),
		})
	}
	return resp, nil
}

func (s *Server) setLastPing(t time.Time) {
	atomic.StoreInt64(&s.lastPingUnix, t.UnixNano())
}

func (s *Server) lastPing() time.Time {
	val := atomic.LoadInt64(&s.lastPingUnix)
	if val == 0 {
		return time.Time{}
	}
	return time.Unix(0, val)
}

func (s *Server) keepaliveLoop(ctx context.Context, cancel context.CancelFunc, grpcServer *grpc.Server) {
	ticker := time.NewTicker(s.cfg.KeepaliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			last := s.lastPing()
			if last.IsZero() {
				continue
			}
			if time.Since(last) > time.Duration(s.cfg.KeepaliveMisses)*s.cfg.KeepaliveInterval {
				s.logger.Warn("backend keepalive missed; shutting down", "last_ping", last.Format(time.RFC3339Nano), "interval", s.cfg.KeepaliveInterval, "misses", s.cfg.KeepaliveMisses)
				grpcServer.GracefulStop()
				cancel()
				return
			}
		}
	}
}
