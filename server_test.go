package termtab

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pkt.systems/pslog"
	"pkt.systems/termtab/core"
	"pkt.systems/termtab/internal/backendgrpc"
	"pkt.systems/termtab/internal/ptyhost"
	"pkt.systems/termtab/internal/tabgroups"
	"pkt.systems/termtab/schema"
)

func newTestComposite(t *testing.T) *compositeServer {
	t.Helper()
	cfg := schema.ServiceConfig{
		Window:   "main",
		StateDir: t.TempDir(),
	}
	logger := pslog.Ctx(context.Background())
	host := ptyhost.NewHost(cfg, logger)
	frame := tabgroups.NewManager(logger)
	registry, err := core.NewRegistry(cfg, core.Deps{
		Framework: frame,
		Factory:   sessionFactory{host: host},
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return &compositeServer{registry: registry, host: host}
}

func TestServerStopFlagsShutdown(t *testing.T) {
	server := newTestComposite(t)
	ctx, cancel := context.WithCancel(context.Background())
	server.ctx = ctx
	server.cancel = cancel
	server.started = true

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := server.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatalf("expected server context to be canceled")
	}
}

func TestServerStopBeforeStart(t *testing.T) {
	server := newTestComposite(t)
	if err := server.Stop(context.Background()); err != nil {
		t.Fatalf("Stop before Start: %v", err)
	}
}

func TestNewRequiresAService(t *testing.T) {
	cfg := ServerConfig{Service: schema.ServiceConfig{Window: "main", StateDir: t.TempDir()}}
	if _, err := New(cfg, ServerDeps{}); err == nil {
		t.Fatalf("expected error when no services enabled")
	}
}

func TestServerStartStopBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := ServerConfig{
		Service: schema.ServiceConfig{Window: "main", StateDir: dir},
		Backend: backendgrpc.Config{SocketPath: filepath.Join(dir, "backend.sock")},
	}
	server, err := New(cfg, ServerDeps{}, WithBackend())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := server.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := server.Start(context.Background()); err == nil {
		t.Fatalf("expected second Start to fail")
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	if err := server.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := server.Wait(); err != nil {
		t.Fatalf("Wait after Stop: %v", err)
	}
}

func TestPeerRouterUnknownOwner(t *testing.T) {
	router := newPeerRouter(map[string]string{"other": "/tmp/other.sock"}, 0, nil)
	_, err := router.RequestDetach(context.Background(), "nowhere", schema.SessionID(1))
	if !errors.Is(err, schema.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	router.Close()
}

func TestSessionFactoryRejectsForeignIdentity(t *testing.T) {
	cfg := schema.ServiceConfig{Window: "main", StateDir: t.TempDir()}
	host := ptyhost.NewHost(cfg, pslog.Ctx(context.Background()))
	defer host.Close()
	factory := sessionFactory{host: host}
	_, err := factory.Create(context.Background(), schema.LaunchConfig{}, schema.Identity("bogus"))
	if err == nil {
		t.Fatalf("expected error for malformed identity")
	}
}
