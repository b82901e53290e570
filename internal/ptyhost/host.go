package ptyhost

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/creack/pty"
	"pkt.systems/pslog"
	"pkt.systems/termtab/schema"
)

// Host spawns and tracks terminal sessions for one window. It implements the
// registry's session factory: fresh launches get a local PTY, attach
// descriptors get a stream to the owning backend's unix socket.
type Host struct {
	cfg     schema.ServiceConfig
	sockDir string
	log     pslog.Logger

	nextID   atomic.Int64
	mu       sync.Mutex
	sessions map[schema.SessionID]*PtySession
	servers  map[schema.SessionID]net.Listener
}

// NewHost constructs a Host. cfg must already be normalized.
func NewHost(cfg schema.ServiceConfig, logger pslog.Logger) *Host {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Host{
		cfg:      cfg,
		sockDir:  filepath.Join(cfg.StateDir, "sockets"),
		log:      logger.With("window", cfg.Window),
		sessions: make(map[schema.SessionID]*PtySession),
		servers:  make(map[schema.SessionID]net.Listener),
	}
}

// AllocateIdentity reserves a fresh session id in this host's window.
func (h *Host) AllocateIdentity() schema.Identity {
	return schema.FormatIdentity(h.cfg.Window, schema.SessionID(h.nextID.Add(1)))
}

// Create implements the registry's session factory.
func (h *Host) Create(ctx context.Context, cfg schema.LaunchConfig, identity schema.Identity) (*PtySession, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	_, id, err := schema.ParseIdentity(identity)
	if err != nil {
		return nil, err
	}
	if cfg.Attach != nil {
		return h.attach(id, identity, cfg)
	}
	return h.spawn(ctx, id, identity, cfg)
}

func (h *Host) spawn(ctx context.Context, id schema.SessionID, identity schema.Identity, cfg schema.LaunchConfig) (*PtySession, error) {
	shell := cfg.Shell
	if shell == "" {
		shell = h.cfg.DefaultShell
	}
	dir := cfg.WorkingDir
	if dir == "" {
		dir = h.cfg.DefaultWorkingDir
	}
	title := cfg.Title
	if title == "" {
		title = filepath.Base(shell)
	}

	cmd := exec.Command(shell, cfg.Args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	for key, value := range h.cfg.Env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}
	for key, value := range cfg.Env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 80, Rows: 24})
	if err != nil {
		h.log.Warn("pty start failed", "shell", shell, "err", err)
		return nil, fmt.Errorf("start pty: %w", err)
	}

	session := newSession(id, identity, title, h.log)
	session.ptmx = ptmx
	session.cmd = cmd
	h.track(session)
	go session.readLoop(ptmx)
	h.log.Info("session spawned", "session", id, "shell", shell, "pid", cmd.Process.Pid)
	return session, nil
}

// attach connects to a detached backend session's unix socket and wraps the
// stream as a session.
func (h *Host) attach(id schema.SessionID, identity schema.Identity, cfg schema.LaunchConfig) (*PtySession, error) {
	desc := cfg.Attach
	if desc.SocketPath == "" {
		return nil, schema.ErrBackendUnavailable
	}
	conn, err := net.Dial("unix", desc.SocketPath)
	if err != nil {
		h.log.Warn("backend attach failed", "socket", desc.SocketPath, "err", err)
		return nil, fmt.Errorf("attach backend session: %w", err)
	}
	title := cfg.Title
	if title == "" {
		title = desc.Title
	}
	session := newSession(id, identity, title, h.log)
	session.conn = conn
	h.track(session)
	go session.readLoop(conn)
	h.log.Info("session attached", "session", id, "socket", desc.SocketPath)
	return session, nil
}

func (h *Host) track(session *PtySession) {
	h.mu.Lock()
	h.sessions[session.ID()] = session
	h.mu.Unlock()
	session.OnDispose(func() {
		h.mu.Lock()
		delete(h.sessions, session.ID())
		listener := h.servers[session.ID()]
		delete(h.servers, session.ID())
		h.mu.Unlock()
		if listener != nil {
			_ = listener.Close()
		}
	})
}

// SessionByID returns a tracked session.
func (h *Host) SessionByID(id schema.SessionID) (*PtySession, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	session, ok := h.sessions[id]
	return session, ok
}

// Sessions returns all tracked sessions.
func (h *Host) Sessions() []*PtySession {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*PtySession, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

// Detach exposes a local session on a unix socket and returns the launch
// configuration another window uses to reattach it. The session keeps running
// here; the socket bridges its PTY to the adopting window.
func (h *Host) Detach(ctx context.Context, id schema.SessionID) (schema.LaunchConfig, error) {
	_ = ctx
	session, ok := h.SessionByID(id)
	if !ok {
		return schema.LaunchConfig{}, schema.ErrSessionNotFound
	}
	if session.command() == nil {
		return schema.LaunchConfig{}, schema.ErrSessionDetached
	}

	if err := os.MkdirAll(h.sockDir, 0o700); err != nil {
		return schema.LaunchConfig{}, err
	}
	path := filepath.Join(h.sockDir, fmt.Sprintf("session-%d.sock", id))
	_ = os.Remove(path)
	listener, err := net.Listen("unix", path)
	if err != nil {
		h.log.Warn("detach socket listen failed", "session", id, "err", err)
		return schema.LaunchConfig{}, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = listener.Close()
		return schema.LaunchConfig{}, err
	}

	h.mu.Lock()
	if old := h.servers[id]; old != nil {
		_ = old.Close()
	}
	h.servers[id] = listener
	h.mu.Unlock()

	go h.serveDetached(session, listener)
	h.log.Info("session detach served", "session", id, "socket", path)

	desc := &schema.BackendDescriptor{
		Owner:      h.cfg.Window,
		SessionID:  id,
		SocketPath: path,
		Title:      session.Title(),
	}
	return schema.LaunchConfig{Title: session.Title(), Attach: desc}, nil
}

func (h *Host) serveDetached(session *PtySession, listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		cancel, err := session.Attach(conn)
		if err != nil {
			_ = conn.Close()
			continue
		}
		go func() {
			_, _ = io.Copy(writerFunc(session.Write), conn)
			cancel()
			_ = conn.Close()
		}()
	}
}

// Close disposes all tracked sessions and their detach sockets.
func (h *Host) Close() {
	for _, session := range h.Sessions() {
		session.Dispose()
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
