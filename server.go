package termtab

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"pkt.systems/pslog"
	"pkt.systems/termtab/core"
	"pkt.systems/termtab/httpapi"
	"pkt.systems/termtab/internal/backendgrpc"
	"pkt.systems/termtab/internal/eventbus"
	"pkt.systems/termtab/internal/persist"
	"pkt.systems/termtab/internal/ptyhost"
	"pkt.systems/termtab/internal/tabgroups"
	"pkt.systems/termtab/schema"
	"pkt.systems/termtab/sshserver"
)

// Server composes the registry, session host, tab framework, and the HTTP,
// SSH, and backend gRPC frontends.
type Server interface {
	Start(ctx context.Context) error
	Wait() error
	Stop(ctx context.Context) error
}

// ServerConfig configures the compositor.
type ServerConfig struct {
	Service    schema.ServiceConfig
	HTTP       httpapi.Config
	SSH        sshserver.Config
	Backend    backendgrpc.Config
	Peers      map[string]string
	HubHistory int
}

// ServerDeps captures dependencies required to build the server.
type ServerDeps struct {
	Logger    pslog.Logger
	EventSink core.EventSink
	Store     *persist.Store
}

// ServerOption toggles compositor components.
type ServerOption func(*serverOptions)

type serverOptions struct {
	enableHTTP    bool
	enableSSH     bool
	enableBackend bool
}

// WithHTTP enables the HTTP API server.
func WithHTTP() ServerOption {
	return func(o *serverOptions) { o.enableHTTP = true }
}

// WithSSH enables the SSH server.
func WithSSH() ServerOption {
	return func(o *serverOptions) { o.enableSSH = true }
}

// WithBackend enables the backend gRPC server for session handoff.
func WithBackend() ServerOption {
	return func(o *serverOptions) { o.enableBackend = true }
}

// New constructs a composable termtab server.
func New(cfg ServerConfig, deps ServerDeps, opts ...ServerOption) (Server, error) {
	options := serverOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if !options.enableHTTP && !options.enableSSH && !options.enableBackend {
		return nil, errors.New("no services enabled")
	}

	normalized, err := schema.NormalizeServiceConfig(cfg.Service)
	if err != nil {
		return nil, err
	}
	cfg.Service = normalized

	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}

	store := deps.Store
	if store == nil {
		store, err = persist.NewStoreWithLogger(filepath.Join(cfg.Service.StateDir, "windows"), logger)
		if err != nil {
			return nil, err
		}
	}

	host := ptyhost.NewHost(cfg.Service, logger)
	frame := tabgroups.NewManager(logger)

	var hub *httpapi.Hub
	if options.enableHTTP {
		hub = httpapi.NewHub(cfg.HubHistory)
	}
	var bus *eventbus.Bus
	if options.enableSSH {
		bus = eventbus.New(logger)
	}

	sinks := make([]core.EventSink, 0, 3)
	if deps.EventSink != nil {
		sinks = append(sinks, deps.EventSink)
	}
	if hub != nil {
		sinks = append(sinks, hub)
	}
	if bus != nil {
		sinks = append(sinks, bus)
	}
	var sink core.EventSink
	switch len(sinks) {
	case 0:
	case 1:
		sink = sinks[0]
	default:
		sink = eventFanout{sinks: sinks}
	}

	var backend core.Backend
	var router *peerRouter
	if len(cfg.Peers) > 0 {
		router = newPeerRouter(cfg.Peers, cfg.Backend.KeepaliveInterval, logger)
		backend = router
	}

	registry, err := core.NewRegistry(cfg.Service, core.Deps{
		Framework: frame,
		Factory:   sessionFactory{host: host},
		Backend:   backend,
		EventSink: sink,
		Store:     store,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	frame.AddListener(frameworkListener{registry: registry})

	var httpSrv *httpapi.Server
	if options.enableHTTP {
		httpSrv = httpapi.NewServer(cfg.HTTP, registry.Window(), registry, hub)
	}

	var sshSrv *sshserver.Server
	if options.enableSSH {
		sshSrv = &sshserver.Server{
			Addr:               cfg.SSH.Addr,
			HostKeyPath:        cfg.SSH.HostKeyPath,
			AuthorizedKeysPath: cfg.SSH.AuthorizedKeysPath,
			Service:            registry,
			Registry:           registry,
			Creator:            sessionCreator{host: host, registry: registry},
			Events:             bus,
		}
	}

	var backendSrv *backendgrpc.Server
	if options.enableBackend {
		backendSrv = backendgrpc.NewServer(cfg.Backend, host, registry, logger)
	}

	return &compositeServer{
		cfg:        cfg,
		options:    options,
		registry:   registry,
		host:       host,
		router:     router,
		httpSrv:    httpSrv,
		sshSrv:     sshSrv,
		backendSrv: backendSrv,
	}, nil
}

// sessionFactory adapts the PTY host to the registry's factory dependency.
type sessionFactory struct {
	host *ptyhost.Host
}

func (f sessionFactory) Create(ctx context.Context, cfg schema.LaunchConfig, identity schema.Identity) (core.Session, error) {
	session, err := f.host.Create(ctx, cfg, identity)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// sessionCreator spawns a fresh session in this window and opens its tab.
type sessionCreator struct {
	host     *ptyhost.Host
	registry *core.Registry
}

func (c sessionCreator) NewSession(ctx context.Context, launch schema.LaunchConfig) (schema.SessionSnapshot, error) {
	identity := c.host.AllocateIdentity()
	session, err := c.host.Create(ctx, launch, identity)
	if err != nil {
		return schema.SessionSnapshot{}, err
	}
	if _, err := c.registry.OpenTarget(ctx, core.ResolveTarget{Session: session}, launch.Kind == schema.TargetPanel); err != nil {
		session.Dispose()
		return schema.SessionSnapshot{}, err
	}
	resp, err := c.registry.Resolve(ctx, schema.ResolveRequest{Identity: identity})
	if err != nil {
		return schema.SessionSnapshot{}, err
	}
	return resp.Session, nil
}

// frameworkListener translates tab framework notifications into registry
// operations.
type frameworkListener struct {
	registry *core.Registry
}

func (l frameworkListener) ActiveTabChanged(tab *tabgroups.TerminalTab) {
	if tab == nil {
		l.registry.SetActive(nil)
		return
	}
	l.registry.SetActive(tab.Session())
}

func (l frameworkListener) VisibleTabsChanged() {
	l.registry.ReattachFromTabFramework(context.Background())
}

func (l frameworkListener) TabClosed(tab *tabgroups.TerminalTab) {
	if tab == nil {
		return
	}
	l.registry.HandleTabClosed(context.Background(), tab)
}

// peerRouter routes cross-window detach requests to the owning window's
// backend socket, caching one client per peer.
type peerRouter struct {
	pingInterval time.Duration
	logger       pslog.Logger

	mu      sync.Mutex
	peers   map[schema.WindowID]string
	clients map[schema.WindowID]*backendgrpc.Client
	done    chan struct{}
	closed  bool
}

func newPeerRouter(peers map[string]string, pingInterval time.Duration, logger pslog.Logger) *peerRouter {
	r := &peerRouter{
		pingInterval: pingInterval,
		logger:       logger,
		peers:        make(map[schema.WindowID]string, len(peers)),
		clients:      make(map[schema.WindowID]*backendgrpc.Client),
		done:         make(chan struct{}),
	}
	for window, socket := range peers {
		r.peers[schema.WindowID(window)] = socket
	}
	return r
}

func (r *peerRouter) RequestDetach(ctx context.Context, owner schema.WindowID, id schema.SessionID) (schema.LaunchConfig, error) {
	client, err := r.clientFor(ctx, owner)
	if err != nil {
		return schema.LaunchConfig{}, err
	}
	return client.RequestDetach(ctx, owner, id)
}

func (r *peerRouter) clientFor(ctx context.Context, owner schema.WindowID) (*backendgrpc.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if client, ok := r.clients[owner]; ok {
		return client, nil
	}
	socket, ok := r.peers[owner]
	if !ok {
		return nil, schema.ErrBackendUnavailable
	}
	client, err := backendgrpc.Dial(ctx, socket)
	if err != nil {
		return nil, err
	}
	r.clients[owner] = client
	if r.pingInterval > 0 {
		go r.pingLoop(owner, client)
	}
	return client, nil
}

// pingLoop keeps the owning window's handoff daemon alive while we hold a
// connection to it. It stops when the router closes.
func (r *peerRouter) pingLoop(owner schema.WindowID, client *backendgrpc.Client) {
	ticker := time.NewTicker(r.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.pingInterval)
			err := client.Ping(ctx)
			cancel()
			if err != nil && r.logger != nil {
				r.logger.Debug("peer ping failed", "owner", owner, "err", err)
			}
		}
	}
}

func (r *peerRouter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.done)
	}
	for owner, client := range r.clients {
		_ = client.Close()
		delete(r.clients, owner)
	}
}

type compositeServer struct {
	cfg        ServerConfig
	options    serverOptions
	registry   *core.Registry
	host       *ptyhost.Host
	router     *peerRouter
	httpSrv    *httpapi.Server
	sshSrv     *sshserver.Server
	backendSrv *backendgrpc.Server
	logger     pslog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	errCh   chan error
	started bool
}

func (s *compositeServer) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		pslog.Ctx(ctx).Warn("server start rejected", "reason", "already started")
		return errors.New("server already started")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.errCh = make(chan error, 3)
	s.started = true
	s.logger = pslog.Ctx(s.ctx)
	s.mu.Unlock()

	log := s.logger
	log.Info(
		"server start",
		"window", s.registry.Window(),
		"http", s.options.enableHTTP,
		"ssh", s.options.enableSSH,
		"backend", s.options.enableBackend,
		"http_addr", s.cfg.HTTP.Addr,
		"ssh_addr", s.cfg.SSH.Addr,
		"backend_socket", s.cfg.Backend.SocketPath,
	)
	if s.options.enableHTTP && s.httpSrv != nil {
		s.httpSrv.SetBaseContext(s.ctx)
		go func() {
			err := httpapi.ListenAndServe(s.ctx, s.cfg.HTTP.Addr, s.httpSrv.Handler())
			if err != nil {
				log.Error("http server failed", "err", err)
			}
			s.errCh <- err
		}()
	}
	if s.options.enableSSH && s.sshSrv != nil {
		go func() {
			err := s.sshSrv.ListenAndServe(s.ctx)
			if err != nil {
				log.Error("ssh server failed", "err", err)
			}
			s.errCh <- err
		}()
	}
	if s.options.enableBackend && s.backendSrv != nil {
		go func() {
			err := s.backendSrv.ListenAndServe(s.ctx)
			if err != nil {
				log.Error("backend server failed", "err", err)
			}
			s.errCh <- err
		}()
	}
	return nil
}

func (s *compositeServer) Wait() error {
	s.mu.Lock()
	ctx := s.ctx
	errCh := s.errCh
	started := s.started
	s.mu.Unlock()
	if !started {
		return errors.New("server not started")
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		// The first service to exit ends the daemon; a nil error is a
		// clean self-shutdown (backend keepalive expiry).
		if err != nil {
			pslog.Ctx(ctx).Error("server stopped", "err", err)
		}
		_ = s.Stop(context.Background())
		return err
	}
}

func (s *compositeServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	started := s.started
	log := s.logger
	s.mu.Unlock()
	if !started {
		return nil
	}
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	log.Info("server stop requested")
	s.registry.HandleWillShutdown()
	if s.router != nil {
		s.router.Close()
	}
	s.host.Close()
	if cancel != nil {
		cancel()
	}
	if ctx == nil {
		log.Info("server stop completed")
		return nil
	}
	select {
	case <-ctx.Done():
		log.Warn("server stop timed out", "err", ctx.Err())
		return ctx.Err()
	case <-s.ctx.Done():
		log.Info("server stopped")
		return nil
	}
}
