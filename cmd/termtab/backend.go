package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/termtab"
	"pkt.systems/termtab/internal/appconfig"
)

// newBackendCmd runs only the handoff socket: sessions live here and are
// served to other windows over gRPC, with no HTTP or SSH frontends.
func newBackendCmd() *cobra.Command {
	var cfgPath string
	var socketPath string
	var window string
	var keepaliveInterval time.Duration
	var keepaliveMisses int
	cmd := &cobra.Command{
		Use:   "backend",
		Short: "Start the backend handoff daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if strings.TrimSpace(window) != "" {
				cfg.Window = window
			}
			if strings.TrimSpace(socketPath) != "" {
				cfg.Backend.SocketPath = socketPath
			}
			if keepaliveInterval > 0 {
				cfg.Backend.KeepaliveIntervalSeconds = int(keepaliveInterval.Seconds())
			}
			if keepaliveMisses > 0 {
				cfg.Backend.KeepaliveMisses = keepaliveMisses
			}

			serverCfg := termtab.ServerConfig{
				Service: toServiceConfig(cfg),
				Backend: toBackendConfig(cfg.Backend),
				Peers:   cfg.Backend.Peers,
			}
			// Exit when the peers stop pinging; an orphaned handoff daemon
			// has nothing to serve.
			serverCfg.Backend.Watchdog = true
			server, err := termtab.New(serverCfg, termtab.ServerDeps{Logger: logger}, termtab.WithBackend())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Stop(stopCtx); err != nil {
					logger.Warn("backend stop failed", "err", err)
				}
			}()
			logger.Info("backend socket listening", "socket", serverCfg.Backend.SocketPath, "window", cfg.Window)
			if err := server.Start(ctx); err != nil {
				return err
			}
			return server.Wait()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&socketPath, "socket-path", "", "backend socket path (overrides config)")
	cmd.Flags().StringVar(&window, "window", "", "window id (overrides config)")
	cmd.Flags().DurationVar(&keepaliveInterval, "keepalive-interval", 0, "backend keepalive interval (e.g. 10s)")
	cmd.Flags().IntVar(&keepaliveMisses, "keepalive-misses", 0, "backend keepalive misses before exit")
	return cmd
}
