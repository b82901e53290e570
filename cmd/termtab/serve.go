package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/termtab"
	"pkt.systems/termtab/httpapi"
	"pkt.systems/termtab/internal/appconfig"
	"pkt.systems/termtab/internal/backendgrpc"
	"pkt.systems/termtab/schema"
	"pkt.systems/termtab/sshserver"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var noHTTP bool
	var noSSH bool
	var noBackend bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start termtab servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}

			serverCfg := termtab.ServerConfig{
				Service:    toServiceConfig(cfg),
				HTTP:       toHTTPConfig(cfg.HTTP),
				SSH:        toSSHConfig(cfg.SSH),
				Backend:    toBackendConfig(cfg.Backend),
				Peers:      cfg.Backend.Peers,
				HubHistory: 1000,
			}
			opts := make([]termtab.ServerOption, 0, 3)
			if !noHTTP {
				opts = append(opts, termtab.WithHTTP())
			}
			if !noSSH {
				opts = append(opts, termtab.WithSSH())
			}
			if !noBackend {
				opts = append(opts, termtab.WithBackend())
			}
			server, err := termtab.New(serverCfg, termtab.ServerDeps{Logger: logger}, opts...)
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
					logger.Warn("server stop failed", "err", err)
				}
			}()
			if !noHTTP {
				logger.Info("http server listening", "addr", serverCfg.HTTP.Addr)
			}
			if !noSSH {
				logger.Info("ssh server listening", "addr", serverCfg.SSH.Addr)
			}
			if !noBackend {
				logger.Info("backend server listening", "socket", serverCfg.Backend.SocketPath)
			}
			if err := server.Start(ctx); err != nil {
				return err
			}
			return server.Wait()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&noHTTP, "no-http", false, "disable the HTTP API server")
	cmd.Flags().BoolVar(&noSSH, "no-ssh", false, "disable the SSH server")
	cmd.Flags().BoolVar(&noBackend, "no-backend", false, "disable the backend handoff socket")
	return cmd
}

func toServiceConfig(cfg appconfig.Config) schema.ServiceConfig {
	return schema.ServiceConfig{
		Window:            schema.WindowID(cfg.Window),
		StateDir:          cfg.StateDir,
		DefaultShell:      cfg.Session.Shell,
		DefaultWorkingDir: cfg.Session.WorkingDir,
		Env:               cfg.Session.Env,
		TitleMax:          cfg.Session.TitleMax,
	}
}

func toHTTPConfig(cfg appconfig.HTTPConfig) httpapi.Config {
	return httpapi.Config{
		Addr:     cfg.Addr,
		BaseURL:  cfg.BaseURL,
		BasePath: cfg.BasePath,
	}
}

func toSSHConfig(cfg appconfig.SSHConfig) sshserver.Config {
	return sshserver.Config{
		Addr:               cfg.Addr,
		HostKeyPath:        cfg.HostKeyPath,
		AuthorizedKeysPath: cfg.AuthorizedKeysPath,
	}
}

func toBackendConfig(cfg appconfig.BackendConfig) backendgrpc.Config {
	return backendgrpc.Config{
		SocketPath:        cfg.SocketPath,
		KeepaliveInterval: time.Duration(cfg.KeepaliveIntervalSeconds) * time.Second,
		KeepaliveMisses:   cfg.KeepaliveMisses,
	}
}
