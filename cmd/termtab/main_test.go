package main

import (
	"testing"
	"time"

	"pkt.systems/termtab/internal/appconfig"
)

func TestRootHasServe(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "serve" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include serve")
	}
}

func TestRootHasVersion(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "version" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include version")
	}
}

func TestRootHasBackend(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "backend" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include backend")
	}
}

func TestRootHasConfig(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "config" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include config")
	}
}

func TestToBackendConfigScalesKeepalive(t *testing.T) {
	cfg := appconfig.BackendConfig{
		SocketPath:               "/tmp/backend.sock",
		KeepaliveIntervalSeconds: 5,
		KeepaliveMisses:          4,
	}
	got := toBackendConfig(cfg)
	if got.KeepaliveInterval != 5*time.Second {
		t.Fatalf("KeepaliveInterval = %v, want %v", got.KeepaliveInterval, 5*time.Second)
	}
	if got.KeepaliveMisses != 4 {
		t.Fatalf("KeepaliveMisses = %d, want 4", got.KeepaliveMisses)
	}
	if got.SocketPath != cfg.SocketPath {
		t.Fatalf("SocketPath = %q, want %q", got.SocketPath, cfg.SocketPath)
	}
}

func TestToServiceConfigCopiesSessionDefaults(t *testing.T) {
	cfg := appconfig.Config{
		Window:   "main",
		StateDir: "/tmp/state",
		Session: appconfig.SessionConfig{
			Shell:      "/bin/zsh",
			WorkingDir: "/srv",
			Env:        map[string]string{"LANG": "C"},
			TitleMax:   40,
		},
	}
	got := toServiceConfig(cfg)
	if got.Window != "main" || got.StateDir != "/tmp/state" {
		t.Fatalf("unexpected service config: %+v", got)
	}
	if got.DefaultShell != "/bin/zsh" || got.DefaultWorkingDir != "/srv" {
		t.Fatalf("session defaults not copied: %+v", got)
	}
	if got.TitleMax != 40 || got.Env["LANG"] != "C" {
		t.Fatalf("session env not copied: %+v", got)
	}
}
