package schema

import (
	"os"
	"path/filepath"
)

// ServiceConfig defines defaults and limits for the registry service.
type ServiceConfig struct {
	// Window is the identity namespace for sessions this registry owns.
	Window WindowID
	// StateDir holds deferred launch configurations and backend records.
	StateDir string
	// DefaultShell is used when a launch configuration names no shell.
	DefaultShell string
	// DefaultWorkingDir is used when a launch configuration names no cwd.
	DefaultWorkingDir string
	// Env is merged into every spawned session's environment.
	Env map[string]string
	// TitleMax truncates session titles for snapshots; 0 keeps the default.
	TitleMax int
}

// DefaultTitleMax is the default session title limit for snapshots.
const DefaultTitleMax = 80

// NormalizeServiceConfig applies defaults and validates the config.
func NormalizeServiceConfig(cfg ServiceConfig) (ServiceConfig, error) {
	if cfg.Window == "" {
		cfg.Window = "main"
	}
	if err := ValidateWindowID(cfg.Window); err != nil {
		return ServiceConfig{}, err
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ServiceConfig{}, err
		}
		cfg.StateDir = filepath.Join(home, ".termtab", "state")
	}
	if cfg.DefaultShell == "" {
		if shell := os.Getenv("SHELL"); shell != "" {
			cfg.DefaultShell = shell
		} else {
			cfg.DefaultShell = "/bin/sh"
		}
	}
	if cfg.DefaultWorkingDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ServiceConfig{}, err
		}
		cfg.DefaultWorkingDir = home
	}
	if cfg.TitleMax <= 0 {
		cfg.TitleMax = DefaultTitleMax
	}
	return cfg, nil
}
