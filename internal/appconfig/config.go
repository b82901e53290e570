package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/termtab/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	Window        string        `mapstructure:"window" yaml:"window"`
	StateDir      string        `mapstructure:"state_dir" yaml:"state_dir"`
	Session       SessionConfig `mapstructure:"session" yaml:"session"`
	Backend       BackendConfig `mapstructure:"backend" yaml:"backend"`
	HTTP          HTTPConfig    `mapstructure:"http" yaml:"http"`
	SSH           SSHConfig     `mapstructure:"ssh" yaml:"ssh"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// SessionConfig controls session launch defaults.
type SessionConfig struct {
	Shell      string            `mapstructure:"shell" yaml:"shell"`
	WorkingDir string            `mapstructure:"working_dir" yaml:"working_dir"`
	Env        map[string]string `mapstructure:"env" yaml:"env"`
	TitleMax   int               `mapstructure:"title_max" yaml:"title_max"`
}

// BackendConfig configures the backend gRPC endpoint for session handoff.
type BackendConfig struct {
	SocketPath               string            `mapstructure:"socket_path" yaml:"socket_path"`
	Peers                    map[string]string `mapstructure:"peers" yaml:"peers"`
	KeepaliveIntervalSeconds int               `mapstructure:"keepalive_interval_seconds" yaml:"keepalive_interval_seconds"`
	KeepaliveMisses          int               `mapstructure:"keepalive_misses" yaml:"keepalive_misses"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
	BasePath string `mapstructure:"base_path" yaml:"base_path"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Addr               string `mapstructure:"addr" yaml:"addr"`
	HostKeyPath        string `mapstructure:"host_key_path" yaml:"host_key_path"`
	AuthorizedKeysPath string `mapstructure:"authorized_keys_path" yaml:"authorized_keys_path"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	stateDir := filepath.Join(home, ".termtab", "state")
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Window:        "main",
		StateDir:      stateDir,
		Session: SessionConfig{
			Shell:      "",
			WorkingDir: "",
			Env:        map[string]string{},
			TitleMax:   schema.DefaultTitleMax,
		},
		Backend: BackendConfig{
			SocketPath:               filepath.Join(stateDir, "backend.sock"),
			Peers:                    map[string]string{},
			KeepaliveIntervalSeconds: 10,
			KeepaliveMisses:          3,
		},
		HTTP: HTTPConfig{
			Addr:     ":27490",
			BaseURL:  "",
			BasePath: "",
		},
		SSH: SSHConfig{
			Addr:               ":27492",
			HostKeyPath:        filepath.Join(home, ".termtab", "ssh_host_key"),
			AuthorizedKeysPath: filepath.Join(home, ".termtab", "authorized_keys"),
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".termtab", "config.yaml"), nil
}
