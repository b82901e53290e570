package persist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"pkt.systems/pslog"
	"pkt.systems/termtab/schema"
)

// WindowSnapshot captures a window's deferred launch configurations for
// persistence. A deferred configuration lets an identity resolve in a later
// window lifetime.
type WindowSnapshot struct {
	Deferred map[schema.Identity]schema.LaunchConfig `json:"deferred,omitempty"`
}

// Store persists window snapshots to disk.
type Store struct {
	dir string
	log pslog.Logger
}

// NewStore constructs a persistent store at the given directory.
func NewStore(dir string) (*Store, error) {
	return NewStoreWithLogger(dir, nil)
}

// NewStoreWithLogger constructs a persistent store with logging.
func NewStoreWithLogger(dir string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("state_dir", dir)
	}
	return &Store{dir: dir, log: logger}, nil
}

// Load reads a window snapshot from disk.
func (s *Store) Load(window schema.WindowID) (WindowSnapshot, bool, error) {
	path := s.pathForWindow(window)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("state load miss", "window", window)
			}
			return WindowSnapshot{}, false, nil
		}
		if s.log != nil {
			s.log.Warn("state load failed", "window", window, "err", err)
		}
		return WindowSnapshot{}, false, err
	}
	var snapshot WindowSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		if s.log != nil {
			s.log.Warn("state load failed", "window", window, "err", err)
		}
		return WindowSnapshot{}, false, err
	}
	if s.log != nil {
		s.log.Debug("state load ok", "window", window, "deferred", len(snapshot.Deferred))
	}
	return snapshot, true, nil
}

// Save writes a window snapshot to disk.
func (s *Store) Save(window schema.WindowID, snapshot WindowSnapshot) error {
	path := s.pathForWindow(window)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		if s.log != nil {
			s.log.Warn("state save failed", "window", window, "err", err)
		}
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		if s.log != nil {
			s.log.Warn("state save failed", "window", window, "err", err)
		}
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "state-*.json")
	if err != nil {
		if s.log != nil {
			s.log.Warn("state save failed", "window", window, "err", err)
		}
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		if s.log != nil {
			s.log.Warn("state save failed", "window", window, "err", err)
		}
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		if s.log != nil {
			s.log.Warn("state save failed", "window", window, "err", err)
		}
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		if s.log != nil {
			s.log.Warn("state save failed", "window", window, "err", err)
		}
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		if s.log != nil {
			s.log.Warn("state save failed", "window", window, "err", err)
		}
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		if s.log != nil {
			s.log.Warn("state save failed", "window", window, "err", err)
		}
		return err
	}
	if s.log != nil {
		s.log.Trace("state save ok", "window", window, "deferred", len(snapshot.Deferred))
	}
	return nil
}

func (s *Store) pathForWindow(window schema.WindowID) string {
	name := sanitize(string(window))
	if name == "" {
		name = "unknown"
	}
	return filepath.Join(s.dir, name+".json")
}

func sanitize(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}
