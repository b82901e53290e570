package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// IdentityScheme is the URI scheme for terminal virtual documents.
const IdentityScheme = "term"

// FormatIdentity builds the virtual-document URI for a session.
func FormatIdentity(window WindowID, id SessionID) Identity {
	return Identity(fmt.Sprintf("%s://%s/%d", IdentityScheme, window, id))
}

// ParseIdentity splits a virtual-document URI into its owning window and
// session id. The expected shape is term://<window>/<numeric id>.
func ParseIdentity(identity Identity) (WindowID, SessionID, error) {
	raw := strings.TrimSpace(string(identity))
	if raw == "" {
		return "", 0, ErrInvalidIdentity
	}
	prefix := IdentityScheme + "://"
	if !strings.HasPrefix(raw, prefix) {
		return "", 0, ErrInvalidIdentity
	}
	rest := strings.TrimPrefix(raw, prefix)
	slash := strings.IndexByte(rest, '/')
	if slash <= 0 || slash == len(rest)-1 {
		return "", 0, ErrInvalidIdentity
	}
	window := rest[:slash]
	if err := validateWindowID(WindowID(window)); err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(rest[slash+1:], 10, 64)
	if err != nil || id < 0 {
		return "", 0, ErrInvalidIdentity
	}
	return WindowID(window), SessionID(id), nil
}

// ValidateIdentity reports whether the URI is a well-formed terminal identity.
func ValidateIdentity(identity Identity) error {
	_, _, err := ParseIdentity(identity)
	return err
}

func validateWindowID(window WindowID) error {
	raw := string(window)
	if raw == "" {
		return ErrInvalidWindow
	}
	for _, r := range raw {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '.' || r == '_' || r == '-' {
			continue
		}
		return ErrInvalidWindow
	}
	return nil
}

// ValidateWindowID ensures a window id matches [a-z0-9._-] with no normalization.
func ValidateWindowID(window WindowID) error {
	return validateWindowID(window)
}
