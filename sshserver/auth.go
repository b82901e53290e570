package sshserver

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// AuthorizedKeys validates client public keys against an authorized_keys file.
type AuthorizedKeys struct {
	keys []ssh.PublicKey
}

// LoadAuthorizedKeys parses an OpenSSH authorized_keys file.
func LoadAuthorizedKeys(path string) (*AuthorizedKeys, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("authorized keys path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	store := &AuthorizedKeys{}
	for len(data) > 0 {
		key, _, _, rest, err := ssh.ParseAuthorizedKey(data)
		if err != nil {
			// Tolerate blank lines and comments at the tail.
			if strings.TrimSpace(string(data)) == "" {
				break
			}
			return nil, err
		}
		store.keys = append(store.keys, key)
		data = rest
	}
	if len(store.keys) == 0 {
		return nil, errors.New("no authorized keys found")
	}
	return store, nil
}

// Contains reports whether the key is authorized.
func (a *AuthorizedKeys) Contains(key ssh.PublicKey) bool {
	if a == nil || key == nil {
		return false
	}
	marshaled := key.Marshal()
	for _, candidate := range a.keys {
		if candidate.Type() == key.Type() && string(candidate.Marshal()) == string(marshaled) {
			return true
		}
	}
	return false
}

// Len returns the number of authorized keys.
func (a *AuthorizedKeys) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}
