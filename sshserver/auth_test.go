package sshserver

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/ssh"
)

func generateKey(t *testing.T) ssh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	key, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("wrap key: %v", err)
	}
	return key
}

func TestLoadAuthorizedKeys(t *testing.T) {
	first := generateKey(t)
	second := generateKey(t)
	path := filepath.Join(t.TempDir(), "authorized_keys")
	data := append(ssh.MarshalAuthorizedKey(first), ssh.MarshalAuthorizedKey(second)...)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write keys: %v", err)
	}

	store, err := LoadAuthorizedKeys(path)
	if err != nil {
		t.Fatalf("load keys: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected two keys, got %d", store.Len())
	}
	if !store.Contains(first) || !store.Contains(second) {
		t.Fatalf("expected both keys authorized")
	}
	if store.Contains(generateKey(t)) {
		t.Fatalf("expected unknown key rejected")
	}
}

func TestLoadAuthorizedKeysEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authorized_keys")
	if err := os.WriteFile(path, []byte("\n\n"), 0o600); err != nil {
		t.Fatalf("write keys: %v", err)
	}
	if _, err := LoadAuthorizedKeys(path); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestEnsureHostKeyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	created, err := EnsureHostKey(path)
	if err != nil {
		t.Fatalf("create host key: %v", err)
	}
	loaded, err := EnsureHostKey(path)
	if err != nil {
		t.Fatalf("load host key: %v", err)
	}
	if string(created.PublicKey().Marshal()) != string(loaded.PublicKey().Marshal()) {
		t.Fatalf("expected stable host key across loads")
	}
}
