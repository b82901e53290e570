package schema

import (
	"errors"
	"testing"
)

func TestFormatIdentityRoundTrip(t *testing.T) {
	identity := FormatIdentity("window1", 5)
	if identity != "term://window1/5" {
		t.Fatalf("unexpected identity: %q", identity)
	}
	window, id, err := ParseIdentity(identity)
	if err != nil {
		t.Fatalf("parse identity: %v", err)
	}
	if window != "window1" {
		t.Fatalf("expected window1, got %q", window)
	}
	if id != 5 {
		t.Fatalf("expected id 5, got %d", id)
	}
}

func TestParseIdentityRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"term://",
		"term://window1",
		"term://window1/",
		"term:///5",
		"term://window1/abc",
		"term://window1/-1",
		"file://window1/5",
		"term://Window One/5",
	}
	for _, raw := range cases {
		if _, _, err := ParseIdentity(Identity(raw)); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestParseIdentityRejectsBadWindow(t *testing.T) {
	_, _, err := ParseIdentity(Identity("term://BAD/3"))
	if !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestNormalizeServiceConfigDefaults(t *testing.T) {
	cfg, err := NormalizeServiceConfig(ServiceConfig{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Window != "main" {
		t.Fatalf("expected default window, got %q", cfg.Window)
	}
	if cfg.StateDir == "" || cfg.DefaultShell == "" || cfg.DefaultWorkingDir == "" {
		t.Fatalf("expected defaults to be filled: %+v", cfg)
	}
	if cfg.TitleMax != DefaultTitleMax {
		t.Fatalf("expected default title max, got %d", cfg.TitleMax)
	}
}

func TestNormalizeServiceConfigRejectsBadWindow(t *testing.T) {
	if _, err := NormalizeServiceConfig(ServiceConfig{Window: "Not Valid"}); err == nil {
		t.Fatal("expected invalid window error")
	}
}
