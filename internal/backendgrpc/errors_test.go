package backendgrpc

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pkt.systems/termtab/schema"
)

func TestWrapBackendErrorNotFound(t *testing.T) {
	wrapped := wrapBackendError(status.Error(codes.NotFound, "no such session"))
	if !errors.Is(wrapped, schema.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", wrapped)
	}
}

func TestWrapBackendErrorDetached(t *testing.T) {
	wrapped := wrapBackendError(status.Error(codes.FailedPrecondition, "already detached"))
	if !errors.Is(wrapped, schema.ErrSessionDetached) {
		t.Fatalf("expected session detached, got %v", wrapped)
	}
}

func TestWrapBackendErrorUnavailable(t *testing.T) {
	wrapped := wrapBackendError(status.Error(codes.Unavailable, "down"))
	if !errors.Is(wrapped, schema.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable, got %v", wrapped)
	}
}

func TestWrapBackendErrorPassesContextErrors(t *testing.T) {
	if wrapped := wrapBackendError(context.Canceled); !errors.Is(wrapped, context.Canceled) {
		t.Fatalf("expected canceled passthrough, got %v", wrapped)
	}
	if wrapped := wrapBackendError(nil); wrapped != nil {
		t.Fatalf("expected nil passthrough, got %v", wrapped)
	}
}
