package logx

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/termtab/schema"
)

type contextKey int

const (
	windowKey contextKey = iota
	identityKey
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithWindow annotates the logger with the window id if present.
func WithWindow(ctx context.Context, window schema.WindowID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if window != "" {
		if current, ok := ctx.Value(windowKey).(schema.WindowID); ok && current == window {
			return log
		}
		log = log.With("window", window)
	}
	return log
}

// WithWindowIdentity annotates the logger with window and identity markers.
func WithWindowIdentity(ctx context.Context, window schema.WindowID, identity schema.Identity) pslog.Logger {
	log := WithWindow(ctx, window)
	if identity != "" {
		if current, ok := ctx.Value(identityKey).(schema.Identity); ok && current == identity {
			return log
		}
		log = log.With("identity", identity)
	}
	return log
}

// WithSession annotates the logger with a session id when non-zero.
func WithSession(log pslog.Logger, sessionID schema.SessionID) pslog.Logger {
	if sessionID != 0 {
		log = log.With("session", sessionID)
	}
	return log
}

// ContextWithWindow stores the window marker on the context for log de-duplication.
func ContextWithWindow(ctx context.Context, window schema.WindowID) context.Context {
	if ctx == nil || window == "" {
		return ctx
	}
	return context.WithValue(ctx, windowKey, window)
}

// ContextWithIdentity stores the identity marker on the context for log de-duplication.
func ContextWithIdentity(ctx context.Context, identity schema.Identity) context.Context {
	if ctx == nil || identity == "" {
		return ctx
	}
	return context.WithValue(ctx, identityKey, identity)
}

// ContextWithWindowLogger attaches the logger and window marker to the context.
func ContextWithWindowLogger(ctx context.Context, log pslog.Logger, window schema.WindowID) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithWindow(ctx, window)
}

// CopyContextFields copies window/identity markers from src to dst.
func CopyContextFields(dst context.Context, src context.Context) context.Context {
	if src == nil {
		return dst
	}
	if window, ok := src.Value(windowKey).(schema.WindowID); ok && window != "" {
		dst = ContextWithWindow(dst, window)
	}
	if identity, ok := src.Value(identityKey).(schema.Identity); ok && identity != "" {
		dst = ContextWithIdentity(dst, identity)
	}
	return dst
}
