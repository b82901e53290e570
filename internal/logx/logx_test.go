package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"pkt.systems/pslog"
)

func TestWithWindowIdentityAddsFields(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	ctx := pslog.ContextWithLogger(context.Background(), logger)
	log := WithWindowIdentity(ctx, "main", "term://main/1")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["window"] != "main" {
		t.Fatalf("expected window field, got %+v", entry)
	}
	if entry["identity"] != "term://main/1" {
		t.Fatalf("expected identity field, got %+v", entry)
	}
}

func TestWithWindowSkipsContextDuplicate(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	ctx := ContextWithWindowLogger(context.Background(), logger, "main")
	log := WithWindow(ctx, "main")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if _, ok := entry["window"]; ok {
		t.Fatalf("did not expect duplicate window field, got %+v", entry)
	}
}

func TestWithSessionAddsField(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	log := WithSession(logger, 7)
	log.Info("hello")

	entry := capture.firstEntry(t)
	if _, ok := entry["session"]; !ok {
		t.Fatalf("expected session field, got %+v", entry)
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
