package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pkt.systems/termtab/core"
	"pkt.systems/termtab/internal/logx"
	"pkt.systems/termtab/schema"
)

// Server exposes the registry over a JSON API plus an SSE event stream.
type Server struct {
	cfg     Config
	window  schema.WindowID
	service core.Service
	hub     *Hub
	baseCtx context.Context
}

// NewServer constructs an HTTP server for the registry service.
func NewServer(cfg Config, window schema.WindowID, service core.Service, hub *Hub) *Server {
	return &Server{
		cfg:     cfg,
		window:  window,
		service: service,
		hub:     hub,
		baseCtx: context.Background(),
	}
}

// SetBaseContext sets the context used for request-scoped operations.
func (s *Server) SetBaseContext(ctx context.Context) {
	if ctx != nil {
		s.baseCtx = ctx
	}
}

// Handler returns the HTTP handler with logging middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/resolve", s.handleResolve)
	mux.HandleFunc("/api/open", s.handleOpen)
	mux.HandleFunc("/api/activate", s.handleActivate)
	mux.HandleFunc("/api/detach", s.handleDetach)
	mux.HandleFunc("/api/events", s.handleEvents)

	var handler http.Handler = mux
	if basePath := normalizeBasePath(s.cfg.BasePath); basePath != "" {
		handler = http.StripPrefix(basePath, handler)
	}
	return withRequestLogging(s.window, handler)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	payload := map[string]any{"ok": true, "window": s.window}
	if base := buildBaseHref(s.cfg.BaseURL, s.cfg.BasePath); base != "" {
		payload["base"] = base
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	resp, err := s.service.ListSessions(r.Context(), schema.ListSessionsRequest{})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req schema.ResolveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.Resolve(r.Context(), req)
	if err != nil {
		if errors.Is(err, schema.ErrResolvePending) {
			logx.WithWindowIdentity(r.Context(), s.window, req.Identity).Info("http resolve pending")
			writeJSON(w, http.StatusAccepted, map[string]any{"pending": true, "identity": req.Identity})
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req schema.OpenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.Open(r.Context(), req)
	if err != nil {
		if errors.Is(err, schema.ErrResolvePending) {
			writeJSON(w, http.StatusAccepted, map[string]any{"pending": true, "identity": req.Identity})
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req schema.ActivateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.Activate(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDetach(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req schema.DetachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.DetachSession(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("stream unsupported"))
		return
	}
	log := logx.WithWindow(r.Context(), s.window)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	lastID := parseUint(r.Header.Get("Last-Event-ID"))
	if after := r.URL.Query().Get("after"); after != "" {
		lastID = parseUint(after)
	}

	snapshot := s.buildSnapshot(r.Context())
	_ = writeSSEvent(w, StreamEvent{
		Type:      "snapshot",
		Window:    s.window,
		Snapshot:  &snapshot,
		Timestamp: time.Now(),
	})
	flusher.Flush()

	replayCount := 0
	if lastID > 0 {
		replay := s.hub.Replay(s.window, lastID)
		replayCount = len(replay)
		for _, event := range replay {
			_ = writeSSEvent(w, event)
		}
		flusher.Flush()
	}

	ch, unsubscribe, _, _ := s.hub.Subscribe(s.window)
	defer unsubscribe()

	notify := r.Context().Done()
	log.Info("http stream opened", "last_id", lastID, "replay", replayCount, "sessions", len(snapshot.Sessions))
	for {
		select {
		case <-notify:
			log.Info("http stream closed")
			return
		case event := <-ch:
			_ = writeSSEvent(w, event)
			flusher.Flush()
		}
	}
}

func (s *Server) buildSnapshot(ctx context.Context) SnapshotPayload {
	resp, err := s.service.ListSessions(ctx, schema.ListSessionsRequest{})
	if err != nil {
		return SnapshotPayload{ActiveIndex: -1}
	}
	return SnapshotPayload{
		Sessions:    resp.Sessions,
		ActiveIndex: resp.ActiveIndex,
	}
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, schema.ErrInvalidRequest),
		errors.Is(err, schema.ErrInvalidIdentity),
		errors.Is(err, schema.ErrInvalidWindow),
		errors.Is(err, schema.ErrInvalidResolveTarget):
		status = http.StatusBadRequest
	case errors.Is(err, schema.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, schema.ErrUnresolvedIdentity):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, schema.ErrSessionDetached):
		status = http.StatusConflict
	case errors.Is(err, schema.ErrBackendUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		logx.WithWindow(r.Context(), s.window).Warn("http request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, err)
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeSSEvent(w http.ResponseWriter, event StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if event.Seq > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", event.Seq)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", strings.TrimSpace(string(data)))
	return nil
}

func parseUint(value string) uint64 {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
