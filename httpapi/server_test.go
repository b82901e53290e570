package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pkt.systems/termtab/schema"
)

type fakeService struct {
	resolveErr error
	detached   bool
	sessions   []schema.SessionSnapshot
	active     int
}

func (f *fakeService) Resolve(ctx context.Context, req schema.ResolveRequest) (schema.ResolveResponse, error) {
	if f.resolveErr != nil {
		return schema.ResolveResponse{}, f.resolveErr
	}
	return schema.ResolveResponse{Session: schema.SessionSnapshot{ID: 1, Identity: req.Identity}}, nil
}

func (f *fakeService) Open(ctx context.Context, req schema.OpenRequest) (schema.OpenResponse, error) {
	if f.resolveErr != nil {
		return schema.OpenResponse{}, f.resolveErr
	}
	return schema.OpenResponse{Session: schema.SessionSnapshot{ID: 1, Identity: req.Identity}}, nil
}

func (f *fakeService) Activate(ctx context.Context, req schema.ActivateRequest) (schema.ActivateResponse, error) {
	if req.SessionID == 404 {
		return schema.ActivateResponse{}, schema.ErrSessionNotFound
	}
	return schema.ActivateResponse{Session: &schema.SessionSnapshot{ID: req.SessionID, Active: true}}, nil
}

func (f *fakeService) DetachSession(ctx context.Context, req schema.DetachRequest) (schema.DetachResponse, error) {
	return schema.DetachResponse{Detached: f.detached, Session: schema.SessionSnapshot{ID: req.SessionID}}, nil
}

func (f *fakeService) ListSessions(ctx context.Context, req schema.ListSessionsRequest) (schema.ListSessionsResponse, error) {
	return schema.ListSessionsResponse{Sessions: f.sessions, ActiveIndex: f.active}, nil
}

func newTestServer(service *fakeService) *Server {
	return NewServer(Config{Addr: ":0"}, "main", service, NewHub(16))
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealthzReportsBase(t *testing.T) {
	server := NewServer(Config{Addr: ":0", BaseURL: "https://example.com", BasePath: "tabs"}, "main", &fakeService{}, NewHub(16))
	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/tabs/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["ok"] != true {
		t.Fatalf("expected ok, got %v", payload)
	}
	if payload["base"] != "https://example.com/tabs/" {
		t.Fatalf("unexpected base: %v", payload["base"])
	}
}

func TestHandleSessions(t *testing.T) {
	service := &fakeService{
		sessions: []schema.SessionSnapshot{{ID: 1, Identity: "term://main/1", Active: true}},
		active:   0,
	}
	handler := newTestServer(service).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp schema.ListSessionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Sessions) != 1 || resp.Sessions[0].ID != 1 {
		t.Fatalf("unexpected sessions: %+v", resp)
	}
}

func TestHandleResolvePendingReturnsAccepted(t *testing.T) {
	service := &fakeService{resolveErr: schema.ErrResolvePending}
	handler := newTestServer(service).Handler()

	rec := postJSON(t, handler, "/api/resolve", `{"identity":"term://other/3"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"pending":true`) {
		t.Fatalf("expected pending body, got %s", rec.Body.String())
	}
}

func TestHandleResolveUnresolvedReturns422(t *testing.T) {
	service := &fakeService{resolveErr: schema.ErrUnresolvedIdentity}
	handler := newTestServer(service).Handler()

	rec := postJSON(t, handler, "/api/resolve", `{"identity":"term://main/9"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHandleResolveRejectsBadJSON(t *testing.T) {
	handler := newTestServer(&fakeService{}).Handler()
	rec := postJSON(t, handler, "/api/resolve", `{"identity":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleActivateUnknownSession(t *testing.T) {
	handler := newTestServer(&fakeService{}).Handler()
	rec := postJSON(t, handler, "/api/activate", `{"session_id":404}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleDetachNoOp(t *testing.T) {
	handler := newTestServer(&fakeService{detached: false}).Handler()
	rec := postJSON(t, handler, "/api/detach", `{"session_id":7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp schema.DetachResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Detached {
		t.Fatalf("expected detached false for unmanaged session")
	}
}

func TestHandleSessionsRejectsPost(t *testing.T) {
	handler := newTestServer(&fakeService{}).Handler()
	rec := postJSON(t, handler, "/api/sessions", `{}`)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHubReplayAfterSeq(t *testing.T) {
	hub := NewHub(16)
	hub.OnSessionListChanged(schema.ListChangedEvent{Window: "main"})
	hub.OnSessionFocused(schema.SessionEvent{Window: "main", Session: schema.SessionSnapshot{ID: 2}})

	events := hub.Replay("main", 1)
	if len(events) != 1 {
		t.Fatalf("expected one replayed event, got %d", len(events))
	}
	if events[0].Type != string(schema.EventSessionFocused) {
		t.Fatalf("expected focused event, got %s", events[0].Type)
	}
	if events[0].Seq != 2 {
		t.Fatalf("expected seq 2, got %d", events[0].Seq)
	}
}

func TestHubSubscribeReceivesEvents(t *testing.T) {
	hub := NewHub(16)
	ch, unsub, seq, history := hub.Subscribe("main")
	defer unsub()
	if seq != 0 || len(history) != 0 {
		t.Fatalf("expected empty hub, got seq %d history %d", seq, len(history))
	}

	hub.OnActiveChanged(schema.ActiveChangedEvent{Window: "main", Session: &schema.SessionSnapshot{ID: 3}})
	event := <-ch
	if event.Type != string(schema.EventActiveChanged) || event.Session == nil || event.Session.ID != 3 {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestHubUnsubscribeDuringPublish(t *testing.T) {
	hub := NewHub(16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.OnSessionListChanged(schema.ListChangedEvent{Window: "main"})
		}
	}()
	for i := 0; i < 1000; i++ {
		_, unsub, _, _ := hub.Subscribe("main")
		unsub()
	}
	<-done
}
