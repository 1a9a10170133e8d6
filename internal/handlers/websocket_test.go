package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"plant_monitor/internal/metrics"
	"plant_monitor/internal/service"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func wsURL(t *testing.T, srv *httptest.Server, path, rawQuery string) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = path
	u.RawQuery = rawQuery
	return u.String()
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func readView(t *testing.T, conn *websocket.Conn) service.DepartmentPage {
	t.Helper()
	env := readEnvelope(t, conn)
	if env.Type != "view" {
		t.Fatalf("expected view envelope, got %+v", env)
	}
	var page service.DepartmentPage
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("unmarshal page: %v", err)
	}
	return page
}

func TestWebSocket_DepartmentViewSession(t *testing.T) {
	cat := &mockCatalog{}
	m := metrics.New()
	h := NewHandler(&service.Service{Catalog: cat}, nil, Options{Metrics: m})
	srv := httptest.NewServer(h.InitRoutes())
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv, "/ws/sites/S1/departments/D1", "sort=uptime"), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// initial view uses the URL query
	page := readView(t, conn)
	if page.Query != (service.ViewQuery{Sort: service.SortByUptime}) || page.Department.ID != "D1" {
		t.Fatalf("unexpected initial page: %+v", page)
	}

	// search only: sort is kept
	if err := conn.WriteJSON(map[string]string{"search": "presse"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	page = readView(t, conn)
	if page.Query != (service.ViewQuery{Search: "presse", Sort: service.SortByUptime}) {
		t.Fatalf("unexpected query after search: %+v", page.Query)
	}

	// invalid sort: error, session stays open, state unchanged
	if err := conn.WriteJSON(map[string]string{"sort": "price"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	env := readEnvelope(t, conn)
	if env.Type != "error" || !strings.Contains(env.Error, "invalid sort key") {
		t.Fatalf("expected error envelope, got %+v", env)
	}

	// malformed message: error, session stays open
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if env := readEnvelope(t, conn); env.Type != "error" {
		t.Fatalf("expected error envelope, got %+v", env)
	}

	if err := conn.WriteJSON(map[string]string{"sort": "energy"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	page = readView(t, conn)
	if page.Query != (service.ViewQuery{Search: "presse", Sort: service.SortByEnergy}) {
		t.Fatalf("unexpected query after sort: %+v", page.Query)
	}

	qs := cat.queries()
	if len(qs) != 3 {
		t.Fatalf("expected 3 catalog calls (initial + 2 accepted), got %v", qs)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "plant_monitor_ws_sessions_active 1") {
		t.Fatalf("active session gauge missing:\n%s", body)
	}
}

func TestWebSocket_NotFoundBeforeUpgrade(t *testing.T) {
	cat := &mockCatalog{depErr: &service.NotFoundError{Level: service.LevelDepartment, ID: "DX"}}
	srv := httptest.NewServer(newTestRouter(&service.Service{Catalog: cat}))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(wsURL(t, srv, "/ws/sites/S1/departments/DX", ""), nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 response, got %+v", resp)
	}
}

func TestWebSocket_BadInitialSort(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&service.Service{Catalog: &mockCatalog{}}))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(wsURL(t, srv, "/ws/sites/S1/departments/D1", "sort=bogus"), nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 response, got %+v", resp)
	}
}

func TestWebSocket_OversizedMessageClosesSession(t *testing.T) {
	h := NewHandler(&service.Service{Catalog: &mockCatalog{}}, nil, Options{MaxMessageBytes: 64})
	srv := httptest.NewServer(h.InitRoutes())
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv, "/ws/sites/S1/departments/D1", ""), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	readView(t, conn)

	big := `{"search":"` + strings.Repeat("x", 256) + `"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(big)); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected the server to close the session, got %s", string(raw))
	}
}
