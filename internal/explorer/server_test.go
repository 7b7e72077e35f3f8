package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/catalog"
	"github.com/ziadkadry99/asset-atlas/internal/db"
	"github.com/ziadkadry99/asset-atlas/internal/view"
)

const testDefinition = `
assets:
  - id: P
    area: Sales
    description: pricing
  - id: D
    area: Sales
    description: deals & more
  - id: M
    area: Billing
    description: money
edges:
  - ["P", "D"]
  - ["D", "M"]
`

func setupTest(t *testing.T, cfg Config) *Server {
	t.Helper()
	def, err := catalog.Decode(strings.NewReader(testDefinition))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a, err := atlas.New(def, atlas.Options{Title: "Test"})
	if err != nil {
		t.Fatalf("atlas.New: %v", err)
	}
	srv := New(cfg, a, nil)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv
}

func do(t *testing.T, srv *Server, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := setupTest(t, Config{})
	w := do(t, srv, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := setupTest(t, Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestIndex(t *testing.T) {
	srv := setupTest(t, Config{})
	w := do(t, srv, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/ws/view") {
		t.Errorf("unexpected index response: %d", w.Code)
	}
}

func TestMenu(t *testing.T) {
	srv := setupTest(t, Config{})
	w := do(t, srv, http.MethodGet, "/api/menu", nil)

	var menu menuResponse
	if err := json.NewDecoder(w.Body).Decode(&menu); err != nil {
		t.Fatalf("decoding menu: %v", err)
	}
	want := []string{"Overview", "Billing", "Sales"}
	if strings.Join(menu.Items, ",") != strings.Join(want, ",") {
		t.Errorf("items = %v, want %v", menu.Items, want)
	}
	if menu.Current != "Overview" {
		t.Errorf("current = %q", menu.Current)
	}
}

func TestSelectAndPick(t *testing.T) {
	srv := setupTest(t, Config{})

	w := do(t, srv, http.MethodPost, "/api/view", selectRequest{Label: "Sales"})
	if w.Code != http.StatusOK {
		t.Fatalf("select: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var f atlas.Frame
	if err := json.NewDecoder(w.Body).Decode(&f); err != nil {
		t.Fatalf("decoding frame: %v", err)
	}
	if f.Area != "Sales" || len(f.Nodes) != 2 || f.Title != "Test - Sales" {
		t.Fatalf("frame = %+v", f)
	}

	w = do(t, srv, http.MethodPost, "/api/pick", pickRequest{Index: 1, DrawOrder: f.Nodes})
	if w.Code != http.StatusOK {
		t.Fatalf("pick: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var d detailResponse
	if err := json.NewDecoder(w.Body).Decode(&d); err != nil {
		t.Fatalf("decoding detail: %v", err)
	}
	if d.Kind != "asset" || d.ID != "D" {
		t.Errorf("detail = %+v", d)
	}
	if !strings.HasPrefix(d.Text, "Asset: D\n") {
		t.Errorf("text = %q", d.Text)
	}
	if !strings.Contains(d.HTML, "deals &amp; more") {
		t.Errorf("html = %q", d.HTML)
	}
}

func TestPickErrors(t *testing.T) {
	srv := setupTest(t, Config{})
	tests := []struct {
		name string
		req  pickRequest
		want int
	}{
		{"out of range", pickRequest{Index: 7, DrawOrder: []string{"Sales"}}, http.StatusBadRequest},
		{"negative", pickRequest{Index: -1, DrawOrder: []string{"Sales"}}, http.StatusBadRequest},
		{"stale order", pickRequest{Index: 0, DrawOrder: []string{"P"}}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/pick", tt.req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			var d detailResponse
			if err := json.NewDecoder(w.Body).Decode(&d); err != nil {
				t.Fatalf("decoding detail: %v", err)
			}
			if d.Text != "" || d.Error == "" {
				t.Errorf("expected empty detail with error, got %+v", d)
			}
		})
	}

	if !srv.atlas.Current().IsOverview() {
		t.Error("failed picks must not change the view")
	}
}

func TestPickFromOtherArea(t *testing.T) {
	srv := setupTest(t, Config{})
	do(t, srv, http.MethodPost, "/api/view", selectRequest{Label: "Billing"})

	w := do(t, srv, http.MethodPost, "/api/pick", pickRequest{Index: 0, DrawOrder: []string{"P", "D"}})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestSelectUnknownArea(t *testing.T) {
	srv := setupTest(t, Config{})
	w := do(t, srv, http.MethodPost, "/api/view", selectRequest{Label: "Nowhere"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	w = do(t, srv, http.MethodGet, "/api/frame?view=Nowhere", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("frame: expected 404, got %d", w.Code)
	}
}

func TestFrameDoesNotSwitchView(t *testing.T) {
	srv := setupTest(t, Config{})
	w := do(t, srv, http.MethodGet, "/api/frame?view=Billing", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !srv.atlas.Current().IsOverview() {
		t.Error("GET /api/frame changed the view")
	}
}

func TestSearch(t *testing.T) {
	srv := setupTest(t, Config{})

	w := do(t, srv, http.MethodGet, "/api/search?q=p*", nil)
	var res searchResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decoding search: %v", err)
	}
	if len(res.Assets) != 1 || res.Assets[0].ID != "P" {
		t.Errorf("assets = %+v", res.Assets)
	}

	if w := do(t, srv, http.MethodGet, "/api/search", nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing q: expected 400, got %d", w.Code)
	}
	if w := do(t, srv, http.MethodGet, "/api/search?q=%5B", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad pattern: expected 400, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := setupTest(t, Config{})
	do(t, srv, http.MethodPost, "/api/view", selectRequest{Label: "Sales"})

	w := do(t, srv, http.MethodGet, "/metrics", nil)
	body := w.Body.String()
	for _, want := range []string{`atlas_view_changes_total{view="Sales"} 1`, "atlas_catalog_assets 3"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func readMessage(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(v); err != nil {
		t.Fatalf("read: %v", err)
	}
}

func TestWebSocketStream(t *testing.T) {
	srv := setupTest(t, Config{})
	server := httptest.NewServer(srv.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/view"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	var hello streamResponse
	readMessage(t, conn, &hello)
	if hello.Type != "hello" || hello.ClientID == "" {
		t.Fatalf("hello = %+v", hello)
	}

	var first frameMessage
	readMessage(t, conn, &first)
	if first.Type != "frame" || !first.Frame.Overview {
		t.Fatalf("first frame = %+v", first)
	}

	// A change made over HTTP reaches the stream.
	do(t, srv, http.MethodPost, "/api/view", selectRequest{Label: "Sales"})
	var next frameMessage
	readMessage(t, conn, &next)
	if next.Frame.Area != "Sales" {
		t.Errorf("pushed frame = %+v", next.Frame)
	}

	// Picks over the socket answer only this client.
	if err := conn.WriteJSON(streamRequest{Type: "pick", Index: 0, DrawOrder: next.Frame.Nodes}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var det streamResponse
	readMessage(t, conn, &det)
	if det.Type != "details" || det.Detail == nil || det.Detail.ID != "P" {
		t.Errorf("details = %+v", det)
	}
}

func TestWebSocketErrors(t *testing.T) {
	srv := setupTest(t, Config{})
	server := httptest.NewServer(srv.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/view"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	var skip frameMessage
	readMessage(t, conn, &skip) // hello
	readMessage(t, conn, &skip) // current frame

	tests := []streamRequest{
		{Type: "select", Label: "Nowhere"},
		{Type: "pick", Index: 9, DrawOrder: []string{"Sales"}},
		{Type: "unknown"},
	}
	for _, req := range tests {
		if err := conn.WriteJSON(req); err != nil {
			t.Fatalf("write: %v", err)
		}
		var resp streamResponse
		readMessage(t, conn, &resp)
		if resp.Type != "error" || resp.Content == "" {
			t.Errorf("%s: expected error, got %+v", req.Type, resp)
		}
	}
}

func TestJournal(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	store := audit.NewStore(database)
	srv := setupTest(t, Config{Journal: audit.NewJournal(store, audit.ActorWeb)})

	if w := do(t, srv, http.MethodPost, "/api/view", selectRequest{Label: "Sales"}); w.Code != http.StatusOK {
		t.Fatalf("select: %d", w.Code)
	}
	do(t, srv, http.MethodPost, "/api/pick", pickRequest{Index: 0, DrawOrder: []string{"P", "D"}})
	do(t, srv, http.MethodPost, "/api/pick", pickRequest{Index: 5, DrawOrder: []string{"P", "D"}})

	w := do(t, srv, http.MethodGet, "/api/audit?view=Sales", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("audit: expected 200, got %d", w.Code)
	}
	var entries []audit.Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding entries: %v", err)
	}
	actions := map[audit.Action]int{}
	for _, e := range entries {
		if e.Actor != audit.ActorWeb {
			t.Errorf("actor = %q", e.Actor)
		}
		actions[e.Action]++
	}
	if actions[audit.ActionViewChanged] != 1 || actions[audit.ActionNodePicked] != 1 || actions[audit.ActionPickFailed] != 1 {
		t.Errorf("actions = %v", actions)
	}
}

func TestNoJournalRoutes(t *testing.T) {
	srv := setupTest(t, Config{})
	if w := do(t, srv, http.MethodGet, "/api/audit", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without a journal, got %d", w.Code)
	}
}

func TestPickRecordsResolvedView(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	store := audit.NewStore(database)
	j := audit.NewJournal(store, audit.ActorWeb)
	srv := setupTest(t, Config{Journal: j})

	// The atlas moves on to Sales while a pick read in the overview is in flight.
	if err := srv.atlas.Select("Sales"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	resp, err := pickDetail(context.Background(), srv.atlas, srv.metrics, j, view.Overview(), 0, []string{"Billing", "Sales"})
	if err != nil {
		t.Fatalf("pickDetail: %v", err)
	}
	if resp.Kind != "area" || resp.ID != "Billing" {
		t.Errorf("resolved %s %q, want area Billing", resp.Kind, resp.ID)
	}

	entries, err := store.Query(context.Background(), audit.QueryFilter{Action: audit.ActionNodePicked})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 pick entry, got %d", len(entries))
	}
	if entries[0].View != view.OverviewLabel || entries[0].Subject != "Billing" {
		t.Errorf("entry = %+v, want Billing picked in %s", entries[0], view.OverviewLabel)
	}
}
