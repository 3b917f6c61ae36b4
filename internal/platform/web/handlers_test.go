package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/bubble2048/internal/games/bubble2048"
)

func newTestServer(t *testing.T) (*Service, http.Handler) {
	t.Helper()
	svc := newTestService(t, nil)
	return svc, NewServer(svc, nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func createSession(t *testing.T, h http.Handler) SessionView {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/sessions", "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var view SessionView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loc := rr.Header().Get("Location"); loc != "/api/sessions/"+view.ID {
		t.Errorf("Location = %q", loc)
	}
	return view
}

func TestIndexPage(t *testing.T) {
	_, h := newTestServer(t)
	rr := do(t, h, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Bubble 2048") {
		t.Error("index page missing title")
	}
}

func TestCreateAndGetSession(t *testing.T) {
	_, h := newTestServer(t)
	view := createSession(t, h)

	rr := do(t, h, http.MethodGet, "/api/sessions/"+view.ID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, field := range []string{`"tiles"`, `"score"`, `"best_score"`, `"status":"playing"`} {
		if !strings.Contains(body, field) {
			t.Errorf("body missing %s: %s", field, body)
		}
	}
}

func TestCreateWithDifficulty(t *testing.T) {
	_, h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/api/sessions", `{"difficulty":"hard"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
}

func TestCreateRejectsBadJSON(t *testing.T) {
	_, h := newTestServer(t)
	rr := do(t, h, http.MethodPost, "/api/sessions", `{"difficulty":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	_, h := newTestServer(t)
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/sessions/nope", ""},
		{http.MethodPost, "/api/sessions/nope/moves", `{"direction":"left"}`},
		{http.MethodPost, "/api/sessions/nope/continue", ""},
		{http.MethodPost, "/api/sessions/nope/reset", ""},
		{http.MethodDelete, "/api/sessions/nope", ""},
		{http.MethodGet, "/api/sessions/nope/ws", ""},
	} {
		rr := do(t, h, tc.method, tc.path, tc.body)
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), ErrSessionNotFound.Error()) {
			t.Errorf("%s %s: body %q", tc.method, tc.path, rr.Body.String())
		}
	}
}

func TestMoveEndpoint(t *testing.T) {
	svc, h := newTestServer(t)
	view := createSession(t, h)
	loadBoard(t, svc, view.ID, bubble2048.Board{{2, 2, 0, 0}})

	rr := do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/moves", `{"direction":"sideways"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad direction: expected 400, got %d", rr.Code)
	}

	rr = do(t, h, http.MethodPost, "/api/sessions/"+view.ID+"/moves", `{"direction":"left"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("move: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var turn TurnView
	if err := json.Unmarshal(rr.Body.Bytes(), &turn); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !turn.Accepted || !turn.Moved || turn.ScoreDelta != 4 {
		t.Errorf("turn = %+v", turn.TurnResult)
	}
	if turn.Session.Score != 4 {
		t.Errorf("session score = %d, want 4", turn.Session.Score)
	}
	if len(turn.Directional.Tiles) == 0 {
		t.Error("turn should carry the directional phase tiles")
	}
}

func TestContinueResetDelete(t *testing.T) {
	_, h := newTestServer(t)
	view := createSession(t, h)
	base := "/api/sessions/" + view.ID

	if rr := do(t, h, http.MethodPost, base+"/continue", ""); rr.Code != http.StatusOK {
		t.Errorf("continue: expected 200, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPost, base+"/reset", ""); rr.Code != http.StatusOK {
		t.Errorf("reset: expected 200, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodDelete, base, ""); rr.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, base, ""); rr.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rr.Code)
	}
}

func TestWebSocketPlay(t *testing.T) {
	svc, h := newTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	view, _ := svc.Create("")
	loadBoard(t, svc, view.ID, bubble2048.Board{{2, 2, 0, 0}})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/" + view.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read initial state: %v", err)
	}
	if ev.Type != "state" || ev.Session == nil || ev.Session.ID != view.ID {
		t.Fatalf("initial event = %+v", ev)
	}

	// Invalid input is ignored; only the valid move produces an event.
	for _, msg := range []string{
		`not json`,
		`{"type":"jump"}`,
		`{"type":"move","direction":"diagonal"}`,
		`{"type":"move","direction":"left"}`,
	} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write %s: %v", msg, err)
		}
	}

	ev = Event{}
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read turn: %v", err)
	}
	if ev.Type != "turn" || ev.Turn == nil {
		t.Fatalf("expected turn event, got %+v", ev)
	}
	if ev.Turn.Direction != "left" || ev.Turn.ScoreDelta != 4 {
		t.Errorf("turn = %s delta %d", ev.Turn.Direction, ev.Turn.ScoreDelta)
	}

	if err := conn.WriteJSON(clientMessage{Type: "reset"}); err != nil {
		t.Fatalf("write reset: %v", err)
	}
	ev = Event{}
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read reset: %v", err)
	}
	if ev.Type != "state" || ev.Session == nil || ev.Session.Score != 0 {
		t.Errorf("reset event = %+v", ev)
	}
}
