package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Comtister/WordScramble/internal/game"
)

type wsFrame struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dialWS(t *testing.T, ts *httptest.Server, token string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/round/ws?token=" + token
	return websocket.DefaultDialer.Dial(url, header)
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f wsFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestWebSocketPlaysRound(t *testing.T) {
	s := newTestServer(t, "listen")
	round := startRound(t, s)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	conn, _, err := dialWS(t, ts, round.Token, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	f := readFrame(t, conn)
	if f.Type != MsgConnected {
		t.Fatalf("expected connected, got %s", f.Type)
	}
	var snap game.Snapshot
	_ = json.Unmarshal(f.Payload, &snap)
	if snap.RootWord != "listen" {
		t.Fatalf("expected root listen, got %q", snap.RootWord)
	}

	send := func(v interface{}) {
		if err := conn.WriteJSON(v); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	send(map[string]interface{}{"type": "submit", "payload": map[string]string{"word": "tinsel"}})
	f = readFrame(t, conn)
	var res submitRes
	_ = json.Unmarshal(f.Payload, &res)
	if f.Type != MsgResult || !res.Accepted {
		t.Fatalf("expected accepted result, got %s %+v", f.Type, res)
	}

	send(map[string]interface{}{"type": "submit", "payload": map[string]string{"word": "tinsel"}})
	f = readFrame(t, conn)
	res = submitRes{}
	_ = json.Unmarshal(f.Payload, &res)
	if res.Accepted || res.Reason != game.ReasonNotOriginal {
		t.Fatalf("expected not_original, got %+v", res)
	}

	send(map[string]string{"type": "ping"})
	if f = readFrame(t, conn); f.Type != MsgPong {
		t.Fatalf("expected pong, got %s", f.Type)
	}

	send(map[string]string{"type": "dance"})
	if f = readFrame(t, conn); f.Type != MsgError {
		t.Fatalf("expected error, got %s", f.Type)
	}

	send(map[string]interface{}{"type": "new_round", "payload": map[string]string{"mode": "random"}})
	f = readFrame(t, conn)
	var started roundStartedPayload
	_ = json.Unmarshal(f.Payload, &started)
	if f.Type != MsgRoundStarted || len(started.Round.Used) != 0 || started.Mode != ModeRandom {
		t.Fatalf("expected fresh round, got %s %+v", f.Type, started)
	}
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	s := newTestServer(t, "listen")
	round := startRound(t, s)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	_, resp, err := dialWS(t, ts, round.Token, http.Header{"Origin": []string{"http://evil.example"}})
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
}

func TestWebSocketRequiresToken(t *testing.T) {
	s := newTestServer(t, "listen")
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	_, resp, err := dialWS(t, ts, "", nil)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}
