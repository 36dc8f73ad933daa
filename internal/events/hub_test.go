package events

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestHubBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	// first frame is the welcome message
	_, msg, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if !strings.Contains(string(msg), "welcome") {
		t.Fatalf("welcome frame = %s", msg)
	}

	// the welcome frame is written after registration, so the
	// subscriber is guaranteed to be in the hub by now
	if hub.Count() != 1 {
		t.Fatalf("hub count = %d, want 1", hub.Count())
	}

	hub.Broadcast(Event{Type: ReviewCreated, ActorID: "u1", ReviewID: "r1"})

	_, msg, err = ws.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if ev.Type != ReviewCreated || ev.ReviewID != "r1" {
		t.Fatalf("event = %+v", ev)
	}
	if ev.At.IsZero() {
		t.Error("event timestamp not set")
	}
}
