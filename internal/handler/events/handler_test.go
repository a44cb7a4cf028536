package events

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
	eventservice "github.com/zhouzirui/z-ledger/backend/internal/service/events"
)

func setupServer(t *testing.T) (*httptest.Server, *eventservice.Hub) {
	t.Helper()
	hub := eventservice.NewHub(8)
	r := chi.NewRouter()
	New(hub).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub
}

func waitForSubscribers(t *testing.T, hub *eventservice.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d subscribers", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocketReceivesEvents(t *testing.T) {
	srv, hub := setupServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	defer conn.Close()

	waitForSubscribers(t, hub, 1)
	hub.Observe(record.Event{Kind: "item", Op: record.OpMark, Status: record.StatusMarked, ID: "item-1", Label: "Arroz"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]any
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read err: %v", err)
	}
	if got["status"] != "marked" || got["label"] != "Arroz" || got["op"] != "mark" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestWebSocketUnsubscribesOnClose(t *testing.T) {
	srv, hub := setupServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	waitForSubscribers(t, hub, 1)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber not released after close")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamReceivesEvents(t *testing.T) {
	srv, hub := setupServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request err: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	waitForSubscribers(t, hub, 1)
	hub.Observe(record.Event{Kind: "book", Op: record.OpRemove, Status: record.StatusNotFound, ID: "book-x"})

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read err: %v", err)
		}
		if line != "event: record\n" {
			continue
		}
		data, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read err: %v", err)
		}
		var got record.Event
		if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(data), "data: ")), &got); err != nil {
			t.Fatalf("decode err: %v (%q)", err, data)
		}
		if got.ID != "book-x" || got.Kind != "book" {
			t.Fatalf("unexpected event %+v", got)
		}
		return
	}
}
