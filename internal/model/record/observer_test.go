package record_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

func TestLogObserverLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := record.NewStore[*note]("note", record.NewLogObserver(logger))

	store.Add(newNote("a", "Arroz"))
	store.Remove("missing")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var added, missing map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &added); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &missing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if added["level"] != "INFO" || added["label"] != "Arroz" || added["status"] != "added" {
		t.Fatalf("unexpected add log %v", added)
	}
	if missing["level"] != "WARN" || missing["status"] != "not_found" || missing["id"] != "missing" {
		t.Fatalf("unexpected remove log %v", missing)
	}
}

func TestObserversFanOut(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	var calls int
	obs := record.Observers{first, nil, second, record.ObserverFunc(func(record.Event) { calls++ })}

	store := record.NewStore[*note]("note", obs)
	store.Add(newNote("a", "a"))

	if len(first.events) != 1 || len(second.events) != 1 || calls != 1 {
		t.Fatalf("expected one event per observer, got %d %d %d", len(first.events), len(second.events), calls)
	}
	if first.events[0].Kind != "note" || first.events[0].Op != record.OpAdd {
		t.Fatalf("unexpected event %+v", first.events[0])
	}
}

func TestEventMarshalsStatusByName(t *testing.T) {
	data, err := json.Marshal(record.Event{Kind: "note", Op: record.OpMark, Status: record.StatusUnchanged})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"status":"unchanged"`) {
		t.Fatalf("unexpected json %s", data)
	}
}
