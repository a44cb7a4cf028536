package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zhouzirui/z-ledger/backend/internal/metrics"
	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
	eventservice "github.com/zhouzirui/z-ledger/backend/internal/service/events"
)

func TestRouterServesKindsAndMetrics(t *testing.T) {
	collector := metrics.New()
	svcs := NewServices(record.Observers{collector})
	router := NewRouter(svcs, eventservice.NewHub(4), collector)

	req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader([]byte(`{"title":"Dom Quixote","author":"Miguel de Cervantes","year":1605}`)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if svcs.Books.Len() != 1 {
		t.Fatalf("expected one book, got %d", svcs.Books.Len())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := resp.Body.String()
	for _, want := range []string{
		`records_operations_total{kind="book",op="add",status="added"} 1`,
		`records_stored{kind="book"} 1`,
		`path="/api/books`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics:\n%s", want, body)
		}
	}
}

func TestRouterWithoutOptionalFeatures(t *testing.T) {
	router := NewRouter(NewServices(nil), nil, nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for disabled metrics, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/events/ws", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for disabled events, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", resp.Code)
	}
}
