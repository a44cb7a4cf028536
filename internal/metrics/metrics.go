// Package metrics exposes record-store and HTTP counters in the Prometheus
// text format.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

var buckets = metrics.ExponentialBuckets(1e-4, 5, 6)

// unmatchedRoute labels requests chi could not route, keeping raw paths
// out of the series set.
const unmatchedRoute = "unmatched"

// Collector counts store operations and HTTP requests in its own set.
type Collector struct {
	set *metrics.Set
}

var _ record.Observer = (*Collector)(nil)

// New returns a Collector with an empty metric set.
func New() *Collector {
	return &Collector{set: metrics.NewSet()}
}

// Observe counts one store operation by kind, op and status.
func (c *Collector) Observe(e record.Event) {
	name := fmt.Sprintf(`records_operations_total{kind=%q,op=%q,status=%q}`, e.Kind, e.Op, e.Status)
	c.set.GetOrCreateCounter(name).Inc()
}

// OperationCount returns the current value of an operation counter.
func (c *Collector) OperationCount(kind string, op record.Op, status record.Status) uint64 {
	name := fmt.Sprintf(`records_operations_total{kind=%q,op=%q,status=%q}`, kind, op, status)
	return c.set.GetOrCreateCounter(name).Get()
}

// TrackSize registers a gauge reporting the number of records of kind.
func (c *Collector) TrackSize(kind string, size func() int) {
	name := fmt.Sprintf(`records_stored{kind=%q}`, kind)
	c.set.GetOrCreateGauge(name, func() float64 { return float64(size()) })
}

// Middleware records request counts and latency per chi route pattern.
// Label values are quoted with %q so a pattern never breaks the series name.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := fmt.Sprintf(`{method=%q,path=%q,status="%d"}`, r.Method, route, status)
		c.set.GetOrCreatePrometheusHistogramExt(`http_request_duration_seconds`+labels, buckets).UpdateDuration(start)
		c.set.GetOrCreateCounter(`http_requests_total` + labels).Inc()
	})
}

// Handler writes every metric in the set.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		c.set.WritePrometheus(w)
	}
}
