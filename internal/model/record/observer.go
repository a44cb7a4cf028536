package record

import (
	"context"
	"log/slog"
	"time"
)

// Op names a store operation in events.
type Op string

const (
	OpAdd     Op = "add"
	OpList    Op = "list"
	OpSearch  Op = "search"
	OpRemove  Op = "remove"
	OpMark    Op = "mark"
	OpResolve Op = "resolve"
)

// Event describes one completed store operation.
type Event struct {
	Kind   string    `json:"kind"`
	Op     Op        `json:"op"`
	Status Status    `json:"status"`
	ID     string    `json:"id,omitempty"`
	Label  string    `json:"label,omitempty"`
	Term   string    `json:"term,omitempty"`
	Count  int       `json:"count"`
	Time   time.Time `json:"time"`
}

// Observer receives store events synchronously. Implementations must not
// call back into the store that emitted the event.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Observers fans an event out to every non-nil member in order.
type Observers []Observer

func (o Observers) Observe(e Event) {
	for _, obs := range o {
		if obs != nil {
			obs.Observe(e)
		}
	}
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// Nop discards all events.
var Nop Observer = nopObserver{}

// LogObserver writes events to a structured logger. Duplicate, not-found
// and ambiguous outcomes are logged at warn level, the rest at info.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns a LogObserver; a nil logger uses slog.Default.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Observe(e Event) {
	level := slog.LevelInfo
	if e.Status.Warning() {
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{
		slog.String("kind", e.Kind),
		slog.String("op", string(e.Op)),
		slog.String("status", e.Status.String()),
	}
	if e.ID != "" {
		attrs = append(attrs, slog.String("id", e.ID))
	}
	if e.Label != "" {
		attrs = append(attrs, slog.String("label", e.Label))
	}
	if e.Op == OpSearch || e.Op == OpResolve {
		attrs = append(attrs, slog.String("term", e.Term))
	}
	if e.Op == OpList || e.Op == OpSearch {
		attrs = append(attrs, slog.Int("count", e.Count))
	}
	o.logger.LogAttrs(context.Background(), level, "record "+string(e.Op), attrs...)
}
