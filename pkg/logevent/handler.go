// Package logevent wraps a slog.Handler so that every record carrying an
// "event" attribute is also counted in a Prometheus counter. Log lines are
// for humans; the counter is what alerting watches.
package logevent

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const EventAttrKey = "event"

var eventCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "probe_logged_events",
	Help: "Count of logged events by level and name",
}, []string{"level", "group", "event"})

type handler struct {
	inner slog.Handler
	group []string
}

// NewHandler builds the counting handler around a JSON handler writing to
// stdout.
func NewHandler(opt *slog.HandlerOptions) slog.Handler {
	return &handler{inner: slog.NewJSONHandler(os.Stdout, opt)}
}

var _ slog.Handler = &handler{}

func (l *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *handler) Handle(ctx context.Context, r slog.Record) error {
	var event string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == EventAttrKey {
			event = a.Value.String()
			return false
		}
		return true
	})
	if event != "" {
		group := "/" + strings.Join(l.group, "/")
		eventCounter.WithLabelValues(r.Level.String(), group, event).Inc()
	}
	return l.inner.Handle(ctx, r)
}

func (l *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{inner: l.inner.WithAttrs(attrs), group: l.group}
}

func (l *handler) WithGroup(name string) slog.Handler {
	group := append(append([]string{}, l.group...), name)
	return &handler{inner: l.inner.WithGroup(name), group: group}
}

var ctxKey = &handler{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(ctxKey).(*slog.Logger)
	if logger == nil {
		return slog.Default()
	}
	return logger
}
