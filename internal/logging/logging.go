// Package logging provides the single slog sink the rest of the gateway
// logs through. Grounded on nlowe-hqtt's log package: an indirectHandler
// lets main() swap in the real handler once flags/config are parsed, while
// packages constructed before that point (or in tests) can still call
// ForComponent without a nil handler panic.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

const ComponentKey = "component"

type indirectHandler struct {
	h atomic.Pointer[slog.Handler]
}

func (i *indirectHandler) Enabled(ctx context.Context, level slog.Level) bool {
	h := i.h.Load()
	if h == nil {
		return false
	}
	return (*h).Enabled(ctx, level)
}

func (i *indirectHandler) Handle(ctx context.Context, record slog.Record) error {
	h := i.h.Load()
	if h == nil {
		return nil
	}
	return (*h).Handle(ctx, record)
}

func (i *indirectHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h := i.h.Load()
	if h == nil {
		return i
	}
	return (*h).WithAttrs(attrs)
}

func (i *indirectHandler) WithGroup(name string) slog.Handler {
	h := i.h.Load()
	if h == nil {
		return i
	}
	return (*h).WithGroup(name)
}

var _ slog.Handler = &indirectHandler{}

var sink = &indirectHandler{}

// To points every logger obtained from ForComponent at h. Until To is
// called, loggers discard everything.
func To(h slog.Handler) {
	sink.h.Store(&h)
}

// ForComponent returns a logger tagged with ComponentKey=component. The tag
// goes through the sink's WithAttrs, which keeps attributes only once To has
// installed a handler: a logger obtained before To is called carries no
// component attribute.
func ForComponent(component string) *slog.Logger {
	return slog.New(sink).With(slog.String(ComponentKey, component))
}
