package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns attributes that change over the plugin's lifetime,
// such as the session id and the number of loaded props.
type ContextProvider func() []slog.Attr

// ContextHandler adds the provider's attributes to every record. A record
// that already carries an attribute with the same key keeps its own value.
type ContextHandler struct {
	next     slog.Handler
	provider ContextProvider
}

// NewContextHandler wraps next. A nil provider makes the handler a pass-through.
func NewContextHandler(next slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{next: next, provider: provider}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider == nil {
		return h.next.Handle(ctx, r)
	}

	attrs := h.provider()
	if len(attrs) == 0 {
		return h.next.Handle(ctx, r)
	}

	own := make(map[string]struct{}, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		own[a.Key] = struct{}{}
		return true
	})
	for _, a := range attrs {
		if _, ok := own[a.Key]; !ok {
			r.AddAttrs(a)
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.next.WithAttrs(attrs), h.provider)
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return NewContextHandler(h.next.WithGroup(name), h.provider)
}
