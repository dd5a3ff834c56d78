package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler writes each record to the terminal handler and to the rolling
// file handler. Both share one level, so Enabled asks the terminal only.
type teeHandler struct {
	terminal slog.Handler
	file     slog.Handler
}

func (h teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.terminal.Enabled(ctx, level)
}

func (h teeHandler) Handle(ctx context.Context, r slog.Record) error {
	return errors.Join(h.terminal.Handle(ctx, r.Clone()), h.file.Handle(ctx, r))
}

func (h teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{terminal: h.terminal.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{terminal: h.terminal.WithGroup(name), file: h.file.WithGroup(name)}
}
