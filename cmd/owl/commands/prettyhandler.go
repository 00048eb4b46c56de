package commands

import (
	"context"
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PrettyHandler is a slog.Handler printing one colored line per record:
//
//	[15:04:05.000] WARN: message key=value
type PrettyHandler struct {
	opts   PrettyHandlerOptions
	prefix string
	attrs  []string
	l      *log.Logger
}

func NewPrettyHandler(out io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	return &PrettyHandler{
		opts: opts,
		l:    log.New(out, "", 0),
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.SlogOpts.Level != nil {
		minLevel = h.opts.SlogOpts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.BlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	fields := append([]string{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.field(a))
		return true
	})

	parts := []string{r.Time.Format("[15:04:05.000]"), level, color.CyanString(r.Message)}
	if len(fields) > 0 {
		parts = append(parts, color.WhiteString(strings.Join(fields, " ")))
	}
	h.l.Println(strings.Join(parts, " "))
	return nil
}

func (h *PrettyHandler) field(a slog.Attr) string {
	return h.prefix + a.Key + "=" + a.Value.String()
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = append([]string{}, h.attrs...)
	for _, a := range attrs {
		out.attrs = append(out.attrs, h.field(a))
	}
	return &out
}

// Groups are flattened into dotted keys.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	out.prefix = h.prefix + name + "."
	return &out
}
