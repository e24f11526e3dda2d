package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyTextHandler implements a colorized text handler for log
// messages.
type prettyTextHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, slog.Time(slog.TimeKey, r.Time))
	}

	buf.WriteString(levelColor(r.Level))
	buf.WriteString(strings.ToUpper(Level(r.Level).String()))
	buf.WriteString(colorReset)
	buf.WriteByte(' ')

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, slog.String(
				slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line),
			))
		}
	}

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		buf.WriteByte(' ')
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		buf.WriteByte(' ')
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	dup := *h
	dup.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &dup
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	dup := *h

	if dup.group != "" {
		dup.group += "."
	}

	dup.group += name

	return &dup
}

// writeAttr writes one attribute as "key=value" with a gray key.
// Group values flatten to dotted keys.
func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for i, member := range a.Value.Group() {
			if i > 0 {
				buf.WriteByte(' ')
			}

			member.Key = a.Key + "." + member.Key
			h.writeAttr(buf, member)
		}

		return
	}

	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	switch a.Key {
	case slog.TimeKey:
		buf.WriteString(colorGray)
		buf.WriteString(a.Value.String())
		buf.WriteString(colorReset)
		buf.WriteByte(' ')
	default:
		buf.WriteString(colorGray)
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(colorReset)
		buf.WriteString(a.Value.String())
	}
}

// levelColor maps a level to the color of its pretty-printed name.
func levelColor(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorMagenta
	case level < slog.LevelInfo:
		return colorCyan
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}
