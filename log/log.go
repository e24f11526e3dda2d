package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger provides a simplified structured logging interface based on
// [log/slog], extended with a Trace level below Debug.
//
// The zero value is a no-op: libraries accept a Logger by value and log
// only when the caller provided one.
type Logger struct {
	handler slog.Handler
	output  io.Writer
	level   Level
	format  Format
}

// Make creates a new [Logger] that writes to the specified writer.
// The default configuration is [DefaultFormat], [DefaultLevel],
// [DefaultTimeLayout], caller info disabled, and pretty printing
// enabled. Optional configuration is applied using functional options
// like [WithFormat], [WithLevel], [WithTimeLayout], [WithCaller], and
// [WithPretty].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		handler: cfg.handler(),
		output:  cfg.output,
		level:   cfg.level,
		format:  cfg.format,
	}
}

// Wrap returns a new [Logger] with the given configuration options
// applied over the receiver's configuration.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.handler == nil {
		return Make(nil, opts...)
	}

	cfg := apply(l.config(), opts...)

	return Logger{
		handler: cfg.handler(),
		output:  cfg.output,
		level:   cfg.level,
		format:  cfg.format,
	}
}

// With returns a new [Logger] that includes the given attributes in
// each log message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil {
		return l
	}

	l.handler = l.handler.WithAttrs(attrs)

	return l
}

// Level returns the minimum log level.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the log output format.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.format
}

// Enabled reports whether messages at the given level are emitted.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.handler != nil && l.handler.Enabled(ctx, slog.Level(level))
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.TraceContext(DefaultContextProvider(), msg, attrs...)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.DebugContext(DefaultContextProvider(), msg, attrs...)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.InfoContext(DefaultContextProvider(), msg, attrs...)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.WarnContext(DefaultContextProvider(), msg, attrs...)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.ErrorContext(DefaultContextProvider(), msg, attrs...)
}

// log writes a record at the specified level.
// Zero-value loggers silently discard every message.
func (l Logger) log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	if l.handler == nil || !l.handler.Enabled(ctx, slog.Level(level)) {
		return
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, callerPC())
	r.AddAttrs(attrs...)
	_ = l.handler.Handle(ctx, r)
}

// callerPC returns the program counter of the logging call site.
// Skip 4 frames: runtime.Callers, callerPC, log, and the *Context method.
func callerPC() uintptr {
	var pcs [1]uintptr

	runtime.Callers(4, pcs[:])

	return pcs[0]
}
