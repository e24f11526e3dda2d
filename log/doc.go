// Package log wraps [log/slog] with leveled, structured logging that
// adds a [LevelTrace] level below debug, selectable text, JSON, and
// colorized output formats, and functional options for configuring
// output destination, timestamp layout, and caller annotation.
//
// The zero-value [Logger] discards all records. Construct a usable
// logger with [Make], or use the package-level functions, which share
// a default logger configured via [Config].
package log
