package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrMaxDepthExceeded = NewError("maximum block nesting depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrUnresolvedRef    = NewError("unresolved reference")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches errors derived from the same sentinel. Wrap and With return
// new instances, so identity is carried by the base message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError is a fatal grammar violation. It reports the exact source
// position, the offending token's textual form, and a description of what
// was expected. No partial tree accompanies a ParseError; callers must
// treat it as fatal.
type ParseError struct {
	Pos      Position
	Token    Token
	Expected string
	Source   string // The original source input, for snippet rendering
}

// newParseError creates a ParseError for the given offending token.
func newParseError(tok Token, expected string) *ParseError {
	return &ParseError{
		Pos:      tok.Pos,
		Token:    tok,
		Expected: expected,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(": unexpected ")
	buf.WriteString(e.Token.Describe())

	if e.Source != "" {
		buf.WriteString(":\n")
		buf.WriteString(e.snippet())
	} else {
		buf.WriteString("; ")
	}

	buf.WriteString("\texpected: ")
	buf.WriteString(e.Expected)

	return buf.String()
}

// snippet renders the offending source line with a caret marking the
// error column.
func (e *ParseError) snippet() string {
	lines := strings.Split(e.Source, "\n")

	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}

	line := lines[e.Pos.Line-1]

	var buf strings.Builder

	// Print the line with line number
	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteRune('\n')

	// Print marker pointing to the column
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(e.Pos.Line))+5)

	if e.Pos.Column > 0 {
		padding += strings.Repeat(" ", e.Pos.Column-1)
	}

	buf.WriteString(padding + "^\n")

	return buf.String()
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
		slog.String("token", e.Token.Describe()),
		slog.String("expected", e.Expected),
	)
}
