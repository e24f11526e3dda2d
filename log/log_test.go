package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	// Must not panic and must report nothing enabled.
	l.Info("dropped")
	l.Error("dropped")

	if l.Enabled(context.Background(), LevelError) {
		t.Error("zero-value logger must not be enabled")
	}

	if l.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", l.Level())
	}

	if l.Format() != DefaultFormat {
		t.Errorf("expected default format, got %v", l.Format())
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON))
	l.Info("hello", slog.String("key", "value"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if rec["msg"] != "hello" {
		t.Errorf("expected msg hello, got %v", rec["msg"])
	}

	if rec["key"] != "value" {
		t.Errorf("expected key=value, got %v", rec["key"])
	}

	if rec["level"] != "INFO" {
		t.Errorf("expected level INFO, got %v", rec["level"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelWarn))

	l.Debug("dropped")
	l.Info("dropped")

	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %s", buf.String())
	}

	l.Warn("kept")

	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn output, got %s", buf.String())
	}
}

func TestLogger_TraceLevelLabel(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	l.Trace("fine detail")

	if !strings.Contains(buf.String(), `"TRACE"`) {
		t.Errorf("expected TRACE label, got %s", buf.String())
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(false))
	l.Info("hello", slog.Int("n", 1))

	out := buf.String()

	for _, want := range []string{"msg=hello", "n=1", "level=INFO"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q: %s", want, out)
		}
	}
}

func TestLogger_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true))
	l.Info("hello", slog.String("key", "value"))

	out := buf.String()

	if !strings.Contains(out, "INFO") || !strings.Contains(out, "hello") {
		t.Errorf("pretty output missing record content: %s", out)
	}

	if !strings.Contains(out, "\033[") {
		t.Errorf("pretty output missing color codes: %s", out)
	}
}

func TestLogger_TimeLayoutNone(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))
	l.Info("no timestamp")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("expected no time key, got %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("component", "core"))
	l.Info("tagged")

	if !strings.Contains(buf.String(), `"component":"core"`) {
		t.Errorf("expected attached attribute, got %s", buf.String())
	}
}

func TestLogger_WrapKeepsOutput(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON)).
		Wrap(WithLevel(LevelDebug))
	l.Debug("still here")

	if !strings.Contains(buf.String(), "still here") {
		t.Errorf("wrapped logger lost its writer: %q", buf.String())
	}

	if l.Level() != LevelDebug {
		t.Errorf("expected wrapped level debug, got %v", l.Level())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{input: "trace", want: LevelTrace},
		{input: "TRACE", want: LevelTrace},
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "bogus", want: DefaultLevel},
		{input: "", want: DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): expected %v, got %v",
					tt.input, tt.want, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{input: "json", want: FormatJSON},
		{input: "JSON", want: FormatJSON},
		{input: "text", want: FormatText},
		{input: "anything else", want: FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q): expected %v, got %v",
					tt.input, tt.want, got)
			}
		})
	}
}

func TestResolveTimeLayout(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "RFC3339", want: time.RFC3339},
		{input: "rfc3339nano", want: time.RFC3339Nano},
		{input: "Kitchen", want: time.Kitchen},
		{input: "none", want: ""},
		{input: "2006-01-02", want: "2006-01-02"}, // custom passes through
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := resolveTimeLayout(tt.input); got != tt.want {
				t.Errorf("resolveTimeLayout(%q): expected %q, got %q",
					tt.input, tt.want, got)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	var got []string
	for name := range Levels() {
		got = append(got, name)
	}

	want := []string{"trace", "debug", "info", "warn", "error"}

	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(got))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
