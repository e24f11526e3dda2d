package lang

import (
	"context"
	"strings"
	"testing"
)

func TestFormat_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "fields and types",
			input: `B { int port = 8080; host = "localhost"; ok = true; c = 'x'; }`,
		},
		{
			name:  "labels and nesting",
			input: `Net { if "eth0" { addr = "10.0.0.1"; } } Net2 {}`,
		},
		{
			name:  "arrays",
			input: `B { a = {}; b = { 1, "two", { 'c' } }; }`,
		},
		{
			name:  "references survive formatting",
			input: `B { v = $Server.port; w = $.v; u = ^^deep["l"].f; }`,
		},
		{
			name:  "string escapes",
			input: `B { s = "a\nb\t\"c\"\\"; c = '\n'; }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input)

			var buf strings.Builder
			if err := tree.Format(&buf, 2); err != nil {
				t.Fatalf("format error: %v", err)
			}

			again, err := ParseString(context.Background(), buf.String())
			if err != nil {
				t.Fatalf("reparse error: %v\n%s", err, buf.String())
			}

			var buf2 strings.Builder
			if err := again.Format(&buf2, 2); err != nil {
				t.Fatalf("reformat error: %v", err)
			}

			if buf.String() != buf2.String() {
				t.Errorf("format not stable under round trip:\n%s\nvs:\n%s",
					buf.String(), buf2.String())
			}
		})
	}
}

func TestFormat_Output(t *testing.T) {
	tree := mustParse(t, `Server "main" { int port = 8080; Tls { on = true; } }`)

	var buf strings.Builder
	if err := tree.Format(&buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := `Server "main" {
  int port = 8080;
  Tls {
    on = true;
  }
}
`

	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestDump_Output(t *testing.T) {
	tree := mustParse(t, `Server "main" { int port = 8080; host = "localhost"; Tls { on = true; } }`)

	var buf strings.Builder
	if err := tree.Dump(&buf); err != nil {
		t.Fatalf("dump error: %v", err)
	}

	want := `Block: Server  label: "main"
  Field: port  (type: int)  value: 8080
  Field: host  (type: inferred)  value: "localhost"
  Block: Tls
    Field: on  (type: inferred)  value: true

`

	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	tree := mustParse(t, `Server { port = 8080; ok = true; }`)

	var buf strings.Builder
	if err := tree.FormatJSON(&buf, 0); err != nil {
		t.Fatalf("json error: %v", err)
	}

	want := `{"Server":{"ok":true,"port":8080}}` + "\n"

	if buf.String() != want {
		t.Errorf("expected %s, got %s", want, buf.String())
	}
}

func TestFormatYAML(t *testing.T) {
	tree := mustParse(t, `Server { port = 8080; host = "localhost"; }`)

	var buf strings.Builder
	if err := tree.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("yaml error: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"Server:", "port: 8080", "host: localhost"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}
}
