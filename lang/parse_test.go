package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseString_Blocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int // number of top-level blocks
	}{
		{
			name:  "empty input",
			input: ``,
			want:  0,
		},
		{
			name:  "single empty block",
			input: `Server {}`,
			want:  1,
		},
		{
			name:  "multiple blocks",
			input: `A {} B {} C {}`,
			want:  3,
		},
		{
			name:  "block with fields",
			input: `Server { host = "localhost"; port = 8080; }`,
			want:  1,
		},
		{
			name:  "comments anywhere",
			input: "// heading\nServer { /* inline */ port = 1; }",
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseString(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if len(tree.Blocks) != tt.want {
				t.Errorf("expected %d blocks, got %d", tt.want, len(tree.Blocks))
			}
		})
	}
}

func TestParseString_Labels(t *testing.T) {
	input := `
		Interface "eth0" {
			addr = "10.0.0.1";
		}
		Interface "eth1" {
			addr = "10.0.1.1";
		}
	`

	tree, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(tree.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(tree.Blocks))
	}

	for i, label := range []string{"eth0", "eth1"} {
		blk := tree.Blocks[i]

		if blk.Name != "Interface" {
			t.Errorf("block %d: expected name Interface, got %q", i, blk.Name)
		}

		if blk.Label != label {
			t.Errorf("block %d: expected label %q, got %q", i, label, blk.Label)
		}
	}
}

func TestParseString_MemberDisambiguation(t *testing.T) {
	input := `
		Outer {
			name = "value";
			Inner {
				depth = 2;
			}
			Tagged "label" {
				depth = 2;
			}
			after = true;
		}
	`

	tree, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	outer := tree.Block("Outer")
	if outer == nil {
		t.Fatal("block Outer not found")
	}

	if len(outer.Fields) != 2 {
		t.Errorf("expected 2 fields, got %d", len(outer.Fields))
	}

	if len(outer.Children) != 2 {
		t.Errorf("expected 2 children, got %d", len(outer.Children))
	}

	if c := outer.Child("Inner"); c == nil || c.Parent() != outer {
		t.Error("Inner child missing or parent pointer not set")
	}

	if c := outer.ChildLabeled("Tagged", "label"); c == nil {
		t.Error("labeled child Tagged not found")
	}
}

func TestParseString_TypedFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
		want  TypeHint
	}{
		{
			name:  "int annotation",
			input: `B { int n = 1; }`,
			field: "n",
			want:  TypeInt,
		},
		{
			name:  "float annotation",
			input: `B { float n = 1; }`,
			field: "n",
			want:  TypeFloat,
		},
		{
			name:  "bool annotation",
			input: `B { bool ok = true; }`,
			field: "ok",
			want:  TypeBool,
		},
		{
			name:  "string annotation",
			input: `B { string s = "x"; }`,
			field: "s",
			want:  TypeString,
		},
		{
			name:  "array suffix accepted",
			input: `B { int[] ns = { 1, 2, 3 }; }`,
			field: "ns",
			want:  TypeInt,
		},
		{
			name:  "inferred",
			input: `B { n = 1; }`,
			field: "n",
			want:  TypeInferred,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseString(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			f := tree.Block("B").Field(tt.field)
			if f == nil {
				t.Fatalf("field %q not found", tt.field)
			}

			if f.Type != tt.want {
				t.Errorf("expected type %v, got %v", tt.want, f.Type)
			}
		})
	}
}

func TestParseString_Values(t *testing.T) {
	input := `
		B {
			n = -17;
			ok = false;
			s = "hi\n";
			c = 'x';
			empty = {};
			mixed = { 1, "two", 'c', { true } };
		}
	`

	tree, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	blk := tree.Block("B")

	tests := []struct {
		field string
		want  *Value
	}{
		{field: "n", want: NewInt(-17)},
		{field: "ok", want: NewBool(false)},
		{field: "s", want: NewString("hi\n")},
		{field: "c", want: NewChar('x')},
		{field: "empty", want: NewArray()},
		{
			field: "mixed",
			want: NewArray(
				NewInt(1),
				NewString("two"),
				NewChar('c'),
				NewArray(NewBool(true)),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := blk.Field(tt.field)
			if f == nil {
				t.Fatalf("field %q not found", tt.field)
			}

			if !f.Value.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, f.Value)
			}
		})
	}
}

func TestParseString_References(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // Ref.String() round trip
	}{
		{
			name:  "global",
			input: `B { v = $Server.port; }`,
			want:  "$Server.port",
		},
		{
			name:  "global with label index",
			input: `B { v = $Net.if["eth0"].addr; }`,
			want:  `$Net.if["eth0"].addr`,
		},
		{
			name:  "global label on head",
			input: `B { v = $Interface["eth0"].addr; }`,
			want:  `$Interface["eth0"].addr`,
		},
		{
			name:  "local",
			input: `B { v = $.other; }`,
			want:  "$.other",
		},
		{
			name:  "parent single hop",
			input: `B { v = ^shared; }`,
			want:  "^shared",
		},
		{
			name:  "parent two hops",
			input: `B { v = ^^shared.deep; }`,
			want:  "^^shared.deep",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseString(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			f := tree.Block("B").Field("v")
			if f == nil {
				t.Fatal("field v not found")
			}

			if f.Value.Kind != KindRefVal {
				t.Fatalf("expected reference value, got %v", f.Value.Kind)
			}

			if got := f.Value.Ref.String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{
			name:  "value at top level",
			input: `42`,
			line:  1,
			col:   1,
		},
		{
			name:  "missing brace after name",
			input: `Server host`,
			line:  1,
			col:   8,
		},
		{
			name:  "missing semicolon",
			input: "B {\n\tport = 1\n}",
			line:  3,
			col:   1,
		},
		{
			name:  "unclosed block",
			input: `B { port = 1;`,
			line:  1,
			col:   14,
		},
		{
			name:  "bare identifier in body",
			input: "B {\n\tport\n}",
			line:  2,
			col:   2,
		},
		{
			name:  "trailing comma in array",
			input: `B { a = { 1, }; }`,
			line:  1,
			col:   14,
		},
		{
			name:  "reference without name",
			input: `B { v = $; }`,
			line:  1,
			col:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected parse error, got nil")
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}

			if pe.Pos.Line != tt.line || pe.Pos.Column != tt.col {
				t.Errorf("expected error at %d:%d, got %d:%d\n%v",
					tt.line, tt.col, pe.Pos.Line, pe.Pos.Column, pe)
			}
		})
	}
}

func TestParseString_ErrorMessage(t *testing.T) {
	_, err := ParseString(context.Background(), "B {\n\tport = ;\n}")
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}

	msg := err.Error()

	for _, want := range []string{
		"parse error at line 2, column 9",
		`unexpected ";"`,
		"expected:",
		"^",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}
}

func TestParseString_MaxDepth(t *testing.T) {
	input := strings.Repeat("B { ", 8) + "n = 1;" + strings.Repeat(" }", 8)

	_, err := ParseString(context.Background(), input, WithMaxDepth(4))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded, got %v", err)
	}

	if _, err := ParseString(context.Background(), input); err != nil {
		t.Errorf("default depth should accept input: %v", err)
	}
}

func TestParseReader(t *testing.T) {
	tree, err := ParseReader(context.Background(), strings.NewReader(`B { n = 1; }`))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if tree.Block("B") == nil {
		t.Error("block B not found")
	}
}
