package lang

import (
	"math"
	"testing"
)

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "punctuation",
			input: `{ } = ; , [ ] $ . ^`,
			want: []Kind{
				KindLBrace, KindRBrace, KindAssign, KindSemi, KindComma,
				KindLBracket, KindRBracket, KindDollar, KindDot, KindCaret,
			},
		},
		{
			name:  "reserved words",
			input: `int float bool string true false`,
			want: []Kind{
				KindTypeInt, KindTypeFloat, KindTypeBool, KindTypeString,
				KindBool, KindBool,
			},
		},
		{
			name:  "identifiers are not reserved prefixes",
			input: `integer boolean strings truthy`,
			want:  []Kind{KindIdent, KindIdent, KindIdent, KindIdent},
		},
		{
			name:  "literals",
			input: `42 -7 "hi" 'x'`,
			want:  []Kind{KindInt, KindInt, KindString, KindChar},
		},
		{
			name:  "field shape",
			input: `port = 8080;`,
			want:  []Kind{KindIdent, KindAssign, KindInt, KindSemi},
		},
		{
			name:  "unknown byte",
			input: `a @ b`,
			want:  []Kind{KindIdent, KindUnknown, KindIdent},
		},
		{
			name:  "empty input",
			input: ``,
			want:  []Kind{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex := NewLexer(tt.input)

			for i, want := range tt.want {
				tok := lex.Next()
				if tok.Kind != want {
					t.Errorf("token %d: expected %v, got %v", i, want, tok.Kind)
				}
			}

			if tok := lex.Next(); tok.Kind != KindEOF {
				t.Errorf("expected EOF after all tokens, got %v", tok.Kind)
			}

			// EOF repeats indefinitely
			if tok := lex.Next(); tok.Kind != KindEOF {
				t.Errorf("expected EOF to repeat, got %v", tok.Kind)
			}
		})
	}
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `"hello"`, want: "hello"},
		{name: "empty", input: `""`, want: ""},
		{
			name:  "escapes",
			input: `"a\nb\tc\rd\\e\"f\0g"`,
			want:  "a\nb\tc\rd\\e\"f\x00g",
		},
		{name: "unknown escape is literal", input: `"\q"`, want: "q"},
		{name: "unterminated runs to end", input: `"abc`, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewLexer(tt.input).Next()

			if tok.Kind != KindString {
				t.Fatalf("expected string token, got %v", tok.Kind)
			}

			if tok.Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tok.Text)
			}
		})
	}
}

func TestLexer_Chars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{name: "plain", input: `'x'`, want: 'x'},
		{name: "escaped newline", input: `'\n'`, want: '\n'},
		{name: "escaped quote", input: `'\''`, want: '\''},
		{name: "nul", input: `'\0'`, want: 0},
		{name: "unterminated tolerated", input: `'x`, want: 'x'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewLexer(tt.input).Next()

			if tok.Kind != KindChar {
				t.Fatalf("expected character token, got %v", tok.Kind)
			}

			if tok.Char != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tok.Char)
			}
		})
	}
}

func TestLexer_Ints(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "zero", input: `0`, want: 0},
		{name: "positive", input: `8080`, want: 8080},
		{name: "negative", input: `-42`, want: -42},
		{name: "int64 max", input: `9223372036854775807`, want: math.MaxInt64},
		{name: "int64 min", input: `-9223372036854775808`, want: math.MinInt64},
		{
			name:  "overflow saturates high",
			input: `99999999999999999999`,
			want:  math.MaxInt64,
		},
		{
			name:  "overflow saturates low",
			input: `-99999999999999999999`,
			want:  math.MinInt64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewLexer(tt.input).Next()

			if tok.Kind != KindInt {
				t.Fatalf("expected integer token, got %v", tok.Kind)
			}

			if tok.Int != tt.want {
				t.Errorf("expected %d, got %d", tt.want, tok.Int)
			}
		})
	}
}

func TestLexer_Comments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "line comment",
			input: "a // rest of line\nb",
			want:  []Kind{KindIdent, KindIdent},
		},
		{
			name:  "line comment at end of input",
			input: "a // no newline",
			want:  []Kind{KindIdent},
		},
		{
			name:  "block comment",
			input: "a /* skip\nme */ b",
			want:  []Kind{KindIdent, KindIdent},
		},
		{
			name:  "unterminated block comment tolerated",
			input: "a /* runs to end",
			want:  []Kind{KindIdent},
		},
		{
			name:  "slash alone is unknown",
			input: "/",
			want:  []Kind{KindUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex := NewLexer(tt.input)

			for i, want := range tt.want {
				tok := lex.Next()
				if tok.Kind != want {
					t.Errorf("token %d: expected %v, got %v", i, want, tok.Kind)
				}
			}

			if tok := lex.Next(); tok.Kind != KindEOF {
				t.Errorf("expected EOF, got %v", tok.Kind)
			}
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	lex := NewLexer("a = 1;\n  b = 2;")

	tests := []struct {
		line int
		col  int
	}{
		{line: 1, col: 1}, // a
		{line: 1, col: 3}, // =
		{line: 1, col: 5}, // 1
		{line: 1, col: 6}, // ;
		{line: 2, col: 3}, // b
		{line: 2, col: 5}, // =
		{line: 2, col: 7}, // 2
		{line: 2, col: 8}, // ;
	}

	for i, tt := range tests {
		tok := lex.Next()

		if tok.Pos.Line != tt.line || tok.Pos.Column != tt.col {
			t.Errorf("token %d: expected position %d:%d, got %s",
				i, tt.line, tt.col, tok.Pos)
		}
	}
}

func TestLexer_BOM(t *testing.T) {
	tok := NewLexer("\xef\xbb\xbfname").Next()

	if tok.Kind != KindIdent || tok.Text != "name" {
		t.Errorf("expected identifier after BOM, got %v %q", tok.Kind, tok.Text)
	}
}
