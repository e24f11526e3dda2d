package lang

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical class of a Token.
type Kind int

const (
	// KindEOF marks the end of input.
	KindEOF Kind = iota

	// KindIdent is an identifier: [A-Za-z_][A-Za-z0-9_]*.
	KindIdent

	// KindInt is an integer literal, optionally negative.
	KindInt

	// KindString is a double-quoted string literal with escapes decoded.
	KindString

	// KindChar is a single-quoted character literal.
	KindChar

	// KindBool is the reserved word true or false.
	KindBool

	// KindLBrace is "{".
	KindLBrace

	// KindRBrace is "}".
	KindRBrace

	// KindAssign is "=".
	KindAssign

	// KindSemi is ";".
	KindSemi

	// KindComma is ",".
	KindComma

	// KindLBracket is "[".
	KindLBracket

	// KindRBracket is "]".
	KindRBracket

	// KindDollar is "$", introducing a reference.
	KindDollar

	// KindDot is ".", separating reference path segments.
	KindDot

	// KindCaret is "^", one parent hop in a reference.
	KindCaret

	// KindTypeInt is the reserved word int.
	KindTypeInt

	// KindTypeFloat is the reserved word float.
	KindTypeFloat

	// KindTypeBool is the reserved word bool.
	KindTypeBool

	// KindTypeString is the reserved word string.
	KindTypeString

	// KindUnknown is any byte the lexer does not recognize.
	// The parser rejects it with a positional error.
	KindUnknown
)

// String returns a human-readable name for the token kind, used in
// parse error messages.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindIdent:
		return "identifier"
	case KindInt:
		return "integer literal"
	case KindString:
		return "string literal"
	case KindChar:
		return "character literal"
	case KindBool:
		return "boolean literal"
	case KindLBrace:
		return `"{"`
	case KindRBrace:
		return `"}"`
	case KindAssign:
		return `"="`
	case KindSemi:
		return `";"`
	case KindComma:
		return `","`
	case KindLBracket:
		return `"["`
	case KindRBracket:
		return `"]"`
	case KindDollar:
		return `"$"`
	case KindDot:
		return `"."`
	case KindCaret:
		return `"^"`
	case KindTypeInt:
		return `"int"`
	case KindTypeFloat:
		return `"float"`
	case KindTypeBool:
		return `"bool"`
	case KindTypeString:
		return `"string"`
	case KindUnknown:
		return "unknown token"
	default:
		return "invalid token"
	}
}

// Position locates a token in the source text.
// Offset is a byte offset from the start of input; Line and Column are
// 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String formats the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is the lexical unit produced by the Lexer and consumed by the
// parser through a Cursor.
//
// Text carries the decoded payload for identifiers and string literals.
// Int, Bool, and Char carry the payload for their respective literal kinds.
// Tokens are plain values: copies made for lookahead are independently
// valid and share no mutable state.
type Token struct {
	Kind Kind
	Text string
	Int  int64
	Bool bool
	Char rune
	Pos  Position
}

// Describe returns the token's textual form for diagnostics: the literal
// payload where one exists, otherwise the kind name. Integer tokens include
// their numeric payload.
func (t Token) Describe() string {
	switch t.Kind {
	case KindIdent:
		return fmt.Sprintf("identifier %q", t.Text)
	case KindString:
		return "string " + strconv.Quote(t.Text)
	case KindInt:
		return "integer " + strconv.FormatInt(t.Int, 10)
	case KindBool:
		return "boolean " + strconv.FormatBool(t.Bool)
	case KindChar:
		return "character " + strconv.QuoteRune(t.Char)
	default:
		return t.Kind.String()
	}
}
