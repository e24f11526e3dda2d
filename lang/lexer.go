package lang

import (
	"strconv"
	"strings"
)

// Lexer scans vspec source text into a stream of position-tagged tokens.
//
// The lexer itself never fails: malformed input is either tolerated
// (unterminated strings, characters, and block comments) or emitted as a
// KindUnknown token for the parser to reject with a positional error.
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// utf8BOM is the byte-order mark optionally prefixing UTF-8 documents.
const utf8BOM = "\xef\xbb\xbf"

// NewLexer creates a lexer over the given source text.
// A leading UTF-8 byte-order mark is recognized and skipped.
func NewLexer(input string) *Lexer {
	input = strings.TrimPrefix(input, utf8BOM)

	return &Lexer{
		input: []byte(input),
		pos:   0,
		line:  1,
		col:   1,
	}
}

// Next scans and returns the next token, advancing past it.
// After the end of input it returns KindEOF indefinitely.
func (l *Lexer) Next() Token {
	l.skipSpaceAndComments()

	tok := Token{Kind: KindEOF, Pos: l.position()}

	if l.eof() {
		return tok
	}

	switch c := l.peek(); {
	case c == '{':
		l.advance()

		tok.Kind = KindLBrace
	case c == '}':
		l.advance()

		tok.Kind = KindRBrace
	case c == '=':
		l.advance()

		tok.Kind = KindAssign
	case c == ';':
		l.advance()

		tok.Kind = KindSemi
	case c == ',':
		l.advance()

		tok.Kind = KindComma
	case c == '[':
		l.advance()

		tok.Kind = KindLBracket
	case c == ']':
		l.advance()

		tok.Kind = KindRBracket
	case c == '$':
		l.advance()

		tok.Kind = KindDollar
	case c == '.':
		l.advance()

		tok.Kind = KindDot
	case c == '^':
		l.advance()

		tok.Kind = KindCaret
	case c == '"':
		return l.scanString(tok)
	case c == '\'':
		return l.scanChar(tok)
	case isIdentStart(c):
		return l.scanWord(tok)
	case isDigit(c) || (c == '-' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])):
		return l.scanInt(tok)
	default:
		l.advance()

		tok.Kind = KindUnknown
	}

	return tok
}

// scanString scans a double-quoted string literal with escape decoding.
// A missing closing quote is tolerated: the literal runs to end of input.
func (l *Lexer) scanString(tok Token) Token {
	l.advance() // opening quote

	var buf strings.Builder

	for !l.eof() {
		c := l.peek()
		l.advance()

		if c == '"' {
			break
		}

		if c == '\\' {
			buf.WriteRune(l.scanEscape())

			continue
		}

		buf.WriteByte(c)
	}

	tok.Kind = KindString
	tok.Text = buf.String()

	return tok
}

// scanChar scans a single-quoted character literal.
// A missing closing quote is tolerated.
func (l *Lexer) scanChar(tok Token) Token {
	l.advance() // opening quote

	var ch rune

	if !l.eof() {
		c := l.peek()
		l.advance()

		if c == '\\' {
			ch = l.scanEscape()
		} else {
			ch = rune(c)
		}
	}

	if !l.eof() && l.peek() == '\'' {
		l.advance()
	}

	tok.Kind = KindChar
	tok.Char = ch

	return tok
}

// scanEscape decodes one escape sequence after the backslash has been
// consumed. Unrecognized escapes map to the escaped character itself.
func (l *Lexer) scanEscape() rune {
	if l.eof() {
		return '\\'
	}

	c := l.peek()
	l.advance()

	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	case '0':
		return 0
	default:
		return rune(c)
	}
}

// scanWord scans an identifier or reserved word.
func (l *Lexer) scanWord(tok Token) Token {
	start := l.pos

	l.advance()

	for !l.eof() && isIdentPart(l.peek()) {
		l.advance()
	}

	word := string(l.input[start:l.pos])

	switch word {
	case "int":
		tok.Kind = KindTypeInt
	case "float":
		tok.Kind = KindTypeFloat
	case "bool":
		tok.Kind = KindTypeBool
	case "string":
		tok.Kind = KindTypeString
	case "true":
		tok.Kind = KindBool
		tok.Bool = true
	case "false":
		tok.Kind = KindBool
		tok.Bool = false
	default:
		tok.Kind = KindIdent
		tok.Text = word
	}

	return tok
}

// scanInt scans an integer literal with an optional leading minus.
func (l *Lexer) scanInt(tok Token) Token {
	start := l.pos

	if l.peek() == '-' {
		l.advance()
	}

	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}

	// Digits only, so parsing cannot fail except on range overflow,
	// which saturates to the int64 bound.
	n, err := strconv.ParseInt(string(l.input[start:l.pos]), 10, 64)
	if err != nil {
		if l.input[start] == '-' {
			n = -1 << 63
		} else {
			n = 1<<63 - 1
		}
	}

	tok.Kind = KindInt
	tok.Int = n

	return tok
}

// skipSpaceAndComments advances past whitespace, // line comments, and
// /* */ block comments. An unterminated block comment runs to end of
// input without error. Line and column tracking continues inside comments.
func (l *Lexer) skipSpaceAndComments() {
	for !l.eof() {
		c := l.peek()

		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()

			continue
		}

		if c == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

			continue
		}

		if c == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '*' {
			l.advance()
			l.advance()

			for !l.eof() {
				if l.peek() == '*' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
					l.advance()
					l.advance()

					break
				}

				l.advance()
			}

			continue
		}

		break
	}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.input) }

func (l *Lexer) peek() byte { return l.input[l.pos] }

// advance moves past the current byte, maintaining line/column tracking.
func (l *Lexer) advance() {
	if l.eof() {
		return
	}

	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	l.pos++
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
