package lang

// Cursor buffers tokens from a Lexer and supports arbitrary-depth
// lookahead without disturbing forward progress.
//
// Lookahead is implemented as a queue of already-scanned tokens rather
// than by saving and restoring lexer state: tokens are plain values, so
// every buffered token remains valid regardless of how far the parser
// has peeked or advanced.
type Cursor struct {
	lex *Lexer
	buf []Token
}

// NewCursor creates a cursor over the given lexer.
func NewCursor(lex *Lexer) *Cursor {
	return &Cursor{lex: lex, buf: make([]Token, 0, 4)}
}

// fill ensures at least n tokens are buffered.
// Past end of input the lexer yields KindEOF indefinitely, so fill
// always succeeds.
func (c *Cursor) fill(n int) {
	for len(c.buf) < n {
		c.buf = append(c.buf, c.lex.Next())
	}
}

// Cur returns the current token, scanning it lazily if needed.
// It does not advance.
func (c *Cursor) Cur() Token {
	c.fill(1)

	return c.buf[0]
}

// Peek returns the token n positions past the current one without
// consuming anything: Peek(0) is the current token, Peek(1) the next.
func (c *Cursor) Peek(n int) Token {
	c.fill(n + 1)

	return c.buf[n]
}

// Advance consumes the current token.
func (c *Cursor) Advance() {
	c.fill(1)
	c.buf = c.buf[1:]
}

// Pos returns the source position of the current token.
func (c *Cursor) Pos() Position {
	return c.Cur().Pos
}
