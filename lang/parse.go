package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/vspec/log"
)

// DefaultMaxDepth is the default maximum nesting depth for blocks.
var DefaultMaxDepth = 100

// ParseOption configures parser behavior.
type ParseOption func(*parser)

// WithMaxDepth sets the maximum block nesting depth.
func WithMaxDepth(depth int) ParseOption {
	return func(p *parser) {
		p.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) ParseOption {
	return func(p *parser) {
		p.logger = logger
	}
}

// ParseReader parses a tree from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...ParseOption,
) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses a tree from a string.
//
// On any grammar violation it returns a *ParseError carrying the exact
// source position, the offending token, and the expectation. No partial
// tree is returned alongside an error; callers must treat parse failure
// as fatal.
func ParseString(
	ctx context.Context,
	input string,
	opts ...ParseOption,
) (*Tree, error) {
	p := &parser{
		cur:      NewCursor(NewLexer(input)),
		source:   input,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(input)))

	tree, err := p.parseDocument()
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("block_count", len(tree.Blocks)))

	return tree, nil
}

// parser holds the parser state.
type parser struct {
	cur      *Cursor
	source   string
	logger   log.Logger
	maxDepth int
	depth    int
}

// fail builds a ParseError for the offending token with the source
// attached for snippet rendering.
func (p *parser) fail(tok Token, expected string) *ParseError {
	pe := newParseError(tok, expected)
	pe.Source = p.source

	return pe
}

// expect consumes and returns the current token if it has the given
// kind, or fails with a positional error.
func (p *parser) expect(k Kind, expected string) (Token, error) {
	tok := p.cur.Cur()
	if tok.Kind != k {
		return tok, p.fail(tok, expected)
	}

	p.cur.Advance()

	return tok, nil
}

// parseDocument parses the entire input as a sequence of top-level
// blocks.
func (p *parser) parseDocument() (*Tree, error) {
	tree := new(Tree)

	for {
		tok := p.cur.Cur()

		if tok.Kind == KindEOF {
			break
		}

		if tok.Kind != KindIdent {
			return nil, p.fail(tok, "top-level block name")
		}

		blk, err := p.parseBlock(nil)
		if err != nil {
			return nil, err
		}

		tree.Append(blk)
	}

	return tree, nil
}

// parseBlock parses one block starting at its name identifier:
// identifier, optional string label, "{", members, "}".
// The parent (nil for top-level blocks) is recorded on the new block.
func (p *parser) parseBlock(parent *Block) (*Block, error) {
	if p.depth >= p.maxDepth {
		return nil, ErrMaxDepthExceeded.
			With(slog.Int("depth", p.depth)).
			With(slog.Int("max_depth", p.maxDepth))
	}

	p.depth++
	defer func() { p.depth-- }()

	name, err := p.expect(KindIdent, "block name")
	if err != nil {
		return nil, err
	}

	var label string
	if p.cur.Cur().Kind == KindString {
		label = p.cur.Cur().Text
		p.cur.Advance()
	}

	if _, err := p.expect(KindLBrace, `"{" after block name`); err != nil {
		return nil, err
	}

	blk := NewBlock(name.Text, label)
	if parent != nil {
		parent.AddChild(blk)
	}

	for {
		tok := p.cur.Cur()

		switch tok.Kind {
		case KindRBrace:
			p.cur.Advance()

			return blk, nil

		case KindEOF:
			return nil, p.fail(tok, `"}" to close block`)

		case KindTypeInt, KindTypeFloat, KindTypeBool, KindTypeString:
			if err := p.parseTypedField(blk); err != nil {
				return nil, err
			}

		case KindIdent:
			if err := p.parseMember(blk); err != nil {
				return nil, err
			}

		default:
			return nil, p.fail(tok, "field or child block")
		}
	}
}

// parseMember disambiguates an identifier inside a block body between an
// inferred field and a child block, using lookahead only:
//
//	ident "="            -> inferred field
//	ident "{"            -> child block
//	ident string "{"     -> labeled child block
//
// The decision consumes nothing; the chosen production re-reads its
// tokens through the normal path.
func (p *parser) parseMember(blk *Block) error {
	switch p.cur.Peek(1).Kind {
	case KindAssign:
		return p.parseField(blk, TypeInferred)

	case KindLBrace:
		_, err := p.parseBlock(blk)

		return err

	case KindString:
		if p.cur.Peek(2).Kind == KindLBrace {
			_, err := p.parseBlock(blk)

			return err
		}
	}

	return p.fail(p.cur.Cur(),
		`"=" for a field, or "{" (optionally preceded by a string label) for a child block`)
}

// parseTypedField parses a field that begins with a type keyword:
// type ["[]"] identifier "=" value ";".
// The empty "[]" suffix declares an array type; it is accepted but not
// separately tracked.
func (p *parser) parseTypedField(blk *Block) error {
	var hint TypeHint

	switch p.cur.Cur().Kind {
	case KindTypeInt:
		hint = TypeInt
	case KindTypeFloat:
		hint = TypeFloat
	case KindTypeBool:
		hint = TypeBool
	case KindTypeString:
		hint = TypeString
	}

	p.cur.Advance()

	if p.cur.Cur().Kind == KindLBracket {
		p.cur.Advance()

		if _, err := p.expect(KindRBracket, `"]" to complete array type`); err != nil {
			return err
		}
	}

	return p.parseField(blk, hint)
}

// parseField parses the common tail of a field: identifier "=" value ";".
func (p *parser) parseField(blk *Block, hint TypeHint) error {
	name, err := p.expect(KindIdent, "field name")
	if err != nil {
		return err
	}

	if _, err := p.expect(KindAssign, `"=" after field name`); err != nil {
		return err
	}

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	if _, err := p.expect(KindSemi, `";" after field value`); err != nil {
		return err
	}

	blk.AddField(&Field{Type: hint, Name: name.Text, Value: val})

	return nil
}

// parseValue parses a literal, an array literal, or a reference.
func (p *parser) parseValue() (*Value, error) {
	tok := p.cur.Cur()

	switch tok.Kind {
	case KindInt:
		p.cur.Advance()

		return NewInt(tok.Int), nil

	case KindBool:
		p.cur.Advance()

		return NewBool(tok.Bool), nil

	case KindString:
		p.cur.Advance()

		return NewString(tok.Text), nil

	case KindChar:
		p.cur.Advance()

		return NewChar(tok.Char), nil

	case KindLBrace:
		return p.parseArray()

	case KindDollar, KindCaret:
		ref, err := p.parseRef()
		if err != nil {
			return nil, err
		}

		return NewRef(ref), nil

	default:
		return nil, p.fail(tok, "literal, array, or reference value")
	}
}

// parseArray parses "{" [value ("," value)*] "}".
func (p *parser) parseArray() (*Value, error) {
	if _, err := p.expect(KindLBrace, `"{" to open array`); err != nil {
		return nil, err
	}

	arr := NewArray()

	if p.cur.Cur().Kind == KindRBrace {
		p.cur.Advance()

		return arr, nil
	}

	for {
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		arr.Elems = append(arr.Elems, elem)

		if p.cur.Cur().Kind != KindComma {
			break
		}

		p.cur.Advance()
	}

	if _, err := p.expect(KindRBrace, `"," or "}" in array`); err != nil {
		return nil, err
	}

	return arr, nil
}

// parseRef parses a reference:
//
//	"$" identifier segments...   global scope
//	"$" "." identifier segments  local scope
//	"^"+ identifier segments     parent scope, one hop per caret
func (p *parser) parseRef() (*Ref, error) {
	ref := new(Ref)

	switch p.cur.Cur().Kind {
	case KindDollar:
		p.cur.Advance()

		if p.cur.Cur().Kind == KindDot {
			ref.Scope = ScopeLocal

			p.cur.Advance()
		} else {
			ref.Scope = ScopeGlobal
		}

	case KindCaret:
		ref.Scope = ScopeParent

		for p.cur.Cur().Kind == KindCaret {
			ref.Up++

			p.cur.Advance()
		}
	}

	head, err := p.expect(KindIdent, "name to begin reference path")
	if err != nil {
		return nil, err
	}

	ref.Path = append(ref.Path, Segment{Kind: SegName, Text: head.Text})

	return ref, p.parseSegments(ref)
}

// parseSegments parses trailing reference path segments: ".identifier"
// name segments and `["label"]` index segments, repeated and intermixed.
func (p *parser) parseSegments(ref *Ref) error {
	for {
		switch p.cur.Cur().Kind {
		case KindDot:
			p.cur.Advance()

			name, err := p.expect(KindIdent, `name after "." in reference path`)
			if err != nil {
				return err
			}

			ref.Path = append(ref.Path, Segment{Kind: SegName, Text: name.Text})

		case KindLBracket:
			p.cur.Advance()

			label, err := p.expect(KindString, `quoted label after "[" in reference path`)
			if err != nil {
				return err
			}

			if _, err := p.expect(KindRBracket, `"]" after label`); err != nil {
				return err
			}

			ref.Path = append(ref.Path, Segment{Kind: SegIndex, Text: label.Text})

		default:
			return nil
		}
	}
}
