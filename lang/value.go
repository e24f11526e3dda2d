package lang

import (
	"strconv"
	"strings"
)

// ValueKind indicates which variant of a Value is populated.
type ValueKind int

const (
	// KindIntVal is a 64-bit signed integer.
	KindIntVal ValueKind = iota

	// KindBoolVal is a boolean.
	KindBoolVal

	// KindStringVal is an owned string.
	KindStringVal

	// KindCharVal is a single code point.
	KindCharVal

	// KindArrayVal is an ordered sequence of values.
	KindArrayVal

	// KindRefVal is an unresolved reference to another field's value.
	KindRefVal
)

// String returns a string representation of the value kind.
func (k ValueKind) String() string {
	switch k {
	case KindIntVal:
		return "Int"
	case KindBoolVal:
		return "Bool"
	case KindStringVal:
		return "String"
	case KindCharVal:
		return "Char"
	case KindArrayVal:
		return "Array"
	case KindRefVal:
		return "Reference"
	default:
		return "Unknown"
	}
}

// Value is the tagged union of every value a field can hold.
// Exactly one payload is meaningful based on Kind.
//
// Resolution overwrites Reference values in place (at top level or inside
// array elements) with deep copies of the values they name; it never
// restructures blocks or fields.
type Value struct {
	Kind  ValueKind
	Int   int64
	Bool  bool
	Str   string
	Char  rune
	Elems []*Value // KindArrayVal; owned elements
	Ref   *Ref     // KindRefVal; immutable path data until replaced
}

// NewInt creates an integer value.
func NewInt(n int64) *Value { return &Value{Kind: KindIntVal, Int: n} }

// NewBool creates a boolean value.
func NewBool(b bool) *Value { return &Value{Kind: KindBoolVal, Bool: b} }

// NewString creates a string value.
func NewString(s string) *Value { return &Value{Kind: KindStringVal, Str: s} }

// NewChar creates a character value.
func NewChar(c rune) *Value { return &Value{Kind: KindCharVal, Char: c} }

// NewArray creates an array value owning the given elements.
func NewArray(elems ...*Value) *Value {
	return &Value{Kind: KindArrayVal, Elems: elems}
}

// NewRef creates a reference value.
func NewRef(ref *Ref) *Value { return &Value{Kind: KindRefVal, Ref: ref} }

// Clone returns a deep copy of the value. Array elements are copied
// recursively; reference paths are copied so the clone shares no state
// with the original.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}

	dup := *v

	if v.Elems != nil {
		dup.Elems = make([]*Value, len(v.Elems))
		for i, e := range v.Elems {
			dup.Elems[i] = e.Clone()
		}
	}

	if v.Ref != nil {
		dup.Ref = v.Ref.clone()
	}

	return &dup
}

// Equal reports whether two values are deeply equal.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}

	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindIntVal:
		return v.Int == o.Int
	case KindBoolVal:
		return v.Bool == o.Bool
	case KindStringVal:
		return v.Str == o.Str
	case KindCharVal:
		return v.Char == o.Char
	case KindArrayVal:
		if len(v.Elems) != len(o.Elems) {
			return false
		}

		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}

		return true
	case KindRefVal:
		return v.Ref.String() == o.Ref.String()
	default:
		return false
	}
}

// String renders the value in source syntax: quoted strings and
// characters with canonical escapes, arrays as bracketed comma-separated
// elements, and unresolved references as their literal path syntax.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}

	switch v.Kind {
	case KindIntVal:
		return strconv.FormatInt(v.Int, 10)

	case KindBoolVal:
		return strconv.FormatBool(v.Bool)

	case KindStringVal:
		return quoteString(v.Str)

	case KindCharVal:
		return quoteChar(v.Char)

	case KindArrayVal:
		elems := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = e.String()
		}

		return "[" + strings.Join(elems, ", ") + "]"

	case KindRefVal:
		return v.Ref.String()

	default:
		return "<unknown>"
	}
}

// quoteString renders s as a double-quoted literal with canonical escapes.
func quoteString(s string) string {
	var buf strings.Builder

	buf.WriteByte('"')

	for _, r := range s {
		buf.WriteString(escapeRune(r, '"'))
	}

	buf.WriteByte('"')

	return buf.String()
}

// quoteChar renders c as a single-quoted literal with canonical escapes.
func quoteChar(c rune) string {
	return "'" + escapeRune(c, '\'') + "'"
}

// escapeRune renders one rune for inclusion in a literal delimited by
// quote. Only the escapes the lexer decodes are ever produced.
func escapeRune(r, quote rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '\\':
		return `\\`
	case 0:
		return `\0`
	case quote:
		return `\` + string(quote)
	default:
		return string(r)
	}
}

// Scope anchors a reference path in the tree.
type Scope int

const (
	// ScopeGlobal paths start by naming a top-level block.
	ScopeGlobal Scope = iota

	// ScopeLocal paths start within the containing block.
	ScopeLocal

	// ScopeParent paths start N levels up from the containing block.
	ScopeParent
)

// String returns a string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeLocal:
		return "local"
	case ScopeParent:
		return "parent"
	default:
		return "unknown"
	}
}

// SegmentKind distinguishes the two path segment forms.
type SegmentKind int

const (
	// SegName selects a child block by name, or, if terminal, a field.
	SegName SegmentKind = iota

	// SegIndex selects a child block by its quoted label.
	SegIndex
)

// Segment is one step of a reference path.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Ref is the path data of an unresolved reference.
// Up counts parent hops and is meaningful only for ScopeParent (N >= 1).
type Ref struct {
	Scope Scope
	Up    int
	Path  []Segment
}

// clone returns a copy of the reference with an independent path slice.
func (r *Ref) clone() *Ref {
	dup := *r
	dup.Path = make([]Segment, len(r.Path))
	copy(dup.Path, r.Path)

	return &dup
}

// String reproduces the reference in source syntax.
func (r *Ref) String() string {
	var buf strings.Builder

	switch r.Scope {
	case ScopeGlobal:
		buf.WriteByte('$')
	case ScopeLocal:
		buf.WriteString("$.")
	case ScopeParent:
		buf.WriteString(strings.Repeat("^", r.Up))
	}

	for i, seg := range r.Path {
		switch seg.Kind {
		case SegName:
			// The leading name follows the scope prefix directly;
			// later name segments are dot-separated.
			if i > 0 {
				buf.WriteByte('.')
			}

			buf.WriteString(seg.Text)
		case SegIndex:
			buf.WriteByte('[')
			buf.WriteString(quoteString(seg.Text))
			buf.WriteByte(']')
		}
	}

	return buf.String()
}
