// Package lang implements the vspec configuration language: a lexer, a
// recursive-descent parser with disambiguating lookahead, and a
// reference-resolution engine over the resulting block tree.
//
// # Grammar
//
// Informal EBNF:
//
//	Document  → Block* EOF
//	Block     → identifier [string] '{' Member* '}'
//	Member    → TypedField | Field | Block
//	TypedField→ type ['[' ']'] identifier '=' Value ';'
//	Field     → identifier '=' Value ';'
//	Value     → int | bool | string | char | Array | Ref
//	Array     → '{' [Value (',' Value)*] '}'
//	Ref       → '$' identifier Segment*
//	          | '$' '.' identifier Segment*
//	          | '^'+ identifier Segment*
//	Segment   → '.' identifier | '[' string ']'
//	type      → 'int' | 'float' | 'bool' | 'string'
//
// Line comments (//) and block comments (/* */) are skipped. Inside a
// block body an identifier may begin either a field or a child block;
// the parser decides by peeking at the following one or two tokens
// without consuming them.
//
// # Example
//
//	net "lab" {
//	    int mtu = 1500;
//	    if "eth0" {
//	        addr = "10.0.0.1";
//	    }
//	}
//
//	hosts {
//	    gateway = $net.if["eth0"].addr;
//	    probes  = { $.gateway, "10.0.0.2" };
//	}
//
// # Resolution
//
// References ($name, $.field, ^field) are path data until [Tree.Resolve]
// replaces them in place with deep copies of the values they name.
// Resolution iterates whole-tree passes to a fixed point so chained
// references settle, bounded by [DefaultMaxPasses]. Ambiguous lookups
// over duplicate sibling names resolve to the first match in
// declaration order.
//
// All state is scoped per invocation: distinct documents may be parsed
// and resolved concurrently on separate goroutines, but a single tree
// must not be mutated concurrently.
package lang
