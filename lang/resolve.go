package lang

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/vspec/log"
)

// DefaultMaxPasses bounds the resolution fixed-point iteration.
// The cap is a hard resource bound on pathological reference chains, not
// an optimization.
const DefaultMaxPasses = 16

// ResolveOption configures resolver behavior.
type ResolveOption func(*resolver)

// WithMaxPasses sets the upper bound on resolution passes.
func WithMaxPasses(n int) ResolveOption {
	return func(r *resolver) {
		if n > 0 {
			r.maxPasses = n
		}
	}
}

// WithStrict controls the policy for references that remain unresolved
// once the fixed point (or pass cap) is reached. The default, lenient,
// leaves them in place as reference values and reports success. Strict
// mode returns an error naming every unresolved reference.
func WithStrict(strict bool) ResolveOption {
	return func(r *resolver) {
		r.strict = strict
	}
}

// WithResolveLogger sets the structured logger for trace-level debugging.
func WithResolveLogger(logger log.Logger) ResolveOption {
	return func(r *resolver) {
		r.logger = logger
	}
}

// Resolve replaces every reference value reachable in the tree (as a
// field's value or as an array element, at any nesting depth) with a
// deep copy of the value it names.
//
// Passes repeat until one performs zero replacements or the pass cap is
// reached, whichever comes first, so chained references settle to their
// final values. Blocks and fields are never created or removed.
func (t *Tree) Resolve(ctx context.Context, opts ...ResolveOption) error {
	r := &resolver{
		tree:      t,
		maxPasses: DefaultMaxPasses,
	}

	for _, opt := range opts {
		opt(r)
	}

	passes, replaced := r.run(ctx)

	r.logger.TraceContext(ctx, "resolve complete",
		slog.Int("passes", passes),
		slog.Int("replaced", replaced))

	if r.strict {
		return r.report()
	}

	return nil
}

// resolver holds fixed-point iteration state over one tree.
type resolver struct {
	tree      *Tree
	logger    log.Logger
	maxPasses int
	strict    bool
}

// run iterates passes to the fixed point, returning the pass count and
// the total number of replacements performed.
func (r *resolver) run(ctx context.Context) (passes, replaced int) {
	for passes < r.maxPasses {
		n := r.pass()

		passes++
		replaced += n

		r.logger.TraceContext(ctx, "resolve pass",
			slog.Int("pass", passes),
			slog.Int("replaced", n))

		if n == 0 {
			break
		}
	}

	return passes, replaced
}

// pass traverses every block in the forest and attempts single-step
// resolution of each reference, returning the number of replacements.
// Targets are looked up by identity, so traversal order does not affect
// the fixed point.
func (r *resolver) pass() int {
	replaced := 0

	for blk := range r.tree.All() {
		for _, f := range blk.Fields {
			replaced += r.resolveValue(f.Value, blk)
		}
	}

	return replaced
}

// resolveValue attempts to resolve v in place when it is a reference,
// and recurses element-wise into arrays. It returns the number of
// replacements performed.
func (r *resolver) resolveValue(v *Value, owner *Block) int {
	switch v.Kind {
	case KindRefVal:
		target, ok := r.lookup(v.Ref, owner)
		if !ok {
			return 0
		}

		// Overwrite the containing value in place. The deep copy may
		// itself be an unresolved reference; a later pass picks it up.
		*v = *target

		return 1

	case KindArrayVal:
		replaced := 0

		for _, e := range v.Elems {
			replaced += r.resolveValue(e, owner)
		}

		return replaced

	default:
		return 0
	}
}

// lookup walks a reference's scope and path segments from its anchor
// block and returns a deep copy of the named field's value.
func (r *resolver) lookup(ref *Ref, owner *Block) (*Value, bool) {
	cur, next := r.anchor(ref, owner)
	if cur == nil {
		return nil, false
	}

	for i := next; i < len(ref.Path); {
		seg := ref.Path[i]

		switch seg.Kind {
		case SegIndex:
			child := cur.ChildByLabel(seg.Text)
			if child == nil {
				return nil, false
			}

			cur = child
			i++

		case SegName:
			// A name immediately followed by an index is one combined
			// name+label selection.
			if i+1 < len(ref.Path) && ref.Path[i+1].Kind == SegIndex {
				child := cur.ChildLabeled(seg.Text, ref.Path[i+1].Text)
				if child == nil {
					return nil, false
				}

				cur = child
				i += 2

				continue
			}

			if child := cur.Child(seg.Text); child != nil {
				cur = child
				i++

				continue
			}

			// The final segment, with no block match, names a field.
			if i == len(ref.Path)-1 {
				if f := cur.Field(seg.Text); f != nil {
					return f.Value.Clone(), true
				}
			}

			return nil, false
		}
	}

	// The path ended on a block; a reference must name a field's value.
	return nil, false
}

// anchor returns the block a reference path starts from and the index of
// the first unconsumed path segment. A nil block means the anchor does
// not exist.
func (r *resolver) anchor(ref *Ref, owner *Block) (*Block, int) {
	switch ref.Scope {
	case ScopeLocal:
		return owner, 0

	case ScopeParent:
		cur := owner
		for n := 0; n < ref.Up && cur != nil; n++ {
			cur = cur.Parent()
		}

		return cur, 0

	case ScopeGlobal:
		name := ref.Path[0].Text

		// Combined name+label selection applies at the top level too.
		if len(ref.Path) > 1 && ref.Path[1].Kind == SegIndex {
			for _, b := range r.tree.Blocks {
				if b.Name == name && b.Label == ref.Path[1].Text {
					return b, 2
				}
			}

			return nil, 0
		}

		for _, b := range r.tree.Blocks {
			if b.Name == name {
				return b, 1
			}
		}

		return nil, 0

	default:
		return nil, 0
	}
}

// UnresolvedRef locates a reference that survived resolution.
// Elem is the element index within an array-valued field, or -1 when the
// reference is the field's value itself.
type UnresolvedRef struct {
	Block *Block
	Field *Field
	Elem  int
	Ref   *Ref
}

// Unresolved returns every reference remaining in the tree, in
// depth-first declaration order.
func (t *Tree) Unresolved() []UnresolvedRef {
	var out []UnresolvedRef

	var scan func(blk *Block, f *Field, v *Value, elem int)

	scan = func(blk *Block, f *Field, v *Value, elem int) {
		switch v.Kind {
		case KindRefVal:
			out = append(out, UnresolvedRef{
				Block: blk, Field: f, Elem: elem, Ref: v.Ref,
			})
		case KindArrayVal:
			for i, e := range v.Elems {
				scan(blk, f, e, i)
			}
		}
	}

	for blk := range t.All() {
		for _, f := range blk.Fields {
			scan(blk, f, f.Value, -1)
		}
	}

	return out
}

// report builds the strict-mode error for any references left in the
// tree, with a fuzzy-matched name suggestion per reference when one
// exists.
func (r *resolver) report() error {
	remaining := r.tree.Unresolved()
	if len(remaining) == 0 {
		return nil
	}

	candidates := r.tree.names()
	err := ErrUnresolvedRef.With(slog.Int("count", len(remaining)))

	for i, u := range remaining {
		attrs := []slog.Attr{
			slog.String("block", u.Block.Name),
			slog.String("field", u.Field.Name),
			slog.String("ref", u.Ref.String()),
		}

		if u.Elem >= 0 {
			attrs = append(attrs, slog.Int("element", u.Elem))
		}

		last := u.Ref.Path[len(u.Ref.Path)-1]
		if matches := fuzzy.Find(last.Text, candidates); len(matches) > 0 {
			attrs = append(attrs,
				slog.String("suggestion", matches[0].Str))
		}

		err = err.With(slog.Attr{
			Key:   "unresolved_" + strconv.Itoa(i),
			Value: slog.GroupValue(attrs...),
		})
	}

	return err
}

// names collects every block name, block label, and field name in the
// tree, as suggestion candidates for unresolved-reference diagnostics.
func (t *Tree) names() []string {
	seen := make(map[string]struct{})

	var out []string

	add := func(s string) {
		if s == "" {
			return
		}

		if _, ok := seen[s]; ok {
			return
		}

		seen[s] = struct{}{}
		out = append(out, s)
	}

	for blk := range t.All() {
		add(blk.Name)
		add(blk.Label)

		for _, f := range blk.Fields {
			add(f.Name)
		}
	}

	return out
}
