package lang

import "iter"

// TypeHint is a field's optional type annotation.
type TypeHint int

const (
	// TypeInferred means the field carries no annotation.
	TypeInferred TypeHint = iota

	// TypeInt is the int annotation.
	TypeInt

	// TypeFloat is the float annotation.
	TypeFloat

	// TypeBool is the bool annotation.
	TypeBool

	// TypeString is the string annotation.
	TypeString
)

// String returns the annotation as it appears in source, or "inferred"
// for an absent annotation.
func (t TypeHint) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	default:
		return "inferred"
	}
}

// Field is a name/value pair within a block, optionally type-annotated.
// Field names need not be unique within a block; lookups are first-match.
type Field struct {
	Type  TypeHint
	Name  string
	Value *Value
}

// Block is a named, optionally labeled node in the configuration tree,
// holding fields and child blocks in declaration order.
//
// The parent pointer is a non-owning back reference set at construction
// and never reassigned. It exists only for upward reference resolution;
// ownership flows strictly downward through Fields and Children.
type Block struct {
	Name     string
	Label    string
	Fields   []*Field
	Children []*Block

	parent *Block
}

// NewBlock creates a block with the given name and optional label.
func NewBlock(name, label string) *Block {
	return &Block{Name: name, Label: label}
}

// Parent returns the enclosing block, or nil for a top-level block.
func (b *Block) Parent() *Block { return b.parent }

// AddField appends a field to the block.
func (b *Block) AddField(f *Field) {
	b.Fields = append(b.Fields, f)
}

// AddChild appends a child block and sets its parent pointer.
func (b *Block) AddChild(child *Block) {
	child.parent = b
	b.Children = append(b.Children, child)
}

// Field returns the first field with the given name, or nil.
func (b *Block) Field(name string) *Field {
	for _, f := range b.Fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// Child returns the first child block with the given name, or nil.
func (b *Block) Child(name string) *Block {
	for _, c := range b.Children {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// ChildLabeled returns the first child block with both the given name
// and label, or nil.
func (b *Block) ChildLabeled(name, label string) *Block {
	for _, c := range b.Children {
		if c.Name == name && c.Label == label {
			return c
		}
	}

	return nil
}

// ChildByLabel returns the first child block with the given label,
// regardless of name, or nil.
func (b *Block) ChildByLabel(label string) *Block {
	for _, c := range b.Children {
		if c.Label == label {
			return c
		}
	}

	return nil
}

// Tree is the parsed forest of top-level blocks.
type Tree struct {
	Blocks []*Block
}

// Append adds a top-level block to the tree.
func (t *Tree) Append(b *Block) {
	t.Blocks = append(t.Blocks, b)
}

// Block returns the first top-level block with the given name, or nil.
func (t *Tree) Block(name string) *Block {
	for _, b := range t.Blocks {
		if b.Name == name {
			return b
		}
	}

	return nil
}

// All returns an iterator over every block in the tree, depth-first in
// declaration order.
func (t *Tree) All() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		var walk func(b *Block) bool

		walk = func(b *Block) bool {
			if !yield(b) {
				return false
			}

			for _, c := range b.Children {
				if !walk(c) {
					return false
				}
			}

			return true
		}

		for _, b := range t.Blocks {
			if !walk(b) {
				return
			}
		}
	}
}
