package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Tree.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToMap())
}

// ToMap converts the tree to a native Go map structure.
//
// Duplicate sibling names keep the first occurrence, matching the
// first-match lookup policy used everywhere else. A block's label, when
// present, appears under the "(label)" key alongside its fields.
func (t *Tree) ToMap() map[string]any {
	result := make(map[string]any, len(t.Blocks))

	for _, blk := range t.Blocks {
		if _, ok := result[blk.Name]; ok {
			continue
		}

		result[blk.Name] = blk.toMap()
	}

	return result
}

// toMap converts one block to a map of its label, fields, and children.
func (b *Block) toMap() map[string]any {
	m := make(map[string]any)

	if b.Label != "" {
		m["(label)"] = b.Label
	}

	for _, f := range b.Fields {
		if _, ok := m[f.Name]; ok {
			continue
		}

		m[f.Name] = f.Value.ToNative()
	}

	for _, c := range b.Children {
		if _, ok := m[c.Name]; ok {
			continue
		}

		m[c.Name] = c.toMap()
	}

	return m
}

// ToNative converts a value to its native Go type. Characters become
// one-rune strings; unresolved references become their literal path
// syntax.
func (v *Value) ToNative() any {
	switch v.Kind {
	case KindIntVal:
		return v.Int

	case KindBoolVal:
		return v.Bool

	case KindStringVal:
		return v.Str

	case KindCharVal:
		return string(v.Char)

	case KindArrayVal:
		elems := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = e.ToNative()
		}

		return elems

	case KindRefVal:
		return v.Ref.String()

	default:
		return nil
	}
}
