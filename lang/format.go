package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Dump writes the verification tree dump to the writer: each block
// prints its name (and label if present), then each field as
// "name (type) = value", then recurses into children with one added
// indent level. Top-level blocks are separated by a blank line.
func (t *Tree) Dump(w io.Writer) error {
	for _, blk := range t.Blocks {
		if err := dumpBlock(blk, w, 0); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// dumpBlock writes one block and its subtree at the given indent level.
func dumpBlock(blk *Block, w io.Writer, indent int) error {
	prefix := strings.Repeat("  ", indent)

	if blk.Label != "" {
		if _, err := fmt.Fprintf(w, "%sBlock: %s  label: %s\n",
			prefix, blk.Name, quoteString(blk.Label)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%sBlock: %s\n", prefix, blk.Name); err != nil {
			return err
		}
	}

	for _, f := range blk.Fields {
		if _, err := fmt.Fprintf(w, "%s  Field: %s  (type: %s)  value: %s\n",
			prefix, f.Name, f.Type, f.Value); err != nil {
			return err
		}
	}

	for _, c := range blk.Children {
		if err := dumpBlock(c, w, indent+1); err != nil {
			return err
		}
	}

	return nil
}

// Format writes the tree in native source syntax with the given indent
// width. The output parses back to an equivalent tree.
func (t *Tree) Format(w io.Writer, indent int) error {
	for i, blk := range t.Blocks {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if err := formatBlock(blk, w, indent, 0); err != nil {
			return err
		}
	}

	return nil
}

// formatBlock writes one block in source syntax at the given depth.
func formatBlock(blk *Block, w io.Writer, indent, depth int) error {
	prefix := strings.Repeat(" ", depth*indent)

	if _, err := fmt.Fprint(w, prefix, blk.Name); err != nil {
		return err
	}

	if blk.Label != "" {
		if _, err := fmt.Fprint(w, " ", quoteString(blk.Label)); err != nil {
			return err
		}
	}

	if len(blk.Fields) == 0 && len(blk.Children) == 0 {
		_, err := fmt.Fprintln(w, " {}")

		return err
	}

	if _, err := fmt.Fprintln(w, " {"); err != nil {
		return err
	}

	inner := strings.Repeat(" ", (depth+1)*indent)

	for _, f := range blk.Fields {
		if _, err := fmt.Fprint(w, inner); err != nil {
			return err
		}

		if f.Type != TypeInferred {
			if _, err := fmt.Fprint(w, f.Type.String(), " "); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "%s = %s;\n", f.Name, formatValue(f.Value)); err != nil {
			return err
		}
	}

	for _, c := range blk.Children {
		if err := formatBlock(c, w, indent, depth+1); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, prefix+"}")

	return err
}

// formatValue renders a value in source syntax. It differs from
// Value.String only for arrays, which use brace delimiters in source.
func formatValue(v *Value) string {
	if v == nil {
		return "<nil>"
	}

	if v.Kind != KindArrayVal {
		return v.String()
	}

	if len(v.Elems) == 0 {
		return "{}"
	}

	elems := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		elems[i] = formatValue(e)
	}

	return "{ " + strings.Join(elems, ", ") + " }"
}

// FormatJSON writes the tree as JSON to the writer.
func (t *Tree) FormatJSON(w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(t, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(t)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the tree as YAML to the writer.
func (t *Tree) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, t.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
