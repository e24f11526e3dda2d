package lang

import (
	"reflect"
	"testing"
)

func TestToMap(t *testing.T) {
	tree := mustParse(t, `
		Server "main" {
			port = 8080;
			tags = { "a", 'b' };
			Tls { on = true; }
		}
		Other { ref = $gone.field; }
	`)

	want := map[string]any{
		"Server": map[string]any{
			"(label)": "main",
			"port":    int64(8080),
			"tags":    []any{"a", "b"},
			"Tls": map[string]any{
				"on": true,
			},
		},
		"Other": map[string]any{
			"ref": "$gone.field",
		},
	}

	if got := tree.ToMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %#v, got %#v", want, got)
	}
}

func TestToMap_DuplicatesKeepFirst(t *testing.T) {
	tree := mustParse(t, `
		Dup { v = 1; }
		Dup { v = 2; }
		Mixed { n = 1; n = 2; }
	`)

	got := tree.ToMap()

	dup, ok := got["Dup"].(map[string]any)
	if !ok {
		t.Fatal("Dup block missing")
	}

	if dup["v"] != int64(1) {
		t.Errorf("expected first Dup block, got v=%v", dup["v"])
	}

	mixed, ok := got["Mixed"].(map[string]any)
	if !ok {
		t.Fatal("Mixed block missing")
	}

	if mixed["n"] != int64(1) {
		t.Errorf("expected first field occurrence, got n=%v", mixed["n"])
	}
}

func TestValue_ToNative(t *testing.T) {
	tests := []struct {
		name string
		val  *Value
		want any
	}{
		{name: "int", val: NewInt(-5), want: int64(-5)},
		{name: "bool", val: NewBool(true), want: true},
		{name: "string", val: NewString("s"), want: "s"},
		{name: "char becomes string", val: NewChar('x'), want: "x"},
		{
			name: "array",
			val:  NewArray(NewInt(1), NewString("a")),
			want: []any{int64(1), "a"},
		},
		{
			name: "reference becomes syntax",
			val: NewRef(&Ref{
				Scope: ScopeGlobal,
				Path: []Segment{
					{Kind: SegName, Text: "A"},
					{Kind: SegName, Text: "b"},
				},
			}),
			want: "$A.b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.ToNative(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestValue_CloneIndependence(t *testing.T) {
	orig := NewArray(NewInt(1), NewArray(NewString("a")))
	dup := orig.Clone()

	dup.Elems[0].Int = 99
	dup.Elems[1].Elems[0].Str = "b"

	if orig.Elems[0].Int != 1 || orig.Elems[1].Elems[0].Str != "a" {
		t.Error("clone shares state with original")
	}
}
