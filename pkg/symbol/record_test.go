package symbol

import (
	"testing"

	"github.com/circuitsmith/kisvg/pkg/sexpr"
)

// parseCmd parses a single drawing command from s-expression text.
func parseCmd(t *testing.T, input string) sexpr.Node {
	t.Helper()
	node, err := sexpr.ParseOne(input)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", input, err)
	}
	return node
}

func TestNormalizeRepeatedKey(t *testing.T) {
	kind, attrs, err := Normalize(parseCmd(t, "(pts (xy 0 0) (xy 2.54 0))"))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if kind != "pts" {
		t.Errorf("kind = %q, want pts", kind)
	}

	xy, ok := attrs.Field("xy")
	if !ok {
		t.Fatal("missing xy field")
	}
	if !xy.IsList() || xy.Len() != 2 {
		t.Fatalf("xy should be a two-element list, got %s", xy)
	}

	// Original order is preserved.
	first, err := xy.Index(0).Floats()
	if err != nil {
		t.Fatal(err)
	}
	second, err := xy.Index(1).Floats()
	if err != nil {
		t.Fatal(err)
	}
	if first[0] != 0 || second[0] != 2.54 {
		t.Errorf("xy pairs out of order: %v then %v", first, second)
	}
}

func TestNormalizeSingleKeyDeLists(t *testing.T) {
	_, attrs, err := Normalize(parseCmd(t, "(pts (xy 1 2))"))
	if err != nil {
		t.Fatal(err)
	}

	xy, ok := attrs.Field("xy")
	if !ok {
		t.Fatal("missing xy field")
	}
	// A single occurrence is the bare value, not a one-element list.
	if xy.IsRecord() {
		t.Fatalf("xy should not be a record: %s", xy)
	}
	fs, err := xy.Floats()
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 2 || fs[0] != 1 || fs[1] != 2 {
		t.Errorf("xy = %v, want [1 2]", fs)
	}
}

func TestNormalizeFlatCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, v Value)
	}{
		{
			name:  "several scalars collapse to a plain list",
			input: "(at 0 2.54 90)",
			check: func(t *testing.T, v Value) {
				if !v.IsList() {
					t.Fatalf("want list, got %s", v)
				}
				fs, err := v.Floats()
				if err != nil {
					t.Fatal(err)
				}
				if len(fs) != 3 || fs[2] != 90 {
					t.Errorf("at = %v", fs)
				}
			},
		},
		{
			name:  "single scalar collapses to the bare value",
			input: "(length 2.54)",
			check: func(t *testing.T, v Value) {
				if !v.IsScalar() {
					t.Fatalf("want scalar, got %s", v)
				}
				f, err := v.Float()
				if err != nil || f != 2.54 {
					t.Errorf("length = %v (%v)", f, err)
				}
			},
		},
		{
			name:  "no children yields an empty list",
			input: "(hide)",
			check: func(t *testing.T, v Value) {
				if !v.IsList() || v.Len() != 0 {
					t.Errorf("want empty list, got %s", v)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, v, err := Normalize(parseCmd(t, tt.input))
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			tt.check(t, v)
		})
	}
}

func TestNormalizeRecursion(t *testing.T) {
	cmd := "(pin (at 0 0 180) (length 2.54) (name IN (effects (font (size 1.27 1.27)))) (number 1))"
	kind, attrs, err := Normalize(parseCmd(t, cmd))
	if err != nil {
		t.Fatal(err)
	}
	if kind != "pin" {
		t.Errorf("kind = %q", kind)
	}

	// Mixed scalar and nested children produce a keyed record with the
	// scalars under misc.
	nameField, ok := attrs.Field("name")
	if !ok || !nameField.IsRecord() {
		t.Fatalf("name field = %v", nameField)
	}
	misc, ok := nameField.Field("misc")
	if !ok || misc.Scalar() != "IN" {
		t.Errorf("name misc = %s", misc)
	}

	// Deep nesting resolves recursively.
	effects, _ := nameField.Field("effects")
	font, _ := effects.Field("font")
	size, ok := font.Field("size")
	if !ok {
		t.Fatal("missing nested font size")
	}
	fs, err := size.Floats()
	if err != nil || len(fs) != 2 || fs[0] != 1.27 {
		t.Errorf("size = %v (%v)", fs, err)
	}

	// A lone (number 1) stays a bare scalar.
	number, _ := attrs.Field("number")
	if !number.IsScalar() || number.Scalar() != "1" {
		t.Errorf("number = %s", number)
	}
}

func TestNormalizeKeyOrder(t *testing.T) {
	_, attrs, err := Normalize(parseCmd(t, "(rectangle (start 0 0) (end 1 1) (stroke (width 0)) (fill (type none)))"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"start", "end", "stroke", "fill"}
	got := attrs.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input sexpr.Node
	}{
		{"empty command", sexpr.List{}},
		{"bare atom", sexpr.Atom("polyline")},
		{"non-scalar kind label", sexpr.List{sexpr.List{sexpr.Atom("xy")}, sexpr.Atom("1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Normalize(tt.input); err == nil {
				t.Error("Normalize should fail on malformed input")
			}
		})
	}
}
