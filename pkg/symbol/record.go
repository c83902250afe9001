// Package symbol converts KiCad 6 symbol drawing commands into SVG
// fragments for netlist visualizers. The pipeline normalizes each
// nested-list drawing command into an attribute record, renders every
// shape kind into an SVG primitive with a bounding box, and composes
// the shapes and pins of a symbol unit into a named, transformed
// <g> group with pin anchor markers.
package symbol

import (
	"fmt"
	"strconv"

	"github.com/circuitsmith/kisvg/pkg/sexpr"
)

// ValueKind discriminates the three shapes a normalized attribute
// value can take.
type ValueKind int

const (
	// ScalarValue is a single token.
	ScalarValue ValueKind = iota
	// ListValue is an ordered list of values, produced when a key
	// occurs more than once or when a command has several unnamed
	// children.
	ListValue
	// RecordValue is a keyed mapping, produced when a command has at
	// least one nested sub-command.
	RecordValue
)

// Value is one normalized attribute value.
type Value struct {
	kind   ValueKind
	scalar string
	items  []Value
	rec    *Record
}

// Record is a keyed attribute mapping preserving first-seen key order.
type Record struct {
	keys   []string
	fields map[string]Value
}

func scalarOf(s string) Value    { return Value{kind: ScalarValue, scalar: s} }
func listOf(items []Value) Value { return Value{kind: ListValue, items: items} }
func recordOf(rec *Record) Value { return Value{kind: RecordValue, rec: rec} }

// Kind returns the value's discriminant.
func (v Value) Kind() ValueKind { return v.kind }

// IsScalar reports whether the value is a single token.
func (v Value) IsScalar() bool { return v.kind == ScalarValue }

// IsList reports whether the value is list-shaped.
func (v Value) IsList() bool { return v.kind == ListValue }

// IsRecord reports whether the value is a keyed mapping.
func (v Value) IsRecord() bool { return v.kind == RecordValue }

// Scalar returns the token for scalar values, "" otherwise.
func (v Value) Scalar() string {
	if v.kind == ScalarValue {
		return v.scalar
	}
	return ""
}

// Float parses a scalar value as a number.
func (v Value) Float() (float64, error) {
	if v.kind != ScalarValue {
		return 0, fmt.Errorf("value %s is not a scalar", v)
	}
	f, err := strconv.ParseFloat(v.scalar, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not numeric", v.scalar)
	}
	return f, nil
}

// Len returns the number of items in a list, 1 for a scalar, and the
// field count for a record.
func (v Value) Len() int {
	switch v.kind {
	case ListValue:
		return len(v.items)
	case RecordValue:
		return len(v.rec.keys)
	default:
		return 1
	}
}

// Index returns the i-th item of a list. A scalar acts as a
// one-element list, which is how de-listed singletons are consumed.
func (v Value) Index(i int) Value {
	switch v.kind {
	case ListValue:
		if i < 0 || i >= len(v.items) {
			return Value{kind: ListValue}
		}
		return v.items[i]
	case ScalarValue:
		if i == 0 {
			return v
		}
	}
	return Value{kind: ListValue}
}

// Items returns the list items. A scalar yields itself as a singleton.
func (v Value) Items() []Value {
	switch v.kind {
	case ListValue:
		return v.items
	case ScalarValue:
		return []Value{v}
	default:
		return nil
	}
}

// Field looks up a record field by key.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != RecordValue {
		return Value{}, false
	}
	f, ok := v.rec.fields[name]
	return f, ok
}

// Has reports whether a record field exists.
func (v Value) Has(name string) bool {
	_, ok := v.Field(name)
	return ok
}

// Contains reports whether the value is, or contains, the given token.
// Works on scalars and lists; used for flag checks such as "hide".
func (v Value) Contains(token string) bool {
	switch v.kind {
	case ScalarValue:
		return v.scalar == token
	case ListValue:
		for _, it := range v.items {
			if it.kind == ScalarValue && it.scalar == token {
				return true
			}
		}
	}
	return false
}

// Floats parses the value as a list of numbers. A scalar yields a
// one-element slice.
func (v Value) Floats() ([]float64, error) {
	items := v.Items()
	out := make([]float64, 0, len(items))
	for _, it := range items {
		f, err := it.Float()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Keys returns a record's field names in first-seen order.
func (v Value) Keys() []string {
	if v.kind != RecordValue {
		return nil
	}
	return v.rec.keys
}

// String renders the value for error messages and debugging.
func (v Value) String() string {
	switch v.kind {
	case ScalarValue:
		return v.scalar
	case ListValue:
		s := "["
		for i, it := range v.items {
			if i > 0 {
				s += " "
			}
			s += it.String()
		}
		return s + "]"
	default:
		s := "{"
		for i, k := range v.rec.keys {
			if i > 0 {
				s += " "
			}
			s += k + ":" + v.rec.fields[k].String()
		}
		return s + "}"
	}
}

// Normalize converts one drawing command into its kind label and a
// uniform attribute value. Nested commands become record fields keyed
// by their own kind; unnamed scalars collect under "misc". A key seen
// more than once accumulates an ordered list, while a single
// occurrence stays a bare value. A command with no nested commands at
// all degenerates to its plain scalar list (or bare scalar).
//
// An empty command or a command whose first element is not a scalar
// label violates the input contract and returns an error.
func Normalize(cmd sexpr.Node) (string, Value, error) {
	list, ok := cmd.(sexpr.List)
	if !ok {
		return "", Value{}, fmt.Errorf("malformed drawing command: expected list, got %q", cmd)
	}
	if list.Len() == 0 {
		return "", Value{}, fmt.Errorf("malformed drawing command: empty list")
	}
	label, ok := list.Get(0).(sexpr.Atom)
	if !ok {
		return "", Value{}, fmt.Errorf("malformed drawing command: kind label is not a scalar in %q", cmd)
	}
	kind := string(label)

	var keys []string
	groups := make(map[string][]Value)
	named := false

	for _, el := range list[1:] {
		var key string
		var val Value
		switch el := el.(type) {
		case sexpr.List:
			childKind, childVal, err := Normalize(el)
			if err != nil {
				return "", Value{}, err
			}
			key, val = childKind, childVal
			named = true
		case sexpr.Atom:
			key, val = "misc", scalarOf(string(el))
		default:
			return "", Value{}, fmt.Errorf("malformed drawing command: unsupported node %q", el)
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], val)
	}

	// No nested command anywhere: the record collapses to the plain
	// scalar list, and a singleton collapses further to the bare value.
	if !named {
		misc := groups["misc"]
		if len(misc) == 1 {
			return kind, misc[0], nil
		}
		return kind, listOf(misc), nil
	}

	rec := &Record{fields: make(map[string]Value, len(keys))}
	for _, k := range keys {
		vals := groups[k]
		if len(vals) == 1 {
			rec.fields[k] = vals[0]
		} else {
			rec.fields[k] = listOf(vals)
		}
		rec.keys = append(rec.keys, k)
	}
	return kind, recordOf(rec), nil
}
