package symbol

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/circuitsmith/kisvg/pkg/sexpr"
)

// ParseLibraryFile parses a .kicad_sym symbol library file.
func ParseLibraryFile(path string) ([]*Part, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parts, err := ParseLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parts, nil
}

// ParseLibrary parses a KiCad 6 symbol library into Parts. Each
// top-level symbol becomes one part; its sub-symbols ("Name_U_S",
// where U is the unit number) supply per-unit graphics and pins, with
// unit 0 shared into every unit. Top-level properties (Reference,
// Value, ...) are carried as drawing commands of every unit so the
// renderer can emit their text.
func ParseLibrary(r io.Reader) ([]*Part, error) {
	nodes, err := sexpr.Parse(r)
	if err != nil {
		return nil, err
	}

	var root sexpr.List
	for _, n := range nodes {
		if l, ok := n.(sexpr.List); ok && l.Kind() == "kicad_symbol_lib" {
			root = l
			break
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no kicad_symbol_lib expression found")
	}

	var parts []*Part
	for _, el := range root[1:] {
		sub, ok := el.(sexpr.List)
		if !ok || sub.Kind() != "symbol" {
			continue
		}
		part, err := parsePart(sub)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// FindPart returns the part with the given name, or nil.
func FindPart(parts []*Part, name string) *Part {
	for _, p := range parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func parsePart(node sexpr.List) (*Part, error) {
	name, ok := node.Get(1).(sexpr.Atom)
	if !ok {
		return nil, fmt.Errorf("symbol without a name: %s", node)
	}
	partName := string(name)
	if i := strings.LastIndex(partName, ":"); i >= 0 {
		partName = partName[i+1:]
	}
	part := &Part{Name: partName}

	var props []sexpr.Node
	unitCmds := make(map[int][]sexpr.Node)
	unitPins := make(map[int][]*Pin)

	for _, el := range node[2:] {
		sub, ok := el.(sexpr.List)
		if !ok {
			continue
		}
		switch sub.Kind() {
		case "property":
			if key, ok := sub.Get(1).(sexpr.Atom); ok && string(key) == "Reference" {
				if val, ok := sub.Get(2).(sexpr.Atom); ok {
					part.Ref = string(val)
				}
			}
			props = append(props, sub)

		case "symbol":
			subName, ok := sub.Get(1).(sexpr.Atom)
			if !ok {
				return nil, fmt.Errorf("sub-symbol of %s without a name", part.Name)
			}
			num, err := unitNumber(partName, string(subName))
			if err != nil {
				return nil, err
			}
			for _, cmdNode := range sub[2:] {
				cmd, ok := cmdNode.(sexpr.List)
				if !ok {
					continue
				}
				unitCmds[num] = append(unitCmds[num], cmd)
				if cmd.Kind() == "pin" {
					pin, err := parsePinCmd(cmd)
					if err != nil {
						return nil, fmt.Errorf("symbol %s: %w", part.Name, err)
					}
					unitPins[num] = append(unitPins[num], pin)
				}
			}
		}
	}

	// Units beyond the shared unit 0; a symbol with only common
	// graphics still gets one unit.
	var nums []int
	for num := range unitCmds {
		if num != 0 {
			nums = append(nums, num)
		}
	}
	if len(nums) == 0 {
		nums = []int{1}
	}
	sort.Ints(nums)

	for _, num := range nums {
		unit := &Unit{Num: num}
		unit.DrawCmds = append(unit.DrawCmds, props...)
		unit.DrawCmds = append(unit.DrawCmds, unitCmds[0]...)
		unit.DrawCmds = append(unit.DrawCmds, unitCmds[num]...)
		unit.Pins = append(unit.Pins, unitPins[0]...)
		unit.Pins = append(unit.Pins, unitPins[num]...)
		part.Units = append(part.Units, unit)
	}
	return part, nil
}

// unitNumber extracts U from a sub-symbol name "Parent_U_S".
func unitNumber(parent, sub string) (int, error) {
	suffix := strings.TrimPrefix(sub, parent+"_")
	fields := strings.SplitN(suffix, "_", 2)
	if len(fields) == 2 {
		if num, err := strconv.Atoi(fields[0]); err == nil {
			return num, nil
		}
	}
	// Fall back to the last two underscore fields for sub-symbols not
	// prefixed with the parent name.
	fields = strings.Split(sub, "_")
	if len(fields) >= 3 {
		if num, err := strconv.Atoi(fields[len(fields)-2]); err == nil {
			return num, nil
		}
	}
	return 0, fmt.Errorf("sub-symbol %q has no unit number", sub)
}

// parsePinCmd builds the circuit-model pin from a pin drawing command.
// The y coordinate is negated the same way the renderer does it, so
// markers and drawn pins coincide.
func parsePinCmd(cmd sexpr.Node) (*Pin, error) {
	kind, attrs, err := Normalize(cmd)
	if err != nil {
		return nil, err
	}
	if kind != "pin" {
		return nil, fmt.Errorf("expected pin command, got %s", kind)
	}
	x, y, rotation, err := placement(attrs)
	if err != nil {
		return nil, fmt.Errorf("pin: %w", err)
	}
	length, err := floatField(attrs, "length")
	if err != nil {
		return nil, fmt.Errorf("pin: %w", err)
	}
	return &Pin{
		Name:     nameToken(attrs, "name"),
		Num:      nameToken(attrs, "number"),
		X:        x,
		Y:        y,
		Rotation: rotation,
		Length:   length,
	}, nil
}

// nameToken reads a pin's name or number attribute, which normalizes
// to a keyed record when effects are present and to a bare scalar when
// not.
func nameToken(attrs Value, field string) string {
	v, ok := attrs.Field(field)
	if !ok {
		return ""
	}
	if v.IsRecord() {
		if misc, ok := v.Field("misc"); ok {
			return misc.Index(0).Scalar()
		}
		return ""
	}
	return v.Index(0).Scalar()
}
