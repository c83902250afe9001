package symbol

import "github.com/circuitsmith/kisvg/pkg/sexpr"

// Net is a circuit net a pin connects to. Only the name and the
// no-connect marker matter here; net ownership and resolution live in
// the caller's circuit model.
type Net struct {
	Name      string
	NoConnect bool
}

// Pin is one symbol pin in the circuit model: its anchor coordinate
// (already in SVG orientation, y down), quadrant-aligned rotation in
// degrees, length, and the nets attached to it.
type Pin struct {
	Name     string
	Num      string
	X, Y     float64
	Rotation float64
	Length   float64
	Nets     []*Net
}

// Unit is one selectable sub-part of a symbol, with its own drawing
// commands and pin set. Single-gate symbols have exactly one unit.
type Unit struct {
	Num      int
	Pins     []*Pin
	DrawCmds []sexpr.Node
}

// Part is a library symbol: a name, the reference prefix or reference
// designator, and its units.
type Part struct {
	Name  string
	Ref   string
	Units []*Unit
}

// Unit returns the unit with the given number, or nil.
func (p *Part) Unit(num int) *Unit {
	for _, u := range p.Units {
		if u.Num == num {
			return u
		}
	}
	return nil
}

// Pins returns the pins of all units.
func (p *Part) Pins() []*Pin {
	var out []*Pin
	for _, u := range p.Units {
		out = append(out, u.Pins...)
	}
	return out
}
