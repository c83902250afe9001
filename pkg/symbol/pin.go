package symbol

import (
	"math"
	"strings"

	"github.com/circuitsmith/kisvg/pkg/geom"
)

// Side names the edge of a symbol's bounding box that a pin protrudes
// from. External wiring tools use it to decide where to attach nets.
type Side string

const (
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideLeft   Side = "left"
	SideBottom Side = "bottom"
)

// quadrantSides maps floor((rotation+45)/90) mod 4 to a compass side.
var quadrantSides = [4]Side{SideRight, SideTop, SideLeft, SideBottom}

// quadrantDirs holds the unit direction for each quadrant with the y
// component negated for SVG's downward y axis. Exact integer entries:
// trig of right angles leaves sub-epsilon residue that would leak into
// emitted coordinates.
var quadrantDirs = [4]geom.Point{
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
}

// PinEndpoints resolves a pin's geometry from its anchor point,
// rotation in degrees (quadrant-aligned), and length. It returns the
// free endpoint reached by extending from the anchor along the pin
// direction, the attachment point (the anchor itself), and the compass
// side the pin faces. The y component of the direction is negated
// because symbol coordinates have y up while SVG has y down.
func PinEndpoints(anchor geom.Point, rotation, length float64) (end, attach geom.Point, side Side) {
	q := int(math.Floor((rotation+45)/90)) % 4
	if q < 0 {
		q += 4
	}
	return anchor.Add(quadrantDirs[q].Mul(length)), anchor, quadrantSides[q]
}

// sideRemaps gives, for each orientation operator, the compass side a
// pin reports after the symbol is transformed. Each table is a total
// bijection on the four sides, and looking up through two tables in
// sequence equals applying both transforms in sequence.
var sideRemaps = map[byte]map[Side]Side{
	'H': { // mirror about the vertical axis
		SideRight:  SideLeft,
		SideTop:    SideTop,
		SideLeft:   SideRight,
		SideBottom: SideBottom,
	},
	'V': { // mirror about the horizontal axis
		SideRight:  SideRight,
		SideTop:    SideBottom,
		SideLeft:   SideLeft,
		SideBottom: SideTop,
	},
	'L': { // quarter turn counter-clockwise (270 degrees)
		SideRight:  SideTop,
		SideTop:    SideLeft,
		SideLeft:   SideBottom,
		SideBottom: SideRight,
	},
	'R': { // quarter turn clockwise (90 degrees)
		SideRight:  SideBottom,
		SideTop:    SideRight,
		SideLeft:   SideTop,
		SideBottom: SideLeft,
	},
}

// RemapSide returns the compass side a pin reports after applying one
// orientation operator ('H', 'V', 'L' or 'R'). Unknown operators leave
// the side unchanged.
func RemapSide(side Side, op byte) Side {
	if table, ok := sideRemaps[op]; ok {
		return table[side]
	}
	return side
}

// RemapSideSymTx applies a full symmetry-operator string to a side:
// the mirror component first ("H" over "V"), then the quadrant turn
// ("R" over "L"), mirroring the order the composer applies transforms.
func RemapSideSymTx(side Side, symtx string) Side {
	if strings.Contains(symtx, "H") {
		side = RemapSide(side, 'H')
	} else if strings.Contains(symtx, "V") {
		side = RemapSide(side, 'V')
	}
	if strings.Contains(symtx, "R") {
		side = RemapSide(side, 'R')
	} else if strings.Contains(symtx, "L") {
		side = RemapSide(side, 'L')
	}
	return side
}
