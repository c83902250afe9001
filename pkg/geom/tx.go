package geom

import (
	"math"
	"strings"
)

// Tx is a 2D affine transform stored as the top 2x3 of a 3x3 matrix.
// Points are treated as row vectors, so applying t then u composes as
// t.Mul(u):
//
//	x' = x*A + y*C + DX
//	y' = x*B + y*D + DY
type Tx struct {
	A, B, C, D, DX, DY float64
}

// Identity returns the identity transform.
func Identity() Tx {
	return Tx{A: 1, D: 1}
}

// Translation returns a transform that moves points by (dx, dy).
func Translation(dx, dy float64) Tx {
	return Tx{A: 1, D: 1, DX: dx, DY: dy}
}

// Scaling returns a transform that scales x by sx and y by sy.
// Negative factors mirror about the corresponding axis.
func Scaling(sx, sy float64) Tx {
	return Tx{A: sx, D: sy}
}

// Rotation returns a transform rotating by deg degrees. With y growing
// downward, positive angles rotate clockwise on screen, matching the
// SVG rotate() attribute.
func Rotation(deg float64) Tx {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Tx{A: cos, B: sin, C: -sin, D: cos}
}

// Apply maps a point through the transform.
func (t Tx) Apply(p Point) Point {
	return Point{
		X: p.X*t.A + p.Y*t.C + t.DX,
		Y: p.X*t.B + p.Y*t.D + t.DY,
	}
}

// Mul composes two transforms. The result applies t first, then u.
func (t Tx) Mul(u Tx) Tx {
	return Tx{
		A:  t.A*u.A + t.B*u.C,
		B:  t.A*u.B + t.B*u.D,
		C:  t.C*u.A + t.D*u.C,
		D:  t.C*u.B + t.D*u.D,
		DX: t.DX*u.A + t.DY*u.C + u.DX,
		DY: t.DX*u.B + t.DY*u.D + u.DY,
	}
}

// Scaled returns the transform with its linear part uniformly scaled
// by s. The translation is left alone.
func (t Tx) Scaled(s float64) Tx {
	return Tx{A: t.A * s, B: t.B * s, C: t.C * s, D: t.D * s, DX: t.DX, DY: t.DY}
}

// ScaleFactor returns the scalar scale component of the transform,
// sqrt(|det|). For the uniform scale/mirror/quadrant-rotation
// transforms used for symbol orientation this equals the scale the
// transform applies to lengths, and it is what scalar radii are
// multiplied by.
func (t Tx) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(t.A*t.D - t.B*t.C))
}

// FromSymTx builds the orientation transform described by a symmetry
// operator string: "H" mirrors horizontally, "V" vertically, "R"
// rotates 90 degrees clockwise and "L" 270. The mirror is applied
// before the rotation, matching the nesting of the emitted SVG groups.
// Only one mirror and one rotation are honored; "H" wins over "V" and
// "R" over "L".
func FromSymTx(symtx string) Tx {
	t := Identity()
	if strings.Contains(symtx, "H") {
		t = Scaling(-1, 1)
	} else if strings.Contains(symtx, "V") {
		t = Scaling(1, -1)
	}
	// Exact quadrant matrices rather than Rotation(90): trig of right
	// angles leaves sub-epsilon residue that would leak into emitted
	// coordinates.
	if strings.Contains(symtx, "R") {
		t = t.Mul(Tx{B: 1, C: -1})
	} else if strings.Contains(symtx, "L") {
		t = t.Mul(Tx{B: -1, C: 1})
	}
	return t
}
