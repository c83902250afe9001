// Package geom provides the 2D primitives used by the symbol renderer:
// points, axis-aligned bounding boxes, and affine transforms.
//
// Coordinates follow the SVG convention inside this module: x grows to
// the right and y grows downward. Callers converting from KiCad symbol
// space (y up) negate y on read.
package geom

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Magnitude returns the distance from the origin to p.
func (p Point) Magnitude() float64 {
	return math.Hypot(p.X, p.Y)
}

// BBox is an axis-aligned bounding box that grows by accumulating
// points. A zero BBox is empty: it has no defined corners until the
// first point is added.
type BBox struct {
	min, max Point
	set      bool
}

// Add grows the box to include each of the given points.
func (b *BBox) Add(pts ...Point) {
	for _, p := range pts {
		if !b.set {
			b.min, b.max = p, p
			b.set = true
			continue
		}
		if p.X < b.min.X {
			b.min.X = p.X
		}
		if p.Y < b.min.Y {
			b.min.Y = p.Y
		}
		if p.X > b.max.X {
			b.max.X = p.X
		}
		if p.Y > b.max.Y {
			b.max.Y = p.Y
		}
	}
}

// Merge grows the box to include another box. Merging an empty box is
// a no-op.
func (b *BBox) Merge(o BBox) {
	if o.set {
		b.Add(o.min, o.max)
	}
}

// IsEmpty reports whether no points have been added yet.
func (b BBox) IsEmpty() bool {
	return !b.set
}

// Min returns the minimum corner. Only meaningful for non-empty boxes.
func (b BBox) Min() Point { return b.min }

// Max returns the maximum corner. Only meaningful for non-empty boxes.
func (b BBox) Max() Point { return b.max }

// W returns the width of the box.
func (b BBox) W() float64 { return b.max.X - b.min.X }

// H returns the height of the box.
func (b BBox) H() float64 { return b.max.Y - b.min.Y }

// Transform maps all four corners of the box through t and returns the
// axis-aligned box enclosing the result.
func (b BBox) Transform(t Tx) BBox {
	var out BBox
	if !b.set {
		return out
	}
	out.Add(
		t.Apply(Point{X: b.min.X, Y: b.min.Y}),
		t.Apply(Point{X: b.max.X, Y: b.min.Y}),
		t.Apply(Point{X: b.min.X, Y: b.max.Y}),
		t.Apply(Point{X: b.max.X, Y: b.max.Y}),
	)
	return out
}
