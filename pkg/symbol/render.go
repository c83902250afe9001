package symbol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/circuitsmith/kisvg/pkg/geom"
)

// Fragment is one rendered shape: its SVG markup, its local bounding
// box, and whether it is a text element. Text elements are kept out of
// the orientation groups and drawn after graphics so outlines never
// occlude labels.
type Fragment struct {
	Markup string
	BBox   geom.BBox
	Text   bool
}

// Render converts a normalized shape into an SVG primitive and its
// bounding box, mapping geometry through the given local transform.
// Text-like shapes (property, text, pin) carry their own coordinate
// handling and flip the y axis on read, since symbol space has y
// growing upward while SVG grows downward.
func Render(sh Shape, tx geom.Tx) (Fragment, error) {
	switch sh.Kind {
	case "polyline":
		return renderPolyline(sh, tx)
	case "circle":
		return renderCircle(sh, tx)
	case "rectangle":
		return renderRectangle(sh, tx)
	case "arc":
		return renderArc(sh, tx)
	case "property":
		return renderProperty(sh)
	case "text":
		return renderText(sh)
	case "pin":
		return renderPin(sh)
	default:
		return Fragment{}, &UnknownShapeError{Kind: sh.Kind}
	}
}

func renderPolyline(sh Shape, tx geom.Tx) (Fragment, error) {
	ptsField, ok := sh.Attrs.Field("pts")
	if !ok {
		return Fragment{}, fmt.Errorf("polyline is missing pts")
	}
	xy, ok := ptsField.Field("xy")
	if !ok {
		return Fragment{}, fmt.Errorf("polyline is missing xy coordinates")
	}
	points, err := xyPairs(xy)
	if err != nil {
		return Fragment{}, fmt.Errorf("polyline: %w", err)
	}

	var bb geom.BBox
	coords := make([]string, 0, len(points))
	for _, p := range points {
		p = tx.Apply(p)
		bb.Add(p)
		coords = append(coords, ftoa(p.X)+","+ftoa(p.Y))
	}

	return Fragment{
		Markup: svgPolyline(strings.Join(coords, " "), sh.Stroke.Width, sh.Fill),
		BBox:   bb,
	}, nil
}

func renderCircle(sh Shape, tx geom.Tx) (Fragment, error) {
	center, err := pointField(sh.Attrs, "center")
	if err != nil {
		return Fragment{}, fmt.Errorf("circle: %w", err)
	}
	radius, err := floatField(sh.Attrs, "radius")
	if err != nil {
		return Fragment{}, fmt.Errorf("circle: %w", err)
	}

	ctr := tx.Apply(center)
	// Radii scale by the transform's scalar factor only; the
	// orientation transforms in use are uniform up to mirroring.
	r := radius * tx.ScaleFactor()

	var bb geom.BBox
	bb.Add(ctr.Add(geom.Point{X: r, Y: r}), ctr.Sub(geom.Point{X: r, Y: r}))

	return Fragment{
		Markup: svgCircle(ctr, r, sh.Stroke.Width, sh.Fill),
		BBox:   bb,
	}, nil
}

func renderRectangle(sh Shape, tx geom.Tx) (Fragment, error) {
	start, err := pointField(sh.Attrs, "start")
	if err != nil {
		return Fragment{}, fmt.Errorf("rectangle: %w", err)
	}
	end, err := pointField(sh.Attrs, "end")
	if err != nil {
		return Fragment{}, fmt.Errorf("rectangle: %w", err)
	}

	// Emitting from the accumulated bbox normalizes the corner order:
	// the rectangle is anchored at its true minimum corner whichever
	// way the corners were given.
	var bb geom.BBox
	bb.Add(tx.Apply(start), tx.Apply(end))

	return Fragment{
		Markup: svgRect(bb.Min(), bb.W(), bb.H(), sh.Stroke.Width, sh.Fill),
		BBox:   bb,
	}, nil
}

func renderArc(sh Shape, tx geom.Tx) (Fragment, error) {
	var pts [3]geom.Point
	for i, name := range []string{"start", "end", "mid"} {
		p, err := pointField(sh.Attrs, name)
		if err != nil {
			return Fragment{}, fmt.Errorf("arc: %w", err)
		}
		pts[i] = tx.Apply(p)
	}
	a, b, c := pts[0], pts[1], pts[2]

	var bb geom.BBox
	bb.Add(a, b, c)

	// Circumradius from the triangle (a, b, c): r = ABC / 4K with K
	// the area, taken from the cross product so exactly collinear
	// points give an exact zero (acos/sin round-tripping leaves
	// sub-epsilon residue there).
	sideA := b.Sub(c).Magnitude()
	sideB := a.Sub(c).Magnitude()
	sideC := a.Sub(b).Magnitude()
	if sideA == 0 || sideB == 0 {
		return Fragment{}, fmt.Errorf("arc: coincident control points")
	}
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross == 0 {
		return Fragment{}, fmt.Errorf("arc: collinear control points")
	}
	area := 0.5 * math.Abs(cross)
	r := sideA * sideB * sideC / (4 * area)

	// large-arc is set when the angle at the mid point is acute. Not
	// the general SVG large-arc condition, but downstream consumers
	// expect this classification.
	angle := math.Acos((sideA*sideA + sideB*sideB - sideC*sideC) / (2 * sideA * sideB))
	largeArc := 0
	if angle < math.Pi/2 {
		largeArc = 1
	}
	sweep := 0
	if cross < 0 {
		sweep = 1
	}

	return Fragment{
		Markup: svgArcPath(a, b, r, largeArc, sweep, sh.Stroke.Width, sh.Fill),
		BBox:   bb,
	}, nil
}

func renderProperty(sh Shape) (Fragment, error) {
	misc, ok := sh.Attrs.Field("misc")
	if !ok {
		return Fragment{}, fmt.Errorf("property has no name/value tokens")
	}
	name := misc.Index(0).Scalar()
	text := misc.Index(1).Scalar()

	var class, extra string
	switch strings.ToLower(name) {
	case "reference":
		class, extra = "part_ref_text", `s:attribute="ref"`
	case "value":
		class, extra = "part_name_text", `s:attribute="value"`
	default:
		if !hiddenEffects(sh.Attrs) {
			return Fragment{}, &UnhiddenPropertyError{Name: name}
		}
		// Hidden housekeeping properties (footprint, datasheet, ...)
		// contribute nothing to the rendered symbol.
		return Fragment{Text: true}, nil
	}

	x, y, rotation, err := placement(sh.Attrs)
	if err != nil {
		return Fragment{}, fmt.Errorf("property %q: %w", name, err)
	}
	size, err := fontSize(sh.Attrs)
	if err != nil {
		return Fragment{}, fmt.Errorf("property %q: %w", name, err)
	}

	return Fragment{
		Markup: svgPropertyText(class, sh.Justify, x, y, rotation, size, extra, text),
		BBox:   textBox(x, y, rotation, size, text),
		Text:   true,
	}, nil
}

func renderText(sh Shape) (Fragment, error) {
	misc, ok := sh.Attrs.Field("misc")
	if !ok {
		return Fragment{}, fmt.Errorf("text shape has no content")
	}
	text := misc.Index(0).Scalar()

	x, y, rotation, err := placement(sh.Attrs)
	if err != nil {
		return Fragment{}, fmt.Errorf("text: %w", err)
	}
	size, err := fontSize(sh.Attrs)
	if err != nil {
		return Fragment{}, fmt.Errorf("text: %w", err)
	}

	return Fragment{
		Markup: svgLabelText(sh.Justify, x, y, rotation, size, text),
		BBox:   textBox(x, y, rotation, size, text),
		Text:   true,
	}, nil
}

func renderPin(sh Shape) (Fragment, error) {
	x, y, rotation, err := placement(sh.Attrs)
	if err != nil {
		return Fragment{}, fmt.Errorf("pin: %w", err)
	}
	length, err := floatField(sh.Attrs, "length")
	if err != nil {
		return Fragment{}, fmt.Errorf("pin: %w", err)
	}

	end, attach, _ := PinEndpoints(geom.Point{X: x, Y: y}, rotation, length)

	var bb geom.BBox
	bb.Add(end, attach)

	// A dot at the pin anchor plus the pin segment. The dot's radius
	// and stroke are twice the shape's stroke width.
	dotWidth := 2 * sh.Stroke.Width
	points := fmt.Sprintf("%s, %s, %s, %s", ftoa(end.X), ftoa(end.Y), ftoa(attach.X), ftoa(attach.Y))
	markup := svgCircle(attach, dotWidth, dotWidth, sh.Fill) + "\n" + svgPolyline(points, sh.Stroke.Width, sh.Fill)

	return Fragment{Markup: markup, BBox: bb}, nil
}

// placement reads an "at" attribute, negating y for the flipped
// vertical axis. The rotation component is optional.
func placement(attrs Value) (x, y, rotation float64, err error) {
	at, ok := attrs.Field("at")
	if !ok {
		return 0, 0, 0, fmt.Errorf("missing at placement")
	}
	fs, err := at.Floats()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad at placement: %w", err)
	}
	if len(fs) < 2 {
		return 0, 0, 0, fmt.Errorf("at placement needs x and y")
	}
	x, y = fs[0], -fs[1]
	if len(fs) > 2 {
		rotation = fs[2]
	}
	return x, y, rotation, nil
}

// textBox estimates the axis-aligned envelope of a monospace text run
// rotated about its anchor: width is charcount * 0.6 * font size,
// height is the font size.
func textBox(x, y, rotation, size float64, text string) geom.BBox {
	w := float64(utf8.RuneCountInString(text)) * 0.6 * size
	h := size

	rad := rotation * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	endX := x + dx*w + dy*h
	endY := y - dx*h + dy*w

	var bb geom.BBox
	bb.Add(geom.Point{X: x, Y: y}, geom.Point{X: endX, Y: endY})
	return bb
}

func fontSize(attrs Value) (float64, error) {
	effects, ok := attrs.Field("effects")
	if !ok {
		return 0, fmt.Errorf("missing text effects")
	}
	font, ok := effects.Field("font")
	if !ok {
		return 0, fmt.Errorf("missing font effects")
	}
	size, ok := font.Field("size")
	if !ok {
		return 0, fmt.Errorf("missing font size")
	}
	return size.Index(0).Float()
}

// hiddenEffects reports whether a shape's text effects carry a hide
// flag, in either the bare-symbol form (effects ... hide) or the
// nested form (effects (hide yes)).
func hiddenEffects(attrs Value) bool {
	effects, ok := attrs.Field("effects")
	if !ok {
		return false
	}
	if misc, ok := effects.Field("misc"); ok && misc.Contains("hide") {
		return true
	}
	if hide, ok := effects.Field("hide"); ok && hide.Scalar() != "no" {
		return true
	}
	return false
}

func pointField(attrs Value, name string) (geom.Point, error) {
	v, ok := attrs.Field(name)
	if !ok {
		return geom.Point{}, fmt.Errorf("missing %s", name)
	}
	fs, err := v.Floats()
	if err != nil {
		return geom.Point{}, fmt.Errorf("bad %s: %w", name, err)
	}
	if len(fs) < 2 {
		return geom.Point{}, fmt.Errorf("%s needs x and y", name)
	}
	return geom.Point{X: fs[0], Y: fs[1]}, nil
}

func floatField(attrs Value, name string) (float64, error) {
	v, ok := attrs.Field(name)
	if !ok {
		return 0, fmt.Errorf("missing %s", name)
	}
	f, err := v.Float()
	if err != nil {
		return 0, fmt.Errorf("bad %s: %w", name, err)
	}
	return f, nil
}

// xyPairs decodes an "xy" attribute into points. A repeated (xy ...)
// command normalizes to a list of pairs; a single occurrence de-lists
// to one flat pair.
func xyPairs(v Value) ([]geom.Point, error) {
	items := v.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("no coordinates")
	}
	if items[0].IsScalar() {
		fs, err := v.Floats()
		if err != nil {
			return nil, err
		}
		if len(fs) < 2 {
			return nil, fmt.Errorf("coordinate pair needs x and y")
		}
		return []geom.Point{{X: fs[0], Y: fs[1]}}, nil
	}

	pts := make([]geom.Point, 0, len(items))
	for _, it := range items {
		fs, err := it.Floats()
		if err != nil {
			return nil, err
		}
		if len(fs) < 2 {
			return nil, fmt.Errorf("coordinate pair needs x and y")
		}
		pts = append(pts, geom.Point{X: fs[0], Y: fs[1]})
	}
	return pts, nil
}

// SVG templates. Each shape kind renders through one fixed template
// taking a closed set of fields. The "$cell_id" class placeholder is
// part of the downstream netlistsvg contract.

func ftoa(f float64) string {
	// Negated zero coordinates would otherwise print as "-0".
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func svgPolyline(points string, strokeWidth float64, fill string) string {
	return fmt.Sprintf(`<polyline points="%s" style="stroke-width:%s" class="$cell_id symbol %s" />`,
		points, ftoa(strokeWidth), fill)
}

func svgCircle(ctr geom.Point, r, strokeWidth float64, fill string) string {
	return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" style="stroke-width:%s" class="$cell_id symbol %s" />`,
		ftoa(ctr.X), ftoa(ctr.Y), ftoa(r), ftoa(strokeWidth), fill)
}

func svgRect(min geom.Point, w, h, strokeWidth float64, fill string) string {
	return fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" style="stroke-width:%s" class="$cell_id symbol %s" />`,
		ftoa(min.X), ftoa(min.Y), ftoa(w), ftoa(h), ftoa(strokeWidth), fill)
}

func svgArcPath(a, b geom.Point, r float64, largeArc, sweep int, strokeWidth float64, fill string) string {
	return fmt.Sprintf(`<path d="M %s %s A %s %s 0 %d %d %s %s" style="stroke-width:%s" class="$cell_id symbol %s" />`,
		ftoa(a.X), ftoa(a.Y), ftoa(r), ftoa(r), largeArc, sweep, ftoa(b.X), ftoa(b.Y), ftoa(strokeWidth), fill)
}

func svgPropertyText(class, justify string, x, y, rotation, size float64, extra, text string) string {
	return fmt.Sprintf("<text class='%s' text-anchor='%s' x='%s' y='%s' transform='rotate(%s %s %s) translate(0 0)' style='font-size:%spx' %s > %s </text>",
		class, justify, ftoa(x), ftoa(y), ftoa(rotation), ftoa(x), ftoa(y), ftoa(size), extra, text)
}

func svgLabelText(justify string, x, y, rotation, size float64, text string) string {
	return fmt.Sprintf("<text text-anchor='%s' x='%s' y='%s' transform='rotate(%s %s %s) translate(0 0)' style='font-size:%spx' > %s </text>",
		justify, ftoa(x), ftoa(y), ftoa(rotation), ftoa(x), ftoa(y), ftoa(size), text)
}
