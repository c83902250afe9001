package symbol

import "github.com/circuitsmith/kisvg/pkg/sexpr"

// Stroke is the resolved stroke style of a shape.
type Stroke struct {
	Color string
	Width float64
}

// Shape is a normalized drawing command with its display defaults
// resolved: stroke color/width, fill mode, and text justification.
type Shape struct {
	Kind    string
	Attrs   Value
	Stroke  Stroke
	Fill    string
	Justify string
}

const (
	defaultStrokeColor = "#000"
	defaultStrokeWidth = 0.1
	defaultFill        = "none"
	defaultJustify     = "right"
)

// NewShape pairs a normalized attribute value with its resolved
// defaults. It is a pure function of its inputs: the attribute value
// is never modified, and calling it again on the same inputs yields
// the same shape.
//
// Defaults: stroke color falls back to solid black when absent or
// declared "default"; stroke width 0 or absent becomes 0.1; fill mode
// falls back to "none"; justification falls back to "right".
func NewShape(kind string, attrs Value) Shape {
	sh := Shape{
		Kind:  kind,
		Attrs: attrs,
		Stroke: Stroke{
			Color: defaultStrokeColor,
			Width: defaultStrokeWidth,
		},
		Fill:    defaultFill,
		Justify: defaultJustify,
	}

	if stroke, ok := attrs.Field("stroke"); ok {
		if typ, ok := stroke.Field("type"); ok && typ.Scalar() != "default" && typ.Scalar() != "" {
			sh.Stroke.Color = typ.Scalar()
		}
		if width, ok := stroke.Field("width"); ok {
			if w, err := width.Float(); err == nil && w != 0 {
				sh.Stroke.Width = w
			}
		}
	}
	if fill, ok := attrs.Field("fill"); ok {
		if typ, ok := fill.Field("type"); ok && typ.Scalar() != "" {
			sh.Fill = typ.Scalar()
		}
	}
	if justify, ok := attrs.Field("justify"); ok && justify.Scalar() != "" {
		sh.Justify = justify.Scalar()
	}

	return sh
}

// NormalizeShape runs a raw drawing command through the normalizer and
// default resolution in one step.
func NormalizeShape(cmd sexpr.Node) (Shape, error) {
	kind, attrs, err := Normalize(cmd)
	if err != nil {
		return Shape{}, err
	}
	return NewShape(kind, attrs), nil
}
