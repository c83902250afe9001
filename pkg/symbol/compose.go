package symbol

import (
	"fmt"
	"strings"

	"github.com/circuitsmith/kisvg/pkg/geom"
)

// Options control unit composition.
type Options struct {
	// Scale converts symbol units to SVG units.
	Scale float64
	// ShowBBox draws a red diagnostic rectangle around each unit.
	ShowBBox bool
	// PinFontSize is the size of the pin number labels.
	PinFontSize float64
}

// DefaultOptions returns the standard composition settings.
func DefaultOptions() Options {
	return Options{Scale: 10, PinFontSize: 12}
}

// GenerateSymbolSVG renders every unit of a part into an SVG group
// string. symtx is the symmetry operator ("", "H", "V", "R", "L" or a
// mirror+rotation combination such as "HR") describing how the symbol
// instance is oriented. netStubs lists the nets that get stub labels
// attached to pins; when any of the part's pins connects to one, the
// emitted symbol name is scoped to this specific part instance so the
// geometry is not shared with other parts.
//
// The returned markup is complete or absent: any shape error aborts
// the whole call.
func GenerateSymbolSVG(part *Part, symtx string, netStubs []*Net, opts Options) (string, error) {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	if opts.PinFontSize <= 0 {
		opts.PinFontSize = DefaultOptions().PinFontSize
	}

	tx := geom.FromSymTx(symtx).Scaled(opts.Scale)
	maxStubLen := maxStubNameLen(part, netStubs)

	scaleX, scaleY := 1.0, 1.0
	if strings.Contains(symtx, "H") {
		scaleX = -1
	} else if strings.Contains(symtx, "V") {
		scaleY = -1
	}
	rotation := 0.0
	if strings.Contains(symtx, "R") {
		rotation = 90
	} else if strings.Contains(symtx, "L") {
		rotation = 270
	}

	var svg []string
	for _, unit := range part.Units {
		var bbox geom.BBox
		var frags []Fragment
		for _, cmd := range unit.DrawCmds {
			sh, err := NormalizeShape(cmd)
			if err != nil {
				return "", err
			}
			frag, err := Render(sh, geom.Identity())
			if err != nil {
				return "", fmt.Errorf("part %s unit %d: %w", part.Name, unit.Num, err)
			}
			bbox.Merge(frag.BBox)
			frags = append(frags, frag)
		}
		txBBox := bbox.Transform(tx)

		// Stub-labeled symbols are tied to one part instance; plain
		// symbols are shared by every part with the same geometry.
		var symbolName string
		if maxStubLen > 0 {
			symbolName = fmt.Sprintf("%s_%s_%d_%s", part.Name, part.Ref, unit.Num, symtx)
		} else {
			symbolName = fmt.Sprintf("%s_%d_%s", part.Name, unit.Num, symtx)
		}

		// Translate the placed bbox so its minimum corner lands on the
		// origin.
		translate := txBBox.Min().Neg()

		svg = append(svg, fmt.Sprintf(
			`<g s:type="%s" s:width="%s" s:height="%s" transform="translate(%s %s)" >`,
			symbolName, ftoa(txBBox.W()), ftoa(txBBox.H()), ftoa(translate.X), ftoa(translate.Y)))
		svg = append(svg, fmt.Sprintf(`<s:alias val="%s"/>`, symbolName))

		// Downstream tools scan top-level groups for pin annotations
		// and get confused by bare transform groups, so the transform
		// stack is wrapped in a group that already carries a pid
		// attribute.
		svg = append(svg, `<g s:pid="">`)
		svg = append(svg, fmt.Sprintf(`<g transform="scale(%s %s) rotate(%s 0 0)" >`,
			ftoa(opts.Scale), ftoa(opts.Scale), ftoa(rotation)))
		svg = append(svg, fmt.Sprintf(`<g transform="scale(%s, %s)" >`, ftoa(scaleX), ftoa(scaleY)))

		// Graphics first, text last, so outlines never cover labels.
		// Text stays outside the mirror group: mirrored text would
		// render backwards.
		for _, frag := range frags {
			if !frag.Text && frag.Markup != "" {
				svg = append(svg, frag.Markup)
			}
		}
		svg = append(svg, "</g>")
		for _, frag := range frags {
			if frag.Text && frag.Markup != "" {
				svg = append(svg, frag.Markup)
			}
		}
		svg = append(svg, "</g>")
		svg = append(svg, "</g>")

		if opts.ShowBBox {
			svg = append(svg, fmt.Sprintf(
				`<rect x="%s" y="%s" width="%s" height="%s" style="stroke-width:%s; stroke:#f00" class="$cell_id symbol" />`,
				ftoa(txBBox.Min().X), ftoa(txBBox.Min().Y), ftoa(txBBox.W()), ftoa(txBBox.H()),
				ftoa(opts.Scale*0.1)))
		}

		// Pin markers live in the original scaled frame, outside the
		// orientation groups: wiring tools expect untransformed anchor
		// coordinates, so the orientation is baked into the coordinates
		// and the reported side instead.
		for _, pin := range unit.Pins {
			svg = append(svg, pinMarker(pin, symtx, opts))
		}

		svg = append(svg, "</g>\n")
	}

	return strings.Join(svg, "\n"), nil
}

// pinMarker emits the anchor marker for one pin: a number label plus a
// named group carrying the pin's position and compass side.
func pinMarker(pin *Pin, symtx string, opts Options) string {
	_, pt, side := PinEndpoints(geom.Point{X: pin.X, Y: pin.Y}, pin.Rotation, pin.Length)
	side = RemapSideSymTx(side, symtx)

	// Mirror first, quadrant turn second, matching the group nesting
	// applied to the graphics. Operator precedence (H over V, R over
	// L) follows geom.FromSymTx so marker coordinates and side agree
	// with the placed geometry.
	if strings.Contains(symtx, "H") {
		pt.X = -pt.X
	} else if strings.Contains(symtx, "V") {
		pt.Y = -pt.Y
	}
	if strings.Contains(symtx, "R") {
		pt = geom.Point{X: -pt.Y, Y: pt.X}
	} else if strings.Contains(symtx, "L") {
		pt = geom.Point{X: pt.Y, Y: -pt.X}
	}
	pt = pt.Mul(opts.Scale)

	return fmt.Sprintf(
		"<text text-anchor='left' x='%s' y='%s' style='font-size:%spx' > %s </text> "+
			`<g s:x="%s" s:y="%s" s:pid="%s" s:position="%s"> </g>`,
		ftoa(pt.X), ftoa(pt.Y), ftoa(opts.PinFontSize), pin.Num,
		ftoa(pt.X), ftoa(pt.Y), pin.Num, side)
}

// maxStubNameLen returns the length of the longest stub-net name
// attached to any of the part's pins. No-connect nets never count.
func maxStubNameLen(part *Part, netStubs []*Net) int {
	max := 0
	for _, pin := range part.Pins() {
		for _, net := range pin.Nets {
			if net == nil || net.NoConnect {
				continue
			}
			for _, stub := range netStubs {
				if stub == net && len(net.Name) > max {
					max = len(net.Name)
				}
			}
		}
	}
	return max
}
