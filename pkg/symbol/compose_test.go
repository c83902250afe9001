package symbol

import (
	"strings"
	"testing"
)

// testPart builds a two-pin resistor-like part with exact coordinates:
// body rectangle (-1,-2)..(1,2), pins reaching in from (3,0) and
// (-3,0).
func testPart(t *testing.T) *Part {
	t.Helper()
	cmds := []string{
		"(rectangle (start -1 -2) (end 1 2) (stroke (width 0.254)) (fill (type none)))",
		`(pin passive line (at 2 0 0) (length 1) (name "~" (effects (font (size 1.27 1.27)))) (number "1" (effects (font (size 1.27 1.27)))))`,
		`(pin passive line (at -2 0 180) (length 1) (name "~" (effects (font (size 1.27 1.27)))) (number "2" (effects (font (size 1.27 1.27)))))`,
	}
	unit := &Unit{Num: 1}
	for _, src := range cmds {
		unit.DrawCmds = append(unit.DrawCmds, parseCmd(t, src))
	}
	unit.Pins = []*Pin{
		{Num: "1", X: 2, Y: 0, Rotation: 0, Length: 1},
		{Num: "2", X: -2, Y: 0, Rotation: 180, Length: 1},
	}
	return &Part{Name: "RES", Ref: "R7", Units: []*Unit{unit}}
}

func TestGenerateSymbolSVG(t *testing.T) {
	svg, err := GenerateSymbolSVG(testPart(t), "", nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	// Unit bbox is (-3,-2)..(3,2); scaled by 10 it is (-30,-20)..(30,20),
	// so the group translates by (30,20) to land the minimum at the
	// origin.
	for _, want := range []string{
		`s:type="RES_1_"`,
		`s:width="60"`,
		`s:height="40"`,
		`transform="translate(30 20)"`,
		`<s:alias val="RES_1_"/>`,
		`<g s:pid="">`,
		`transform="scale(10 10) rotate(0 0 0)"`,
		`transform="scale(1, 1)"`,
		`<g s:x="20" s:y="0" s:pid="1" s:position="right">`,
		`<g s:x="-20" s:y="0" s:pid="2" s:position="left">`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s in:\n%s", want, svg)
		}
	}
}

func TestGenerateSymbolSVGMirrored(t *testing.T) {
	svg, err := GenerateSymbolSVG(testPart(t), "H", nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`s:type="RES_1_H"`,
		`transform="scale(-1, 1)"`,
		// Pin 1 mirrors to the left edge.
		`<g s:x="-20" s:y="0" s:pid="1" s:position="left">`,
		`<g s:x="20" s:y="0" s:pid="2" s:position="right">`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s in:\n%s", want, svg)
		}
	}
}

func TestGenerateSymbolSVGRotated(t *testing.T) {
	svg, err := GenerateSymbolSVG(testPart(t), "R", nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	// The quarter turn maps the (-3,-2)..(3,2) bbox to (-2,-3)..(2,3):
	// width and height swap and the translation follows the new
	// minimum corner.
	for _, want := range []string{
		`s:width="40"`,
		`s:height="60"`,
		`transform="translate(20 30)"`,
		`rotate(90 0 0)`,
		// Pin 1 at (2,0) turns to (0,2), reported on the bottom edge.
		`<g s:x="0" s:y="20" s:pid="1" s:position="bottom">`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s in:\n%s", want, svg)
		}
	}
}

func TestGenerateSymbolSVGConflictingRotations(t *testing.T) {
	// An operator string naming both quadrant turns resolves to R, and
	// the pin markers follow the same precedence as the placed
	// geometry: coordinates and reported side match the plain "R"
	// rendering.
	svg, err := GenerateSymbolSVG(testPart(t), "LR", nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`s:width="40"`,
		`s:height="60"`,
		`transform="translate(20 30)"`,
		`rotate(90 0 0)`,
		`<g s:x="0" s:y="20" s:pid="1" s:position="bottom">`,
		`<g s:x="0" s:y="-20" s:pid="2" s:position="top">`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s in:\n%s", want, svg)
		}
	}
}

func TestGenerateSymbolSVGZOrder(t *testing.T) {
	part := testPart(t)
	part.Units[0].DrawCmds = append(part.Units[0].DrawCmds,
		parseCmd(t, `(text "GAIN" (at 0 0 0) (effects (font (size 1 1))))`))

	svg, err := GenerateSymbolSVG(part, "", nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	rectAt := strings.Index(svg, "<rect")
	textAt := strings.Index(svg, "<text")
	if rectAt < 0 || textAt < 0 {
		t.Fatalf("missing shapes in:\n%s", svg)
	}
	if textAt < rectAt {
		t.Error("text emitted before graphics")
	}

	// Text stays outside the mirror group.
	mirrorClose := strings.Index(svg, "</g>")
	if textAt < mirrorClose {
		t.Error("text emitted inside the orientation group")
	}
}

func TestGenerateSymbolSVGStubNaming(t *testing.T) {
	part := testPart(t)
	vcc := &Net{Name: "VCC"}
	part.Units[0].Pins[0].Nets = []*Net{vcc}

	// Net stub present: the symbol name is scoped to this part.
	svg, err := GenerateSymbolSVG(part, "", []*Net{vcc}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, `s:type="RES_R7_1_"`) {
		t.Errorf("stub symbol not scoped to part:\n%s", svg)
	}

	// The same net not in the stub list: shared name.
	svg, err = GenerateSymbolSVG(part, "", nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, `s:type="RES_1_"`) {
		t.Errorf("unscoped symbol name wrong:\n%s", svg)
	}

	// No-connect nets never trigger scoping.
	nc := &Net{Name: "unconnected-1", NoConnect: true}
	part.Units[0].Pins[0].Nets = []*Net{nc}
	svg, err = GenerateSymbolSVG(part, "", []*Net{nc}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, `s:type="RES_1_"`) {
		t.Errorf("no-connect net affected naming:\n%s", svg)
	}
}

func TestGenerateSymbolSVGShowBBox(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowBBox = true
	svg, err := GenerateSymbolSVG(testPart(t), "", nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, "stroke:#f00") {
		t.Error("diagnostic bbox missing")
	}

	svg, err = GenerateSymbolSVG(testPart(t), "", nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(svg, "stroke:#f00") {
		t.Error("diagnostic bbox emitted when disabled")
	}
}

func TestGenerateSymbolSVGErrors(t *testing.T) {
	part := testPart(t)
	part.Units[0].DrawCmds = append(part.Units[0].DrawCmds,
		parseCmd(t, "(bezier (pts (xy 0 0)))"))

	// No partial output on failure.
	svg, err := GenerateSymbolSVG(part, "", nil, DefaultOptions())
	if err == nil {
		t.Fatal("unknown shape should fail composition")
	}
	if svg != "" {
		t.Errorf("partial SVG returned: %s", svg)
	}
}
