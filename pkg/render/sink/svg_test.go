package sink

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/matzehuels/sankey/pkg/render"
)

type svgDoc struct {
	XMLName xml.Name  `xml:"svg"`
	ViewBox string    `xml:"viewBox,attr"`
	Title   string    `xml:"title"`
	Paths   []svgPath `xml:"path"`
	Groups  []svgG    `xml:"g"`
	Defs    struct {
		Gradients []struct {
			ID string `xml:"id,attr"`
		} `xml:"linearGradient"`
		Style string `xml:"style"`
	} `xml:"defs"`
}

type svgPath struct {
	D     string `xml:"d,attr"`
	Style string `xml:"style,attr"`
	Class string `xml:"class,attr"`
	From  string `xml:"data-from,attr"`
	To    string `xml:"data-to,attr"`
	Node  string `xml:"data-node,attr"`
}

type svgG struct {
	Transform string `xml:"transform,attr"`
	Text      struct {
		Style string `xml:"style,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

func parseSVG(t *testing.T, data []byte) svgDoc {
	t.Helper()
	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("xml.Unmarshal() error: %v\n%s", err, data)
	}
	return doc
}

func countClass(paths []svgPath, class string) int {
	n := 0
	for _, p := range paths {
		if p.Class == class {
			n++
		}
	}
	return n
}

func TestRenderSVG(t *testing.T) {
	_, cmds := energyCommands(render.DefaultStyle())
	doc := parseSVG(t, RenderSVG(cmds, 400, 300, WithTitle("Energy")))

	if doc.ViewBox != "0 0 400 300" {
		t.Errorf("viewBox = %q, want %q", doc.ViewBox, "0 0 400 300")
	}
	if doc.Title != "Energy" {
		t.Errorf("title = %q, want Energy", doc.Title)
	}
	if got := countClass(doc.Paths, "ribbon"); got != 4 {
		t.Errorf("ribbons = %d, want 4", got)
	}
	if got := countClass(doc.Paths, "node"); got != 5 {
		t.Errorf("nodes = %d, want 5", got)
	}
	if len(doc.Groups) != 5 {
		t.Fatalf("labels = %d, want 5", len(doc.Groups))
	}

	var names []string
	for _, g := range doc.Groups {
		names = append(names, g.Text.Body)
	}
	if !strings.Contains(strings.Join(names, "|"), "Gas & Oil") {
		t.Errorf("labels %q missing unescaped %q", names, "Gas & Oil")
	}
	if len(doc.Defs.Gradients) != 0 {
		t.Errorf("flat fill emitted %d gradients", len(doc.Defs.Gradients))
	}
}

func TestRenderSVGLabelAnchor(t *testing.T) {
	_, cmds := energyCommands(render.DefaultStyle())
	doc := parseSVG(t, RenderSVG(cmds, 400, 300))

	var start, end int
	for _, g := range doc.Groups {
		switch {
		case strings.Contains(g.Text.Style, "text-anchor:end"):
			end++
		case strings.Contains(g.Text.Style, "text-anchor:start"):
			start++
		}
	}
	// Homes and Losses sit in the last column.
	if start != 3 || end != 2 {
		t.Errorf("anchors start=%d end=%d, want 3 and 2", start, end)
	}
}

func TestRenderSVGGradient(t *testing.T) {
	s := render.DefaultStyle()
	s.StreamFillMode = render.FillGradient
	_, cmds := energyCommands(s)
	doc := parseSVG(t, RenderSVG(cmds, 400, 300))

	if len(doc.Defs.Gradients) != 4 {
		t.Fatalf("gradients = %d, want 4", len(doc.Defs.Gradients))
	}
	for _, p := range doc.Paths {
		if p.Class == "ribbon" && !strings.HasPrefix(p.Style, "fill:url(#ribbon-") {
			t.Errorf("ribbon style = %q, want gradient reference", p.Style)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	_, cmds := energyCommands(render.DefaultStyle())

	t.Run("background", func(t *testing.T) {
		doc := parseSVG(t, RenderSVG(cmds, 400, 300, WithBackground(render.DefaultItemColor)))
		first := doc.Paths[0]
		if first.Class != "" || first.Style != "fill:#a4a4a4" {
			t.Errorf("first path = %+v, want background rect", first)
		}
	})

	t.Run("embedded font", func(t *testing.T) {
		doc := parseSVG(t, RenderSVG(cmds, 400, 300, WithEmbeddedFont()))
		if !strings.Contains(doc.Defs.Style, "@font-face") {
			t.Error("embedded font missing @font-face rule")
		}
	})
}

func TestRenderSVGEmpty(t *testing.T) {
	doc := parseSVG(t, RenderSVG(nil, 10, 10))
	if len(doc.Paths) != 0 || len(doc.Groups) != 0 {
		t.Errorf("empty render drew %d paths and %d labels", len(doc.Paths), len(doc.Groups))
	}
}

func TestPathData(t *testing.T) {
	var p render.Path
	p.MoveTo(20, 0)
	p.CubicTo(35, 0, 65, 0.5, 80, 1.0/3)
	p.LineTo(80, 100)
	p.Close()

	want := "M20,0 C35,0 65,0.5 80,0.333 L80,100 Z"
	if got := PathData(p); got != want {
		t.Errorf("PathData() = %q, want %q", got, want)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0001, "0"},
		{1.5, "1.5"},
		{2.0004, "2"},
		{-3.25, "-3.25"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
