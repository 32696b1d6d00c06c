package render

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/layout"
)

func fixedOptions(width, gap float64) layout.Options {
	var o layout.Options
	o.SetItemWidth(width)
	o.SetItemGap(gap)
	return o
}

func paths(cmds []Command) []FillPath {
	var out []FillPath
	for _, c := range cmds {
		if p, ok := c.(FillPath); ok {
			out = append(out, p)
		}
	}
	return out
}

func pt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

func TestDrawTwoNodes(t *testing.T) {
	g := flow.New(nil)
	a, _ := g.AddNode(flow.Node{Name: "a", Level: 0})
	b, _ := g.AddNode(flow.Node{Name: "b", Level: 1})
	_ = g.Connect(a, b, 10)

	l := layout.Compute(g, 100, 100, fixedOptions(20, 0))
	cmds := Draw(l, DefaultStyle())

	// ribbon, a box, a label, b box, b label
	if len(cmds) != 5 {
		t.Fatalf("Draw() returned %d commands, want 5", len(cmds))
	}
	ribbon, ok := cmds[0].(FillPath)
	if !ok {
		t.Fatalf("first command = %T, want FillPath", cmds[0])
	}
	want := Path{
		{Op: OpMoveTo, Pts: [3]geom.Point{pt(20, 0)}},
		{Op: OpCubicTo, Pts: [3]geom.Point{pt(35, 0), pt(65, 0), pt(80, 0)}},
		{Op: OpLineTo, Pts: [3]geom.Point{pt(80, 100)}},
		{Op: OpCubicTo, Pts: [3]geom.Point{pt(65, 100), pt(35, 100), pt(20, 100)}},
		{Op: OpLineTo, Pts: [3]geom.Point{pt(20, 100)}},
		{Op: OpClose},
	}
	if !reflect.DeepEqual(ribbon.Path, want) {
		t.Errorf("ribbon path = %+v\nwant %+v", ribbon.Path, want)
	}
	if ribbon.Paint.Color != DefaultStreamColor || ribbon.Paint.Gradient != nil {
		t.Errorf("ribbon paint = %+v, want flat stream color", ribbon.Paint)
	}

	if _, ok := cmds[1].(FillRect); !ok {
		t.Errorf("second command = %T, want FillRect", cmds[1])
	}
	text, ok := cmds[4].(FillText)
	if !ok || text.Text != "b" || text.Align != layout.AlignRight {
		t.Errorf("last command = %+v, want right aligned label b", cmds[4])
	}
}

func TestDrawIncomingOffsets(t *testing.T) {
	g := flow.New(nil)
	// Inserted B first so level 0 is [A, B].
	b, _ := g.AddNode(flow.Node{Name: "B", Level: 0})
	a, _ := g.AddNode(flow.Node{Name: "A", Level: 0})
	c, _ := g.AddNode(flow.Node{Name: "C", Level: 1})
	_ = g.Connect(a, c, 3)
	_ = g.Connect(b, c, 7)

	l := layout.Compute(g, 100, 100, fixedOptions(20, 0))
	nc, _ := l.Node(c)

	got := map[flow.NodeID]float64{}
	for _, p := range paths(Draw(l, DefaultStyle())) {
		if p.To != c {
			t.Fatalf("unexpected ribbon to %d", p.To)
		}
		// End point of the first curve is the target anchor.
		got[p.From] = p.Path[1].Pts[2].Y - nc.Bounds.MinY()
	}
	if !near(got[a], 0) {
		t.Errorf("A offset = %v, want 0", got[a])
	}
	if !near(got[b], 3*l.ScaleY) {
		t.Errorf("B offset = %v, want %v", got[b], 3*l.ScaleY)
	}
}

func TestDrawOutgoingStacking(t *testing.T) {
	g := flow.New(nil)
	src, _ := g.AddNode(flow.Node{Name: "src", Level: 0})
	weights := []float64{5, 1, 3, 2}
	for _, w := range weights {
		dst, _ := g.AddNode(flow.Node{Level: 1})
		_ = g.Connect(src, dst, w)
	}

	l := layout.Compute(g, 400, 300, fixedOptions(10, 4))
	ns, _ := l.Node(src)
	rs := paths(Draw(l, DefaultStyle()))
	if len(rs) != len(weights) {
		t.Fatalf("%d ribbons, want %d", len(rs), len(weights))
	}

	prev := math.Inf(-1)
	y := ns.Bounds.MinY()
	for i, r := range rs {
		start := r.Path[0].Pts[0].Y
		if start <= prev {
			t.Errorf("ribbon %d starts at %v, not below %v", i, start, prev)
		}
		if !near(start, y) {
			t.Errorf("ribbon %d starts at %v, want %v", i, start, y)
		}
		prev = start
		y += r.Weight * l.ScaleY
	}
	if !near(y, ns.Bounds.MaxY()) {
		t.Errorf("ribbons end at %v, want box bottom %v", y, ns.Bounds.MaxY())
	}
}

func TestDrawSkipsInconsistentEdges(t *testing.T) {
	g := flow.New(nil)
	a, _ := g.AddNode(flow.Node{Level: 0})
	b, _ := g.AddNode(flow.Node{Level: 1})
	c, _ := g.AddNode(flow.Node{Level: 2})
	_ = g.Connect(a, b, 2)
	_ = g.Connect(b, c, 2)
	_ = g.Connect(a, c, 1)

	l := layout.Compute(g, 300, 100, fixedOptions(10, 0))
	rs := paths(Draw(l, DefaultStyle()))
	if len(rs) != 2 {
		t.Fatalf("%d ribbons, want 2", len(rs))
	}
	for _, r := range rs {
		if r.From == a && r.To == c {
			t.Error("level-skipping flow was drawn")
		}
	}
}

func TestDrawFlowDirection(t *testing.T) {
	g := flow.New(nil)
	a, _ := g.AddNode(flow.Node{Level: 0})
	b, _ := g.AddNode(flow.Node{Level: 1})
	_ = g.Connect(a, b, 10)

	l := layout.Compute(g, 160, 160, fixedOptions(20, 0))
	s := DefaultStyle()
	s.ShowFlowDirection = true
	r := paths(Draw(l, s))[0]

	arrow := 160 * arrowRatio
	want := []geom.Point{pt(140-arrow, 0), pt(140, 80), pt(140-arrow, 160)}
	got := []geom.Point{r.Path[1].Pts[2], r.Path[2].Pts[0], r.Path[3].Pts[0]}
	for i := range want {
		if !near(got[i].X, want[i].X) || !near(got[i].Y, want[i].Y) {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(r.Path) != 7 {
		t.Errorf("notched path has %d segments, want 7", len(r.Path))
	}
}

func TestDrawPaint(t *testing.T) {
	red := colorRGBA(255, 0, 0)
	blue := colorRGBA(0, 0, 255)

	g := flow.New(nil)
	a, _ := g.AddNode(flow.Node{Level: 0, Color: red})
	b, _ := g.AddNode(flow.Node{Level: 1, Color: blue})
	_ = g.Connect(a, b, 1)
	l := layout.Compute(g, 100, 100, layout.DefaultOptions())

	s := DefaultStyle()
	s.StreamFillMode = FillGradient
	s.SetConnectionOpacity(0.5)
	s.UseItemColor = false
	cmds := Draw(l, s)

	grad := cmds[0].(FillPath).Paint.Gradient
	if grad == nil {
		t.Fatal("gradient ribbon has no gradient")
	}
	if grad.Start != WithOpacity(red, 0.5) || grad.End != WithOpacity(blue, 0.5) {
		t.Errorf("gradient = %+v", grad)
	}
	if grad.From.X >= grad.To.X {
		t.Errorf("gradient runs from %v to %v, want left to right", grad.From, grad.To)
	}
	if box := cmds[1].(FillRect); box.Paint.Color != DefaultItemColor {
		t.Errorf("box color = %v, want item color", box.Paint.Color)
	}
}

func TestDrawValues(t *testing.T) {
	g := flow.New(nil)
	a, _ := g.AddNode(flow.Node{Name: "Coal", Level: 0})
	b, _ := g.AddNode(flow.Node{Level: 1})
	_ = g.Connect(a, b, 2500)
	l := layout.Compute(g, 100, 100, layout.DefaultOptions())

	s := DefaultStyle()
	s.ShowValues = true
	s.SetDecimals(1)

	var labels []string
	for _, c := range Draw(l, s) {
		if txt, ok := c.(FillText); ok {
			labels = append(labels, txt.Text)
		}
	}
	want := []string{"Coal 2.5k", "2.5k"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %q, want %q", labels, want)
	}
}

func TestDrawDeterministicAndFresh(t *testing.T) {
	g := flow.New(nil)
	a, _ := g.AddNode(flow.Node{Level: 0})
	b, _ := g.AddNode(flow.Node{Level: 1})
	c, _ := g.AddNode(flow.Node{Level: 1})
	_ = g.Connect(a, b, 2)
	_ = g.Connect(a, c, 3)
	l := layout.Compute(g, 200, 200, layout.DefaultOptions())

	first := Draw(l, DefaultStyle())
	second := Draw(l, DefaultStyle())
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Draw() calls differ")
	}
}

func TestDrawEmpty(t *testing.T) {
	if cmds := Draw(layout.Layout{}, DefaultStyle()); cmds != nil {
		t.Errorf("Draw(empty) = %v, want nil", cmds)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }
