package sink

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/render"
)

func TestRenderJSON(t *testing.T) {
	l, cmds := energyCommands(render.DefaultStyle())

	data, err := RenderJSON(l, cmds, WithJSONTitle("Energy"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Title != "Energy" {
		t.Errorf("Title = %q, want Energy", out.Title)
	}
	if out.Width != 400 || out.Height != 300 {
		t.Errorf("size = %vx%v, want 400x300", out.Width, out.Height)
	}
	if out.MinLevel != 0 || out.MaxLevel != 2 {
		t.Errorf("levels = [%d,%d], want [0,2]", out.MinLevel, out.MaxLevel)
	}
	if len(out.Levels) != 3 {
		t.Errorf("Levels count = %d, want 3", len(out.Levels))
	}
	if len(out.Nodes) != 5 {
		t.Errorf("Nodes count = %d, want 5", len(out.Nodes))
	}
	if len(out.Ribbons) != 4 {
		t.Fatalf("Ribbons count = %d, want 4", len(out.Ribbons))
	}
	if out.Style != nil {
		t.Error("Style exported without WithJSONStyle")
	}

	for _, r := range out.Ribbons {
		if !strings.HasPrefix(r.Path, "M") || !strings.HasSuffix(r.Path, "Z") {
			t.Errorf("ribbon %d->%d path = %q, want closed path data", r.From, r.To, r.Path)
		}
		if r.Gradient != nil {
			t.Errorf("ribbon %d->%d has gradient in color mode", r.From, r.To)
		}
	}

	for _, n := range out.Nodes {
		if n.Level == 2 && n.Align != "right" {
			t.Errorf("node %q in last column aligned %q, want right", n.Name, n.Align)
		}
		if n.Level < 2 && n.Align != "left" {
			t.Errorf("node %q aligned %q, want left", n.Name, n.Align)
		}
	}
}

func TestRenderJSONStyle(t *testing.T) {
	s := render.DefaultStyle()
	s.StreamFillMode = render.FillGradient
	s.ShowValues = true
	l, cmds := energyCommands(s)

	data, err := RenderJSON(l, cmds, WithJSONStyle(s))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Style == nil {
		t.Fatal("Style missing")
	}
	if out.Style.StreamFillMode != render.FillGradient {
		t.Errorf("StreamFillMode = %q, want gradient", out.Style.StreamFillMode)
	}
	if !out.Style.ShowValues {
		t.Error("ShowValues should be true")
	}
	for _, r := range out.Ribbons {
		if r.Gradient == nil {
			t.Errorf("ribbon %d->%d missing gradient", r.From, r.To)
		}
	}
	for _, n := range out.Nodes {
		if n.Name == "Power" && n.Label != "Power 50" {
			t.Errorf("Power label = %q, want %q", n.Label, "Power 50")
		}
	}
}

func TestRenderJSONDiagnostics(t *testing.T) {
	g := flow.New(nil)
	a, _ := g.AddNode(flow.Node{Name: "a", Level: 0})
	_, _ = g.AddNode(flow.Node{Name: "b", Level: 1})
	c, _ := g.AddNode(flow.Node{Name: "c", Level: 2})
	_ = g.Connect(a, c, 5)

	l := layout.Compute(g, 100, 100, layout.DefaultOptions())
	data, err := RenderJSON(l, render.Draw(l, render.DefaultStyle()))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Ribbons) != 0 {
		t.Errorf("Ribbons count = %d, want 0 for a level-skipping flow", len(out.Ribbons))
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].Code != errors.ErrCodeInconsistentEdge {
		t.Errorf("Diagnostics = %+v, want one %s", out.Diagnostics, errors.ErrCodeInconsistentEdge)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	l := layout.Compute(flow.New(nil), 100, 100, layout.DefaultOptions())
	data, err := RenderJSON(l, nil)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"nodes": []`) {
		t.Errorf("empty layout should export an empty node list:\n%s", data)
	}
}
