package sink

import (
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/render"
)

// energyGraph builds a three-level diagram with a fan-in and a fan-out.
func energyGraph() *flow.Graph {
	g := flow.New(nil)
	coal, _ := g.AddNode(flow.Node{Name: "Coal", Level: 0})
	gas, _ := g.AddNode(flow.Node{Name: "Gas & Oil", Level: 0})
	power, _ := g.AddNode(flow.Node{Name: "Power", Level: 1})
	homes, _ := g.AddNode(flow.Node{Name: "Homes", Level: 2})
	loss, _ := g.AddNode(flow.Node{Name: "Losses", Level: 2})
	_ = g.Connect(coal, power, 30)
	_ = g.Connect(gas, power, 20)
	_ = g.Connect(power, homes, 35)
	_ = g.Connect(power, loss, 15)
	return g
}

func energyCommands(s render.Style) (layout.Layout, []render.Command) {
	l := layout.Compute(energyGraph(), 400, 300, layout.DefaultOptions())
	return l, render.Draw(l, s)
}
