package layout_test

import (
	"fmt"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/layout"
)

func ExampleCompute() {
	g := flow.New(nil)
	coal, _ := g.AddNode(flow.Node{Name: "Coal", Level: 0})
	power, _ := g.AddNode(flow.Node{Name: "Power", Level: 1})
	_ = g.Connect(coal, power, 10)

	opts := layout.Options{}
	opts.SetItemWidth(20)
	opts.SetItemGap(0)

	l := layout.Compute(g, 100, 100, opts)
	for _, n := range l.OrderedNodes() {
		fmt.Printf("%s x=%.0f h=%.0f label=%s\n", n.Name, n.Bounds.X, n.Bounds.H, n.Align)
	}
	// Output:
	// Coal x=0 h=100 label=left
	// Power x=80 h=100 label=right
}

func ExampleCompute_empty() {
	l := layout.Compute(flow.New(nil), 800, 600, layout.DefaultOptions())
	fmt.Println(l.Empty(), l.Diagnostics[0].Code)
	// Output:
	// true DEGENERATE_INPUT
}
