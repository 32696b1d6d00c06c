package pipeline

import (
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/layout"
)

// ComputeLayout runs a layout pass with the size and options in opts.
//
// For nodelink output the layout is still computed: the JSON format and
// the diagnostics are shared by both visualization types.
func ComputeLayout(g *flow.Graph, opts Options) layout.Layout {
	opts.SetLayoutDefaults()
	l := layout.Compute(g, opts.Width, opts.Height, opts.Layout)
	for _, d := range l.Diagnostics {
		opts.Logger.Warn("layout", "code", d.Code, "msg", d.Message)
	}
	return l
}
