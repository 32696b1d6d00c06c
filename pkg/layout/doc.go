// Package layout computes node geometry for Sankey diagrams.
//
// # Overview
//
// A layout pass runs three steps over a [flow.Graph]:
//
//  1. [PartitionLevels] groups nodes into level buckets, reversing
//     insertion order within each bucket.
//  2. [SortEdges] orders every node's flows to follow the node order of
//     the neighbouring levels so that ribbons stack without overlapping.
//  3. [Compute] sizes and places each node in the canvas.
//
// Levels become columns spread evenly across the width. Node heights are
// proportional to the node's flow: the level carrying the most flow fills
// the canvas height, minus the gaps needed by the fullest level.
//
//	l := layout.Compute(g, 1200, 800, layout.DefaultOptions())
//	for _, n := range l.OrderedNodes() {
//	    fmt.Println(n.Name, n.Bounds)
//	}
//
// # Sizing
//
// With [Options.AutoItemWidth] and [Options.AutoItemGap] set, node width
// and vertical gap are 2.5% of the shorter canvas side. Fixed sizes are
// clamped to [MinItemWidth, MaxItemWidth] and [MinItemGap, MaxItemGap].
// Label distance and font size also scale with the canvas.
//
// # Degenerate Input
//
// Compute does not return errors. An empty graph, a graph without flow or
// a non-positive canvas produce an empty [Layout] carrying a diagnostic.
// Flows that do not go to the next level are listed as diagnostics and are
// not drawn.
//
// # Concurrency
//
// Compute only reads the graph and returns a fresh [Layout] every time. A
// returned Layout is never modified and may be shared between goroutines.
package layout
