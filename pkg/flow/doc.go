// Package flow provides the node model of a Sankey diagram: named nodes
// assigned to integer levels, joined by weighted directed flows.
//
// # Overview
//
// A [Graph] keeps its nodes in insertion order and every node's outgoing
// and incoming flows as ordered mappings. Both orders matter downstream:
// the layout engine reverses insertion order within each level and sorts
// flows relative to the neighbouring levels.
//
//	g := flow.New(nil)
//	coal, _ := g.AddNode(flow.Node{Name: "Coal", Level: 0})
//	power, _ := g.AddNode(flow.Node{Name: "Power", Level: 1})
//	_ = g.Connect(coal, power, 42)
//
// Identity is the explicit [NodeID], never the name. Calling [Graph.Connect]
// for an existing pair replaces the weight without moving the flow.
//
// # Sizing
//
// A node's box height is proportional to [Graph.MaxSum], the larger of
// its total inflow and outflow.
//
// # Diagnostics
//
// [Check] reports cycles, flows that skip or go back a level, nodes that
// carry no flow and unbalanced intermediates. These never stop a layout;
// the renderer simply skips flows it cannot draw. [Graph.Validate] turns
// the structural findings into errors for callers that want to be strict.
//
// # Concurrency
//
// Graph is not safe for concurrent use. Layout passes read the graph, so
// callers must not mutate it while a pass is running.
package flow
