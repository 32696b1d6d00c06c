package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/sankey/pkg/flow"
)

// EdgeOrder is the per-pass view of every node's flows after cross-level
// sorting. The graph itself is never reordered.
type EdgeOrder struct {
	Outgoing map[flow.NodeID][]flow.Link
	Incoming map[flow.NodeID][]flow.Link
}

// SortEdges orders each node's flows to follow the node order of the
// neighbouring levels.
//
// For a node on level L below MaxLevel, outgoing flows are stably sorted by
// the target's index in bucket L+1. For a node above MinLevel, incoming
// flows are stably sorted by the source's index in bucket L-1. Targets or
// sources outside that bucket get index -1 and move to the front. Lists
// that are not sorted keep insertion order.
func SortEdges(g *flow.Graph, p Partition) EdgeOrder {
	order := EdgeOrder{
		Outgoing: make(map[flow.NodeID][]flow.Link, g.NodeCount()),
		Incoming: make(map[flow.NodeID][]flow.Link, g.NodeCount()),
	}
	if p.Empty() {
		return order
	}

	for level := p.MinLevel; level <= p.MaxLevel; level++ {
		var next, prev map[flow.NodeID]int
		if level < p.MaxLevel {
			next = p.positions(level + 1)
		}
		if level > p.MinLevel {
			prev = p.positions(level - 1)
		}

		for _, n := range p.Bucket(level) {
			out := g.Outgoing(n.ID)
			if next != nil {
				sortByPosition(out, next)
			}
			order.Outgoing[n.ID] = out

			in := g.Incoming(n.ID)
			if prev != nil {
				sortByPosition(in, prev)
			}
			order.Incoming[n.ID] = in
		}
	}
	return order
}

func sortByPosition(links []flow.Link, pos map[flow.NodeID]int) {
	index := func(id flow.NodeID) int {
		if i, ok := pos[id]; ok {
			return i
		}
		return -1
	}
	slices.SortStableFunc(links, func(a, b flow.Link) int {
		return cmp.Compare(index(a.Node), index(b.Node))
	})
}
