package flow

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

var (
	// ErrGraphHasCycle is returned by [Graph.Validate] when flows form a
	// directed cycle.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrNonAdjacentLevels is returned by [Graph.Validate] when a flow does
	// not go from level L to level L+1. Such flows are never drawn.
	ErrNonAdjacentLevels = errors.New("flows must connect adjacent levels")
)

// IssueKind classifies a finding reported by [Check].
type IssueKind int

const (
	// IssueCycle marks a strongly connected group of nodes.
	IssueCycle IssueKind = iota
	// IssueLevelSkip marks a flow whose target is not on the next level.
	IssueLevelSkip
	// IssueZeroFlow marks a node whose boxes would have zero height.
	IssueZeroFlow
	// IssueImbalance marks an intermediate node whose inflow differs from
	// its outflow. The box is sized by the larger side, leaving a gap.
	IssueImbalance
)

func (k IssueKind) String() string {
	switch k {
	case IssueCycle:
		return "cycle"
	case IssueLevelSkip:
		return "level-skip"
	case IssueZeroFlow:
		return "zero-flow"
	case IssueImbalance:
		return "imbalance"
	default:
		return fmt.Sprintf("IssueKind(%d)", int(k))
	}
}

// Issue is a single diagnostic about the graph. None of them prevent a
// layout from being computed.
type Issue struct {
	Kind    IssueKind
	Nodes   []NodeID
	Message string
}

// Check inspects the graph and returns every diagnostic it finds, in a
// deterministic order: cycles, level skips, zero-flow nodes, imbalances.
func Check(g *Graph) []Issue {
	var issues []Issue
	issues = append(issues, cycles(g)...)

	for _, e := range g.Edges() {
		src, dst := g.nodes[e.From], g.nodes[e.To]
		if dst.Level != src.Level+1 {
			issues = append(issues, Issue{
				Kind:    IssueLevelSkip,
				Nodes:   []NodeID{e.From, e.To},
				Message: fmt.Sprintf("flow %q -> %q goes from level %d to level %d", src.Name, dst.Name, src.Level, dst.Level),
			})
		}
	}

	for _, n := range g.Nodes() {
		if g.MaxSum(n.ID) == 0 {
			issues = append(issues, Issue{
				Kind:    IssueZeroFlow,
				Nodes:   []NodeID{n.ID},
				Message: fmt.Sprintf("node %q carries no flow", n.Name),
			})
		}
	}

	const eps = 1e-9
	for _, n := range g.Intermediates() {
		in, out := g.InSum(n.ID), g.OutSum(n.ID)
		if d := in - out; d > eps || d < -eps {
			issues = append(issues, Issue{
				Kind:    IssueImbalance,
				Nodes:   []NodeID{n.ID},
				Message: fmt.Sprintf("node %q receives %g but emits %g", n.Name, in, out),
			})
		}
	}
	return issues
}

// Validate returns ErrGraphHasCycle or ErrNonAdjacentLevels if the graph
// contains flows the renderer cannot draw, and nil otherwise.
func (g *Graph) Validate() error {
	for _, is := range Check(g) {
		switch is.Kind {
		case IssueCycle:
			return fmt.Errorf("%w: %s", ErrGraphHasCycle, is.Message)
		case IssueLevelSkip:
			return fmt.Errorf("%w: %s", ErrNonAdjacentLevels, is.Message)
		}
	}
	return nil
}

func cycles(g *Graph) []Issue {
	dg := simple.NewDirectedGraph()
	for _, id := range g.order {
		dg.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges() {
		dg.SetEdge(dg.NewEdge(dg.Node(int64(e.From)), dg.Node(int64(e.To))))
	}

	var issues []Issue
	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		ids := make([]NodeID, len(scc))
		for i, n := range scc {
			ids[i] = NodeID(n.ID())
		}
		slices.Sort(ids)
		issues = append(issues, Issue{
			Kind:    IssueCycle,
			Nodes:   ids,
			Message: fmt.Sprintf("%d nodes form a cycle", len(ids)),
		})
	}
	slices.SortFunc(issues, func(a, b Issue) int { return cmp.Compare(a.Nodes[0], b.Nodes[0]) })
	return issues
}
