package flow

import (
	"errors"
	"image/color"
	"maps"
	"math"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// negative. Zero is reserved and asks the graph to assign the next free ID.
	ErrInvalidNodeID = errors.New("node ID must not be negative")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an operation references a node that is
	// not part of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidWeight is returned by [Graph.Connect] when the weight is
	// negative, NaN or infinite.
	ErrInvalidWeight = errors.New("flow weight must be a finite non-negative number")

	// ErrSelfLoop is returned by [Graph.Connect] when source and target are
	// the same node. A ribbon always joins two distinct levels.
	ErrSelfLoop = errors.New("flow must connect two distinct nodes")
)

// NodeID is the explicit handle of a node. Names are labels only and may
// repeat; every lookup goes through the ID.
type NodeID int64

// Metadata stores arbitrary key-value pairs attached to the graph, such as
// the title of a flow file or the source it was loaded from.
type Metadata map[string]any

// Node is a box in the diagram. Its height is derived from the flows that
// touch it, so it carries no size of its own.
type Node struct {
	ID    NodeID     // Explicit handle (assigned by AddNode when zero)
	Name  string     // Display label
	Level int        // Column, assigned by the caller
	Color color.RGBA // Fill used when item colors are enabled
}

// Link is one entry of a node's ordered outgoing or incoming mapping: the
// node on the other end and the weight of the flow.
type Link struct {
	Node   NodeID  `json:"node"`
	Weight float64 `json:"weight"`
}

// Edge is a weighted flow between two nodes as returned by [Graph.Edges].
type Edge struct {
	From   NodeID  `json:"from"`
	To     NodeID  `json:"to"`
	Weight float64 `json:"weight"`
}

// Graph holds the nodes of a flow diagram in insertion order together with
// the ordered outgoing and incoming mappings of every node.
//
// [Graph.Connect] writes both directions, so a flow a→b with weight w is
// always visible as (b, w) in a's outgoing list and as (a, w) in b's
// incoming list.
//
// The zero value is not usable; create graphs with [New].
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    map[NodeID]*Node
	order    []NodeID
	outgoing map[NodeID][]Link
	incoming map[NodeID][]Link
	nextID   NodeID
	meta     Metadata
}

// New creates an empty graph with optional graph-level metadata.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:    make(map[NodeID]*Node),
		outgoing: make(map[NodeID][]Link),
		incoming: make(map[NodeID][]Link),
		nextID:   1,
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map. It is never nil.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode appends a node to the graph and returns its ID. A zero ID is
// replaced with the next free identifier. Returns ErrInvalidNodeID for
// negative IDs and ErrDuplicateNodeID if the ID is taken.
func (g *Graph) AddNode(n Node) (NodeID, error) {
	if n.ID < 0 {
		return 0, ErrInvalidNodeID
	}
	if n.ID == 0 {
		for g.nodes[g.nextID] != nil {
			g.nextID++
		}
		n.ID = g.nextID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return 0, ErrDuplicateNodeID
	}
	if n.ID >= g.nextID {
		g.nextID = n.ID + 1
	}
	node := n
	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
	return n.ID, nil
}

// Connect records a flow of the given weight from one node to another.
// If the pair is already connected the weight is replaced in place, keeping
// the position of the flow in both ordered mappings.
func (g *Graph) Connect(from, to NodeID, weight float64) error {
	if _, ok := g.nodes[from]; !ok {
		return ErrUnknownNode
	}
	if _, ok := g.nodes[to]; !ok {
		return ErrUnknownNode
	}
	if from == to {
		return ErrSelfLoop
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ErrInvalidWeight
	}
	g.outgoing[from] = upsert(g.outgoing[from], to, weight)
	g.incoming[to] = upsert(g.incoming[to], from, weight)
	return nil
}

func upsert(links []Link, id NodeID, weight float64) []Link {
	for i := range links {
		if links[i].Node == id {
			links[i].Weight = weight
			return links
		}
	}
	return append(links, Link{Node: id, Weight: weight})
}

// Disconnect removes the flow from→to in both directions. It reports whether
// a flow existed.
func (g *Graph) Disconnect(from, to NodeID) bool {
	n := len(g.outgoing[from])
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(l Link) bool { return l.Node == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(l Link) bool { return l.Node == from })
	return len(g.outgoing[from]) != n
}

// RemoveNode deletes a node and every flow touching it.
func (g *Graph) RemoveNode(id NodeID) error {
	if _, ok := g.nodes[id]; !ok {
		return ErrUnknownNode
	}
	for _, l := range g.outgoing[id] {
		g.incoming[l.Node] = slices.DeleteFunc(g.incoming[l.Node], func(x Link) bool { return x.Node == id })
	}
	for _, l := range g.incoming[id] {
		g.outgoing[l.Node] = slices.DeleteFunc(g.outgoing[l.Node], func(x Link) bool { return x.Node == id })
	}
	delete(g.outgoing, id)
	delete(g.incoming, id)
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(x NodeID) bool { return x == id })
	return nil
}

// Clear removes all nodes and flows but keeps the metadata.
func (g *Graph) Clear() {
	g.nodes = make(map[NodeID]*Node)
	g.outgoing = make(map[NodeID][]Link)
	g.incoming = make(map[NodeID][]Link)
	g.order = nil
	g.nextID = 1
}

// Node returns the node with the given ID. The pointer refers to the node
// stored in the graph, so changes to Name, Level or Color take effect on the
// next layout pass. The ID must not be modified.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Outgoing returns a copy of the node's outgoing mapping in insertion order.
func (g *Graph) Outgoing(id NodeID) []Link { return slices.Clone(g.outgoing[id]) }

// Incoming returns a copy of the node's incoming mapping in insertion order.
func (g *Graph) Incoming(id NodeID) []Link { return slices.Clone(g.incoming[id]) }

// Weight returns the weight of the flow from→to and whether it exists.
func (g *Graph) Weight(from, to NodeID) (float64, bool) {
	for _, l := range g.outgoing[from] {
		if l.Node == to {
			return l.Weight, true
		}
	}
	return 0, false
}

// Edges returns every flow, grouped by source in node insertion order and
// then in outgoing order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, id := range g.order {
		for _, l := range g.outgoing[id] {
			edges = append(edges, Edge{From: id, To: l.Node, Weight: l.Weight})
		}
	}
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of flows in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, links := range g.outgoing {
		n += len(links)
	}
	return n
}

// OutSum returns the total weight leaving the node.
func (g *Graph) OutSum(id NodeID) float64 { return sum(g.outgoing[id]) }

// InSum returns the total weight entering the node.
func (g *Graph) InSum(id NodeID) float64 { return sum(g.incoming[id]) }

// MaxSum returns the larger of the node's outgoing and incoming totals.
// It determines the height of the node's box.
func (g *Graph) MaxSum(id NodeID) float64 { return max(g.OutSum(id), g.InSum(id)) }

func sum(links []Link) float64 {
	var s float64
	for _, l := range links {
		s += l.Weight
	}
	return s
}

// Sources returns nodes that only have outgoing flows, in insertion order.
func (g *Graph) Sources() []*Node {
	return g.filter(func(id NodeID) bool { return len(g.incoming[id]) == 0 && len(g.outgoing[id]) > 0 })
}

// Sinks returns nodes that only have incoming flows, in insertion order.
func (g *Graph) Sinks() []*Node {
	return g.filter(func(id NodeID) bool { return len(g.outgoing[id]) == 0 && len(g.incoming[id]) > 0 })
}

// Intermediates returns nodes with both incoming and outgoing flows, in
// insertion order.
func (g *Graph) Intermediates() []*Node {
	return g.filter(func(id NodeID) bool { return len(g.outgoing[id]) > 0 && len(g.incoming[id]) > 0 })
}

func (g *Graph) filter(keep func(NodeID) bool) []*Node {
	var out []*Node
	for _, id := range g.order {
		if keep(id) {
			out = append(out, g.nodes[id])
		}
	}
	return out
}

// Levels returns the distinct levels that carry at least one node, sorted
// ascending.
func (g *Graph) Levels() []int {
	seen := make(map[int]struct{})
	for _, n := range g.nodes {
		seen[n.Level] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Clone returns a deep copy of the graph. Metadata values are copied
// shallowly.
func (g *Graph) Clone() *Graph {
	c := New(maps.Clone(g.meta))
	c.nextID = g.nextID
	c.order = slices.Clone(g.order)
	for id, n := range g.nodes {
		node := *n
		c.nodes[id] = &node
	}
	for id, links := range g.outgoing {
		c.outgoing[id] = slices.Clone(links)
	}
	for id, links := range g.incoming {
		c.incoming[id] = slices.Clone(links)
	}
	return c
}
