package layout

import (
	"image/color"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
)

// Align is the horizontal anchoring of a node label.
type Align int

const (
	// AlignLeft places the label to the right of its box, starting at the anchor.
	AlignLeft Align = iota
	// AlignRight places the label to the left of its box, ending at the anchor.
	AlignRight
)

func (a Align) String() string {
	if a == AlignRight {
		return "right"
	}
	return "left"
}

// NodeLayout is the computed geometry of one node for one pass.
type NodeLayout struct {
	ID     flow.NodeID `json:"id"`
	Name   string      `json:"name"`
	Level  int         `json:"level"`
	Color  color.RGBA  `json:"color"`
	Value  float64     `json:"value"` // MaxSum of the node
	Bounds geom.Rect   `json:"bounds"`
	Label  geom.Point  `json:"label"`
	Align  Align       `json:"align"`
}

// Level is one column of the layout with its nodes in drawing order.
type Level struct {
	Index int           `json:"index"`
	Nodes []flow.NodeID `json:"nodes"`
}

// Diagnostic is a recovered condition found during a pass.
type Diagnostic struct {
	Code    errors.Code   `json:"code"`
	Message string        `json:"message"`
	Nodes   []flow.NodeID `json:"nodes,omitempty"`
}

// Layout is the result of one layout pass: node geometry, the sorted edge
// order used to stack ribbons, and the scale that maps weights to pixels.
//
// A Layout is immutable once returned and can be rendered concurrently.
type Layout struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	MinLevel int     `json:"min_level"`
	MaxLevel int     `json:"max_level"`

	ScaleY        float64 `json:"scale_y"`
	ItemWidth     float64 `json:"item_width"`
	VerticalGap   float64 `json:"vertical_gap"`
	HorizontalGap float64 `json:"horizontal_gap"`
	TextGap       float64 `json:"text_gap"`
	FontSize      float64 `json:"font_size"`

	Levels   []Level                     `json:"levels"`
	Nodes    map[flow.NodeID]NodeLayout  `json:"nodes"`
	Outgoing map[flow.NodeID][]flow.Link `json:"outgoing"`
	Incoming map[flow.NodeID][]flow.Link `json:"incoming"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Empty reports whether the layout has nothing to draw.
func (l Layout) Empty() bool { return len(l.Nodes) == 0 }

// Node returns the layout of a node.
func (l Layout) Node(id flow.NodeID) (NodeLayout, bool) {
	n, ok := l.Nodes[id]
	return n, ok
}

// Level returns the node IDs of a level in drawing order, or nil.
func (l Layout) Level(level int) []flow.NodeID {
	i := level - l.MinLevel
	if i < 0 || i >= len(l.Levels) {
		return nil
	}
	return l.Levels[i].Nodes
}

// OrderedNodes returns the node layouts level by level in drawing order.
func (l Layout) OrderedNodes() []NodeLayout {
	out := make([]NodeLayout, 0, len(l.Nodes))
	for _, lvl := range l.Levels {
		for _, id := range lvl.Nodes {
			out = append(out, l.Nodes[id])
		}
	}
	return out
}

// Bounds returns the rectangle enclosing every node box.
func (l Layout) Bounds() geom.Rect {
	var r geom.Rect
	for _, n := range l.OrderedNodes() {
		r = r.Union(n.Bounds)
	}
	return r
}
