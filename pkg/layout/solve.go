package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
)

// Compute runs a full layout pass: partition the nodes into levels, sort
// every node's flows against the neighbouring levels, and size and place
// each node inside a width×height canvas.
//
// Node heights are proportional to [flow.Graph.MaxSum]. The level carrying
// the most flow fills the canvas height minus the gaps of the fullest
// level. Within a level, the first node in bucket order sits at the bottom
// and the rest stack upward separated by the vertical gap.
//
// Compute never fails. An empty graph, a graph without flow or a
// non-positive canvas yields an empty layout with a DEGENERATE_INPUT
// diagnostic. The result depends only on its inputs.
func Compute(g *flow.Graph, width, height float64, opts Options) Layout {
	l := Layout{Width: width, Height: height}

	if g == nil || g.NodeCount() == 0 {
		return l.degenerate("graph has no nodes")
	}
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return l.degenerate(fmt.Sprintf("canvas size %gx%g is not positive", width, height))
	}

	p := PartitionLevels(g.Nodes())
	order := SortEdges(g, p)
	s := opts.resolve(width, height)

	l.MinLevel, l.MaxLevel = p.MinLevel, p.MaxLevel
	l.ItemWidth, l.VerticalGap, l.TextGap, l.FontSize = s.itemWidth, s.gap, s.textGap, s.fontSize

	var maxSum float64
	for level := p.MinLevel; level <= p.MaxLevel; level++ {
		var total float64
		for _, n := range p.Bucket(level) {
			total += g.MaxSum(n.ID)
		}
		maxSum = max(maxSum, total)
	}
	if maxSum == 0 {
		return l.degenerate("graph carries no flow")
	}

	maxItems := p.MaxItems()
	scaleY := (height - float64(maxItems-1)*s.gap) / maxSum
	if !(scaleY > 0) || math.IsInf(scaleY, 0) {
		return l.degenerate(fmt.Sprintf("vertical gaps of %d nodes exceed height %g", maxItems, height))
	}
	l.ScaleY = scaleY

	if span := p.MaxLevel - p.MinLevel; span > 0 {
		l.HorizontalGap = (width - s.itemWidth) / float64(span)
	}

	l.Outgoing, l.Incoming = order.Outgoing, order.Incoming
	l.Nodes = make(map[flow.NodeID]NodeLayout, g.NodeCount())
	l.Levels = make([]Level, 0, p.Levels())

	for level := p.MinLevel; level <= p.MaxLevel; level++ {
		bucket := p.Bucket(level)
		ids := make([]flow.NodeID, len(bucket))
		x := l.HorizontalGap * float64(level-p.MinLevel)
		lastColumn := level == p.MaxLevel && p.MaxLevel > p.MinLevel

		var cumulative float64
		for i, n := range bucket {
			ids[i] = n.ID
			value := g.MaxSum(n.ID)
			h := value * scaleY
			y := height - h - cumulative

			nl := NodeLayout{
				ID:     n.ID,
				Name:   n.Name,
				Level:  n.Level,
				Color:  n.Color,
				Value:  value,
				Bounds: geom.Rect{X: x, Y: y, W: s.itemWidth, H: h},
				Label:  geom.Point{X: x + s.itemWidth + s.textGap, Y: height - h/2 - cumulative},
				Align:  AlignLeft,
			}
			if lastColumn {
				nl.Label.X = x - s.textGap
				nl.Align = AlignRight
			}
			l.Nodes[n.ID] = nl
			cumulative += h + s.gap
		}
		l.Levels = append(l.Levels, Level{Index: level, Nodes: ids})
	}

	l.Diagnostics = inconsistentEdges(g, p)
	return l
}

func (l Layout) degenerate(msg string) Layout {
	l.Diagnostics = append(l.Diagnostics, Diagnostic{Code: errors.ErrCodeDegenerateInput, Message: msg})
	return l
}

// inconsistentEdges reports flows the renderer will skip because their
// target is not on the level after their source.
func inconsistentEdges(g *flow.Graph, p Partition) []Diagnostic {
	var out []Diagnostic
	for level := p.MinLevel; level <= p.MaxLevel; level++ {
		for _, n := range p.Bucket(level) {
			for _, link := range g.Outgoing(n.ID) {
				target, ok := g.Node(link.Node)
				if ok && target.Level == level+1 {
					continue
				}
				out = append(out, Diagnostic{
					Code:    errors.ErrCodeInconsistentEdge,
					Message: fmt.Sprintf("flow %d -> %d does not reach the next level and is not drawn", n.ID, link.Node),
					Nodes:   []flow.NodeID{n.ID, link.Node},
				})
			}
		}
	}
	return out
}
