package render

import (
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/layout"
)

const (
	// ctrlRatio places bezier control points a quarter of the way into the
	// gap between two columns.
	ctrlRatio = 0.25
	// arrowRatio is the depth of the flow-direction notch relative to the
	// shorter canvas side.
	arrowRatio = 0.01875
)

// Draw turns a layout into drawing commands.
//
// Levels are visited in ascending order and nodes in bucket order. For each
// node, its outgoing ribbons to the next level come first (in the sorted
// edge order), then its box and its label. Ribbons to nodes outside the
// next level are skipped.
//
// Ribbons leave a node stacked from its top edge downward, each one as
// thick as its weight times the layout scale. They arrive at the target
// below the flows that precede the source in the target's sorted incoming
// order. Offsets are tracked per call, so Draw can be called any number
// of times on the same layout.
func Draw(l layout.Layout, s Style) []Command {
	if l.Empty() {
		return nil
	}
	s = s.Normalize()

	arrow := 0.0
	if s.ShowFlowDirection {
		arrow = min(l.Width, l.Height) * arrowRatio
	}

	cmds := make([]Command, 0, 3*len(l.Nodes))
	outOffset := make(map[flow.NodeID]float64, len(l.Nodes))

	for level := l.MinLevel; level <= l.MaxLevel; level++ {
		var next map[flow.NodeID]bool
		if level < l.MaxLevel {
			ids := l.Level(level + 1)
			next = make(map[flow.NodeID]bool, len(ids))
			for _, id := range ids {
				next[id] = true
			}
		}

		for _, id := range l.Level(level) {
			src := l.Nodes[id]
			for _, link := range l.Outgoing[id] {
				if !next[link.Node] {
					continue
				}
				dst := l.Nodes[link.Node]
				valueY := link.Weight * l.ScaleY
				inOffset := incomingOffset(l, link.Node, id)

				cmds = append(cmds, FillPath{
					From:   id,
					To:     link.Node,
					Weight: link.Weight,
					Path:   ribbon(src, dst, outOffset[id], inOffset, valueY, arrow),
					Paint:  ribbonPaint(s, src, dst),
				})
				outOffset[id] += valueY
			}

			fill := s.ItemColor
			if s.UseItemColor {
				fill = src.Color
			}
			cmds = append(cmds, FillRect{Node: id, Rect: src.Bounds, Paint: Solid(fill)})
			cmds = append(cmds, FillText{
				Node:  id,
				At:    src.Label,
				Text:  label(src, s),
				Align: src.Align,
				Size:  l.FontSize,
				Color: s.TextColor,
			})
		}
	}
	return cmds
}

// incomingOffset sums the scaled weights of the target's incoming flows
// that precede source in sorted order.
func incomingOffset(l layout.Layout, target, source flow.NodeID) float64 {
	var off float64
	for _, in := range l.Incoming[target] {
		if in.Node == source {
			break
		}
		off += in.Weight * l.ScaleY
	}
	return off
}

// ribbon builds the closed outline of one flow. With a non-zero arrow the
// target end is notched into a point.
func ribbon(src, dst layout.NodeLayout, outOff, inOff, valueY, arrow float64) Path {
	sx, sy := src.Bounds.MaxX(), src.Bounds.MinY()
	tx, ty := dst.Bounds.MinX(), dst.Bounds.MinY()
	ctrl := (tx - sx) * ctrlRatio

	var p Path
	p.MoveTo(sx, sy+outOff)
	if arrow > 0 {
		p.CubicTo(sx+ctrl, sy+outOff, tx-ctrl, ty+inOff, tx-arrow, ty+inOff)
		p.LineTo(tx, ty+inOff+valueY*0.5)
		p.LineTo(tx-arrow, ty+inOff+valueY)
	} else {
		p.CubicTo(sx+ctrl, sy+outOff, tx-ctrl, ty+inOff, tx, ty+inOff)
		p.LineTo(tx, ty+inOff+valueY)
	}
	outOff += valueY
	p.CubicTo(tx-ctrl, ty+inOff+valueY, sx+ctrl, sy+outOff, sx, sy+outOff)
	p.LineTo(sx, sy+outOff)
	p.Close()
	return p
}

func ribbonPaint(s Style, src, dst layout.NodeLayout) Paint {
	if s.StreamFillMode != FillGradient {
		return Solid(s.StreamColor)
	}
	return Paint{
		Color: WithOpacity(src.Color, s.ConnectionOpacity),
		Gradient: &Gradient{
			From:  geom.Point{X: src.Bounds.MaxX(), Y: src.Bounds.CenterY()},
			To:    geom.Point{X: dst.Bounds.MinX(), Y: src.Bounds.CenterY()},
			Start: WithOpacity(src.Color, s.ConnectionOpacity),
			End:   WithOpacity(dst.Color, s.ConnectionOpacity),
		},
	}
}

func label(n layout.NodeLayout, s Style) string {
	if !s.ShowValues {
		return n.Name
	}
	if n.Name == "" {
		return FormatValue(n.Value, s.Decimals)
	}
	return n.Name + " " + FormatValue(n.Value, s.Decimals)
}
