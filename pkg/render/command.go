package render

import (
	"image/color"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/layout"
)

// Command is one drawing instruction. Sinks replay commands in order onto
// their canvas. The set of commands is closed: [FillRect], [FillPath] and
// [FillText].
type Command interface {
	command()
}

// Gradient is a linear color ramp between two points.
type Gradient struct {
	From, To   geom.Point
	Start, End color.RGBA
}

// Paint is either a flat color or, when Gradient is set, a linear gradient.
type Paint struct {
	Color    color.RGBA
	Gradient *Gradient
}

// Solid returns a flat paint.
func Solid(c color.RGBA) Paint { return Paint{Color: c} }

// Op is a path segment operation.
type Op int

const (
	OpMoveTo Op = iota
	OpLineTo
	OpCubicTo
	OpClose
)

// Segment is one path element. MoveTo and LineTo use Pts[0]; CubicTo uses
// two control points followed by the end point.
type Segment struct {
	Op  Op
	Pts [3]geom.Point
}

// Path is a sequence of segments forming closed outlines.
type Path []Segment

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	*p = append(*p, Segment{Op: OpMoveTo, Pts: [3]geom.Point{{X: x, Y: y}}})
}

// LineTo adds a straight segment.
func (p *Path) LineTo(x, y float64) {
	*p = append(*p, Segment{Op: OpLineTo, Pts: [3]geom.Point{{X: x, Y: y}}})
}

// CubicTo adds a cubic bezier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	*p = append(*p, Segment{Op: OpCubicTo, Pts: [3]geom.Point{{X: c1x, Y: c1y}, {X: c2x, Y: c2y}, {X: x, Y: y}}})
}

// Close closes the current subpath.
func (p *Path) Close() { *p = append(*p, Segment{Op: OpClose}) }

// FillRect fills a node box.
type FillRect struct {
	Node  flow.NodeID
	Rect  geom.Rect
	Paint Paint
}

// FillPath fills a ribbon outline.
type FillPath struct {
	From, To flow.NodeID
	Weight   float64
	Path     Path
	Paint    Paint
}

// FillText draws a label. The anchor is the vertical center of the text;
// Align tells which end of the text sits on the anchor.
type FillText struct {
	Node  flow.NodeID
	At    geom.Point
	Text  string
	Align layout.Align
	Size  float64
	Color color.RGBA
}

func (FillRect) command() {}
func (FillPath) command() {}
func (FillText) command() {}
