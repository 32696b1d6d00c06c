package sink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/fonts"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.RGBA
	rsvg       bool
	svgOpts    []SVGOption
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 && !math.IsInf(s, 0) {
			r.scale = s
		}
	}
}

// WithPNGBackground fills the image before drawing. The zero color leaves
// it transparent.
func WithPNGBackground(c color.RGBA) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithRSVG rasterises the SVG rendering with rsvg-convert instead of the
// built-in rasteriser. SVG options are passed through.
func WithRSVG(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.rsvg = true; r.svgOpts = opts }
}

// RenderPNG rasterises drawing commands into a PNG image of the given size
// times the scale factor.
func RenderPNG(ctx context.Context, cmds []render.Command, width, height float64, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if width*r.scale > errors.MaxCanvasSize || height*r.scale > errors.MaxCanvasSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png: image %gx%g at scale %g exceeds %d pixels per side",
			width, height, r.scale, errors.MaxCanvasSize)
	}
	if r.rsvg {
		svgOpts := append([]SVGOption{WithBackground(r.background)}, r.svgOpts...)
		return render.ToPNG(ctx, RenderSVG(cmds, width, height, svgOpts...), r.scale)
	}

	w, h := int(math.Ceil(width*r.scale)), int(math.Ceil(height*r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: invalid image size %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	if r.background.A > 0 {
		dc.SetColor(r.background)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)

	var fontSize float64
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch c := c.(type) {
		case render.FillPath:
			dc.NewSubPath()
			tracePath(dc, c.Path)
			setPaint(dc, c.Paint, r.scale)
			dc.Fill()
		case render.FillRect:
			dc.DrawRectangle(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H)
			setPaint(dc, c.Paint, r.scale)
			dc.Fill()
		case render.FillText:
			if c.Size != fontSize {
				face, err := fonts.Face(c.Size)
				if err != nil {
					return nil, fmt.Errorf("png: load font: %w", err)
				}
				dc.SetFontFace(face)
				fontSize = c.Size
			}
			ax := 0.0
			if c.Align == layout.AlignRight {
				ax = 1
			}
			dc.SetColor(c.Color)
			dc.DrawStringAnchored(c.Text, c.At.X, c.At.Y, ax, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func tracePath(dc *gg.Context, p render.Path) {
	for _, s := range p {
		switch s.Op {
		case render.OpMoveTo:
			dc.MoveTo(s.Pts[0].X, s.Pts[0].Y)
		case render.OpLineTo:
			dc.LineTo(s.Pts[0].X, s.Pts[0].Y)
		case render.OpCubicTo:
			dc.CubicTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case render.OpClose:
			dc.ClosePath()
		}
	}
}

// setPaint applies a paint. Gradient coordinates are given in canvas
// units; gg evaluates patterns in device pixels, hence the scale.
func setPaint(dc *gg.Context, p render.Paint, scale float64) {
	if p.Gradient == nil {
		dc.SetColor(p.Color)
		return
	}
	g := p.Gradient
	grad := gg.NewLinearGradient(g.From.X*scale, g.From.Y*scale, g.To.X*scale, g.To.Y*scale)
	grad.AddColorStop(0, g.Start)
	grad.AddColorStop(1, g.End)
	dc.SetFillStyle(grad)
}
