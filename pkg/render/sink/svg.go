package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/sankey/pkg/fonts"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	background color.RGBA
	embedFont  bool
}

// WithTitle adds a <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithBackground fills the canvas before drawing. The zero color leaves
// the background transparent.
func WithBackground(c color.RGBA) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithEmbeddedFont embeds the label font as a data URL so the file renders
// identically without the font installed.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// RenderSVG replays drawing commands into an SVG document of the given
// size.
func RenderSVG(cmds []render.Command, width, height float64, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(int(math.Ceil(width)), int(math.Ceil(height)),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, num(width), num(height)))
	if r.title != "" {
		canvas.Title(r.title)
	}

	gradients := gradientIDs(cmds)
	if len(gradients) > 0 || r.embedFont {
		canvas.Def()
		if r.embedFont {
			canvas.Style("text/css", fmt.Sprintf("@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s); }",
				fonts.FontFamily, fonts.RegularTTFBase64()))
		}
		for i, c := range cmds {
			id, ok := gradients[i]
			if !ok {
				continue
			}
			g := c.(render.FillPath).Paint.Gradient
			canvas.LinearGradient(id, 0, 0, 100, 0, []svg.Offcolor{
				{Offset: 0, Color: rgbHex(g.Start), Opacity: render.Opacity(g.Start)},
				{Offset: 100, Color: rgbHex(g.End), Opacity: render.Opacity(g.End)},
			})
		}
		canvas.DefEnd()
	}

	if r.background.A > 0 {
		canvas.Path(rectData(0, 0, width, height), fillStyle(r.background))
	}

	for i, c := range cmds {
		switch c := c.(type) {
		case render.FillPath:
			style := fillStyle(c.Paint.Color)
			if id, ok := gradients[i]; ok {
				style = fmt.Sprintf("fill:url(#%s)", id)
			}
			canvas.Path(PathData(c.Path), style, fmt.Sprintf(`class="ribbon" data-from="%d" data-to="%d"`, c.From, c.To))
		case render.FillRect:
			canvas.Path(rectData(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H), fillStyle(c.Paint.Color),
				fmt.Sprintf(`class="node" data-node="%d"`, c.Node))
		case render.FillText:
			anchor := "start"
			if c.Align == layout.AlignRight {
				anchor = "end"
			}
			canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", num(c.At.X), num(c.At.Y)))
			canvas.Text(0, 0, c.Text, fmt.Sprintf("text-anchor:%s;dominant-baseline:central;font-family:%s;font-size:%spx;%s",
				anchor, fonts.FallbackFontFamily, num(c.Size), fillStyle(c.Color)))
			canvas.Gend()
		}
	}

	canvas.End()
	return buf.Bytes()
}

// gradientIDs assigns an id to every gradient-filled command, keyed by
// command index.
func gradientIDs(cmds []render.Command) map[int]string {
	ids := make(map[int]string)
	for i, c := range cmds {
		if p, ok := c.(render.FillPath); ok && p.Paint.Gradient != nil {
			ids[i] = fmt.Sprintf("ribbon-%d", len(ids))
		}
	}
	return ids
}

// PathData formats a path as SVG path data.
func PathData(p render.Path) string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch s.Op {
		case render.OpMoveTo:
			fmt.Fprintf(&sb, "M%s,%s", num(s.Pts[0].X), num(s.Pts[0].Y))
		case render.OpLineTo:
			fmt.Fprintf(&sb, "L%s,%s", num(s.Pts[0].X), num(s.Pts[0].Y))
		case render.OpCubicTo:
			fmt.Fprintf(&sb, "C%s,%s %s,%s %s,%s",
				num(s.Pts[0].X), num(s.Pts[0].Y), num(s.Pts[1].X), num(s.Pts[1].Y), num(s.Pts[2].X), num(s.Pts[2].Y))
		case render.OpClose:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

func rectData(x, y, w, h float64) string {
	return fmt.Sprintf("M%s,%s h%s v%s h%s Z", num(x), num(y), num(w), num(h), num(-w))
}

func fillStyle(c color.RGBA) string {
	if c.A == 0xff {
		return "fill:" + rgbHex(c)
	}
	return fmt.Sprintf("fill:%s;fill-opacity:%s", rgbHex(c), num(render.Opacity(c)))
}

func rgbHex(c color.RGBA) string {
	c.A = 0xff
	return render.Hex(c)
}

// num formats a coordinate with at most three decimals and no trailing
// zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
