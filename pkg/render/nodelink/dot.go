package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/render"
)

const (
	minPenWidth = 1.0
	maxPenWidth = 8.0
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the level, flow totals and metadata in node labels.
	// When false, only the node name is shown.
	Detailed bool
	// ShowWeights labels each edge with its weight.
	ShowWeights bool
	// Decimals is the precision of weights in labels.
	Decimals int
}

// ToDOT converts a flow graph to Graphviz DOT format. Levels become ranks
// laid out left to right, and edge thickness follows flow weight.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g *flow.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.6, color=\"#a4a4a48c\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if title, ok := g.Meta()["title"].(string); ok && title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", title)
	}
	buf.WriteString("\n")

	byLevel := make(map[int][]flow.NodeID)
	for _, n := range g.Nodes() {
		byLevel[n.Level] = append(byLevel[n.Level], n.ID)
		label := fmtLabel(g, *n, opts)
		attrs := fmtAttrs(*n, label)
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, level := range slices.Sorted(maps.Keys(byLevel)) {
		ids := byLevel[level]
		if len(ids) < 2 {
			continue
		}
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = fmt.Sprintf("n%d", id)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(names, "; "))
	}

	edges := g.Edges()
	var maxW float64
	for _, e := range edges {
		maxW = max(maxW, e.Weight)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		attrs := []string{fmt.Sprintf("penwidth=%s", strconv.FormatFloat(penWidth(e.Weight, maxW), 'f', 2, 64))}
		if opts.ShowWeights {
			attrs = append(attrs, fmt.Sprintf("label=%q", render.FormatValue(e.Weight, opts.Decimals)))
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func penWidth(w, maxW float64) float64 {
	if maxW <= 0 {
		return minPenWidth
	}
	return minPenWidth + (maxPenWidth-minPenWidth)*w/maxW
}

func fmtLabel(g *flow.Graph, n flow.Node, opts Options) string {
	if !opts.Detailed {
		return n.Name
	}

	parts := []string{
		fmt.Sprintf("level: %d", n.Level),
		fmt.Sprintf("in: %s", render.FormatValue(g.InSum(n.ID), opts.Decimals)),
		fmt.Sprintf("out: %s", render.FormatValue(g.OutSum(n.ID), opts.Decimals)),
	}
	return n.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n flow.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Color.A > 0 {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", render.Hex(n.Color)))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with a
// unitless one so the diagram scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
