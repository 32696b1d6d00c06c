package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/render"
	"github.com/matzehuels/sankey/pkg/render/nodelink"
	"github.com/matzehuels/sankey/pkg/render/sink"
)

// RenderFromLayout generates output artifacts in the requested formats.
//
// The layout is drawn once; every format then replays the same command
// list concurrently. The first failing format cancels the others.
func RenderFromLayout(ctx context.Context, l layout.Layout, g *flow.Graph, opts Options) (map[string][]byte, error) {
	cmds := render.Draw(l, opts.Style)

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	eg, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		eg.Go(func() error {
			var data []byte
			var err error
			if opts.IsNodelink() || format == FormatDOT {
				data, err = renderNodelink(ctx, g, format, opts)
			} else {
				data, err = renderSankey(ctx, l, cmds, format, opts)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// renderSankey writes one format of the Sankey diagram.
func renderSankey(ctx context.Context, l layout.Layout, cmds []render.Command, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(cmds, l.Width, l.Height, svgOpts...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithPNGBackground(opts.Background)}
		if opts.RSVG {
			pngOpts = append(pngOpts, sink.WithRSVG(svgOpts...))
		}
		return sink.RenderPNG(ctx, cmds, l.Width, l.Height, pngOpts...)
	case FormatPDF:
		return sink.RenderPDF(ctx, cmds, l.Width, l.Height, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(l, cmds, sink.WithJSONTitle(opts.Title), sink.WithJSONStyle(opts.Style))
	default:
		return nil, fmt.Errorf("unsupported sankey format: %s", format)
	}
}

// renderNodelink writes one format of the node-link view. JSON output is
// the Sankey layout export, since Graphviz positions are not stable
// across versions.
func renderNodelink(ctx context.Context, g *flow.Graph, format string, opts Options) ([]byte, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{ShowWeights: opts.Style.ShowValues, Decimals: opts.Style.Decimals})

	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case FormatJSON:
		l := ComputeLayout(g, opts)
		return sink.RenderJSON(l, render.Draw(l, opts.Style), sink.WithJSONTitle(opts.Title))
	default:
		return nil, fmt.Errorf("unsupported nodelink format: %s", format)
	}
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Title != "" {
		out = append(out, sink.WithTitle(opts.Title))
	}
	if opts.Background.A > 0 {
		out = append(out, sink.WithBackground(opts.Background))
	}
	if opts.EmbedFont {
		out = append(out, sink.WithEmbeddedFont())
	}
	return out
}
