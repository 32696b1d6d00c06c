// Package sink turns drawing commands into output files.
//
// # Overview
//
// A "sink" replays the [render.Command] list produced by [render.Draw]
// onto a concrete canvas. This package provides:
//
//   - SVG: vector output built with svgo
//   - PNG: raster output drawn with gg (or rsvg-convert, see [WithRSVG])
//   - PDF: print output via rsvg-convert
//   - JSON: layout and ribbon geometry for external tools
//
// Every sink draws the commands in list order, so ribbons paint beneath
// the boxes of the level they leave from and above earlier levels.
//
// # SVG Output
//
// [RenderSVG] never fails. Ribbons carry class="ribbon" with data-from and
// data-to attributes, boxes carry class="node" with data-node, so a
// browser can highlight flows without re-running the layout:
//
//	cmds := render.Draw(l, render.DefaultStyle())
//	svg := sink.RenderSVG(cmds, l.Width, l.Height, sink.WithTitle("Energy"))
//
// Gradient ribbons become one <linearGradient> per ribbon, spanning the
// horizontal gap between the two boxes.
//
// # PNG Output
//
// [RenderPNG] rasterises in-process at twice the canvas size by default.
// Labels use the embedded Go font from [fonts], so images match across
// machines. Pass [WithRSVG] to rasterise the SVG with librsvg instead.
//
// # PDF Output
//
// [RenderPDF] requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # JSON Output
//
// [RenderJSON] exports node boxes, label anchors, ribbons as SVG path data,
// and layout diagnostics.
//
// [render.Command]: github.com/matzehuels/sankey/pkg/render.Command
// [render.Draw]: github.com/matzehuels/sankey/pkg/render.Draw
// [fonts]: github.com/matzehuels/sankey/pkg/fonts
package sink
