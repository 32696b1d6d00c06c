// Package render turns a computed layout into drawing commands.
//
// # Overview
//
// [Draw] walks a [layout.Layout] level by level and emits a flat list of
// [Command] values: ribbons as closed bezier outlines ([FillPath]), node
// boxes ([FillRect]) and labels ([FillText]). Commands carry absolute
// canvas coordinates and resolved paints, so a sink only has to replay
// them. The [sink] subpackage does this for SVG, PNG, PDF and JSON.
//
//	l := layout.Compute(g, 1200, 800, layout.DefaultOptions())
//	cmds := render.Draw(l, render.DefaultStyle())
//	svg := sink.RenderSVG(cmds, l.Width, l.Height)
//
// # Ribbons
//
// Each flow becomes a band whose thickness is its weight times the layout
// scale. Bands leave the source box from its top edge downward in sorted
// outgoing order and enter the target below the flows that precede the
// source in the target's sorted incoming order, so bands never overlap at
// either end. With [Style.ShowFlowDirection] the target end is notched
// into an arrow.
//
// # Paint
//
// Ribbons use [Style.StreamColor], or in [FillGradient] mode a horizontal
// gradient between the two node colors at [Style.ConnectionOpacity].
// Boxes use the node color unless [Style.UseItemColor] is off.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output using the external rsvg-convert
// tool (from librsvg).
package render
