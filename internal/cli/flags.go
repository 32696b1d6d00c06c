package cli

import (
	"image/color"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/sankey/pkg/config"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render"
)

// renderFlags are the layout and style flags shared by render, layout and
// serve. Only flags the user set override the config file.
type renderFlags struct {
	vizType       string
	width, height float64
	itemWidth     float64
	itemGap       float64
	fillMode      string
	streamColor   string
	itemColor     string
	textColor     string
	background    string
	opacity       float64
	decimals      int
	showValues    bool
	direction     bool
	noItemColor   bool
	title         string
	scale         float64
	embedFont     bool
	rsvg          bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	d := config.DefaultConfig()
	fs.StringVarP(&f.vizType, "type", "t", d.Output.VizType, "visualization type: sankey, nodelink")
	fs.Float64Var(&f.width, "width", d.Width, "canvas width")
	fs.Float64Var(&f.height, "height", d.Height, "canvas height")
	fs.Float64Var(&f.itemWidth, "item-width", d.Layout.ItemWidth, "fixed node width (2-50, disables auto width)")
	fs.Float64Var(&f.itemGap, "item-gap", d.Layout.ItemGap, "fixed vertical gap (0-100, disables auto gap)")
	fs.StringVar(&f.fillMode, "fill", d.Style.FillMode, "ribbon fill: color, gradient")
	fs.StringVar(&f.streamColor, "stream-color", d.Style.StreamColor, "ribbon color (hex)")
	fs.StringVar(&f.itemColor, "item-color", d.Style.ItemColor, "box color when node colors are off (hex)")
	fs.StringVar(&f.textColor, "text-color", d.Style.TextColor, "label color (hex)")
	fs.StringVar(&f.background, "background", "", "background color (hex, default transparent)")
	fs.Float64Var(&f.opacity, "opacity", d.Style.ConnectionOpacity, "gradient ribbon opacity (0.1-1)")
	fs.IntVar(&f.decimals, "decimals", d.Style.Decimals, "fraction digits of values (0-6)")
	fs.BoolVar(&f.showValues, "values", false, "append node values to labels")
	fs.BoolVar(&f.direction, "direction", false, "draw flow direction arrows")
	fs.BoolVar(&f.noItemColor, "no-node-colors", false, "paint all boxes with --item-color")
	fs.StringVar(&f.title, "title", "", "diagram title")
	fs.Float64Var(&f.scale, "scale", d.Output.Scale, "PNG scale factor")
	fs.BoolVar(&f.embedFont, "embed-font", false, "embed the label font in SVG output")
	fs.BoolVar(&f.rsvg, "rsvg", false, "rasterise PNG with rsvg-convert")
}

// options builds pipeline options from the config file, then applies the
// flags that were set on the command line.
func (f *renderFlags) options(cmd *cobra.Command, cfg *config.Config) (pipeline.Options, error) {
	var opts pipeline.Options
	if err := cfg.Apply(&opts); err != nil {
		return opts, err
	}
	changed := cmd.Flags().Changed

	if changed("type") {
		opts.VizType = f.vizType
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("item-width") {
		opts.Layout.AutoItemWidth = false
		opts.Layout.SetItemWidth(f.itemWidth)
	}
	if changed("item-gap") {
		opts.Layout.AutoItemGap = false
		opts.Layout.SetItemGap(f.itemGap)
	}
	if changed("fill") {
		mode, ok := render.ParseFillMode(f.fillMode)
		if !ok {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid fill: %q (must be color or gradient)", f.fillMode)
		}
		opts.Style.StreamFillMode = mode
	}
	for _, col := range []struct {
		flag string
		val  string
		set  func(color.RGBA)
	}{
		{"stream-color", f.streamColor, func(c color.RGBA) { opts.Style.StreamColor = c }},
		{"item-color", f.itemColor, func(c color.RGBA) { opts.Style.ItemColor = c }},
		{"text-color", f.textColor, func(c color.RGBA) { opts.Style.TextColor = c }},
		{"background", f.background, func(c color.RGBA) { opts.Style.Background, opts.Background = c, c }},
	} {
		if !changed(col.flag) {
			continue
		}
		c, err := render.ParseColor(col.val)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidColor, err, "--%s", col.flag)
		}
		col.set(c)
	}
	if changed("opacity") {
		opts.Style.SetConnectionOpacity(f.opacity)
	}
	if changed("decimals") {
		opts.Style.SetDecimals(f.decimals)
	}
	if changed("values") {
		opts.Style.ShowValues = f.showValues
	}
	if changed("direction") {
		opts.Style.ShowFlowDirection = f.direction
	}
	if changed("no-node-colors") {
		opts.Style.UseItemColor = !f.noItemColor
	}
	if changed("title") {
		opts.Title = f.title
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("embed-font") {
		opts.EmbedFont = f.embedFont
	}
	if changed("rsvg") {
		opts.RSVG = f.rsvg
	}
	return opts, nil
}
