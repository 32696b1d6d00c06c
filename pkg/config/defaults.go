package config

import (
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "sankey.yml"

// DefaultAddr is the preview server listen address.
const DefaultAddr = "localhost:8750"

// DefaultConfig returns a Config that renders exactly like the library
// defaults.
func DefaultConfig() *Config {
	lo := layout.DefaultOptions()
	st := render.DefaultStyle()
	return &Config{
		Width:  pipeline.DefaultWidth,
		Height: pipeline.DefaultHeight,
		Layout: LayoutConfig{
			AutoItemWidth: lo.AutoItemWidth,
			ItemWidth:     lo.ItemWidth,
			AutoItemGap:   lo.AutoItemGap,
			ItemGap:       lo.ItemGap,
		},
		Style: StyleConfig{
			FillMode:          string(st.StreamFillMode),
			StreamColor:       render.Hex(st.StreamColor),
			ConnectionOpacity: st.ConnectionOpacity,
			UseItemColor:      st.UseItemColor,
			ItemColor:         render.Hex(st.ItemColor),
			TextColor:         render.Hex(st.TextColor),
			Decimals:          st.Decimals,
		},
		Output: OutputConfig{
			VizType: pipeline.DefaultVizType,
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			CORSOrigins: []string{"*"},
		},
	}
}
