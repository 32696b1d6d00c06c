package render

import (
	"image/color"
	"math"

	"github.com/matzehuels/sankey/pkg/layout"
)

// FillMode selects how ribbons are painted.
type FillMode string

const (
	// FillColor paints every ribbon with Style.StreamColor.
	FillColor FillMode = "color"
	// FillGradient paints each ribbon with a horizontal gradient from the
	// source node color to the target node color.
	FillGradient FillMode = "gradient"
)

// Bounds for clamped style values.
const (
	MinDecimals = 0
	MaxDecimals = 6

	MinConnectionOpacity = 0.1
	MaxConnectionOpacity = 1.0
)

var (
	// DefaultStreamColor is the flat ribbon color, a translucent gray.
	DefaultStreamColor = color.RGBA{R: 164, G: 164, B: 164, A: 140}
	// DefaultItemColor is used for node boxes when item colors are off.
	DefaultItemColor = color.RGBA{R: 164, G: 164, B: 164, A: 255}
	// DefaultTextColor is used for labels.
	DefaultTextColor = color.RGBA{A: 255}
)

// DefaultConnectionOpacity is the alpha of gradient ribbons.
const DefaultConnectionOpacity = 0.55

// Style controls colors and decorations of a rendered diagram. Values
// outside their range are clamped by the setters and by [Style.Normalize].
type Style struct {
	StreamFillMode    FillMode   `json:"stream_fill_mode" yaml:"stream_fill_mode"`
	StreamColor       color.RGBA `json:"stream_color" yaml:"-"`
	ConnectionOpacity float64    `json:"connection_opacity" yaml:"connection_opacity"`
	ShowFlowDirection bool       `json:"show_flow_direction" yaml:"show_flow_direction"`
	UseItemColor      bool       `json:"use_item_color" yaml:"use_item_color"`
	ItemColor         color.RGBA `json:"item_color" yaml:"-"`
	TextColor         color.RGBA `json:"text_color" yaml:"-"`
	ShowValues        bool       `json:"show_values" yaml:"show_values"`
	Decimals          int        `json:"decimals" yaml:"decimals"`
	Background        color.RGBA `json:"background" yaml:"-"` // zero means transparent
}

// DefaultStyle returns flat gray ribbons, per-node box colors and black
// labels.
func DefaultStyle() Style {
	return Style{
		StreamFillMode:    FillColor,
		StreamColor:       DefaultStreamColor,
		ConnectionOpacity: DefaultConnectionOpacity,
		UseItemColor:      true,
		ItemColor:         DefaultItemColor,
		TextColor:         DefaultTextColor,
	}
}

// SetDecimals sets the fraction digits of value labels, clamped to [0, 6].
func (s *Style) SetDecimals(n int) { s.Decimals = layout.Clamp(n, MinDecimals, MaxDecimals) }

// SetConnectionOpacity sets the gradient ribbon alpha, clamped to [0.1, 1].
func (s *Style) SetConnectionOpacity(v float64) {
	if math.IsNaN(v) {
		v = DefaultConnectionOpacity
	}
	s.ConnectionOpacity = layout.Clamp(v, MinConnectionOpacity, MaxConnectionOpacity)
}

// Normalize returns a copy with every clamped field inside its range and
// an unknown fill mode replaced by FillColor.
func (s Style) Normalize() Style {
	s.SetDecimals(s.Decimals)
	s.SetConnectionOpacity(s.ConnectionOpacity)
	if s.StreamFillMode != FillGradient {
		s.StreamFillMode = FillColor
	}
	return s
}

// ParseFillMode converts a string into a FillMode.
func ParseFillMode(s string) (FillMode, bool) {
	switch FillMode(s) {
	case FillColor, FillGradient:
		return FillMode(s), true
	}
	return "", false
}
