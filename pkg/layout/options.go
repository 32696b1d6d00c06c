package layout

import (
	"cmp"
	"math"
)

// Defaults and bounds for [Options].
const (
	DefaultItemWidth = 20.0
	DefaultItemGap   = 20.0

	MinItemWidth = 2.0
	MaxItemWidth = 50.0
	MinItemGap   = 0.0
	MaxItemGap   = 100.0
)

// Ratios of the shorter canvas side used when sizes are automatic.
const (
	autoItemRatio = 0.025
	textGapRatio  = 0.0125
	fontRatio     = 0.025

	MinFontSize = 8.0
	MaxFontSize = 24.0
)

// Options controls node sizing. Explicit sizes are only used when the
// corresponding Auto flag is false; otherwise both scale with the canvas.
type Options struct {
	AutoItemWidth bool    `json:"auto_item_width" yaml:"auto_item_width"`
	ItemWidth     float64 `json:"item_width" yaml:"item_width"`
	AutoItemGap   bool    `json:"auto_item_gap" yaml:"auto_item_gap"`
	ItemGap       float64 `json:"item_gap" yaml:"item_gap"`
}

// DefaultOptions returns automatic width and gap with the fixed fallbacks
// set to their defaults.
func DefaultOptions() Options {
	return Options{
		AutoItemWidth: true,
		ItemWidth:     DefaultItemWidth,
		AutoItemGap:   true,
		ItemGap:       DefaultItemGap,
	}
}

// SetItemWidth sets a fixed node width, clamped to [MinItemWidth, MaxItemWidth].
func (o *Options) SetItemWidth(w float64) {
	o.ItemWidth = clampOr(w, MinItemWidth, MaxItemWidth, DefaultItemWidth)
}

// SetItemGap sets a fixed vertical gap, clamped to [MinItemGap, MaxItemGap].
func (o *Options) SetItemGap(g float64) {
	o.ItemGap = clampOr(g, MinItemGap, MaxItemGap, DefaultItemGap)
}

// Normalize returns a copy with out-of-range fixed sizes clamped. Options
// built as struct literals go through Normalize before a layout pass.
func (o Options) Normalize() Options {
	o.SetItemWidth(o.ItemWidth)
	o.SetItemGap(o.ItemGap)
	return o
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// clampOr clamps v, replacing NaN with def.
func clampOr(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return Clamp(v, lo, hi)
}

// sizes holds the canvas-derived measures of one layout pass.
type sizes struct {
	itemWidth float64
	gap       float64
	textGap   float64
	fontSize  float64
}

func (o Options) resolve(width, height float64) sizes {
	o = o.Normalize()
	size := min(width, height)
	s := sizes{
		itemWidth: o.ItemWidth,
		gap:       o.ItemGap,
		textGap:   size * textGapRatio,
		fontSize:  Clamp(size*fontRatio, MinFontSize, MaxFontSize),
	}
	if o.AutoItemWidth {
		s.itemWidth = size * autoItemRatio
	}
	if o.AutoItemGap {
		s.gap = size * autoItemRatio
	}
	return s
}
