package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/sankey/pkg/errors"
)

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" into a color. The
// leading '#' is optional.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid alpha in %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Hex formats a color as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.RGBA) string {
	h := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A != 0xff {
		h += fmt.Sprintf("%02x", c.A)
	}
	return h
}

// WithOpacity returns c with its alpha replaced by opacity in [0, 1].
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	c.A = uint8(Clamp01(opacity)*255 + 0.5)
	return c
}

// Opacity returns the alpha of c in [0, 1].
func Opacity(c color.RGBA) float64 { return float64(c.A) / 255 }

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 { return max(0, min(1, v)) }
