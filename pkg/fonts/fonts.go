// Package fonts provides the label font used by the raster and vector
// sinks.
//
// The Go Regular typeface ships with golang.org/x/image, so the binary
// needs no font files at runtime and PNG output matches across machines.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name under which the font is embedded
// into SVG output.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font stack used for SVG labels.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns the TTF font data as a base64 string, suitable
// for an @font-face data URL. The result is cached after first computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

var (
	parsed    *opentype.Font
	parseErr  error
	parseOnce sync.Once
)

// Face returns a new font face of the given size in points at 72 DPI.
// The parsed font is shared; faces are not safe for concurrent use, so each
// drawing context gets its own.
func Face(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
