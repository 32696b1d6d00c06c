package render

import (
	"image/color"
	"math"
	"testing"
)

func colorRGBA(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

func TestStyleClamps(t *testing.T) {
	tests := []struct {
		name        string
		decimals    int
		opacity     float64
		wantDec     int
		wantOpacity float64
	}{
		{"in range", 2, 0.5, 2, 0.5},
		{"decimals low", -1, 0.5, 0, 0.5},
		{"decimals high", 9, 0.5, 6, 0.5},
		{"opacity zero", 0, 0, 0, 0.1},
		{"opacity high", 0, 3, 0, 1},
		{"opacity nan", 0, math.NaN(), 0, DefaultConnectionOpacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Style
			s.SetDecimals(tt.decimals)
			s.SetConnectionOpacity(tt.opacity)
			if s.Decimals != tt.wantDec || s.ConnectionOpacity != tt.wantOpacity {
				t.Errorf("got %d/%v, want %d/%v", s.Decimals, s.ConnectionOpacity, tt.wantDec, tt.wantOpacity)
			}
		})
	}
}

func TestStyleNormalize(t *testing.T) {
	s := Style{StreamFillMode: "sparkles", Decimals: 12, ConnectionOpacity: 0}.Normalize()
	if s.StreamFillMode != FillColor || s.Decimals != 6 || s.ConnectionOpacity != 0.1 {
		t.Errorf("Normalize() = %+v", s)
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.StreamFillMode != FillColor || !s.UseItemColor || s.ShowFlowDirection {
		t.Errorf("DefaultStyle() = %+v", s)
	}
	if s.ConnectionOpacity != 0.55 || s.Decimals != 0 {
		t.Errorf("DefaultStyle() opacity/decimals = %v/%d", s.ConnectionOpacity, s.Decimals)
	}
}

func TestParseFillMode(t *testing.T) {
	for _, s := range []string{"color", "gradient"} {
		if _, ok := ParseFillMode(s); !ok {
			t.Errorf("ParseFillMode(%q) not ok", s)
		}
	}
	if _, ok := ParseFillMode("rainbow"); ok {
		t.Error("ParseFillMode(rainbow) ok")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"00ff00", color.RGBA{0, 255, 0, 255}, false},
		{"#fff", color.RGBA{255, 255, 255, 255}, false},
		{"#a4a4a48c", color.RGBA{164, 164, 164, 140}, false},
		{"", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
		{"#a4a4a4zz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{255, 0, 0, 255}); got != "#ff0000" {
		t.Errorf("Hex() = %q", got)
	}
	if got := Hex(DefaultStreamColor); got != "#a4a4a48c" {
		t.Errorf("Hex() = %q", got)
	}
	c, err := ParseColor(Hex(DefaultStreamColor))
	if err != nil || c != DefaultStreamColor {
		t.Errorf("round trip = %v, %v", c, err)
	}
}

func TestWithOpacity(t *testing.T) {
	if got := WithOpacity(colorRGBA(1, 2, 3), 0.5); got.A != 128 {
		t.Errorf("alpha = %d, want 128", got.A)
	}
	if got := WithOpacity(colorRGBA(1, 2, 3), 2); got.A != 255 {
		t.Errorf("alpha = %d, want 255", got.A)
	}
}
