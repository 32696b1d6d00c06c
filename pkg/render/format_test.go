package render

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{0, 0, "0"},
		{42, 0, "42"},
		{42.126, 2, "42.13"},
		{999, 0, "999"},
		{1000, 0, "1k"},
		{1234, 1, "1.2k"},
		{-1500, 1, "-1.5k"},
		{2500000, 1, "2.5M"},
		{3e9, 0, "3G"},
		{2e24, 0, "2Y"},
		{5, 10, "5.000000"},
		{5, -3, "5"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FormatValue(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}
