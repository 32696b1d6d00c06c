package render

import (
	"math"
	"strconv"
)

// unitPrefixes are the suffixes for successive powers of 1000.
var unitPrefixes = []string{"k", "M", "G", "T", "P", "E", "Z", "Y"}

// FormatValue formats v with the given number of fraction digits and
// abbreviates large magnitudes with a unit suffix: 1234 becomes "1k",
// 2500000 with one decimal becomes "2.5M".
func FormatValue(v float64, decimals int) string {
	decimals = max(MinDecimals, min(MaxDecimals, decimals))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	suffix := ""
	abs := math.Abs(v)
	for i := len(unitPrefixes) - 1; i >= 0; i-- {
		if unit := math.Pow(1000, float64(i+1)); abs >= unit {
			v /= unit
			suffix = unitPrefixes[i]
			break
		}
	}
	return strconv.FormatFloat(v, 'f', decimals, 64) + suffix
}
