package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders f in shortest form, keeping a ".0" suffix on whole
// numbers so 9400 prints as "9400.0".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// RoundTo rounds f to the given number of decimal places. Exact halves
// round to even, so 0.125 becomes 0.12.
func RoundTo(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(f*p) / p
}
