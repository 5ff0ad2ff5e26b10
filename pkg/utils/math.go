// Package utils provides shared utilities for math and logging.
package utils

import "math"

// Round rounds x half away from zero to the given number of decimal places.
// NaN and infinities are returned unchanged; places <= 0 rounds to an integer.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if places <= 0 {
		return math.Round(x)
	}
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
