package utils

import "math"

// RoundDecimal rounds value half away from zero to the given number of decimal places.
// For example, RoundDecimal(3.14159, 2) returns 3.14.
func RoundDecimal(value float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(value*pow) / pow
}

// Milliseconds converts a nanosecond count to fractional milliseconds.
func Milliseconds(nanos int64) float64 {
	return float64(nanos) / 1e6
}
