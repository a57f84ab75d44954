// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/uwimana/agritwin/pkg/constants"
)

// Clamp restricts value to the closed interval [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampRawIntensity restricts a raw lever percentage to [0, 100].
func ClampRawIntensity(value float64) float64 {
	return Clamp(value, constants.MinRawIntensity, constants.MaxRawIntensity)
}

// Normalize converts a raw percentage (0-100) to an intensity in [0,1].
func Normalize(raw float64) float64 {
	return ClampRawIntensity(raw) / constants.PercentageMultiplier
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
