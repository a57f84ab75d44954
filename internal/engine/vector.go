package engine

import (
	"github.com/uwimana/agritwin/pkg/mathutil"
)

// Vector is an ordered sequence of effective lever intensities in
// [0,1], one per InterventionSpec in declaration order. Inversion has
// already been applied: index i always means "how engaged lever i is".
type Vector []float64

// VectorFromRaw converts caller-supplied raw percentages (keyed by
// lever display name, 0-100) into a Vector. Omitted levers fall back
// to the spec's default raw value, out-of-range values are clamped
// before normalizing, and inverted levers map a higher raw value to a
// lower effective intensity.
func VectorFromRaw(specs []InterventionSpec, raw map[string]float64) Vector {
	vector := make(Vector, len(specs))
	for i, spec := range specs {
		value, ok := raw[spec.Name]
		if !ok {
			value = spec.DefaultRaw
		}
		intensity := mathutil.Normalize(value)
		if spec.Inverted() {
			intensity = 1 - intensity
		}
		vector[i] = intensity
	}
	return vector
}

// ZeroVector returns the zero-intervention reference: every lever
// fully disengaged.
func ZeroVector(specs []InterventionSpec) Vector {
	return make(Vector, len(specs))
}

// UniformVector returns a vector with every lever at the given
// effective intensity. The intensity is clamped to [0,1].
func UniformVector(specs []InterventionSpec, intensity float64) Vector {
	intensity = mathutil.Clamp(intensity, 0, 1)
	vector := make(Vector, len(specs))
	for i := range vector {
		vector[i] = intensity
	}
	return vector
}

// BaselineReferenceVector returns the historical "baseline" reference
// mix: every direct lever at the given intensity and inverted levers at
// their default effective intensity (raw 60 means 40% effective for
// postharvest loss).
func BaselineReferenceVector(specs []InterventionSpec, intensity float64) Vector {
	vector := UniformVector(specs, intensity)
	for i, spec := range specs {
		if spec.Inverted() {
			vector[i] = 1 - mathutil.Normalize(spec.DefaultRaw)
		}
	}
	return vector
}

// MaximumVector returns the "full implementation" reference mix: every
// direct lever at 1.0 and inverted levers at 0.0, matching the
// convention used by the historical calibration runs.
func MaximumVector(specs []InterventionSpec) Vector {
	vector := UniformVector(specs, 1)
	for i, spec := range specs {
		if spec.Inverted() {
			vector[i] = 0
		}
	}
	return vector
}
