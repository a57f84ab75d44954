package engine

import (
	"math"
	"testing"
)

func floatsEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12
}

func TestVectorFromRawDefaults(t *testing.T) {
	specs := DefaultInterventions()

	// No payload at all: every lever falls back to its default.
	vector := VectorFromRaw(specs, nil)
	if len(vector) != len(specs) {
		t.Fatalf("vector length = %d, expected %d", len(vector), len(specs))
	}

	for i, spec := range specs {
		expected := spec.DefaultRaw / 100
		if spec.Inverted() {
			expected = 1 - expected
		}
		if !floatsEqual(vector[i], expected) {
			t.Errorf("lever %q default intensity = %v, expected %v", spec.Name, vector[i], expected)
		}
	}
}

func TestVectorFromRawInversion(t *testing.T) {
	specs := DefaultInterventions()

	tests := []struct {
		name     string
		raw      float64
		expected float64
	}{
		{"Default loss of 60% means 40% effective", 60, 0.40},
		{"Zero loss is full effectiveness", 0, 1.0},
		{"Total loss is zero effectiveness", 100, 0.0},
		{"Quarter loss", 25, 0.75},
	}

	idx := -1
	for i, spec := range specs {
		if spec.Name == PostharvestLossLever {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatal("postharvest loss lever missing from default table")
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vector := VectorFromRaw(specs, map[string]float64{PostharvestLossLever: tt.raw})
			if !floatsEqual(vector[idx], tt.expected) {
				t.Errorf("effective intensity = %v, expected %v", vector[idx], tt.expected)
			}
		})
	}
}

func TestVectorFromRawClampsOutOfRange(t *testing.T) {
	specs := DefaultInterventions()

	raw := map[string]float64{
		"Land Consolidation": 180, // clamps to 100
		"Mechanization":      -40, // clamps to 0
	}
	vector := VectorFromRaw(specs, raw)

	for i, spec := range specs {
		switch spec.Name {
		case "Land Consolidation":
			if !floatsEqual(vector[i], 1.0) {
				t.Errorf("over-range raw value should clamp to 1.0, got %v", vector[i])
			}
		case "Mechanization":
			if !floatsEqual(vector[i], 0.0) {
				t.Errorf("negative raw value should clamp to 0.0, got %v", vector[i])
			}
		}
	}
}

func TestVectorFromRawIgnoresUnknownLevers(t *testing.T) {
	specs := DefaultInterventions()
	vector := VectorFromRaw(specs, map[string]float64{"Not A Real Lever": 90})
	if len(vector) != len(specs) {
		t.Fatalf("vector length = %d, expected %d", len(vector), len(specs))
	}
}

func TestReferenceVectors(t *testing.T) {
	specs := DefaultInterventions()

	zero := ZeroVector(specs)
	for i, v := range zero {
		if v != 0 {
			t.Errorf("zero vector index %d = %v, expected 0", i, v)
		}
	}

	baseline := BaselineReferenceVector(specs, 0.35)
	for i, spec := range specs {
		expected := 0.35
		if spec.Inverted() {
			expected = 1 - spec.DefaultRaw/100
		}
		if !floatsEqual(baseline[i], expected) {
			t.Errorf("baseline vector lever %q = %v, expected %v", spec.Name, baseline[i], expected)
		}
	}

	maximum := MaximumVector(specs)
	for i, spec := range specs {
		expected := 1.0
		if spec.Inverted() {
			expected = 0.0
		}
		if !floatsEqual(maximum[i], expected) {
			t.Errorf("maximum vector lever %q = %v, expected %v", spec.Name, maximum[i], expected)
		}
	}
}

func TestUniformVectorClampsIntensity(t *testing.T) {
	specs := DefaultInterventions()
	vector := UniformVector(specs, 1.8)
	for i, v := range vector {
		if v != 1.0 {
			t.Errorf("index %d = %v, expected clamp to 1.0", i, v)
		}
	}
}
