package engine

import "fmt"

// Polarity describes how a raw lever value maps to effective intensity.
type Polarity string

const (
	// PolarityDirect means a higher raw value is more effective.
	PolarityDirect Polarity = "direct"

	// PolarityInverted means a higher raw value is less effective; the
	// only inverted lever is postharvest loss, where a lower loss
	// percentage is the desirable outcome.
	PolarityInverted Polarity = "inverted"
)

// InterventionSpec describes one fixed policy lever. The table is
// loaded once at startup and is read-only afterwards.
type InterventionSpec struct {
	// Name is the unique identifier and display label.
	Name string `json:"name"`

	// Alpha is the lever's contribution weight to drift.
	Alpha float64 `json:"alpha"`

	// Beta is the lever's contribution weight to volatility reduction.
	Beta float64 `json:"beta"`

	// Cost is an abstract budget unit.
	Cost float64 `json:"cost"`

	// Polarity is direct or inverted.
	Polarity Polarity `json:"polarity"`

	// DefaultRaw is the raw percentage assumed when a request omits
	// this lever.
	DefaultRaw float64 `json:"defaultRaw"`
}

// Inverted reports whether the lever's raw value must be inverted
// before use.
func (s InterventionSpec) Inverted() bool {
	return s.Polarity == PolarityInverted
}

// PostharvestLossLever is the single inverted lever. Its default raw
// value of 60 (40% effective) is a domain convention settled through
// iterative calibration; preserve it rather than re-deriving it.
const PostharvestLossLever = "Postharvest Loss (%)"

// DefaultInterventions returns the fixed table of 20 policy levers.
// Alpha, beta, and cost weights were hand-tuned against Vision 2050
// policy-analyst expectations and then held constant; only the global
// alphaScale/betaScale multipliers are calibrated.
func DefaultInterventions() []InterventionSpec {
	return []InterventionSpec{
		{Name: "Land Consolidation", Alpha: 0.011, Beta: 0.006, Cost: 5, Polarity: PolarityDirect, DefaultRaw: 80},
		{Name: "Land Use Productivity", Alpha: 0.013, Beta: 0.005, Cost: 4, Polarity: PolarityDirect, DefaultRaw: 85},
		{Name: "Irrigation & Water Use Efficiency", Alpha: 0.016, Beta: 0.007, Cost: 6, Polarity: PolarityDirect, DefaultRaw: 88},
		{Name: "Climate Adaptation Index", Alpha: 0.012, Beta: 0.012, Cost: 3, Polarity: PolarityDirect, DefaultRaw: 75},
		{Name: "Staple Crop Productivity", Alpha: 0.015, Beta: 0.005, Cost: 4, Polarity: PolarityDirect, DefaultRaw: 82},
		{Name: "Cash Crop Productivity", Alpha: 0.015, Beta: 0.005, Cost: 5, Polarity: PolarityDirect, DefaultRaw: 80},
		{Name: "Livestock Productivity (Breed Improvement & Feeding Systems)", Alpha: 0.015, Beta: 0.007, Cost: 5, Polarity: PolarityDirect, DefaultRaw: 83},
		{Name: "Inputs Efficiency (fertilizer, seeds)", Alpha: 0.012, Beta: 0.006, Cost: 4, Polarity: PolarityDirect, DefaultRaw: 80},
		{Name: "Soil Health Indicators", Alpha: 0.013, Beta: 0.005, Cost: 3, Polarity: PolarityDirect, DefaultRaw: 82},
		{Name: "Mechanization", Alpha: 0.015, Beta: 0.006, Cost: 6, Polarity: PolarityDirect, DefaultRaw: 78},
		{Name: "Digital Agriculture Adoption", Alpha: 0.014, Beta: 0.007, Cost: 3, Polarity: PolarityDirect, DefaultRaw: 85},
		{Name: "R&D + Extension (AI-augmented advisory)", Alpha: 0.014, Beta: 0.007, Cost: 4, Polarity: PolarityDirect, DefaultRaw: 88},
		{Name: "Digital Twin simulations for plots & cooperatives", Alpha: 0.010, Beta: 0.009, Cost: 2, Polarity: PolarityDirect, DefaultRaw: 85},
		{Name: PostharvestLossLever, Alpha: 0.013, Beta: 0.011, Cost: 3, Polarity: PolarityInverted, DefaultRaw: 60},
		{Name: "Storage/Processing Value Addition", Alpha: 0.014, Beta: 0.005, Cost: 4, Polarity: PolarityDirect, DefaultRaw: 80},
		{Name: "Access to Finance", Alpha: 0.011, Beta: 0.005, Cost: 3, Polarity: PolarityDirect, DefaultRaw: 82},
		{Name: "Insurance Penetration", Alpha: 0.011, Beta: 0.011, Cost: 3, Polarity: PolarityDirect, DefaultRaw: 72},
		{Name: "Domestic Market Integration", Alpha: 0.014, Beta: 0.007, Cost: 4, Polarity: PolarityDirect, DefaultRaw: 85},
		{Name: "Export Competitiveness", Alpha: 0.016, Beta: 0.005, Cost: 5, Polarity: PolarityDirect, DefaultRaw: 82},
		{Name: "Supply–Demand Stability Score (AI forecast model)", Alpha: 0.015, Beta: 0.013, Cost: 3, Polarity: PolarityDirect, DefaultRaw: 87},
	}
}

// ValidateInterventions checks a lever table as loaded from
// configuration. A malformed table is fatal at startup.
func ValidateInterventions(specs []InterventionSpec, expectedCount int) error {
	if len(specs) != expectedCount {
		return fmt.Errorf("intervention table has %d levers, expected %d", len(specs), expectedCount)
	}

	seen := make(map[string]struct{}, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("intervention %d has an empty name", i)
		}
		if _, dup := seen[spec.Name]; dup {
			return fmt.Errorf("duplicate intervention name %q", spec.Name)
		}
		seen[spec.Name] = struct{}{}

		if spec.Alpha <= 0 {
			return fmt.Errorf("intervention %q must have a positive alpha weight", spec.Name)
		}
		if spec.Beta <= 0 {
			return fmt.Errorf("intervention %q must have a positive beta weight", spec.Name)
		}
		if spec.Cost <= 0 {
			return fmt.Errorf("intervention %q must have a positive cost", spec.Name)
		}
		if spec.Polarity != PolarityDirect && spec.Polarity != PolarityInverted {
			return fmt.Errorf("intervention %q has unknown polarity %q", spec.Name, spec.Polarity)
		}
		if spec.DefaultRaw < 0 || spec.DefaultRaw > 100 {
			return fmt.Errorf("intervention %q default value %.2f is outside [0, 100]", spec.Name, spec.DefaultRaw)
		}
	}

	return nil
}
