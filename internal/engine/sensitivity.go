package engine

import (
	"context"
	"fmt"
	"sort"
)

// SensitivityEntry reports the marginal effect of pushing one lever to
// full effective intensity while the rest of the vector stays at its
// baseline position.
type SensitivityEntry struct {
	Name              string  `json:"name"`
	BaselineIntensity float64 `json:"baselineIntensity"`
	Probability       float64 `json:"probability"`
	MarginalImpact    float64 `json:"marginalImpact"`
	Cost              float64 `json:"cost"`
	CostEffectiveness float64 `json:"costEffectiveness"`
}

// Sensitivity runs one projection per lever with that lever at full
// intensity and the baseline vector otherwise unchanged, and reports
// each lever's marginal probability impact and impact per cost unit.
// Entries come back sorted by marginal impact, largest first. Every
// projection shares the same seed so the comparison is shock-for-shock.
func (e *Engine) Sensitivity(ctx context.Context, params Parameters, baseline Vector, n int, seed int64) (float64, []SensitivityEntry, error) {
	base, err := e.Project(ctx, params, baseline, n, seed)
	if err != nil {
		return 0, nil, fmt.Errorf("baseline projection: %w", err)
	}

	entries := make([]SensitivityEntry, 0, len(e.specs))
	for i, spec := range e.specs {
		test := append(Vector(nil), baseline...)
		test[i] = 1.0

		result, err := e.Project(ctx, params, test, n, seed)
		if err != nil {
			return 0, nil, fmt.Errorf("lever %q: %w", spec.Name, err)
		}

		impact := result.Probability - base.Probability
		costEffectiveness := 0.0
		if spec.Cost > 0 {
			costEffectiveness = impact / spec.Cost
		}

		entries = append(entries, SensitivityEntry{
			Name:              spec.Name,
			BaselineIntensity: baseline[i],
			Probability:       result.Probability,
			MarginalImpact:    impact,
			Cost:              spec.Cost,
			CostEffectiveness: costEffectiveness,
		})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].MarginalImpact > entries[b].MarginalImpact
	})

	return base.Probability, entries, nil
}
