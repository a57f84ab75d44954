package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Quantiles holds the five percentile cut-points of the terminal
// distribution.
type Quantiles struct {
	P5  float64 `json:"p5"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`
}

// Result is one projection's statistical summary. It is ephemeral:
// recomputed per call and never persisted.
type Result struct {
	// Probability is the fraction of paths whose terminal value is at
	// or above the target indicator value.
	Probability float64 `json:"probability"`

	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`

	Quantiles Quantiles `json:"quantiles"`

	// Distribution is the full terminal-value set in path order.
	Distribution []float64 `json:"distribution"`

	// Drift and Volatility echo the rates the batch was simulated
	// with, for introspection and chart annotation.
	Drift      float64 `json:"drift"`
	Volatility float64 `json:"volatility"`

	// Runs is the number of simulated paths.
	Runs int `json:"runs"`
}

func summarize(params Parameters, drift, volatility float64, terminals []float64) Result {
	sorted := append([]float64(nil), terminals...)
	sort.Float64s(sorted)

	// First index at or above the target; everything after it counts
	// as a success.
	idx := sort.SearchFloat64s(sorted, params.TargetIndicatorValue)
	probability := float64(len(sorted)-idx) / float64(len(sorted))

	return Result{
		Probability: probability,
		Mean:        stat.Mean(sorted, nil),
		Median:      stat.Quantile(0.50, stat.Empirical, sorted, nil),
		StdDev:      stat.StdDev(sorted, nil),
		Quantiles: Quantiles{
			P5:  stat.Quantile(0.05, stat.Empirical, sorted, nil),
			P25: stat.Quantile(0.25, stat.Empirical, sorted, nil),
			P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
			P75: stat.Quantile(0.75, stat.Empirical, sorted, nil),
			P95: stat.Quantile(0.95, stat.Empirical, sorted, nil),
		},
		Distribution: terminals,
		Drift:        drift,
		Volatility:   volatility,
		Runs:         len(terminals),
	}
}
