// Package output provides utilities for formatting and displaying
// projection and calibration results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/uwimana/agritwin/internal/calibrate"
	"github.com/uwimana/agritwin/internal/engine"
)

// PrettyFormat outputs a human-readable rather than machine-readable
// summary of one projection.
func PrettyFormat(params engine.Parameters, result engine.Result) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Projection %d → %d (%d paths) ---\n", params.BaseYear, params.TargetYear, result.Runs)
	_, _ = p.Printf("Probability of reaching $%.0f: %.1f%%\n", params.TargetIndicatorValue, result.Probability*100)
	_, _ = p.Printf("Drift: %.4f | Volatility: %.4f\n", result.Drift, result.Volatility)
	_, _ = p.Printf("Mean:   $%.0f\n", result.Mean)
	_, _ = p.Printf("Median: $%.0f\n", result.Median)
	_, _ = p.Printf("StdDev: $%.0f\n", result.StdDev)
	_, _ = p.Printf("P5: $%.0f | P25: $%.0f | P50: $%.0f | P75: $%.0f | P95: $%.0f\n",
		result.Quantiles.P5, result.Quantiles.P25, result.Quantiles.P50,
		result.Quantiles.P75, result.Quantiles.P95)
}

// CsvFormat outputs the projection summary in comma-separated value
// format, one statistic per row.
func CsvFormat(params engine.Parameters, result engine.Result) {
	fmt.Printf("\"statistic\",\"value\"\n")
	fmt.Printf("\"probability\",\"%.4f\"\n", result.Probability)
	fmt.Printf("\"drift\",\"%.6f\"\n", result.Drift)
	fmt.Printf("\"volatility\",\"%.6f\"\n", result.Volatility)
	fmt.Printf("\"mean\",\"%.2f\"\n", result.Mean)
	fmt.Printf("\"median\",\"%.2f\"\n", result.Median)
	fmt.Printf("\"stddev\",\"%.2f\"\n", result.StdDev)
	fmt.Printf("\"p5\",\"%.2f\"\n", result.Quantiles.P5)
	fmt.Printf("\"p25\",\"%.2f\"\n", result.Quantiles.P25)
	fmt.Printf("\"p50\",\"%.2f\"\n", result.Quantiles.P50)
	fmt.Printf("\"p75\",\"%.2f\"\n", result.Quantiles.P75)
	fmt.Printf("\"p95\",\"%.2f\"\n", result.Quantiles.P95)
	fmt.Printf("\"runs\",\"%d\"\n", result.Runs)
	fmt.Printf("\"target\",\"%.2f\"\n", params.TargetIndicatorValue)
}

// CalibrationFormat prints one calibration outcome for a human to read
// and hard-code into the serving configuration.
func CalibrationFormat(parameter calibrate.Parameter, result calibrate.Result) {
	status := "converged"
	if !result.Converged {
		status = "iteration budget exhausted (best effort)"
	}
	fmt.Printf("--- Calibration of %s: %s ---\n", parameter, status)
	fmt.Printf("Recommended value:    %.5f\n", result.Value)
	fmt.Printf("Achieved probability: %.2f%% (target %.2f%%)\n", result.Achieved*100, result.Target*100)
	fmt.Printf("Iterations:           %d\n", result.Iterations)
}
