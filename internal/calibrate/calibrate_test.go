package calibrate

import (
	"context"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/uwimana/agritwin/internal/engine"
	"github.com/uwimana/agritwin/pkg/constants"
)

func TestBisectConvergesOnAnalyticObjective(t *testing.T) {
	// Identity objective: probability equals the candidate value.
	objective := func(value float64) (float64, error) { return value, nil }

	result, err := Bisect(nil, objective, 0.7, Bounds{Low: 0, High: 1}, Options{Tolerance: 0.001, MaxIterations: 50})
	if err != nil {
		t.Fatalf("Bisect failed: %v", err)
	}
	if !result.Converged {
		t.Error("expected convergence on a smooth monotone objective")
	}
	if math.Abs(result.Value-0.7) > 0.001 {
		t.Errorf("calibrated value = %v, expected ≈0.7", result.Value)
	}
	if math.Abs(result.Achieved-result.Target) > 0.001 {
		t.Errorf("achieved %v differs from target %v beyond tolerance", result.Achieved, result.Target)
	}
}

func TestBisectReportsBestEffortOnExhaustedBudget(t *testing.T) {
	// An unreachable target: the objective saturates at 0.2.
	objective := func(value float64) (float64, error) { return 0.2, nil }

	result, err := Bisect(nil, objective, 0.8, Bounds{Low: 0, High: 1}, Options{Tolerance: 0.01, MaxIterations: 5})
	if err != nil {
		t.Fatalf("non-convergence must not be an error, got: %v", err)
	}
	if result.Converged {
		t.Error("expected Converged to be false for an unreachable target")
	}
	if result.Iterations != 5 {
		t.Errorf("iterations = %d, expected the full budget of 5", result.Iterations)
	}
	if result.Achieved != 0.2 {
		t.Errorf("best achieved = %v, expected the saturated 0.2", result.Achieved)
	}
}

func TestBisectRejectsInvalidBounds(t *testing.T) {
	objective := func(value float64) (float64, error) { return value, nil }
	if _, err := Bisect(nil, objective, 0.5, Bounds{Low: 1, High: 0}, Options{}); err == nil {
		t.Error("expected an error for inverted bounds")
	}
	if _, err := Bisect(nil, objective, 0.5, Bounds{Low: 0.3, High: 0.3}, Options{}); err == nil {
		t.Error("expected an error for an empty interval")
	}
}

func TestEngineObjectiveIsMonotone(t *testing.T) {
	// The bisection assumes increasing the drift parameter increases
	// the success probability; assert that against the real engine.
	logger, _ := zap.NewDevelopment()
	eng := engine.New(logger, engine.DefaultInterventions())
	params := engine.DefaultParameters()
	vector := engine.ZeroVector(eng.Specs())

	objective := EngineObjective(context.Background(), eng, params,
		ParameterBaselineAutonomousGrowth, vector, 2000, constants.DefaultSeed)

	previous := -1.0
	for _, value := range []float64{0.0, 0.02, 0.035, 0.05, 0.08} {
		probability, err := objective(value)
		if err != nil {
			t.Fatalf("objective failed at %v: %v", value, err)
		}
		if probability < previous {
			t.Errorf("probability decreased from %v to %v at parameter %v", previous, probability, value)
		}
		previous = probability
	}
}

func TestCalibrationRoundTrip(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	eng := engine.New(logger, engine.DefaultInterventions())
	params := engine.DefaultParameters()
	vector := engine.ZeroVector(eng.Specs())

	opts := Options{Tolerance: 0.02, MaxIterations: 50}
	objective := EngineObjective(context.Background(), eng, params,
		ParameterBaselineAutonomousGrowth, vector, constants.DefaultCalibrationRuns, constants.DefaultSeed)

	result, err := Bisect(logger, objective, constants.BaselineReferenceProbability,
		Bounds{Low: 0, High: 0.08}, opts)
	if err != nil {
		t.Fatalf("Bisect failed: %v", err)
	}
	if !result.Converged {
		t.Fatalf("expected convergence, best achieved %v at %v after %d iterations",
			result.Achieved, result.Value, result.Iterations)
	}

	// Re-running the engine at the calibrated value must reproduce the
	// achieved probability: projections are deterministic per seed.
	calibrated, err := ParameterBaselineAutonomousGrowth.Apply(params, result.Value)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	verification, err := eng.Project(context.Background(), calibrated, vector,
		constants.DefaultCalibrationRuns, constants.DefaultSeed)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if verification.Probability != result.Achieved {
		t.Errorf("round-trip probability %v differs from achieved %v",
			verification.Probability, result.Achieved)
	}
	if math.Abs(verification.Probability-result.Target) > opts.Tolerance {
		t.Errorf("round-trip probability %v outside tolerance %v of target %v",
			verification.Probability, opts.Tolerance, result.Target)
	}
}

func TestJointCalibrationConverges(t *testing.T) {
	// Coupled analytic pair: the first probability depends only on the
	// first parameter, the second on both, mirroring how the autonomous
	// growth anchors the baseline reference while the alpha scale
	// mostly moves the maximum reference.
	first := func(a, b float64) (float64, error) { return 0.3 + 2*a, nil }
	second := func(a, b float64) (float64, error) { return a + b, nil }

	resultA, resultB, err := Joint(nil, first, second, 0.45, 0.80,
		Bounds{Low: 0, High: 0.2}, Bounds{Low: 0, High: 1},
		Options{Tolerance: 0.005, MaxIterations: 60})
	if err != nil {
		t.Fatalf("Joint failed: %v", err)
	}
	if !resultA.Converged || !resultB.Converged {
		t.Fatalf("expected joint convergence, got first=%+v second=%+v", resultA, resultB)
	}
	if math.Abs(resultA.Value-0.075) > 0.01 {
		t.Errorf("first parameter = %v, expected ≈0.075", resultA.Value)
	}
	if math.Abs(resultA.Achieved-0.45) > 0.005 || math.Abs(resultB.Achieved-0.80) > 0.005 {
		t.Errorf("achieved probabilities (%v, %v) outside tolerance", resultA.Achieved, resultB.Achieved)
	}
}

func TestJointCalibrationReportsNonConvergence(t *testing.T) {
	// Both targets unreachable inside the bounds.
	flat := func(a, b float64) (float64, error) { return 0.1, nil }

	resultA, resultB, err := Joint(nil, flat, flat, 0.9, 0.9,
		Bounds{Low: 0, High: 1}, Bounds{Low: 0, High: 1},
		Options{Tolerance: 0.01, MaxIterations: 8})
	if err != nil {
		t.Fatalf("non-convergence must not be an error, got: %v", err)
	}
	if resultA.Converged || resultB.Converged {
		t.Error("expected both Converged flags to be false")
	}
	if resultA.Iterations != 8 || resultB.Iterations != 8 {
		t.Errorf("expected the full iteration budget, got %d and %d", resultA.Iterations, resultB.Iterations)
	}
}

func TestParseParameter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Baseline growth", "baselineAutonomousGrowth", false},
		{"Alpha scale", "alphaScale", false},
		{"Unknown", "betaScale", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParameter(tt.input)
			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParameterApplyDoesNotMutateInput(t *testing.T) {
	params := engine.DefaultParameters()
	original := params

	updated, err := ParameterAlphaScale.Apply(params, 0.123)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if updated.AlphaScale != 0.123 {
		t.Errorf("applied value = %v, expected 0.123", updated.AlphaScale)
	}
	if params != original {
		t.Error("Apply mutated its input parameters")
	}
}
