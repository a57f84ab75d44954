package calibrate

import (
	"context"
	"fmt"

	"github.com/uwimana/agritwin/internal/engine"
)

// Parameter names a calibratable structural constant.
type Parameter string

const (
	// ParameterBaselineAutonomousGrowth calibrates the drift present at
	// zero intervention.
	ParameterBaselineAutonomousGrowth Parameter = "baselineAutonomousGrowth"

	// ParameterAlphaScale calibrates the global multiplier on every
	// lever's drift contribution.
	ParameterAlphaScale Parameter = "alphaScale"
)

// ParseParameter maps a CLI string onto a calibratable parameter.
func ParseParameter(name string) (Parameter, error) {
	switch Parameter(name) {
	case ParameterBaselineAutonomousGrowth, ParameterAlphaScale:
		return Parameter(name), nil
	default:
		return "", fmt.Errorf("unknown calibration parameter %q", name)
	}
}

// Apply returns a copy of params with this parameter set to value.
// Parameters are immutable values; calibration never mutates the
// serving configuration in place.
func (p Parameter) Apply(params engine.Parameters, value float64) (engine.Parameters, error) {
	switch p {
	case ParameterBaselineAutonomousGrowth:
		params.BaselineAutonomousGrowth = value
	case ParameterAlphaScale:
		params.AlphaScale = value
	default:
		return params, fmt.Errorf("unknown calibration parameter %q", p)
	}
	return params, nil
}

// EngineObjective binds one parameter of the projection engine to a
// reference vector, producing the probability curve the bisection
// searches over.
func EngineObjective(ctx context.Context, eng *engine.Engine, params engine.Parameters,
	parameter Parameter, vector engine.Vector, runs int, seed int64) Objective {
	return func(value float64) (float64, error) {
		candidate, err := parameter.Apply(params, value)
		if err != nil {
			return 0, err
		}
		result, err := eng.Project(ctx, candidate, vector, runs, seed)
		if err != nil {
			return 0, err
		}
		return result.Probability, nil
	}
}

// JointEngineObjective binds a (first, second) parameter pair to a
// reference vector for the alternating two-parameter search.
func JointEngineObjective(ctx context.Context, eng *engine.Engine, params engine.Parameters,
	firstParam, secondParam Parameter, vector engine.Vector, runs int, seed int64) JointObjective {
	return func(first, second float64) (float64, error) {
		candidate, err := firstParam.Apply(params, first)
		if err != nil {
			return 0, err
		}
		candidate, err = secondParam.Apply(candidate, second)
		if err != nil {
			return 0, err
		}
		result, err := eng.Project(ctx, candidate, vector, runs, seed)
		if err != nil {
			return 0, err
		}
		return result.Probability, nil
	}
}
