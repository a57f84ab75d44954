// Package calibrate searches structural-parameter space so that the
// projection engine's output probability at fixed reference
// intervention vectors matches externally chosen target probabilities.
// Calibration is an offline, human-in-the-loop workflow: results are
// printed for an analyst to copy into the serving configuration, and
// non-convergence within the iteration budget is reported, never
// raised.
package calibrate

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/uwimana/agritwin/pkg/constants"
)

// Objective evaluates a candidate parameter value and returns the
// resulting success probability.
type Objective func(value float64) (float64, error)

// JointObjective evaluates a candidate pair of parameter values.
type JointObjective func(first, second float64) (float64, error)

// Bounds is a closed search interval for one parameter.
type Bounds struct {
	Low  float64
	High float64
}

func (b Bounds) validate() error {
	if b.Low >= b.High {
		return fmt.Errorf("invalid bounds: low %.6f must be below high %.6f", b.Low, b.High)
	}
	return nil
}

// Options tunes a calibration search.
type Options struct {
	// Tolerance is the accepted |observed − target| probability error.
	Tolerance float64

	// MaxIterations bounds the search; the best point found is
	// reported either way.
	MaxIterations int
}

func (o Options) normalized() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = constants.DefaultCalibrationTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultCalibrationIterations
	}
	return o
}

// Result summarizes one parameter's calibration outcome.
type Result struct {
	// Value is the calibrated parameter value (best point found).
	Value float64 `json:"value"`

	// Achieved is the probability observed at Value.
	Achieved float64 `json:"achieved"`

	// Target is the probability the search aimed for.
	Target float64 `json:"target"`

	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// Bisect runs a standard bisection over [bounds.Low, bounds.High] for a
// parameter whose objective is assumed monotone increasing (raising the
// parameter raises drift, which raises the success probability). The
// monotonicity is assumed, not verified here; tests assert it against
// the engine.
func Bisect(logger *zap.Logger, objective Objective, target float64, bounds Bounds, opts Options) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := bounds.validate(); err != nil {
		return Result{}, err
	}
	opts = opts.normalized()

	low, high := bounds.Low, bounds.High
	result := Result{Target: target, Converged: false}
	bestError := math.MaxFloat64

	for result.Iterations < opts.MaxIterations {
		mid := low + (high-low)/2
		observed, err := objective(mid)
		if err != nil {
			return result, fmt.Errorf("objective evaluation failed at %.6f: %w", mid, err)
		}
		result.Iterations++

		if diff := math.Abs(observed - target); diff < bestError {
			bestError = diff
			result.Value = mid
			result.Achieved = observed
		}

		logger.Debug("bisection step",
			zap.String("op", "calibrate.Bisect"),
			zap.Int("iteration", result.Iterations),
			zap.Float64("candidate", mid),
			zap.Float64("observed", observed),
			zap.Float64("target", target),
		)

		if math.Abs(observed-target) <= opts.Tolerance {
			result.Converged = true
			return result, nil
		}

		if observed < target {
			low = mid
		} else {
			high = mid
		}
	}

	logger.Warn("bisection exhausted its iteration budget",
		zap.String("op", "calibrate.Bisect"),
		zap.Int("iterations", result.Iterations),
		zap.Float64("bestValue", result.Value),
		zap.Float64("bestAchieved", result.Achieved),
		zap.Float64("target", target),
	)
	return result, nil
}

// Joint calibrates two parameters at once by alternating bisection:
// each step narrows both intervals using the other parameter's current
// midpoint as fixed context. This is coordinate descent, not a true
// joint solver; if the two reference probabilities are not well
// separated in parameter space it can fail to converge, which is
// reported through the Converged flags rather than masked.
func Joint(logger *zap.Logger, first, second JointObjective, targetFirst, targetSecond float64,
	boundsFirst, boundsSecond Bounds, opts Options) (Result, Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := boundsFirst.validate(); err != nil {
		return Result{}, Result{}, fmt.Errorf("first parameter: %w", err)
	}
	if err := boundsSecond.validate(); err != nil {
		return Result{}, Result{}, fmt.Errorf("second parameter: %w", err)
	}
	opts = opts.normalized()

	lowA, highA := boundsFirst.Low, boundsFirst.High
	lowB, highB := boundsSecond.Low, boundsSecond.High

	resultA := Result{Target: targetFirst}
	resultB := Result{Target: targetSecond}
	bestErrorA := math.MaxFloat64
	bestErrorB := math.MaxFloat64

	for iteration := 1; iteration <= opts.MaxIterations; iteration++ {
		midA := lowA + (highA-lowA)/2
		midB := lowB + (highB-lowB)/2

		observedA, err := first(midA, midB)
		if err != nil {
			return resultA, resultB, fmt.Errorf("first objective failed at (%.6f, %.6f): %w", midA, midB, err)
		}
		observedB, err := second(midA, midB)
		if err != nil {
			return resultA, resultB, fmt.Errorf("second objective failed at (%.6f, %.6f): %w", midA, midB, err)
		}

		resultA.Iterations = iteration
		resultB.Iterations = iteration

		if diff := math.Abs(observedA - targetFirst); diff < bestErrorA {
			bestErrorA = diff
			resultA.Value = midA
			resultA.Achieved = observedA
		}
		if diff := math.Abs(observedB - targetSecond); diff < bestErrorB {
			bestErrorB = diff
			resultB.Value = midB
			resultB.Achieved = observedB
		}

		logger.Debug("joint calibration step",
			zap.String("op", "calibrate.Joint"),
			zap.Int("iteration", iteration),
			zap.Float64("firstCandidate", midA),
			zap.Float64("firstObserved", observedA),
			zap.Float64("secondCandidate", midB),
			zap.Float64("secondObserved", observedB),
		)

		withinA := math.Abs(observedA-targetFirst) <= opts.Tolerance
		withinB := math.Abs(observedB-targetSecond) <= opts.Tolerance
		if withinA && withinB {
			resultA.Converged = true
			resultB.Converged = true
			resultA.Value, resultA.Achieved = midA, observedA
			resultB.Value, resultB.Achieved = midB, observedB
			return resultA, resultB, nil
		}

		if observedA < targetFirst {
			lowA = midA
		} else {
			highA = midA
		}
		if observedB < targetSecond {
			lowB = midB
		} else {
			highB = midB
		}
	}

	logger.Warn("joint calibration exhausted its iteration budget",
		zap.String("op", "calibrate.Joint"),
		zap.Int("iterations", opts.MaxIterations),
		zap.Float64("firstBest", resultA.Value),
		zap.Float64("secondBest", resultB.Value),
	)
	return resultA, resultB, nil
}
