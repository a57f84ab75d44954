// Package engine implements the Monte Carlo projection of the
// agricultural prosperity indicator from the base year to the target
// year under a 20-lever intervention mix.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/uwimana/agritwin/pkg/constants"
	"github.com/uwimana/agritwin/pkg/mathutil"
)

// Parameters holds the structural constants of the projection model.
// They are calibrated offline (see cmd/calibrate) and held fixed for
// serving; every Project call receives its own immutable copy, so
// calibration produces new values instead of mutating shared state.
type Parameters struct {
	BaseYear                 int     `json:"baseYear"`
	TargetYear               int     `json:"targetYear"`
	BaseIndicatorValue       float64 `json:"baseIndicatorValue"`
	TargetIndicatorValue     float64 `json:"targetIndicatorValue"`
	BaseGrowthRate           float64 `json:"baseGrowthRate"`
	BaselineAutonomousGrowth float64 `json:"baselineAutonomousGrowth"`
	AlphaScale               float64 `json:"alphaScale"`
	BetaScale                float64 `json:"betaScale"`
	BaseVolatility           float64 `json:"baseVolatility"`
	VolatilityFloor          float64 `json:"volatilityFloor"`
}

// DefaultParameters returns the calibrated serving parameters.
func DefaultParameters() Parameters {
	return Parameters{
		BaseYear:                 constants.BaseYear,
		TargetYear:               constants.TargetYear,
		BaseIndicatorValue:       constants.BaseIndicatorValue,
		TargetIndicatorValue:     constants.TargetIndicatorValue,
		BaseGrowthRate:           constants.BaseGrowthRate,
		BaselineAutonomousGrowth: constants.BaselineAutonomousGrowth,
		AlphaScale:               constants.AlphaScale,
		BetaScale:                constants.BetaScale,
		BaseVolatility:           constants.BaseVolatility,
		VolatilityFloor:          constants.VolatilityFloor,
	}
}

// Horizon returns the number of simulated annual steps.
func (p Parameters) Horizon() int {
	return p.TargetYear - p.BaseYear
}

// Validate checks the structural constants for values the simulation
// cannot work with. Invalid parameters are fatal at startup.
func (p Parameters) Validate() error {
	if p.TargetYear <= p.BaseYear {
		return fmt.Errorf("target year %d must be after base year %d", p.TargetYear, p.BaseYear)
	}
	if p.BaseIndicatorValue <= 0 {
		return fmt.Errorf("base indicator value must be positive, got %.4f", p.BaseIndicatorValue)
	}
	if p.TargetIndicatorValue <= 0 {
		return fmt.Errorf("target indicator value must be positive, got %.4f", p.TargetIndicatorValue)
	}
	if p.BaseVolatility <= 0 {
		return fmt.Errorf("base volatility must be positive, got %.4f", p.BaseVolatility)
	}
	if p.VolatilityFloor <= 0 {
		return fmt.Errorf("volatility floor must be positive, got %.4f", p.VolatilityFloor)
	}
	return nil
}

// Engine runs seeded projections against a fixed lever table. It is
// safe for concurrent use: the table is read-only after construction
// and all per-call state lives on the stack of Project.
type Engine struct {
	logger *zap.Logger
	specs  []InterventionSpec
}

// New constructs an Engine over the given lever table. A nil logger is
// replaced with a no-op logger and an empty table with the built-in
// default table.
func New(logger *zap.Logger, specs []InterventionSpec) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(specs) == 0 {
		specs = DefaultInterventions()
	}
	return &Engine{logger: logger, specs: specs}
}

// Specs returns a copy of the lever table for introspection.
func (e *Engine) Specs() []InterventionSpec {
	return append([]InterventionSpec(nil), e.specs...)
}

// LeverCount returns the fixed number of levers.
func (e *Engine) LeverCount() int {
	return len(e.specs)
}

// Drift computes the annualized growth-rate addition for a vector:
// baseGrowthRate + baselineAutonomousGrowth + Σ(alphaScale·alpha_i·v_i).
// The vector must already be validated against the lever count.
func (e *Engine) Drift(params Parameters, vector Vector) float64 {
	drift := params.BaseGrowthRate + params.BaselineAutonomousGrowth
	for i, spec := range e.specs {
		drift += params.AlphaScale * spec.Alpha * vector[i]
	}
	return drift
}

// Volatility computes the annual shock standard deviation for a
// vector: max(volatilityFloor, baseVolatility − Σ(betaScale·beta_i·v_i)).
// Engaged levers reduce uncertainty but the floor keeps the simulation
// stochastic; dropping below the floor is clamped silently, not an
// error.
func (e *Engine) Volatility(params Parameters, vector Vector) float64 {
	reduction := 0.0
	for i, spec := range e.specs {
		reduction += params.BetaScale * spec.Beta * vector[i]
	}
	return mathutil.Max(params.VolatilityFloor, params.BaseVolatility-reduction)
}

// Project simulates n independent multiplicative paths over the
// configured horizon and summarizes the terminal-value distribution.
// It fails only when the vector length does not match the lever count.
//
// Identical (vector, n, seed) inputs produce bit-identical results:
// each path draws from its own stream derived from the call seed, so
// the output does not depend on how paths are scheduled across
// workers.
func (e *Engine) Project(ctx context.Context, params Parameters, vector Vector, n int, seed int64) (Result, error) {
	if len(vector) != len(e.specs) {
		return Result{}, fmt.Errorf("intervention vector has %d values, expected %d", len(vector), len(e.specs))
	}
	if n <= 0 {
		n = constants.DefaultSimulations
	}

	drift := e.Drift(params, vector)
	volatility := e.Volatility(params, vector)
	years := params.Horizon()

	e.logger.Debug("starting projection batch",
		zap.String("op", "engine.Project"),
		zap.Float64("drift", drift),
		zap.Float64("volatility", volatility),
		zap.Int("paths", n),
		zap.Int("years", years),
		zap.Int64("seed", seed),
	)

	terminals := make([]float64, n)

	group, ctx := errgroup.WithContext(ctx)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		group.Go(func() error {
			for path := start; path < end; path++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				rng := rand.New(rand.NewSource(pathSeed(seed, path)))
				value := params.BaseIndicatorValue
				for year := 0; year < years; year++ {
					shock := rng.NormFloat64() * volatility
					value *= 1 + drift + shock
				}
				terminals[path] = value
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, fmt.Errorf("projection aborted: %w", err)
	}

	return summarize(params, drift, volatility, terminals), nil
}

// pathSeed derives an independent stream seed for one path from the
// call seed using a splitmix64-style mix.
func pathSeed(seed int64, path int) int64 {
	x := uint64(seed) + (uint64(path)+1)*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}
