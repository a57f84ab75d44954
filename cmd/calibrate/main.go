package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/uwimana/agritwin/internal/calibrate"
	"github.com/uwimana/agritwin/internal/config"
	"github.com/uwimana/agritwin/internal/engine"
	"github.com/uwimana/agritwin/pkg/constants"
	"github.com/uwimana/agritwin/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func initializeLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	return zapConfig.Build()
}

// referenceVector maps a CLI name onto one of the calibration anchor
// scenarios.
func referenceVector(name string, specs []engine.InterventionSpec) (engine.Vector, error) {
	switch name {
	case "zero":
		return engine.ZeroVector(specs), nil
	case "baseline":
		return engine.BaselineReferenceVector(specs, constants.BaselineReferenceIntensity), nil
	case "maximum":
		return engine.MaximumVector(specs), nil
	default:
		return nil, fmt.Errorf("unknown reference vector %q (want zero, baseline, or maximum)", name)
	}
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	joint := flag.Bool("joint", false, "calibrate baselineAutonomousGrowth and alphaScale together")
	parameterName := flag.String("parameter", string(calibrate.ParameterBaselineAutonomousGrowth),
		"parameter to calibrate: baselineAutonomousGrowth or alphaScale")
	vectorName := flag.String("vector", "baseline", "reference scenario: zero, baseline, or maximum")
	target := flag.Float64("target", constants.BaselineReferenceProbability, "target success probability")
	low := flag.Float64("low", 0, "lower parameter bound")
	high := flag.Float64("high", 0.2, "upper parameter bound")
	tolerance := flag.Float64("tolerance", constants.DefaultCalibrationTolerance, "accepted probability error")
	iterations := flag.Int("iterations", constants.DefaultCalibrationIterations, "maximum bisection iterations")
	runs := flag.Int("runs", constants.DefaultCalibrationRuns, "simulated paths per candidate evaluation")
	seed := flag.Int64("seed", constants.DefaultSeed, "random seed shared by every candidate evaluation")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(*logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// A malformed lever table or unusable parameters are fatal at startup.
	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	eng := engine.New(logger, conf.Interventions)
	opts := calibrate.Options{Tolerance: *tolerance, MaxIterations: *iterations}
	ctx := context.Background()

	if *joint {
		runJoint(ctx, logger, eng, conf, opts, *runs, *seed)
		return
	}

	parameter, err := calibrate.ParseParameter(*parameterName)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	vector, err := referenceVector(*vectorName, eng.Specs())
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	objective := calibrate.EngineObjective(ctx, eng, conf.Parameters, parameter, vector, *runs, *seed)
	result, err := calibrate.Bisect(logger, objective, *target, calibrate.Bounds{Low: *low, High: *high}, opts)
	if err != nil {
		logger.Fatal("calibration failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	output.CalibrationFormat(parameter, result)
}

// runJoint anchors baselineAutonomousGrowth at the modest-ambition
// reference scenario and alphaScale at the full-implementation one,
// then alternates between the two searches.
func runJoint(ctx context.Context, logger *zap.Logger, eng *engine.Engine,
	conf *config.Configuration, opts calibrate.Options, runs int, seed int64) {
	baselineVec := engine.BaselineReferenceVector(eng.Specs(), constants.BaselineReferenceIntensity)
	maximumVec := engine.MaximumVector(eng.Specs())

	first := calibrate.JointEngineObjective(ctx, eng, conf.Parameters,
		calibrate.ParameterBaselineAutonomousGrowth, calibrate.ParameterAlphaScale,
		baselineVec, runs, seed)
	second := calibrate.JointEngineObjective(ctx, eng, conf.Parameters,
		calibrate.ParameterBaselineAutonomousGrowth, calibrate.ParameterAlphaScale,
		maximumVec, runs, seed)

	baselineResult, scaleResult, err := calibrate.Joint(logger, first, second,
		constants.BaselineReferenceProbability, constants.MaximumReferenceProbability,
		calibrate.Bounds{Low: 0, High: 0.1}, calibrate.Bounds{Low: 0, High: 0.2}, opts)
	if err != nil {
		logger.Fatal("joint calibration failed",
			zap.String("op", "main.runJoint"),
			zap.Error(err),
		)
	}

	output.CalibrationFormat(calibrate.ParameterBaselineAutonomousGrowth, baselineResult)
	output.CalibrationFormat(calibrate.ParameterAlphaScale, scaleResult)
}
