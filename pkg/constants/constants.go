// Package constants provides shared constants for the agritwin application.
package constants

// Projection horizon and indicator targets. The indicator is
// agriculture PPP per capita in international dollars.
const (
	// BaseYear is the first simulated year.
	BaseYear = 2025

	// TargetYear is the final simulated year.
	TargetYear = 2050

	// BaseIndicatorValue is the indicator value at BaseYear.
	BaseIndicatorValue = 803.0

	// TargetIndicatorValue is the success threshold at TargetYear.
	TargetIndicatorValue = 7000.0
)

// Structural growth and volatility parameters. The autonomous growth
// and alpha scale values are calibrated offline (see cmd/calibrate) so
// that the zero-intervention reference lands near 45% success
// probability and the full-implementation reference near 80-85%.
const (
	// BaseGrowthRate is the fixed annual growth rate before any
	// intervention or autonomous component.
	BaseGrowthRate = 0.055

	// BaselineAutonomousGrowth is additional drift present even at zero
	// intervention intensity.
	BaselineAutonomousGrowth = 0.0354

	// AlphaScale is the global multiplier applied to every lever's
	// alpha weight.
	AlphaScale = 0.042

	// BetaScale is the global multiplier applied to every lever's beta
	// weight.
	BetaScale = 1.0

	// BaseVolatility is the annual shock standard deviation before any
	// beta-driven reduction.
	BaseVolatility = 0.02

	// VolatilityFloor is the minimum permitted volatility; the
	// simulation never becomes deterministic.
	VolatilityFloor = 0.05
)

// Simulation constants
const (
	// InterventionCount is the fixed number of policy levers.
	InterventionCount = 20

	// DefaultSimulations is the number of paths per projection unless
	// the caller asks for more.
	DefaultSimulations = 2000

	// MaxSimulations is the cap applied to caller-supplied path counts.
	MaxSimulations = 10000

	// DefaultSeed reseeds the generator identically before each call so
	// repeated projections with the same inputs are reproducible.
	DefaultSeed int64 = 42

	// MaxDistributionPoints caps how many terminal values the transport
	// layer returns to clients.
	MaxDistributionPoints = 1000

	// HistogramBins is the bin count for the distribution chart data.
	HistogramBins = 40
)

// Intervention intensity bounds, expressed as raw percentages.
const (
	// MinRawIntensity is the lowest accepted raw lever value.
	MinRawIntensity = 0.0

	// MaxRawIntensity is the highest accepted raw lever value.
	MaxRawIntensity = 100.0

	// PercentageMultiplier is used for percentage conversions.
	PercentageMultiplier = 100.0
)

// Calibration defaults
const (
	// DefaultCalibrationTolerance is the accepted probability error at
	// a reference vector.
	DefaultCalibrationTolerance = 0.01

	// DefaultCalibrationIterations bounds a single bisection search.
	DefaultCalibrationIterations = 50

	// DefaultCalibrationRuns is the path count used while calibrating;
	// higher than the serving default to reduce Monte Carlo noise.
	DefaultCalibrationRuns = 3000

	// BaselineReferenceIntensity is the normalized lever intensity of
	// the historical "baseline" reference mix.
	BaselineReferenceIntensity = 0.35

	// BaselineReferenceProbability is the target success probability at
	// the baseline reference mix.
	BaselineReferenceProbability = 0.45

	// MaximumReferenceProbability is the target success probability at
	// the full-implementation reference mix.
	MaximumReferenceProbability = 0.80
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestBytes is the default maximum body size for
	// projection requests (256 KB)
	DefaultMaxRequestBytes int64 = 256 * 1024

	// DefaultRequestTimeout bounds the wall-clock budget of a single
	// projection request.
	DefaultRequestTimeout = "10s"
)
