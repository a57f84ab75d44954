// Package config defines the data structures related to configuration
// and includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/uwimana/agritwin/internal/engine"
	"github.com/uwimana/agritwin/pkg/constants"
)

// Configuration holds all configuration for agritwin.
type Configuration struct {
	// Parameters are the calibrated structural constants of the
	// projection model, read-only after startup.
	Parameters engine.Parameters

	// Interventions overrides the built-in lever table. Leaving it
	// empty keeps the default table of 20 levers.
	Interventions []engine.InterventionSpec

	Simulation SimulationConfig
	Logging    LoggingConfig
	Output     OutputConfig
}

// SimulationConfig bounds caller-controlled simulation inputs.
type SimulationConfig struct {
	// DefaultRuns is the path count used when a request omits one.
	DefaultRuns int

	// MaxRuns caps caller-supplied path counts; N and the horizon are
	// otherwise caller-controlled and unbounded.
	MaxRuns int

	// Seed reseeds the generator identically before every projection
	// so repeated calls with the same inputs reproduce bit-identical
	// distributions.
	Seed int64

	// MaxDistributionPoints caps how many terminal values are returned
	// over the wire.
	MaxDistributionPoints int
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// DefaultConfiguration returns the calibrated serving defaults used
// when no config file is supplied.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Parameters:    engine.DefaultParameters(),
		Interventions: engine.DefaultInterventions(),
		Simulation: SimulationConfig{
			DefaultRuns:           constants.DefaultSimulations,
			MaxRuns:               constants.MaxSimulations,
			Seed:                  constants.DefaultSeed,
			MaxDistributionPoints: constants.MaxDistributionPoints,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the
// YAML-formatted configuration there. Keys absent from the file keep
// their calibrated defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	configuration := DefaultConfiguration()
	if err := viper.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return configuration, nil
}

// LoadConfigurationFromReader parses YAML configuration from the given
// reader, for callers that already hold the bytes.
func LoadConfigurationFromReader(reader io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	configuration := DefaultConfiguration()
	if err := v.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return configuration, nil
}

// Validate checks the configuration for errors that are fatal at
// startup: a malformed lever table or unusable structural parameters.
func (c *Configuration) Validate() error {
	if err := engine.ValidateInterventions(c.Interventions, constants.InterventionCount); err != nil {
		return fmt.Errorf("intervention table: %w", err)
	}
	if err := c.Parameters.Validate(); err != nil {
		return fmt.Errorf("engine parameters: %w", err)
	}
	if c.Simulation.DefaultRuns <= 0 {
		return fmt.Errorf("simulation defaultRuns must be positive, got %d", c.Simulation.DefaultRuns)
	}
	if c.Simulation.MaxRuns < c.Simulation.DefaultRuns {
		return fmt.Errorf("simulation maxRuns %d must be at least defaultRuns %d",
			c.Simulation.MaxRuns, c.Simulation.DefaultRuns)
	}
	if c.Simulation.MaxDistributionPoints <= 0 {
		return fmt.Errorf("simulation maxDistributionPoints must be positive, got %d",
			c.Simulation.MaxDistributionPoints)
	}
	return nil
}

// ValidateConfiguration performs general validation of the
// configuration and returns warnings for settings that are legal but
// probably unintended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Parameters.VolatilityFloor >= c.Parameters.BaseVolatility {
		warnings = append(warnings, fmt.Sprintf(
			"volatility floor %.4f is at or above base volatility %.4f; beta-driven volatility reduction will never engage",
			c.Parameters.VolatilityFloor, c.Parameters.BaseVolatility))
	}
	if c.Parameters.TargetIndicatorValue <= c.Parameters.BaseIndicatorValue {
		warnings = append(warnings, fmt.Sprintf(
			"target indicator value %.2f does not exceed the base value %.2f; every path succeeds immediately",
			c.Parameters.TargetIndicatorValue, c.Parameters.BaseIndicatorValue))
	}
	if c.Parameters.Horizon() > 100 {
		warnings = append(warnings, fmt.Sprintf(
			"projection horizon of %d years is unusually long for a multiplicative annual process",
			c.Parameters.Horizon()))
	}
	if c.Simulation.MaxRuns > 10*constants.MaxSimulations {
		warnings = append(warnings, fmt.Sprintf(
			"maxRuns %d is far above the intended serving cap of %d",
			c.Simulation.MaxRuns, constants.MaxSimulations))
	}

	return warnings
}
