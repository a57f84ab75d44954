package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uwimana/agritwin/internal/engine"
	"github.com/uwimana/agritwin/pkg/constants"
)

func TestDefaultConfigurationIsValid(t *testing.T) {
	conf := DefaultConfiguration()
	if err := conf.Validate(); err != nil {
		t.Fatalf("default configuration failed validation: %v", err)
	}
	if len(conf.Interventions) != constants.InterventionCount {
		t.Errorf("default table has %d levers, expected %d",
			len(conf.Interventions), constants.InterventionCount)
	}
	if conf.Simulation.Seed != constants.DefaultSeed {
		t.Errorf("default seed = %d, expected %d", conf.Simulation.Seed, constants.DefaultSeed)
	}
}

func TestLoadConfigurationFromReaderOverrides(t *testing.T) {
	yaml := `
parameters:
  baseGrowthRate: 0.06
  alphaScale: 0.05
simulation:
  defaultRuns: 1500
  maxRuns: 8000
logging:
  level: debug
  format: console
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader failed: %v", err)
	}

	if conf.Parameters.BaseGrowthRate != 0.06 {
		t.Errorf("baseGrowthRate = %v, expected override 0.06", conf.Parameters.BaseGrowthRate)
	}
	if conf.Parameters.AlphaScale != 0.05 {
		t.Errorf("alphaScale = %v, expected override 0.05", conf.Parameters.AlphaScale)
	}
	// Untouched keys keep calibrated defaults.
	if conf.Parameters.BaseYear != constants.BaseYear {
		t.Errorf("baseYear = %d, expected default %d", conf.Parameters.BaseYear, constants.BaseYear)
	}
	if conf.Simulation.DefaultRuns != 1500 || conf.Simulation.MaxRuns != 8000 {
		t.Errorf("simulation overrides not applied: %+v", conf.Simulation)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("logging overrides not applied: %+v", conf.Logging)
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("overridden configuration failed validation: %v", err)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
parameters:
  baselineAutonomousGrowth: 0.03
simulation:
  seed: 7
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	if conf.Parameters.BaselineAutonomousGrowth != 0.03 {
		t.Errorf("baselineAutonomousGrowth = %v, expected 0.03", conf.Parameters.BaselineAutonomousGrowth)
	}
	if conf.Simulation.Seed != 7 {
		t.Errorf("seed = %d, expected 7", conf.Simulation.Seed)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidateRejectsMalformedLeverTable(t *testing.T) {
	conf := DefaultConfiguration()
	conf.Interventions = conf.Interventions[:10]
	if err := conf.Validate(); err == nil {
		t.Error("expected a fatal error for a truncated lever table")
	}

	conf = DefaultConfiguration()
	conf.Interventions[2].Polarity = engine.Polarity("diagonal")
	if err := conf.Validate(); err == nil {
		t.Error("expected a fatal error for an unknown polarity")
	}
}

func TestValidateRejectsBadSimulationLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
	}{
		{"Zero default runs", func(c *Configuration) { c.Simulation.DefaultRuns = 0 }},
		{"Max below default", func(c *Configuration) { c.Simulation.MaxRuns = c.Simulation.DefaultRuns - 1 }},
		{"Zero distribution cap", func(c *Configuration) { c.Simulation.MaxDistributionPoints = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfiguration()
			tt.mutate(conf)
			if err := conf.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	// The calibrated defaults deliberately keep the floor above the
	// base volatility, which should be surfaced as a warning rather
	// than an error.
	conf := DefaultConfiguration()
	warnings := conf.ValidateConfiguration()
	found := false
	for _, warning := range warnings {
		if strings.Contains(warning, "volatility floor") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a volatility floor warning, got %v", warnings)
	}

	conf.Parameters.VolatilityFloor = 0.004
	for _, warning := range conf.ValidateConfiguration() {
		if strings.Contains(warning, "volatility floor") {
			t.Errorf("unexpected volatility floor warning with floor below base: %v", warning)
		}
	}
}
