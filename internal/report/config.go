// Package report evaluates the gate policies against the metrics snapshot
// and renders/emits the run artifacts: the human-readable report, the
// structured summary document and the flat key=value outputs file.
package report

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/quality-tools/qreport/internal/quality"
)

const (
	FailOnNone = "none"
	FailOnAny  = "any"
)

// GateConfig holds the thresholds and policies for gate evaluation. It is
// constructed once from CLI parameters (plus an optional overrides file) at
// process start and never mutated afterwards; evaluation receives it
// explicitly so it stays a pure function of (metrics, config).
type GateConfig struct {
	// CoverageThreshold is the inclusive lower bound, in percent, for the
	// coverage gate.
	CoverageThreshold int `yaml:"coverage-threshold"`

	// FailOnQuality switches the lint, type and tests gates: "any" arms
	// them, "none" reports findings without blocking.
	FailOnQuality string `yaml:"fail-on-quality"`

	// FailOnSecurity is the severity floor for the security gate, or
	// "none" to disable it.
	FailOnSecurity string `yaml:"fail-on-security"`

	// IncludeSecurity controls whether the security gate runs at all.
	IncludeSecurity bool `yaml:"include-security"`
}

// DefaultGateConfig returns the documented parameter defaults.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		CoverageThreshold: 80,
		FailOnQuality:     FailOnAny,
		FailOnSecurity:    string(quality.SeverityHigh),
		IncludeSecurity:   true,
	}
}

// Validate rejects out-of-domain parameter values. An invalid value is a
// configuration error: the run aborts before any input is parsed.
func (c GateConfig) Validate() error {
	if c.CoverageThreshold < 0 || c.CoverageThreshold > 100 {
		return errors.Errorf("coverage-threshold must be within [0,100], got %d", c.CoverageThreshold)
	}
	if c.FailOnQuality != FailOnNone && c.FailOnQuality != FailOnAny {
		return errors.Errorf("fail-on-quality must be one of [none any], got %q", c.FailOnQuality)
	}
	switch quality.Severity(c.FailOnSecurity) {
	case quality.SeverityLow, quality.SeverityMedium, quality.SeverityHigh:
	default:
		if c.FailOnSecurity != FailOnNone {
			return errors.Errorf("fail-on-security must be one of [none low medium high], got %q", c.FailOnSecurity)
		}
	}
	return nil
}

// ApplyFile overlays gate parameters from a YAML config file. Only keys
// present in the file are overridden.
func (c *GateConfig) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading gate config file")
	}
	overrides := struct {
		CoverageThreshold *int    `yaml:"coverage-threshold"`
		FailOnQuality     *string `yaml:"fail-on-quality"`
		FailOnSecurity    *string `yaml:"fail-on-security"`
		IncludeSecurity   *bool   `yaml:"include-security"`
	}{}
	if err := yaml.UnmarshalStrict(data, &overrides); err != nil {
		return errors.Wrapf(err, "parsing gate config file %s", path)
	}
	if overrides.CoverageThreshold != nil {
		c.CoverageThreshold = *overrides.CoverageThreshold
	}
	if overrides.FailOnQuality != nil {
		c.FailOnQuality = *overrides.FailOnQuality
	}
	if overrides.FailOnSecurity != nil {
		c.FailOnSecurity = *overrides.FailOnSecurity
	}
	if overrides.IncludeSecurity != nil {
		c.IncludeSecurity = *overrides.IncludeSecurity
	}
	return nil
}

// securityFloor returns the rank a finding must reach to trip the security
// gate, or 0 when the gate is disabled.
func (c GateConfig) securityFloor() int {
	if c.FailOnSecurity == FailOnNone {
		return 0
	}
	return quality.Severity(c.FailOnSecurity).Rank()
}
