package quality

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// QualityMetrics is the unified snapshot produced by Aggregate from the
// parsed inputs. It is a pure data holder: configuration never reaches this
// package, so the same snapshot can be evaluated against any gate config.
type QualityMetrics struct {
	LintFindings     []Finding       `json:"lintFindings"`
	TypeFindings     []Finding       `json:"typeFindings"`
	SecurityFindings []Finding       `json:"securityFindings"`
	TestOutcomes     []TestOutcome   `json:"testOutcomes"`
	Coverage         CoverageMetric  `json:"coverage"`
	CoverageFiles    []CoverageFile  `json:"coverageFiles,omitempty"`
	CommandStatuses  []CommandStatus `json:"commandStatuses"`

	// Warnings carries degraded-but-valid input notes recorded by the
	// parsers, e.g. unrecognized severities mapped to the lowest rank.
	Warnings []string `json:"warnings,omitempty"`
}

// ParsedInputs groups the parser outputs handed to Aggregate.
type ParsedInputs struct {
	LintFindings     []Finding
	TypeFindings     []Finding
	SecurityFindings []Finding
	TestOutcomes     []TestOutcome
	Coverage         CoverageMetric
	CoverageFiles    []CoverageFile
	CommandStatuses  []CommandStatus
	Warnings         []string
}

// Aggregate builds the metrics snapshot from the parsed record sets. Any
// subset may be empty; counts are simply zero.
func Aggregate(in ParsedInputs) QualityMetrics {
	return QualityMetrics{
		LintFindings:     in.LintFindings,
		TypeFindings:     in.TypeFindings,
		SecurityFindings: in.SecurityFindings,
		TestOutcomes:     in.TestOutcomes,
		Coverage:         in.Coverage,
		CoverageFiles:    in.CoverageFiles,
		CommandStatuses:  in.CommandStatuses,
		Warnings:         in.Warnings,
	}
}

// TestCounts derives the outcome counters from the test outcomes.
func (m QualityMetrics) TestCounts() TestCounts {
	c := TestCounts{Total: len(m.TestOutcomes)}
	for _, o := range m.TestOutcomes {
		switch o.Status {
		case TestStatusPassed:
			c.Passed++
		case TestStatusFailed:
			c.Failed++
		case TestStatusSkipped:
			c.Skipped++
		case TestStatusErrored:
			c.Errored++
		}
	}
	return c
}

// FailedTests returns the failed and errored outcomes, in input order.
func (m QualityMetrics) FailedTests() []TestOutcome {
	var failed []TestOutcome
	for _, o := range m.TestOutcomes {
		if o.Status == TestStatusFailed || o.Status == TestStatusErrored {
			failed = append(failed, o)
		}
	}
	return failed
}

// MaxSecuritySeverity returns the highest severity present in the security
// findings, or SeverityUnknown when there are none.
func (m QualityMetrics) MaxSecuritySeverity() Severity {
	max := SeverityUnknown
	for _, f := range m.SecurityFindings {
		if f.Severity.Rank() > max.Rank() {
			max = f.Severity
		}
	}
	return max
}

// FilesBelowThreshold lists coverage files under the given percentage,
// sorted ascending by percent.
func (m QualityMetrics) FilesBelowThreshold(threshold float64) []CoverageFile {
	var below []CoverageFile
	for _, f := range m.CoverageFiles {
		if f.Percent < threshold {
			below = append(below, f)
		}
	}
	sort.Slice(below, func(i, j int) bool { return below[i].Percent < below[j].Percent })
	return below
}

// CommandFailures returns the command statuses with non-zero exit codes.
func (m QualityMetrics) CommandFailures() []CommandStatus {
	var failed []CommandStatus
	for _, c := range m.CommandStatuses {
		if !c.Success() {
			failed = append(failed, c)
		}
	}
	return failed
}

// DurationStats summarizes test case durations, in seconds.
type DurationStats struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	P95  float64 `json:"p95"`
	Max  float64 `json:"max"`
}

// TestDurationStats computes duration statistics over all test outcomes.
// Returns the zero value when no tests ran.
func (m QualityMetrics) TestDurationStats() DurationStats {
	if len(m.TestOutcomes) == 0 {
		return DurationStats{}
	}
	series := make(stats.Float64Data, 0, len(m.TestOutcomes))
	for _, o := range m.TestOutcomes {
		series = append(series, o.Duration.Seconds())
	}
	min, _ := stats.Min(series)
	mean, _ := stats.Mean(series)
	p95, _ := stats.Percentile(series, 95)
	max, _ := stats.Max(series)
	return DurationStats{Min: min, Mean: mean, P95: p95, Max: max}
}
