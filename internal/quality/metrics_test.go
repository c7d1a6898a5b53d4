package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateEmptyInputs(t *testing.T) {
	m := Aggregate(ParsedInputs{})

	counts := m.TestCounts()
	assert.Equal(t, 0, counts.Total)
	assert.Equal(t, 0, counts.Failed)
	assert.Empty(t, m.FailedTests())
	assert.Empty(t, m.CommandFailures())
	assert.Equal(t, float64(0), m.Coverage.Percentage())
	assert.Equal(t, DurationStats{}, m.TestDurationStats())
}

func TestTestCountsDerived(t *testing.T) {
	m := Aggregate(ParsedInputs{
		TestOutcomes: []TestOutcome{
			{Name: "a", Status: TestStatusPassed},
			{Name: "b", Status: TestStatusFailed},
			{Name: "c", Status: TestStatusSkipped},
			{Name: "d", Status: TestStatusErrored},
			{Name: "e", Status: TestStatusPassed},
		},
	})
	counts := m.TestCounts()
	assert.Equal(t, 5, counts.Total)
	assert.Equal(t, 2, counts.Passed)
	assert.Equal(t, 1, counts.Failed)
	assert.Equal(t, 1, counts.Skipped)
	assert.Equal(t, 1, counts.Errored)

	failed := m.FailedTests()
	assert.Len(t, failed, 2)
	assert.Equal(t, "b", failed[0].Name)
	assert.Equal(t, "d", failed[1].Name)
}

func TestCoveragePercentage(t *testing.T) {
	assert.Equal(t, float64(0), CoverageMetric{}.Percentage())
	assert.Equal(t, float64(80), CoverageMetric{CoveredLines: 800, TotalLines: 1000}.Percentage())
	assert.InDelta(t, 79.9, CoverageMetric{CoveredLines: 799, TotalLines: 1000}.Percentage(), 0.001)
}

func TestSeverityOrder(t *testing.T) {
	assert.True(t, SeverityLow.Rank() < SeverityMedium.Rank())
	assert.True(t, SeverityMedium.Rank() < SeverityHigh.Rank())
	assert.True(t, SeverityUnknown.Rank() < SeverityLow.Rank())
}

func TestParseSeverity(t *testing.T) {
	sev, ok := ParseSeverity("HIGH")
	assert.True(t, ok)
	assert.Equal(t, SeverityHigh, sev)

	sev, ok = ParseSeverity(" medium ")
	assert.True(t, ok)
	assert.Equal(t, SeverityMedium, sev)

	sev, ok = ParseSeverity("catastrophic")
	assert.False(t, ok)
	assert.Equal(t, SeverityUnknown, sev)
}

func TestMaxSecuritySeverity(t *testing.T) {
	m := Aggregate(ParsedInputs{
		SecurityFindings: []Finding{
			{Source: SourceSecurity, Severity: SeverityLow},
			{Source: SourceSecurity, Severity: SeverityMedium},
		},
	})
	assert.Equal(t, SeverityMedium, m.MaxSecuritySeverity())
	assert.Equal(t, SeverityUnknown, Aggregate(ParsedInputs{}).MaxSecuritySeverity())
}

func TestFilesBelowThresholdSorted(t *testing.T) {
	m := Aggregate(ParsedInputs{
		CoverageFiles: []CoverageFile{
			{Path: "a.py", Percent: 90},
			{Path: "b.py", Percent: 40},
			{Path: "c.py", Percent: 70},
		},
	})
	below := m.FilesBelowThreshold(80)
	assert.Len(t, below, 2)
	assert.Equal(t, "b.py", below[0].Path)
	assert.Equal(t, "c.py", below[1].Path)
}

func TestCommandFailures(t *testing.T) {
	m := Aggregate(ParsedInputs{
		CommandStatuses: []CommandStatus{
			{Name: "fmt", ExitCode: 0},
			{Name: "build", ExitCode: 2},
		},
	})
	failures := m.CommandFailures()
	assert.Len(t, failures, 1)
	assert.Equal(t, "build", failures[0].Name)
	assert.False(t, failures[0].Success())
}

func TestTestDurationStats(t *testing.T) {
	m := Aggregate(ParsedInputs{
		TestOutcomes: []TestOutcome{
			{Name: "a", Status: TestStatusPassed, Duration: 1 * time.Second},
			{Name: "b", Status: TestStatusPassed, Duration: 3 * time.Second},
		},
	})
	stats := m.TestDurationStats()
	assert.Equal(t, float64(1), stats.Min)
	assert.Equal(t, float64(2), stats.Mean)
	assert.Equal(t, float64(3), stats.Max)
}
