package report

import (
	"github.com/quality-tools/qreport/internal/metrics"
	"github.com/quality-tools/qreport/internal/quality"
)

// maxListItems caps the finding and test lists carried into the rendered
// report and the summary samples, keeping PR comments readable.
const maxListItems = 50

// ReportData is the assembled view over the metrics snapshot and the gate
// result. It is the single data source for the rendered report, the
// structured summary document and the outputs file; the renderer only
// formats it and computes nothing new.
type ReportData struct {
	Summary  ReportSummary           `json:"summary"`
	Gates    GateResult              `json:"gates"`
	Checks   []*Check                `json:"checks"`
	Lint     ReportFindings          `json:"lint"`
	Type     ReportFindings          `json:"typeCheck"`
	Security ReportFindings          `json:"security"`
	Tests    ReportTests             `json:"tests"`
	Coverage ReportCoverage          `json:"coverage"`
	Commands []quality.CommandStatus `json:"commands"`
	Warnings []string                `json:"warnings,omitempty"`
	Runtime  *metrics.Timers         `json:"runtime,omitempty"`
}

// ReportSummary is the headline counter block.
type ReportSummary struct {
	LintFindings     int     `json:"lintFindings"`
	TypeErrors       int     `json:"typeErrors"`
	TypeWarnings     int     `json:"typeWarnings"`
	TestsTotal       int     `json:"testsTotal"`
	TestsPassed      int     `json:"testsPassed"`
	TestsFailed      int     `json:"testsFailed"`
	TestsSkipped     int     `json:"testsSkipped"`
	Coverage         float64 `json:"coverage"`
	SecurityFindings int     `json:"securityFindings"`
	OverallPass      bool    `json:"overallPass"`
}

type ReportFindings struct {
	Count    int               `json:"count"`
	Findings []quality.Finding `json:"findings"`
}

type ReportTests struct {
	Counts        quality.TestCounts    `json:"counts"`
	Failures      []quality.TestOutcome `json:"failures"`
	DurationStats quality.DurationStats `json:"durationStats"`
}

type ReportCoverage struct {
	Percent        float64                `json:"percent"`
	Threshold      int                    `json:"threshold"`
	CoveredLines   int                    `json:"coveredLines"`
	TotalLines     int                    `json:"totalLines"`
	BelowThreshold []quality.CoverageFile `json:"belowThreshold"`
}

// NewReportData assembles the report view from the evaluated run.
func NewReportData(m quality.QualityMetrics, cfg GateConfig, checks *CheckSummary, gates GateResult, timers *metrics.Timers) *ReportData {
	counts := m.TestCounts()
	return &ReportData{
		Summary: ReportSummary{
			LintFindings:     len(m.LintFindings),
			TypeErrors:       countSeverity(m.TypeFindings, quality.SeverityHigh),
			TypeWarnings:     countSeverity(m.TypeFindings, quality.SeverityMedium),
			TestsTotal:       counts.Total,
			TestsPassed:      counts.Passed,
			TestsFailed:      counts.Failed + counts.Errored,
			TestsSkipped:     counts.Skipped,
			Coverage:         m.Coverage.Percentage(),
			SecurityFindings: len(m.SecurityFindings),
			OverallPass:      gates.OverallPass,
		},
		Gates:  gates,
		Checks: checks.Checks,
		Lint: ReportFindings{
			Count:    len(m.LintFindings),
			Findings: truncateFindings(m.LintFindings),
		},
		Type: ReportFindings{
			Count:    len(m.TypeFindings),
			Findings: truncateFindings(m.TypeFindings),
		},
		Security: ReportFindings{
			Count:    len(m.SecurityFindings),
			Findings: truncateFindings(m.SecurityFindings),
		},
		Tests: ReportTests{
			Counts:        counts,
			Failures:      truncateOutcomes(m.FailedTests()),
			DurationStats: m.TestDurationStats(),
		},
		Coverage: ReportCoverage{
			Percent:        m.Coverage.Percentage(),
			Threshold:      cfg.CoverageThreshold,
			CoveredLines:   m.Coverage.CoveredLines,
			TotalLines:     m.Coverage.TotalLines,
			BelowThreshold: truncateCoverage(m.FilesBelowThreshold(float64(cfg.CoverageThreshold))),
		},
		Commands: m.CommandStatuses,
		Warnings: m.Warnings,
		Runtime:  timers,
	}
}

func countSeverity(findings []quality.Finding, severity quality.Severity) int {
	count := 0
	for _, f := range findings {
		if f.Severity == severity {
			count++
		}
	}
	return count
}

func truncateFindings(in []quality.Finding) []quality.Finding {
	if len(in) > maxListItems {
		return in[:maxListItems]
	}
	return in
}

func truncateOutcomes(in []quality.TestOutcome) []quality.TestOutcome {
	if len(in) > maxListItems {
		return in[:maxListItems]
	}
	return in
}

func truncateCoverage(in []quality.CoverageFile) []quality.CoverageFile {
	if len(in) > maxListItems {
		return in[:maxListItems]
	}
	return in
}
