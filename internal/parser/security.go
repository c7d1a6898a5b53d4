package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/quality-tools/qreport/internal/quality"
)

// banditReport is the expected shape of the security findings file
// (bandit-style JSON). SARIF 2.1.0 documents are detected and accepted as
// well, see parseSARIF.
type banditReport struct {
	Results []banditIssue `json:"results"`
}

type banditIssue struct {
	Filename        string `json:"filename"`
	LineNumber      int    `json:"line_number"`
	IssueSeverity   string `json:"issue_severity"`
	IssueConfidence string `json:"issue_confidence"`
	TestID          string `json:"test_id"`
	TestName        string `json:"test_name"`
	IssueText       string `json:"issue_text"`
}

// sarifProbe sniffs the document kind before committing to a schema.
type sarifProbe struct {
	Version string            `json:"version"`
	Runs    []json.RawMessage `json:"runs"`
}

// ParseSecurity reads the security findings file. Severities are restricted
// to {low, medium, high}; unrecognized values rank below low and are
// recorded as warnings instead of rejecting the finding.
func ParseSecurity(path string) ([]quality.Finding, []string, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, nil, err
	}
	var probe sarifProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, parseErrorf(path, "expected a security findings document: %v", err)
	}
	if strings.HasSuffix(strings.TrimSuffix(path, ".xz"), ".sarif") || (probe.Version != "" && probe.Runs != nil) {
		return parseSARIF(path, data)
	}
	return parseBandit(path, data)
}

func parseBandit(path string, data []byte) ([]quality.Finding, []string, error) {
	var report banditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, nil, parseErrorf(path, "expected a bandit report document: %v", err)
	}
	if report.Results == nil {
		return nil, nil, parseErrorf(path, "security report has no results list")
	}
	var findings []quality.Finding
	var warnings []string
	for _, issue := range report.Results {
		severity, ok := quality.ParseSeverity(issue.IssueSeverity)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"security finding %s has unrecognized severity %q, ranking below low", issue.TestID, issue.IssueSeverity))
		}
		findings = append(findings, quality.Finding{
			Source:   quality.SourceSecurity,
			Severity: severity,
			Rule:     issue.TestID,
			File:     issue.Filename,
			Line:     issue.LineNumber,
			Message:  strings.TrimSpace(issue.IssueText),
		})
	}
	return findings, warnings, nil
}

// parseSARIF normalizes a SARIF 2.1.0 document: level error maps to high,
// warning to medium, note and none to low.
func parseSARIF(path string, data []byte) ([]quality.Finding, []string, error) {
	var report sarif.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, nil, parseErrorf(path, "expected a SARIF document: %v", err)
	}
	var findings []quality.Finding
	var warnings []string
	for _, run := range report.Runs {
		for _, result := range run.Results {
			f := quality.Finding{Source: quality.SourceSecurity}
			if result.RuleID != nil {
				f.Rule = *result.RuleID
			}
			if result.Message.Text != nil {
				f.Message = strings.TrimSpace(*result.Message.Text)
			}
			level := ""
			if result.Level != nil {
				level = *result.Level
			}
			severity, ok := sarifSeverity(level)
			if !ok {
				warnings = append(warnings, fmt.Sprintf(
					"security finding %s has unrecognized level %q, ranking below low", f.Rule, level))
			}
			f.Severity = severity
			if len(result.Locations) > 0 && result.Locations[0].PhysicalLocation != nil {
				phys := result.Locations[0].PhysicalLocation
				if phys.ArtifactLocation != nil && phys.ArtifactLocation.URI != nil {
					f.File = *phys.ArtifactLocation.URI
				}
				if phys.Region != nil && phys.Region.StartLine != nil {
					f.Line = *phys.Region.StartLine
				}
			}
			findings = append(findings, f)
		}
	}
	return findings, warnings, nil
}

func sarifSeverity(level string) (quality.Severity, bool) {
	switch level {
	case "error":
		return quality.SeverityHigh, true
	case "warning":
		return quality.SeverityMedium, true
	case "note", "none":
		return quality.SeverityLow, true
	}
	return quality.SeverityUnknown, false
}
