package parser

import (
	"encoding/json"

	"github.com/quality-tools/qreport/internal/quality"
)

// pyrightReport is the expected shape of the type-check findings file
// (pyright-style report document).
type pyrightReport struct {
	GeneralDiagnostics []pyrightDiagnostic `json:"generalDiagnostics"`
}

type pyrightDiagnostic struct {
	File     string `json:"file"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Range    *struct {
		Start struct {
			Line int `json:"line"`
		} `json:"start"`
	} `json:"range"`
}

// ParseTypeCheck reads a type-check report document and normalizes its
// diagnostics. Tool severities map onto the ordered scale: error is high,
// warning is medium, information and hint are low. Diagnostic line numbers
// are 0-based in the input and reported 1-based.
func ParseTypeCheck(path string) ([]quality.Finding, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var report pyrightReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, parseErrorf(path, "expected a type-check report document: %v", err)
	}
	// An absent or null diagnostics list is not a clean report.
	if report.GeneralDiagnostics == nil {
		return nil, parseErrorf(path, "type-check report has no diagnostics list")
	}
	findings := make([]quality.Finding, 0, len(report.GeneralDiagnostics))
	for i, d := range report.GeneralDiagnostics {
		if d.Message == "" {
			return nil, parseErrorf(path, "diagnostic %d has no message", i)
		}
		f := quality.Finding{
			Source:   quality.SourceTypeCheck,
			Severity: typeCheckSeverity(d.Severity),
			Rule:     d.Rule,
			File:     d.File,
			Message:  d.Message,
		}
		if d.Range != nil {
			f.Line = d.Range.Start.Line + 1
		}
		findings = append(findings, f)
	}
	return findings, nil
}

func typeCheckSeverity(raw string) quality.Severity {
	switch raw {
	case "error":
		return quality.SeverityHigh
	case "warning":
		return quality.SeverityMedium
	case "information", "hint":
		return quality.SeverityLow
	}
	return quality.SeverityUnknown
}
