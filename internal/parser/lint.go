package parser

import (
	"encoding/json"

	"github.com/quality-tools/qreport/internal/quality"
)

// lintEntry is the expected shape of one lint finding (ruff-style JSON).
// Only the message is required; everything else is optional and defaulted.
type lintEntry struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Filename string `json:"filename"`
	Location *struct {
		Row int `json:"row"`
	} `json:"location"`
}

// ParseLint reads a lint findings file: a JSON array of finding objects.
func ParseLint(path string) ([]quality.Finding, error) {
	return parseFindingList(path, quality.SourceLint)
}

// ParseTypeCheckList reads findings with the same list shape as lint but
// tagged with the type-check source. Used for tools that emit a flat list
// instead of the pyright report document.
func ParseTypeCheckList(path string) ([]quality.Finding, error) {
	return parseFindingList(path, quality.SourceTypeCheck)
}

func parseFindingList(path string, source quality.Source) ([]quality.Finding, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var entries []lintEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, parseErrorf(path, "expected a JSON list of findings: %v", err)
	}
	// A null document is not an empty findings list.
	if entries == nil {
		return nil, parseErrorf(path, "findings document is null")
	}
	findings := make([]quality.Finding, 0, len(entries))
	for i, e := range entries {
		if e.Message == "" {
			return nil, parseErrorf(path, "finding %d has no message", i)
		}
		severity := quality.SeverityUnknown
		if e.Severity != "" {
			severity, _ = quality.ParseSeverity(e.Severity)
		}
		f := quality.Finding{
			Source:   source,
			Severity: severity,
			Rule:     e.Code,
			File:     e.Filename,
			Message:  e.Message,
		}
		if e.Location != nil {
			f.Line = e.Location.Row
		}
		findings = append(findings, f)
	}
	return findings, nil
}
