// Package quality holds the normalized metric model shared by all result
// parsers, the gate evaluator and the report renderer. Every count exposed
// by QualityMetrics is derived from the underlying records so the snapshot
// can always be recomputed from its parts.
package quality

import "strings"

// Source identifies the tool category that reported a finding.
type Source string

const (
	SourceLint      Source = "lint"
	SourceTypeCheck Source = "type-check"
	SourceSecurity  Source = "security"
)

// Severity is the ordered scale used to compare security findings against
// the configured floor: unknown < low < medium < high.
type Severity string

const (
	SeverityUnknown Severity = "unknown"
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
)

var severityRank = map[Severity]int{
	SeverityUnknown: 0,
	SeverityLow:     1,
	SeverityMedium:  2,
	SeverityHigh:    3,
}

// Rank returns the position of the severity on the ordered scale.
// Unrecognized values rank below low.
func (s Severity) Rank() int {
	return severityRank[s]
}

// ParseSeverity normalizes a tool-specific severity string. The second
// return reports whether the value was recognized; callers record a warning
// for unrecognized values instead of rejecting the finding.
func ParseSeverity(raw string) (Severity, bool) {
	switch Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case SeverityLow:
		return SeverityLow, true
	case SeverityMedium:
		return SeverityMedium, true
	case SeverityHigh:
		return SeverityHigh, true
	}
	return SeverityUnknown, false
}

// Finding is one issue reported by a lint, type-check or security tool.
// Immutable once parsed.
type Finding struct {
	Source   Source   `json:"source"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule,omitempty"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}
