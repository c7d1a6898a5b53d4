package parser

import (
	"encoding/json"
	"sort"

	"github.com/quality-tools/qreport/internal/quality"
)

// coverageReport is the expected shape of the coverage data file
// (coverage.py-style JSON). Totals may be pre-aggregated or, when the
// counters are absent there, summed from the per-file summaries.
type coverageReport struct {
	Totals *coverageSummary             `json:"totals"`
	Files  map[string]coverageFileEntry `json:"files"`
}

type coverageSummary struct {
	CoveredLines   *int     `json:"covered_lines"`
	NumStatements  *int     `json:"num_statements"`
	PercentCovered *float64 `json:"percent_covered"`
}

type coverageFileEntry struct {
	Summary      *coverageSummary `json:"summary"`
	MissingLines []int            `json:"missing_lines"`
}

// ParseCoverage reads the coverage data file. The returned metric carries
// the covered/total line counters; the percentage is always derived from
// them, never read from the input.
func ParseCoverage(path string) (quality.CoverageMetric, []quality.CoverageFile, error) {
	data, err := readInput(path)
	if err != nil {
		return quality.CoverageMetric{}, nil, err
	}
	var report coverageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return quality.CoverageMetric{}, nil, parseErrorf(path, "expected a coverage report document: %v", err)
	}
	if report.Totals == nil {
		return quality.CoverageMetric{}, nil, parseErrorf(path, "coverage report has no totals")
	}

	files := make([]quality.CoverageFile, 0, len(report.Files))
	for fp, entry := range report.Files {
		if entry.Summary == nil || entry.Summary.PercentCovered == nil {
			return quality.CoverageMetric{}, nil, parseErrorf(path, "coverage entry for %s has no summary", fp)
		}
		files = append(files, quality.CoverageFile{
			Path:         fp,
			Percent:      *entry.Summary.PercentCovered,
			MissingLines: entry.MissingLines,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	metric := quality.CoverageMetric{}
	switch {
	case report.Totals.CoveredLines != nil && report.Totals.NumStatements != nil:
		metric.CoveredLines = *report.Totals.CoveredLines
		metric.TotalLines = *report.Totals.NumStatements
	case len(report.Files) > 0:
		for fp, entry := range report.Files {
			if entry.Summary.CoveredLines == nil || entry.Summary.NumStatements == nil {
				return quality.CoverageMetric{}, nil, parseErrorf(path, "coverage entry for %s has no line counters", fp)
			}
			metric.CoveredLines += *entry.Summary.CoveredLines
			metric.TotalLines += *entry.Summary.NumStatements
		}
	default:
		return quality.CoverageMetric{}, nil, parseErrorf(path, "coverage totals have no line counters")
	}
	return metric, files, nil
}
