package quality

// CoverageMetric holds the line-coverage totals for the whole build.
type CoverageMetric struct {
	CoveredLines int `json:"coveredLines"`
	TotalLines   int `json:"totalLines"`
}

// Percentage returns covered/total*100, or 0 when no lines were measured.
func (c CoverageMetric) Percentage() float64 {
	if c.TotalLines == 0 {
		return 0
	}
	return float64(c.CoveredLines) / float64(c.TotalLines) * 100
}

// CoverageFile is the per-file coverage summary used to list files below
// the configured threshold in the report.
type CoverageFile struct {
	Path         string  `json:"path"`
	Percent      float64 `json:"percent"`
	MissingLines []int   `json:"missingLines,omitempty"`
}
