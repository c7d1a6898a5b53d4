package report

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/quality-tools/qreport/internal/quality"
)

// maxChartFiles caps the per-file coverage bars so huge diffs stay legible.
const maxChartFiles = 30

// SaveCharts renders the optional charts page: findings by severity and
// per-file coverage against the threshold.
func (re *ReportData) SaveCharts(path string) error {
	page := components.NewPage()
	page.AddCharts(re.severityChart(), re.coverageChart())

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

func (re *ReportData) severityChart() *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "Findings by severity",
	}))
	severities := []quality.Severity{
		quality.SeverityUnknown,
		quality.SeverityLow,
		quality.SeverityMedium,
		quality.SeverityHigh,
	}
	axis := make([]string, 0, len(severities))
	for _, s := range severities {
		axis = append(axis, string(s))
	}
	bar.SetXAxis(axis).
		AddSeries("lint", severitySeries(re.Lint.Findings, severities)).
		AddSeries("type-check", severitySeries(re.Type.Findings, severities)).
		AddSeries("security", severitySeries(re.Security.Findings, severities))
	return bar
}

func severitySeries(findings []quality.Finding, severities []quality.Severity) []opts.BarData {
	series := make([]opts.BarData, 0, len(severities))
	for _, s := range severities {
		series = append(series, opts.BarData{Value: countSeverity(findings, s)})
	}
	return series
}

func (re *ReportData) coverageChart() *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Coverage per file",
		Subtitle: "files below the configured threshold",
	}))
	files := re.Coverage.BelowThreshold
	if len(files) > maxChartFiles {
		files = files[:maxChartFiles]
	}
	axis := make([]string, 0, len(files))
	series := make([]opts.BarData, 0, len(files))
	for _, f := range files {
		axis = append(axis, f.Path)
		series = append(series, opts.BarData{Value: f.Percent})
	}
	bar.SetXAxis(axis).AddSeries("percent covered", series)
	return bar
}
