package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quality-tools/qreport/internal/quality"
)

func parseOutputs(t *testing.T, data []byte) map[string]string {
	t.Helper()
	kv := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		parts := strings.SplitN(line, "=", 2)
		require.Len(t, parts, 2, line)
		kv[parts[0]] = parts[1]
	}
	return kv
}

func TestSaveResults(t *testing.T) {
	re := buildReportData(t, func(in *quality.ParsedInputs) {
		in.TestOutcomes = append(in.TestOutcomes,
			quality.TestOutcome{Name: "t2", Status: quality.TestStatusFailed, Message: "boom"})
		in.SecurityFindings = []quality.Finding{
			{Source: quality.SourceSecurity, Severity: quality.SeverityMedium, Rule: "B101"},
		}
	})
	dir := t.TempDir()
	arts := Artifacts{
		ReportPath:  filepath.Join(dir, "report.md"),
		SummaryPath: filepath.Join(dir, "summary.json"),
		OutputsPath: filepath.Join(dir, "outputs.txt"),
	}
	rendered := []byte("# rendered report\n")

	require.NoError(t, re.SaveResults(arts, rendered))

	report, err := os.ReadFile(arts.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, rendered, report)

	summaryData, err := os.ReadFile(arts.SummaryPath)
	require.NoError(t, err)
	var summary ReportData
	require.NoError(t, json.Unmarshal(summaryData, &summary))
	assert.Equal(t, re.Gates, summary.Gates)
	assert.Equal(t, re.Summary, summary.Summary)

	outputsData, err := os.ReadFile(arts.OutputsPath)
	require.NoError(t, err)
	kv := parseOutputs(t, outputsData)
	assert.Equal(t, "false", kv["overall_pass"])
	assert.Equal(t, "false", kv["gate_tests"])
	assert.Equal(t, "true", kv["gate_coverage"])
	assert.Equal(t, "true", kv["gate_security"])
	assert.Equal(t, "90.00", kv["coverage"])
	assert.Equal(t, "80", kv["coverage_threshold"])
	assert.Equal(t, "2", kv["tests_total"])
	assert.Equal(t, "1", kv["tests_failed"])
	assert.Equal(t, "1", kv["security_findings"])
	assert.Equal(t, arts.ReportPath, kv["report_file"])
	assert.Equal(t, arts.SummaryPath, kv["summary_file"])

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSaveResultsOverwritesStaleArtifacts(t *testing.T) {
	re := buildReportData(t, nil)
	dir := t.TempDir()
	arts := Artifacts{
		ReportPath:  filepath.Join(dir, "report.md"),
		SummaryPath: filepath.Join(dir, "summary.json"),
		OutputsPath: filepath.Join(dir, "outputs.txt"),
	}
	require.NoError(t, os.WriteFile(arts.ReportPath, []byte("stale"), 0644))

	require.NoError(t, re.SaveResults(arts, []byte("fresh")))

	report, err := os.ReadFile(arts.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(report))
}

func TestSaveResultsWithCharts(t *testing.T) {
	re := buildReportData(t, func(in *quality.ParsedInputs) {
		in.LintFindings = []quality.Finding{
			{Source: quality.SourceLint, Severity: quality.SeverityLow, Message: "x"},
		}
		in.CoverageFiles = []quality.CoverageFile{{Path: "a.py", Percent: 40}}
	})
	dir := t.TempDir()
	arts := Artifacts{
		ReportPath:  filepath.Join(dir, "report.md"),
		SummaryPath: filepath.Join(dir, "summary.json"),
		OutputsPath: filepath.Join(dir, "outputs.txt"),
		ChartsPath:  filepath.Join(dir, "charts.html"),
	}

	require.NoError(t, re.SaveResults(arts, []byte("r")))

	charts, err := os.ReadFile(arts.ChartsPath)
	require.NoError(t, err)
	assert.Contains(t, string(charts), "<html")
}
