package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Artifacts names the output paths for one run. ChartsPath is optional.
type Artifacts struct {
	ReportPath  string
	SummaryPath string
	OutputsPath string
	ChartsPath  string
}

// SaveResults writes the three run artifacts: the rendered report, the
// structured summary document mirroring the metrics and gate result, and
// the flat key=value outputs file. Rendering happened before this point, so
// either every artifact is written or none is; each individual write goes
// through a temp file and rename so a failed run never leaves a prior run's
// stale content mixed with new data.
func (re *ReportData) SaveResults(arts Artifacts, rendered []byte) error {
	summaryData, err := json.MarshalIndent(re, "", " ")
	if err != nil {
		return errors.Wrap(err, "marshaling summary document")
	}

	if err := writeFileAtomic(arts.ReportPath, rendered); err != nil {
		return errors.Wrap(err, "saving report")
	}
	if err := writeFileAtomic(arts.SummaryPath, summaryData); err != nil {
		return errors.Wrap(err, "saving summary document")
	}
	if err := writeFileAtomic(arts.OutputsPath, re.outputsFile(arts)); err != nil {
		return errors.Wrap(err, "saving outputs file")
	}
	if arts.ChartsPath != "" {
		if err := re.SaveCharts(arts.ChartsPath); err != nil {
			return errors.Wrap(err, "saving charts page")
		}
	}
	log.Infof("Results saved to %s", arts.ReportPath)
	return nil
}

// outputsFile builds the flat key=value document consumed by the invoking
// CI step's output-variable mechanism.
func (re *ReportData) outputsFile(arts Artifacts) []byte {
	var sb strings.Builder
	writeKV := func(k, v string) { fmt.Fprintf(&sb, "%s=%s\n", k, v) }
	writeBool := func(k string, v bool) { writeKV(k, fmt.Sprintf("%t", v)) }

	writeBool("overall_pass", re.Gates.OverallPass)
	writeBool("gate_tests", re.Gates.TestsGate)
	writeBool("gate_coverage", re.Gates.CoverageGate)
	writeBool("gate_lint", re.Gates.LintGate)
	writeBool("gate_type", re.Gates.TypeGate)
	writeBool("gate_security", re.Gates.SecurityGate)
	writeKV("coverage", fmt.Sprintf("%.2f", re.Coverage.Percent))
	writeKV("coverage_threshold", fmt.Sprintf("%d", re.Coverage.Threshold))
	writeKV("lint_findings", fmt.Sprintf("%d", re.Summary.LintFindings))
	writeKV("type_errors", fmt.Sprintf("%d", re.Summary.TypeErrors))
	writeKV("type_warnings", fmt.Sprintf("%d", re.Summary.TypeWarnings))
	writeKV("tests_total", fmt.Sprintf("%d", re.Summary.TestsTotal))
	writeKV("tests_failed", fmt.Sprintf("%d", re.Summary.TestsFailed))
	writeKV("tests_skipped", fmt.Sprintf("%d", re.Summary.TestsSkipped))
	writeKV("security_findings", fmt.Sprintf("%d", re.Summary.SecurityFindings))
	writeKV("report_file", arts.ReportPath)
	writeKV("summary_file", arts.SummaryPath)
	return []byte(sb.String())
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".qreport-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
