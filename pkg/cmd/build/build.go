// Package build implements the core operation: parse every tool result
// file, aggregate the metrics snapshot, evaluate the gates, render the
// report and emit the run artifacts. The process exits 0 iff the overall
// verdict passes; that exit code is the only authoritative signal to the
// invoking pipeline.
package build

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quality-tools/qreport/internal/metrics"
	"github.com/quality-tools/qreport/internal/parser"
	"github.com/quality-tools/qreport/internal/quality"
	"github.com/quality-tools/qreport/internal/report"
)

type Input struct {
	lintPath     string
	typePath     string
	testsPath    string
	coveragePath string
	securityPath string
	commandsPath string
	templatePath string
	configPath   string

	reportPath  string
	summaryPath string
	outputsPath string
	chartsPath  string

	coverageThreshold int
	failOnQuality     string
	failOnSecurity    string
	includeSecurity   bool
}

func NewCmdBuild() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the aggregated quality report and evaluate the gates.",
		Run: func(cmd *cobra.Command, args []string) {
			pass, err := processInputs(&data)
			if err != nil {
				log.Error(errors.Wrap(err, "could not build quality report"))
				os.Exit(1)
			}
			if !pass {
				log.Error("quality gates failed")
				os.Exit(1)
			}
			log.Info("quality gates passed")
		},
	}

	cmd.Flags().StringVar(&data.lintPath, "lint", "", "Lint findings file (JSON list).")
	cmd.Flags().StringVar(&data.typePath, "type-check", "", "Type-check findings file (JSON report document).")
	cmd.Flags().StringVar(&data.testsPath, "tests", "", "Test results file (JUnit XML).")
	cmd.Flags().StringVar(&data.coveragePath, "coverage", "", "Coverage data file (JSON totals).")
	cmd.Flags().StringVar(&data.securityPath, "security", "", "Security findings file (bandit JSON or SARIF).")
	cmd.Flags().StringVar(&data.commandsPath, "commands", "", "Command status file (tab-separated rows).")
	cmd.Flags().StringVar(&data.templatePath, "template", "", "Report template file. Defaults to the embedded comment template.")
	cmd.Flags().StringVar(&data.configPath, "config", "", "Optional YAML file overriding gate parameters.")

	cmd.Flags().StringVar(&data.reportPath, "output", "", "Path for the rendered report document.")
	cmd.Flags().StringVar(&data.summaryPath, "summary", "", "Path for the structured summary document.")
	cmd.Flags().StringVar(&data.outputsPath, "outputs", "", "Path for the flat key=value outputs file.")
	cmd.Flags().StringVar(&data.chartsPath, "save-charts", "", "Optional path for an HTML charts page.")

	defaults := report.DefaultGateConfig()
	cmd.Flags().IntVar(&data.coverageThreshold, "coverage-threshold", defaults.CoverageThreshold,
		"Coverage gate boundary, in percent. Exactly at the threshold passes.")
	cmd.Flags().StringVar(&data.failOnQuality, "fail-on-quality", defaults.FailOnQuality,
		"Arm the lint/type/tests gates: one of [none any].")
	cmd.Flags().StringVar(&data.failOnSecurity, "fail-on-security", defaults.FailOnSecurity,
		"Security gate severity floor: one of [none low medium high].")
	cmd.Flags().BoolVar(&data.includeSecurity, "include-security", defaults.IncludeSecurity,
		"Whether the security gate runs at all.")

	return cmd
}

// processInputs runs the pipeline: parse, aggregate, evaluate, render,
// emit. Any fatal error aborts before the first artifact is written so a
// broken run never leaves misleading partial outputs.
func processInputs(in *Input) (bool, error) {
	timers := metrics.NewTimers()
	timers.Add("build-total")

	cfg := report.GateConfig{
		CoverageThreshold: in.coverageThreshold,
		FailOnQuality:     in.failOnQuality,
		FailOnSecurity:    in.failOnSecurity,
		IncludeSecurity:   in.includeSecurity,
	}
	if in.configPath != "" {
		if err := cfg.ApplyFile(in.configPath); err != nil {
			return false, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	for _, out := range []struct{ name, path string }{
		{"--output", in.reportPath},
		{"--summary", in.summaryPath},
		{"--outputs", in.outputsPath},
	} {
		if out.path == "" {
			return false, errors.Errorf("%s is required", out.name)
		}
	}

	// Resolve the template before touching the inputs so a broken
	// template configuration aborts as early as possible.
	templateText, err := report.LoadTemplate(in.templatePath)
	if err != nil {
		return false, err
	}

	timers.Set("build-parse")
	parsed, err := parseInputs(in)
	if err != nil {
		return false, err
	}

	timers.Set("build-evaluate")
	snapshot := quality.Aggregate(*parsed)
	checks, gates := report.Evaluate(snapshot, cfg)
	timers.Set("build-render")
	timers.Add("build-total")

	re := report.NewReportData(snapshot, cfg, checks, gates, timers)
	rendered, err := re.Render(templateText)
	if err != nil {
		return false, err
	}

	err = re.SaveResults(report.Artifacts{
		ReportPath:  in.reportPath,
		SummaryPath: in.summaryPath,
		OutputsPath: in.outputsPath,
		ChartsPath:  in.chartsPath,
	}, rendered)
	if err != nil {
		return false, err
	}
	return gates.OverallPass, nil
}

func parseInputs(in *Input) (*quality.ParsedInputs, error) {
	parsed := &quality.ParsedInputs{}
	var err error

	if parsed.LintFindings, err = parser.ParseLint(in.lintPath); err != nil {
		return nil, err
	}
	if parsed.TypeFindings, err = parser.ParseTypeCheck(in.typePath); err != nil {
		return nil, err
	}
	if parsed.TestOutcomes, err = parser.ParseJUnit(in.testsPath); err != nil {
		return nil, err
	}
	if parsed.Coverage, parsed.CoverageFiles, err = parser.ParseCoverage(in.coveragePath); err != nil {
		return nil, err
	}
	if parsed.CommandStatuses, err = parser.ParseCommands(in.commandsPath); err != nil {
		return nil, err
	}

	// The security findings file is required while the security gate is
	// active. With the gate excluded the file is still parsed when given,
	// so the report shows the findings without blocking on them.
	if in.securityPath == "" && !in.includeSecurity {
		return parsed, nil
	}
	findings, warnings, err := parser.ParseSecurity(in.securityPath)
	if err != nil {
		return nil, err
	}
	parsed.SecurityFindings = findings
	parsed.Warnings = warnings
	return parsed, nil
}
