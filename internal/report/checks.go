/*
Checks implements the acceptance criteria evaluated over the metrics
snapshot.

Existing checks:
- QR-001: "Tests must pass"
- QR-002: "Coverage must meet the threshold"
- QR-003: "Lint findings must be empty"
- QR-004: "Type-check findings must be empty"
- QR-005: "Security findings must stay below the severity floor"
*/
package report

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/quality-tools/qreport/internal/quality"
)

type CheckResultName string

const (
	CheckResultNamePass CheckResultName = "pass"
	CheckResultNameFail CheckResultName = "fail"

	// CheckResultNameSkip marks an inapplicable gate. Skipped checks count
	// as passing in the overall verdict.
	CheckResultNameSkip CheckResultName = "skip"

	CheckIDTests    = "QR-001"
	CheckIDCoverage = "QR-002"
	CheckIDLint     = "QR-003"
	CheckIDType     = "QR-004"
	CheckIDSecurity = "QR-005"
)

type CheckResult struct {
	Name    CheckResultName `json:"result"`
	Target  string          `json:"want"`
	Actual  string          `json:"got"`
	Message string          `json:"message,omitempty"`
}

func (cr CheckResult) String() string {
	return string(cr.Name)
}

type Check struct {
	// ID is the unique identifier for the check.
	ID string `json:"id"`

	// Name is the short descriptive name reported for the check.
	Name string `json:"name"`

	Result CheckResult `json:"result"`

	Test func() CheckResult `json:"-"`
}

// CheckSummary aggregates the gate checks for one run.
type CheckSummary struct {
	Checks []*Check `json:"checks"`
}

func checkPass(want, got string) CheckResult {
	return CheckResult{Name: CheckResultNamePass, Target: want, Actual: got}
}

func checkFail(want, got string) CheckResult {
	return CheckResult{Name: CheckResultNameFail, Target: want, Actual: got}
}

func checkSkip(reason string) CheckResult {
	return CheckResult{Name: CheckResultNameSkip, Message: reason}
}

// NewCheckSummary builds the gate checks over the metrics snapshot and gate
// config. Nothing is executed until Run is called.
func NewCheckSummary(m quality.QualityMetrics, cfg GateConfig) *CheckSummary {
	checkSum := &CheckSummary{Checks: []*Check{}}

	checkSum.Checks = append(checkSum.Checks, &Check{
		ID:   CheckIDTests,
		Name: "Tests must pass",
		Test: func() CheckResult {
			if cfg.FailOnQuality == FailOnNone {
				return checkSkip("fail-on-quality is none")
			}
			counts := m.TestCounts()
			failed := counts.Failed + counts.Errored
			if failed > 0 {
				return checkFail("0 failed", fmt.Sprintf("%d failed", failed))
			}
			return checkPass("0 failed", "0 failed")
		},
	})
	checkSum.Checks = append(checkSum.Checks, &Check{
		ID:   CheckIDCoverage,
		Name: "Coverage must meet the threshold",
		Test: func() CheckResult {
			want := fmt.Sprintf(">=%d%%", cfg.CoverageThreshold)
			got := fmt.Sprintf("%.2f%%", m.Coverage.Percentage())
			if m.Coverage.Percentage() < float64(cfg.CoverageThreshold) {
				return checkFail(want, got)
			}
			return checkPass(want, got)
		},
	})
	checkSum.Checks = append(checkSum.Checks, &Check{
		ID:   CheckIDLint,
		Name: "Lint findings must be empty",
		Test: func() CheckResult {
			if cfg.FailOnQuality == FailOnNone {
				return checkSkip("fail-on-quality is none")
			}
			got := fmt.Sprintf("%d findings", len(m.LintFindings))
			if len(m.LintFindings) > 0 {
				return checkFail("0 findings", got)
			}
			return checkPass("0 findings", got)
		},
	})
	checkSum.Checks = append(checkSum.Checks, &Check{
		ID:   CheckIDType,
		Name: "Type-check findings must be empty",
		Test: func() CheckResult {
			if cfg.FailOnQuality == FailOnNone {
				return checkSkip("fail-on-quality is none")
			}
			got := fmt.Sprintf("%d findings", len(m.TypeFindings))
			if len(m.TypeFindings) > 0 {
				return checkFail("0 findings", got)
			}
			return checkPass("0 findings", got)
		},
	})
	checkSum.Checks = append(checkSum.Checks, &Check{
		ID:   CheckIDSecurity,
		Name: "Security findings must stay below the severity floor",
		Test: func() CheckResult {
			if !cfg.IncludeSecurity {
				return checkSkip("security scan not included")
			}
			floor := cfg.securityFloor()
			if floor == 0 {
				return checkSkip("fail-on-security is none")
			}
			want := fmt.Sprintf("no findings at or above %s", cfg.FailOnSecurity)
			for _, f := range m.SecurityFindings {
				if f.Severity.Rank() >= floor {
					return checkFail(want, fmt.Sprintf("%s finding %s", f.Severity, f.Rule))
				}
			}
			return checkPass(want, fmt.Sprintf("max severity %s", m.MaxSecuritySeverity()))
		},
	})
	return checkSum
}

// Run executes every check, storing the results.
func (cs *CheckSummary) Run() {
	for _, check := range cs.Checks {
		check.Result = check.Test()
		if check.Result.Name == CheckResultNameFail {
			log.Debugf("check failed: %s: want[%s] got[%s]", check.ID, check.Result.Target, check.Result.Actual)
		}
	}
}

// Get returns the check with the given ID, or nil.
func (cs *CheckSummary) Get(id string) *Check {
	for _, check := range cs.Checks {
		if check.ID == id {
			return check
		}
	}
	return nil
}

// GateResult is the per-gate outcome plus the overall verdict. A skipped
// (inapplicable) check reports its gate as passing.
type GateResult struct {
	TestsGate    bool `json:"testsGate"`
	CoverageGate bool `json:"coverageGate"`
	LintGate     bool `json:"lintGate"`
	TypeGate     bool `json:"typeGate"`
	SecurityGate bool `json:"securityGate"`
	OverallPass  bool `json:"overallPass"`
}

// Evaluate runs the gate checks against the snapshot and derives the gate
// result. It is a pure function of (metrics, config): identical inputs
// always produce an identical result.
func Evaluate(m quality.QualityMetrics, cfg GateConfig) (*CheckSummary, GateResult) {
	checkSum := NewCheckSummary(m, cfg)
	checkSum.Run()

	gatePassed := func(id string) bool {
		return checkSum.Get(id).Result.Name != CheckResultNameFail
	}
	result := GateResult{
		TestsGate:    gatePassed(CheckIDTests),
		CoverageGate: gatePassed(CheckIDCoverage),
		LintGate:     gatePassed(CheckIDLint),
		TypeGate:     gatePassed(CheckIDType),
		SecurityGate: gatePassed(CheckIDSecurity),
	}
	result.OverallPass = result.TestsGate && result.CoverageGate &&
		result.LintGate && result.TypeGate && result.SecurityGate
	return checkSum, result
}
