package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quality-tools/qreport/internal/quality"
)

func TestParseSecurityBandit(t *testing.T) {
	path := writeFixture(t, "bandit.json", `{
		"results": [
			{"filename": "app.py", "line_number": 12, "issue_severity": "HIGH",
			 "test_id": "B602", "issue_text": "subprocess with shell=True"},
			{"filename": "util.py", "line_number": 4, "issue_severity": "low",
			 "test_id": "B101", "issue_text": "assert used"}
		]
	}`)

	findings, warnings, err := ParseSecurity(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, findings, 2)

	assert.Equal(t, quality.SourceSecurity, findings[0].Source)
	assert.Equal(t, quality.SeverityHigh, findings[0].Severity)
	assert.Equal(t, "B602", findings[0].Rule)
	assert.Equal(t, 12, findings[0].Line)
	assert.Equal(t, quality.SeverityLow, findings[1].Severity)
}

func TestParseSecurityBanditEmptyResults(t *testing.T) {
	path := writeFixture(t, "bandit.json", `{"results": []}`)
	findings, warnings, err := ParseSecurity(path)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Empty(t, warnings)
}

func TestParseSecurityUnknownSeverityWarns(t *testing.T) {
	path := writeFixture(t, "bandit.json", `{
		"results": [{"test_id": "B999", "issue_severity": "CRITICAL", "issue_text": "x"}]
	}`)

	findings, warnings, err := ParseSecurity(path)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, quality.SeverityUnknown, findings[0].Severity)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "B999")
	assert.Contains(t, warnings[0], "CRITICAL")
}

func TestParseSecurityNoResultsListIsParseError(t *testing.T) {
	path := writeFixture(t, "bandit.json", `{"errors": []}`)
	_, _, err := ParseSecurity(path)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseSecuritySARIF(t *testing.T) {
	path := writeFixture(t, "scan.sarif", `{
		"version": "2.1.0",
		"$schema": "https://json.schemastore.org/sarif-2.1.0.json",
		"runs": [{
			"tool": {"driver": {"name": "semgrep"}},
			"results": [{
				"ruleId": "python.lang.security.audit.eval",
				"level": "error",
				"message": {"text": "eval of user input"},
				"locations": [{"physicalLocation": {
					"artifactLocation": {"uri": "web/views.py"},
					"region": {"startLine": 33}
				}}]
			}, {
				"ruleId": "generic.secrets",
				"level": "warning",
				"message": {"text": "possible secret"}
			}]
		}]
	}`)

	findings, warnings, err := ParseSecurity(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, findings, 2)

	assert.Equal(t, quality.SeverityHigh, findings[0].Severity)
	assert.Equal(t, "python.lang.security.audit.eval", findings[0].Rule)
	assert.Equal(t, "web/views.py", findings[0].File)
	assert.Equal(t, 33, findings[0].Line)
	assert.Equal(t, quality.SeverityMedium, findings[1].Severity)
}

func TestParseSecurityMalformedIsParseError(t *testing.T) {
	path := writeFixture(t, "bandit.json", `not json at all`)
	_, _, err := ParseSecurity(path)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}
