package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quality-tools/qreport/internal/quality"
)

func TestParseLint(t *testing.T) {
	path := writeFixture(t, "ruff.json", `[
		{"code": "F401", "message": "unused import", "filename": "app.py", "location": {"row": 3}},
		{"message": "line too long", "severity": "low"}
	]`)

	findings, err := ParseLint(path)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	assert.Equal(t, quality.SourceLint, findings[0].Source)
	assert.Equal(t, "F401", findings[0].Rule)
	assert.Equal(t, "app.py", findings[0].File)
	assert.Equal(t, 3, findings[0].Line)
	assert.Equal(t, quality.SeverityUnknown, findings[0].Severity)

	assert.Equal(t, quality.SeverityLow, findings[1].Severity)
	assert.Empty(t, findings[1].File)
}

func TestParseLintEmptyList(t *testing.T) {
	path := writeFixture(t, "ruff.json", `[]`)
	findings, err := ParseLint(path)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestParseLintMalformedIsParseError(t *testing.T) {
	for name, content := range map[string]string{
		"not-json":      `{{{`,
		"not-a-list":    `{"message": "x"}`,
		"empty-file":    ``,
		"null-document": `null`,
	} {
		t.Run(name, func(t *testing.T) {
			path := writeFixture(t, "ruff.json", content)
			_, err := ParseLint(path)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseLintMissingMessageIsParseError(t *testing.T) {
	path := writeFixture(t, "ruff.json", `[{"code": "F401"}]`)
	_, err := ParseLint(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "no message")
}

func TestParseTypeCheckListTagsSource(t *testing.T) {
	path := writeFixture(t, "findings.json", `[{"message": "bad type"}]`)
	findings, err := ParseTypeCheckList(path)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, quality.SourceTypeCheck, findings[0].Source)
}
