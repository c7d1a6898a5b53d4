package report

import (
	"bytes"
	"os"
	"text/template"

	"github.com/pkg/errors"

	vfs "github.com/quality-tools/qreport/internal/assets"
)

// DefaultTemplatePath is the embedded report template used when no
// template file is supplied.
const DefaultTemplatePath = "data/templates/report/comment.md.tmpl"

// LoadTemplate reads the report template from the given path, or the
// embedded default when the path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		data, err := vfs.GetData().ReadFile(DefaultTemplatePath)
		if err != nil {
			return "", errors.Wrap(err, "reading embedded report template")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading report template %s", path)
	}
	return string(data), nil
}

// Render formats the report data through the template. The template sees a
// map of named sections and missingkey=error is set, so a placeholder that
// names nothing in the data is a configuration error, never a silent blank.
// All numbers originate from the report data; templates only format.
func (re *ReportData) Render(templateText string) ([]byte, error) {
	tmpl, err := template.New("report").
		Option("missingkey=error").
		Funcs(template.FuncMap{"badge": badge}).
		Parse(templateText)
	if err != nil {
		return nil, errors.Wrap(err, "parsing report template")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, re.templateContext()); err != nil {
		return nil, errors.Wrap(err, "rendering report template")
	}
	return buf.Bytes(), nil
}

func (re *ReportData) templateContext() map[string]interface{} {
	return map[string]interface{}{
		"summary":    re.Summary,
		"gates":      re.Gates,
		"checks":     re.Checks,
		"lint":       re.Lint,
		"type_check": re.Type,
		"security":   re.Security,
		"tests":      re.Tests,
		"coverage":   re.Coverage,
		"commands":   re.Commands,
		"warnings":   re.Warnings,
	}
}

func badge(pass bool) string {
	if pass {
		return "✅ pass"
	}
	return "❌ fail"
}
