package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dtnitsch/styleguide-audit/models"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"categories": func() []models.Category { return models.Categories },
	"severities": func() []models.Severity { return models.Severities },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Style Guide Audit</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: .3rem .6rem; text-align: left; }
.compliant { color: #1a7f37; } .needs-review { color: #9a6700; } .needs-fixes { color: #cf222e; }
</style>
</head>
<body>
<h1>Style Guide Audit</h1>
<p>Generated {{.Summary.GeneratedAt}}</p>
<table>
<tr><th>Pages</th><th>With issues</th><th>Issues</th><th>Average score</th></tr>
<tr><td>{{.Summary.TotalPages}}</td><td>{{.Summary.PagesWithIssues}}</td><td>{{.Summary.TotalIssues}}</td><td>{{.Summary.AverageScore}}</td></tr>
</table>
<h2>Issues by category</h2>
<ul>{{range categories}}<li>{{.}}: {{index $.Summary.IssuesByCategory .}}</li>{{end}}</ul>
<h2>Issues by severity</h2>
<ul>{{range severities}}<li>{{.}}: {{index $.Summary.IssuesBySeverity .}}</li>{{end}}</ul>
{{range .Pages}}
<h2>{{.FilePath}}</h2>
<p class="{{.Status}}">{{.Status}} (score {{.Score}}, {{.IssueCount}} issues)</p>
{{if .Issues}}<table>
<tr><th>Line</th><th>Severity</th><th>Rule</th><th>Message</th><th>Recommendation</th></tr>
{{range .Issues}}<tr><td>{{.Line}}</td><td>{{.Severity}}</td><td>{{.RuleID}}</td><td>{{.Message}}</td><td>{{.Recommendation}}</td></tr>
{{end}}</table>{{end}}
{{end}}
{{if .Fixes}}<h2>Fixes</h2>
<ul>{{range .Fixes}}<li>{{.FilePath}}: {{len .Fixed}} fixed, {{len .Unfixed}} unfixed</li>{{end}}</ul>{{end}}
</body>
</html>
`))

func renderHTML(rep Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, rep); err != nil {
		return nil, fmt.Errorf("error rendering html report: %w", err)
	}
	return buf.Bytes(), nil
}
