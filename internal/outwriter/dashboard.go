package outwriter

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"f1":       func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"lint":     func(v float64) string { return formatLintScore(v, func(f float64) string { return fmt.Sprintf("%.1f", f) }) },
	"label":    contract.GetPlainLabel,
	"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"badge": func(maintainability float64) string {
		switch {
		case maintainability < 40:
			return "critical"
		case maintainability < 60:
			return "high"
		case maintainability < 80:
			return "moderate"
		default:
			return "low"
		}
	},
	"issues": func(f schema.FileReview) int { return len(f.Issues) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Code Review: {{.Repository}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 64rem; color: #24292f; }
h1 { border-bottom: 1px solid #d0d7de; padding-bottom: .5rem; }
.summary { display: flex; gap: 1rem; flex-wrap: wrap; margin: 1rem 0; }
.chip { background: #f6f8fa; border: 1px solid #d0d7de; border-radius: 6px; padding: .5rem 1rem; }
.chip b { display: block; font-size: 1.3rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #d0d7de; padding: .4rem .6rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.badge { border-radius: 10px; padding: .1rem .6rem; color: #fff; font-size: .85rem; }
.badge.critical { background: #cf222e; }
.badge.high { background: #fb8500; }
.badge.moderate { background: #9a6700; }
.badge.low { background: #1a7f37; }
details { margin: .6rem 0; }
pre { background: #f6f8fa; padding: 1rem; border-radius: 6px; overflow-x: auto; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Code Review: {{.Repository}}</h1>
<p>Scanned {{datetime .ScanTime}}{{if .Model}} with {{.Model}}{{end}}</p>

<div class="summary">
<div class="chip"><b>{{f1 .QualityScore}}</b>quality score</div>
<div class="chip"><b>{{.FilesAnalyzed}}</b>files analyzed</div>
<div class="chip"><b>{{.TotalIssues}}</b>total issues</div>
<div class="chip"><b>{{.TotalLOC}}</b>lines of code</div>
<div class="chip"><b>{{f1 .AvgComplexity}}</b>avg complexity</div>
<div class="chip"><b>{{f1 .AvgMaintainability}}</b>avg maintainability</div>
</div>

<table>
<tr><th>File</th><th>LOC</th><th>CC</th><th>MI</th><th>Dup</th><th>Lint</th><th>Issues</th><th>Urgency</th></tr>
{{range .Files}}<tr>
<td>{{.Path}}</td>
<td>{{.Lines.Code}}</td>
<td>{{.Complexity}}</td>
<td>{{f1 .Maintainability}}</td>
<td>{{.Duplication}}</td>
<td>{{lint .LintScore}}</td>
<td>{{issues .}}</td>
<td><span class="badge {{badge .Maintainability}}">{{label .Maintainability}}</span></td>
</tr>
{{end}}</table>

{{range .Files}}{{if or .Issues .Suggestion}}<details>
<summary>{{.Path}}</summary>
{{if .Issues}}<ul>
{{range .Issues}}<li>{{if .Line}}[line {{.Line}}] {{end}}{{.Message}}</li>
{{end}}</ul>{{end}}
{{if .Suggestion}}<pre>{{.Suggestion}}</pre>{{end}}
</details>
{{end}}{{end}}
{{if .Skipped}}<h2>Skipped</h2>
<ul>{{range .Skipped}}<li>{{.Path}}: {{.Reason}}</li>{{end}}</ul>
{{end}}
</body>
</html>
`))

// WriteDashboard renders the static HTML viewer page for a report.
func WriteDashboard(report *schema.RepoReport, target string) error {
	return writeWithFile(target, func(w io.Writer) error {
		return dashboardTemplate.Execute(w, report)
	}, "Wrote dashboard")
}
