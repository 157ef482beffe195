package outwriter

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// DefaultReportFile is where the markdown report lands unless overridden.
const DefaultReportFile = "code_review_report.md"

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"f2":       func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"lint":     func(v float64) string { return formatLintScore(v, func(f float64) string { return fmt.Sprintf("%.2f", f) }) },
	"datetime": func(t time.Time) string { return t.Format(time.RFC3339) },
}).Parse(`# Code Review Analysis Report

## Repository: {{.Repository}}
Analysis Date: {{datetime .ScanTime}}
{{- if .Model}}
Model: {{.Model}}
{{- end}}

## Overall Metrics
- Files Analyzed: {{.FilesAnalyzed}}
- Total Issues: {{.TotalIssues}}
- Total Lines of Code: {{.TotalLOC}}
- Average Complexity: {{f2 .AvgComplexity}}
- Average Maintainability: {{f2 .AvgMaintainability}}
- Quality Score: {{f2 .QualityScore}}/100

## Detailed Analysis

{{range .Files}}### {{.Path}}
Language: {{.Language}}

#### Metrics
- Lines of code: {{.Lines.Code}} (comments: {{.Lines.Comment}}, blank: {{.Lines.Blank}})
- Cyclomatic complexity: {{.Complexity}}
- Maintainability index: {{f2 .Maintainability}}
- Duplicate line pairs: {{.Duplication}}
- Lint score: {{lint .LintScore}}
{{- if .Issues}}

#### Issues
{{- range .Issues}}
- {{if .Line}}[line {{.Line}}] {{end}}{{.Message}}
{{- end}}
{{- end}}
{{- if .Suggestion}}

#### AI Suggestions
{{.Suggestion}}
{{- end}}

---

{{end}}{{- if .Skipped}}## Skipped Files

{{range .Skipped}}- {{.Path}}: {{.Reason}}
{{end}}{{- end}}`))

// WriteMarkdownReport renders the full markdown report to the configured
// report file. The report is the primary human deliverable of a review run.
func WriteMarkdownReport(report *schema.RepoReport, cfg *contract.Config) error {
	target := cfg.ReportFile
	if target == "" {
		target = DefaultReportFile
	}
	return writeWithFile(target, func(w io.Writer) error {
		return reportTemplate.Execute(w, report)
	}, "Wrote report")
}
