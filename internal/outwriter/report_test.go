package outwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownReportLayout(t *testing.T) {
	report := sampleReport()
	report.FilesAnalyzed = 2
	report.TotalIssues = 2
	report.TotalLOC = 200
	report.AvgComplexity = 8
	report.AvgMaintainability = 70.25
	report.QualityScore = 71.3

	var buf bytes.Buffer
	require.NoError(t, reportTemplate.Execute(&buf, report))
	out := buf.String()

	assert.Contains(t, out, "# Code Review Analysis Report")
	assert.Contains(t, out, "## Repository: docu3c/autocodex")
	assert.Contains(t, out, "Model: gemini-2.0-flash")
	assert.Contains(t, out, "## Overall Metrics")
	assert.Contains(t, out, "- Files Analyzed: 2")
	assert.Contains(t, out, "- Total Issues: 2")
	assert.Contains(t, out, "- Average Complexity: 8.00")
	assert.Contains(t, out, "- Quality Score: 71.30/100")
	assert.Contains(t, out, "## Detailed Analysis")
	assert.Contains(t, out, "### app/main.py")
	assert.Contains(t, out, "Language: python")
	assert.Contains(t, out, "#### Metrics")
	assert.Contains(t, out, "#### Issues")
	assert.Contains(t, out, "- [line 44] Line too long: 105 characters (max: 100)")
	assert.Contains(t, out, "#### AI Suggestions")
	assert.Contains(t, out, "Break process() into smaller functions.")
	assert.Contains(t, out, "---")
	assert.Contains(t, out, "## Skipped Files")
	assert.Contains(t, out, "- gen/huge.py: 403 rate limited")

	// Lint score for the java file shows as skipped.
	assert.Contains(t, out, "- Lint score: -\n")
	// The clean java file gets no issues section.
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("#### Issues")))
}

func TestWriteMarkdownReport(t *testing.T) {
	dir := t.TempDir()
	cfg := sampleConfig()
	cfg.ReportFile = filepath.Join(dir, "report.md")

	require.NoError(t, WriteMarkdownReport(sampleReport(), cfg))

	data, err := os.ReadFile(cfg.ReportFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Code Review Analysis Report")
}

func TestWriteDashboard(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dash.html")

	require.NoError(t, WriteDashboard(sampleReport(), target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "<title>Code Review: docu3c/autocodex</title>")
	assert.Contains(t, out, `class="badge high"`)
	assert.Contains(t, out, `class="badge low"`)
	assert.Contains(t, out, "Break process() into smaller functions.")
	assert.Contains(t, out, "gen/huge.py")
}
