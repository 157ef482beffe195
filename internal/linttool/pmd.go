package linttool

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// pmdRuleset is the default quickstart ruleset shipped with PMD 7.
const pmdRuleset = "rulesets/java/quickstart.xml"

// pmdReport mirrors the shape of PMD's JSON report format.
type pmdReport struct {
	Files []struct {
		Filename   string `json:"filename"`
		Violations []struct {
			BeginLine   int    `json:"beginline"`
			Description string `json:"description"`
			Rule        string `json:"rule"`
			Priority    int    `json:"priority"`
		} `json:"violations"`
	} `json:"files"`
}

// PMDLinter runs PMD with JSON output on Java files.
type PMDLinter struct{}

// Language returns the language this linter handles.
func (p *PMDLinter) Language() schema.Language { return schema.JavaLang }

// Available reports whether the pmd binary is present on PATH.
func (p *PMDLinter) Available() bool {
	_, err := exec.LookPath("pmd")
	return err == nil
}

// Run lints the given file content and returns a normalized result.
func (p *PMDLinter) Run(ctx context.Context, path string, content []byte) (contract.LintResult, error) {
	tmpPath, cleanup, err := writeTempFile(path, content)
	if err != nil {
		return contract.LintResult{}, err
	}
	defer cleanup()

	out, err := runCommand(ctx, "pmd", "check", "-d", tmpPath, "-R", pmdRuleset, "-f", "json", "--no-progress")
	if err != nil {
		return contract.LintResult{}, err
	}
	return ParsePMDOutput(out)
}

// ParsePMDOutput converts a PMD JSON report into a LintResult. PMD has no
// native score, so violations reuse the pylint deduction scale.
func ParsePMDOutput(out []byte) (contract.LintResult, error) {
	var report pmdReport
	if len(out) > 0 {
		if err := json.Unmarshal(out, &report); err != nil {
			return contract.LintResult{}, fmt.Errorf("parse pmd output: %w", err)
		}
	}

	var result contract.LintResult
	total := 0
	for _, file := range report.Files {
		for _, v := range file.Violations {
			total++
			result.Issues = append(result.Issues, schema.Issue{
				Rule:     "pmd:" + v.Rule,
				Severity: pmdSeverity(v.Priority),
				Line:     v.BeginLine,
				Message:  v.Description,
			})
		}
	}
	result.Score = PylintScore(total)
	return result, nil
}

// pmdSeverity maps PMD priorities (1 highest .. 5 lowest) onto severities.
func pmdSeverity(priority int) schema.Severity {
	switch {
	case priority <= 2:
		return schema.ErrorSeverity
	case priority == 3:
		return schema.WarningSeverity
	default:
		return schema.InfoSeverity
	}
}
