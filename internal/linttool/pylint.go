package linttool

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// pylintMessage mirrors one entry of pylint's JSON output.
type pylintMessage struct {
	Type    string `json:"type"`
	Line    int    `json:"line"`
	Message string `json:"message"`
	Symbol  string `json:"symbol"`
}

// PylintLinter runs pylint with JSON output on Python files.
type PylintLinter struct{}

// Language returns the language this linter handles.
func (p *PylintLinter) Language() schema.Language { return schema.PythonLang }

// Available reports whether the pylint binary is present on PATH.
func (p *PylintLinter) Available() bool {
	_, err := exec.LookPath("pylint")
	return err == nil
}

// Run lints the given file content and returns a normalized result.
func (p *PylintLinter) Run(ctx context.Context, path string, content []byte) (contract.LintResult, error) {
	tmpPath, cleanup, err := writeTempFile(path, content)
	if err != nil {
		return contract.LintResult{}, err
	}
	defer cleanup()

	out, err := runCommand(ctx, "pylint", "--output-format=json", tmpPath)
	if err != nil {
		return contract.LintResult{}, err
	}
	return ParsePylintOutput(out)
}

// ParsePylintOutput converts pylint JSON output into a LintResult. The score
// follows pylint's own convention of starting at 10 and deducting per message.
func ParsePylintOutput(out []byte) (contract.LintResult, error) {
	var messages []pylintMessage
	if len(out) > 0 {
		if err := json.Unmarshal(out, &messages); err != nil {
			return contract.LintResult{}, fmt.Errorf("parse pylint output: %w", err)
		}
	}

	result := contract.LintResult{Score: PylintScore(len(messages))}
	for _, msg := range messages {
		result.Issues = append(result.Issues, schema.Issue{
			Rule:     "pylint:" + msg.Symbol,
			Severity: pylintSeverity(msg.Type),
			Line:     msg.Line,
			Message:  msg.Message,
		})
	}
	return result, nil
}

// PylintScore maps a message count onto the 0..10 pylint scale.
func PylintScore(messageCount int) float64 {
	score := 10.0 - 0.1*float64(messageCount)
	if score < 0 {
		return 0
	}
	return score
}

func pylintSeverity(msgType string) schema.Severity {
	switch msgType {
	case "error", "fatal":
		return schema.ErrorSeverity
	case "warning":
		return schema.WarningSeverity
	default: // convention, refactor, info
		return schema.InfoSeverity
	}
}
