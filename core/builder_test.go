package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Owner:     "docu3c",
		Repo:      "autocodex",
		Model:     contract.DefaultModel,
		MaxFiles:  contract.DefaultMaxFiles,
		Languages: schema.AllLanguages,
		Rules:     schema.DefaultRuleSets(),
	}
}

// stubLinter is a minimal Linter for builder tests.
type stubLinter struct {
	available bool
	result    contract.LintResult
	err       error
}

func (s *stubLinter) Language() schema.Language { return schema.PythonLang }
func (s *stubLinter) Available() bool           { return s.available }
func (s *stubLinter) Run(context.Context, string, []byte) (contract.LintResult, error) {
	return s.result, s.err
}

func TestFileReviewBuilderMetrics(t *testing.T) {
	content := "def add(a: int, b: int) -> int:\n    return a + b\n"
	review := NewFileReviewBuilder(testConfig(), "calc.py", schema.PythonLang, content).
		MeasureMetrics().
		ApplyRules().
		Build()

	assert.Equal(t, "calc.py", review.Path)
	assert.Equal(t, schema.PythonLang, review.Language)
	assert.Len(t, review.ContentSHA, 64)
	assert.Equal(t, 2, review.Lines.Code)
	assert.Equal(t, 1, review.Complexity)
	assert.Greater(t, review.Maintainability, 0.0)
	assert.Equal(t, -1.0, review.LintScore)
	assert.Empty(t, review.Issues)
}

func TestFileReviewBuilderLinter(t *testing.T) {
	cfg := testConfig()
	cfg.LintTools = true
	ctx := context.Background()

	linter := &stubLinter{
		available: true,
		result: contract.LintResult{
			Score:  9.5,
			Issues: []schema.Issue{{Rule: "pylint:unused-import", Severity: schema.WarningSeverity}},
		},
	}

	review := NewFileReviewBuilder(cfg, "calc.py", schema.PythonLang, "x = 1\n").
		MeasureMetrics().
		ApplyRules().
		RunLinter(ctx, linter).
		Build()

	assert.Equal(t, 9.5, review.LintScore)
	assert.Len(t, review.Issues, 1)
}

func TestFileReviewBuilderLinterSkipped(t *testing.T) {
	cfg := testConfig()
	ctx := context.Background()

	// Lint disabled in config.
	review := NewFileReviewBuilder(cfg, "calc.py", schema.PythonLang, "x = 1\n").
		MeasureMetrics().
		RunLinter(ctx, &stubLinter{available: true, result: contract.LintResult{Score: 9}}).
		Build()
	assert.Equal(t, -1.0, review.LintScore)

	// Lint enabled but binary missing.
	cfg.LintTools = true
	review = NewFileReviewBuilder(cfg, "calc.py", schema.PythonLang, "x = 1\n").
		MeasureMetrics().
		RunLinter(ctx, &stubLinter{available: false}).
		Build()
	assert.Equal(t, -1.0, review.LintScore)

	// Linter failure leaves the score untouched.
	review = NewFileReviewBuilder(cfg, "calc.py", schema.PythonLang, "x = 1\n").
		MeasureMetrics().
		RunLinter(ctx, &stubLinter{available: true, err: errors.New("boom")}).
		Build()
	assert.Equal(t, -1.0, review.LintScore)
}

func TestFileReviewBuilderSuggestion(t *testing.T) {
	builder := NewFileReviewBuilder(testConfig(), "calc.py", schema.PythonLang, "x = 1\n").
		MeasureMetrics().
		ApplyRules()

	req := builder.SuggestionRequest()
	assert.Equal(t, "calc.py", req.Path)
	assert.Equal(t, schema.PythonLang, req.Language)
	assert.Equal(t, "x = 1\n", req.Content)

	review := builder.AttachSuggestion("use constants", true).Build()
	assert.Equal(t, "use constants", review.Suggestion)
	assert.True(t, review.Cached)
}
