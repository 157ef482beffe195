package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

func TestBuildPromptIncludesMetricsAndCode(t *testing.T) {
	req := contract.SuggestionRequest{
		Path:            "src/app.py",
		Language:        schema.PythonLang,
		Content:         "def main():\n    pass\n",
		Lines:           schema.LineCount{Code: 42},
		Complexity:      7,
		Maintainability: 63.5,
		LintScore:       8.5,
		Issues: []schema.Issue{
			{Rule: "line-length", Severity: schema.WarningSeverity, Line: 12, Message: "line exceeds 100 characters"},
		},
	}

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "src/app.py")
	assert.Contains(t, prompt, "Complexity: 7")
	assert.Contains(t, prompt, "Maintainability: 63.5")
	assert.Contains(t, prompt, "LOC: 42")
	assert.Contains(t, prompt, "Lint score: 8.5/10")
	assert.Contains(t, prompt, "Line 12 [line-length]")
	assert.Contains(t, prompt, "def main():")
	// Language guidelines are numbered
	assert.Contains(t, prompt, "1. Follow PEP 8 style conventions")
}

func TestBuildPromptPerLanguageGuidelines(t *testing.T) {
	tests := []struct {
		language schema.Language
		expected string
	}{
		{schema.JavaLang, "Override hashCode when overriding equals"},
		{schema.PythonLang, "Avoid mutable default arguments"},
		{schema.GoLang, "Accept interfaces, return structs"},
		{schema.JavaScriptLang, "Use const and let, never var"},
	}

	for _, tt := range tests {
		t.Run(string(tt.language), func(t *testing.T) {
			prompt := BuildPrompt(contract.SuggestionRequest{
				Path:     "file",
				Language: tt.language,
				Content:  "code",
			})
			assert.Contains(t, prompt, tt.expected)
		})
	}
}

func TestBuildPromptOmitsEmptySections(t *testing.T) {
	prompt := BuildPrompt(contract.SuggestionRequest{
		Path:     "main.go",
		Language: schema.GoLang,
		Content:  "package main",
	})

	assert.NotContains(t, prompt, "Lint score")
	assert.NotContains(t, prompt, "Static analysis already flagged")
}
