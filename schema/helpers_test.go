package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLanguageForPath checks extension to language resolution.
func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Language
		ok       bool
	}{
		{"python file", "src/app.py", PythonLang, true},
		{"java file", "src/main/Service.java", JavaLang, true},
		{"go file", "internal/core/analysis.go", GoLang, true},
		{"jsx file", "web/App.jsx", JavaScriptLang, true},
		{"uppercase extension", "LEGACY.PY", PythonLang, true},
		{"unsupported", "README.md", "", false},
		{"no extension", "Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, ok := LanguageForPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, lang)
			}
		})
	}
}

// TestLineCountTotal validates the line split total.
func TestLineCountTotal(t *testing.T) {
	lc := LineCount{Code: 10, Comment: 3, Blank: 2}
	assert.Equal(t, 15, lc.Total())
}

// TestFormatLanguages validates display formatting.
func TestFormatLanguages(t *testing.T) {
	assert.Equal(t, "python,java", FormatLanguages([]Language{PythonLang, JavaLang}))
	assert.Empty(t, FormatLanguages(nil))
}

// TestWorstSeverity covers severity ordering.
func TestWorstSeverity(t *testing.T) {
	assert.Equal(t, InfoSeverity, WorstSeverity(nil))
	assert.Equal(t, WarningSeverity, WorstSeverity([]Issue{
		{Severity: InfoSeverity},
		{Severity: WarningSeverity},
	}))
	assert.Equal(t, ErrorSeverity, WorstSeverity([]Issue{
		{Severity: WarningSeverity},
		{Severity: ErrorSeverity},
		{Severity: InfoSeverity},
	}))
}

// TestDefaultRuleSets verifies each language carries a complete rule set
// and that returned maps are independent copies.
func TestDefaultRuleSets(t *testing.T) {
	rules := DefaultRuleSets()
	for _, lang := range AllLanguages {
		rs, ok := rules[lang]
		assert.True(t, ok, "missing rule set for %s", lang)
		assert.Positive(t, rs.MaxLineLength)
		assert.Positive(t, rs.MaxFunctionLength)
		assert.Positive(t, rs.MaxComplexity)
		assert.NotEmpty(t, rs.NamingConventions)
	}

	rules[PythonLang] = RuleSet{MaxComplexity: 1}
	fresh := DefaultRuleSets()
	assert.Equal(t, 10, fresh[PythonLang].MaxComplexity)
}

// TestCountBySeverity tallies issues correctly.
func TestCountBySeverity(t *testing.T) {
	counts := CountBySeverity([]Issue{
		{Severity: WarningSeverity},
		{Severity: WarningSeverity},
		{Severity: ErrorSeverity},
	})
	assert.Equal(t, 2, counts[WarningSeverity])
	assert.Equal(t, 1, counts[ErrorSeverity])
	assert.Zero(t, counts[InfoSeverity])
}
