package contract

import (
	"strings"
	"testing"

	"github.com/docu3c/autocodex/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "rock bottom maintainability",
			input:    0.0,
			expected: CriticalValue,
		},
		{
			name:     "just before high",
			input:    39.9,
			expected: CriticalValue,
		},
		{
			name:     "exactly high",
			input:    40.0,
			expected: HighValue,
		},
		{
			name:     "just before moderate",
			input:    59.9,
			expected: HighValue,
		},
		{
			name:     "exactly moderate",
			input:    60.0,
			expected: ModerateValue,
		},
		{
			name:     "just before low",
			input:    79.9,
			expected: ModerateValue,
		},
		{
			name:     "exactly low",
			input:    80.0,
			expected: LowValue,
		},
		{
			name:     "perfect maintainability",
			input:    100.0,
			expected: LowValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name            string
		maintainability float64
		label           string
	}{
		{"critical", 20, CriticalValue},
		{"high", 50, HighValue},
		{"moderate", 70, ModerateValue},
		{"low", 90, LowValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.maintainability)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSuggestionCacheKey(t *testing.T) {
	key := SuggestionCacheKey("gemini-2.0-flash", schema.PythonLang, "print('hi')")
	assert.Len(t, key, 64)
	assert.Equal(t, key, SuggestionCacheKey("gemini-2.0-flash", schema.PythonLang, "print('hi')"))

	// Any component change must change the key
	assert.NotEqual(t, key, SuggestionCacheKey("gemini-1.5-flash", schema.PythonLang, "print('hi')"))
	assert.NotEqual(t, key, SuggestionCacheKey("gemini-2.0-flash", schema.JavaLang, "print('hi')"))
	assert.NotEqual(t, key, SuggestionCacheKey("gemini-2.0-flash", schema.PythonLang, "print('bye')"))
}

func TestShouldIgnore(t *testing.T) {
	excludes := []string{"vendor/", ".min.js", "node_modules", "*.generated.py"}

	tests := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"vendor prefix", "vendor/lib/util.py", true},
		{"minified suffix", "static/app.min.js", true},
		{"substring", "web/node_modules/pkg/index.js", true},
		{"glob on base name", "gen/models.generated.py", true},
		{"plain source file", "src/app.py", false},
		{"vendor not at prefix", "src/vendored.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ignore, ShouldIgnore(tt.path, excludes))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	long := "internal/some/deeply/nested/package/file.py"
	short := TruncatePath(long, 20)
	assert.Len(t, short, 20)
	assert.True(t, strings.HasPrefix(short, "..."))
	assert.True(t, strings.HasSuffix(short, "file.py"))

	assert.Equal(t, "a/b.py", TruncatePath("a/b.py", 20))
	assert.Equal(t, long, TruncatePath(long, 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
