package schema

// RuleSet holds the per-language review thresholds and naming conventions.
// Thresholds follow common community defaults (PEP 8 derived for Python,
// typical checkstyle defaults for Java).
type RuleSet struct {
	MaxLineLength     int               `json:"max_line_length"`
	MaxFunctionLength int               `json:"max_function_length"`
	MaxComplexity     int               `json:"max_complexity"`
	MaxDuplication    int               `json:"max_duplication"` // duplicate line pairs before an issue is raised
	NamingConventions map[string]string `json:"naming_conventions"`
}

// Quality score weights. The repository score is a weighted blend of
// average complexity, average maintainability and issue density.
const (
	QualityWeightComplexity      = 0.3
	QualityWeightMaintainability = 0.3
	QualityWeightIssueDensity    = 0.4
)

// DefaultRuleSets returns the built-in rule sets keyed by language.
// Callers get a fresh copy each time so config overrides never leak
// between runs.
func DefaultRuleSets() map[Language]RuleSet {
	return map[Language]RuleSet{
		PythonLang: {
			MaxLineLength:     100,
			MaxFunctionLength: 50,
			MaxComplexity:     10,
			MaxDuplication:    10,
			NamingConventions: map[string]string{
				"class":    `^[A-Z][a-zA-Z0-9]*$`,
				"function": `^[a-z_][a-z0-9_]*$`,
				"constant": `^[A-Z][A-Z0-9_]*$`,
			},
		},
		JavaLang: {
			MaxLineLength:     120,
			MaxFunctionLength: 60,
			MaxComplexity:     15,
			MaxDuplication:    10,
			NamingConventions: map[string]string{
				"class":    `^[A-Z][a-zA-Z0-9]*$`,
				"method":   `^[a-z][a-zA-Z0-9]*$`,
				"constant": `^[A-Z][A-Z0-9_]*$`,
			},
		},
		GoLang: {
			MaxLineLength:     120,
			MaxFunctionLength: 60,
			MaxComplexity:     10,
			MaxDuplication:    10,
			NamingConventions: map[string]string{
				"function": `^[A-Za-z][A-Za-z0-9]*$`,
			},
		},
		JavaScriptLang: {
			MaxLineLength:     100,
			MaxFunctionLength: 50,
			MaxComplexity:     10,
			MaxDuplication:    10,
			NamingConventions: map[string]string{
				"class":    `^[A-Z][a-zA-Z0-9]*$`,
				"function": `^[a-z$_][a-zA-Z0-9$_]*$`,
				"constant": `^[A-Z][A-Z0-9_]*$`,
			},
		},
	}
}
