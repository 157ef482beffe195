package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docu3c/autocodex/schema"
)

// Identifier declaration patterns used for naming-convention checks.
var declPatterns = map[schema.Language]map[string]*regexp.Regexp{
	schema.PythonLang: {
		"class":    regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`),
		"function": regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)`),
	},
	schema.JavaLang: {
		"class":  regexp.MustCompile(`^\s*(?:public\s+|final\s+|abstract\s+)*class\s+([A-Za-z_]\w*)`),
		"method": regexp.MustCompile(`^\s*(?:public|private|protected)[\w\s<>\[\],]*\s([A-Za-z_]\w*)\s*\([^)]*\)\s*\{`),
	},
	schema.GoLang: {
		"function": regexp.MustCompile(`^func\s+(?:\([^)]*\)\s+)?([A-Za-z_]\w*)`),
	},
	schema.JavaScriptLang: {
		"class":    regexp.MustCompile(`^\s*class\s+([A-Za-z_$]\w*)`),
		"function": regexp.MustCompile(`^\s*(?:async\s+)?function\s+([A-Za-z_$]\w*)`),
	},
}

var (
	pythonUnsafeCall = regexp.MustCompile(`\b(eval|exec)\s*\(`)
	pythonDefLine    = regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(([^)]*)\)\s*(->)?`)
	javaTryOpen      = regexp.MustCompile(`\btry\s*\{`)
	javaTryResource  = regexp.MustCompile(`\btry\s*\(`)
	javaField        = regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:static\s+)?([\w<>\[\],\s]+?)\s+([A-Za-z_]\w*)\s*(?:=.*)?;`)
	javaClassDecl    = regexp.MustCompile(`(?m)^\s*(?:public\s+|final\s+|abstract\s+)*class\s+[A-Za-z_]\w*`)
)

// RunRules evaluates the threshold and style rules against a file and
// returns the findings. Complexity and duplication arrive precomputed so
// the metric pass runs once per file.
func RunRules(lang schema.Language, content string, rs schema.RuleSet, complexity, duplication int) []schema.Issue {
	issues := []schema.Issue{}

	if complexity > rs.MaxComplexity {
		issues = append(issues, schema.Issue{
			Rule:     "max-complexity",
			Severity: schema.WarningSeverity,
			Message:  fmt.Sprintf("High cyclomatic complexity: %d (max: %d)", complexity, rs.MaxComplexity),
		})
	}
	if duplication > rs.MaxDuplication {
		issues = append(issues, schema.Issue{
			Rule:     "max-duplication",
			Severity: schema.WarningSeverity,
			Message:  fmt.Sprintf("High code duplication detected: %d duplicate line pairs", duplication),
		})
	}

	issues = append(issues, lineRules(lang, content, rs)...)
	issues = append(issues, functionLengthRule(lang, content, rs)...)
	issues = append(issues, namingRules(lang, content, rs)...)

	switch lang {
	case schema.PythonLang:
		issues = append(issues, pythonRules(content)...)
	case schema.JavaLang:
		issues = append(issues, javaRules(content)...)
	}

	return issues
}

// lineRules flags lines longer than the language threshold.
func lineRules(lang schema.Language, content string, rs schema.RuleSet) []schema.Issue {
	var issues []schema.Issue
	for lineNo, line := range contentLines(content) {
		if width := len([]rune(line)); width > rs.MaxLineLength {
			issues = append(issues, schema.Issue{
				Rule:     "max-line-length",
				Severity: schema.InfoSeverity,
				Line:     lineNo + 1,
				Message:  fmt.Sprintf("Line too long: %d characters (max: %d)", width, rs.MaxLineLength),
			})
		}
	}
	return issues
}

// functionLengthRule measures each detected function and flags those
// exceeding the threshold. Python bodies end at the first line indented at
// or below the def; brace languages end when the braces rebalance.
func functionLengthRule(lang schema.Language, content string, rs schema.RuleSet) []schema.Issue {
	var issues []schema.Issue
	for _, fn := range extractFunctions(lang, content) {
		if fn.length > rs.MaxFunctionLength {
			issues = append(issues, schema.Issue{
				Rule:     "max-function-length",
				Severity: schema.WarningSeverity,
				Line:     fn.line,
				Message:  fmt.Sprintf("Function '%s' is %d lines long (max: %d)", fn.name, fn.length, rs.MaxFunctionLength),
			})
		}
	}
	return issues
}

func namingRules(lang schema.Language, content string, rs schema.RuleSet) []schema.Issue {
	var issues []schema.Issue
	patterns := declPatterns[lang]

	for i, line := range contentLines(content) {
		lineNo := i + 1
		for kind, pattern := range patterns {
			convention, ok := rs.NamingConventions[kind]
			if !ok {
				continue
			}
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			matched, err := regexp.MatchString(convention, m[1])
			if err == nil && !matched {
				issues = append(issues, schema.Issue{
					Rule:     "naming-convention",
					Severity: schema.InfoSeverity,
					Line:     lineNo,
					Message:  fmt.Sprintf("%s name '%s' does not match convention %s", kind, m[1], convention),
				})
			}
		}
	}
	return issues
}

func pythonRules(content string) []schema.Issue {
	var issues []schema.Issue
	for i, line := range contentLines(content) {
		lineNo := i + 1

		if m := pythonUnsafeCall.FindStringSubmatch(line); m != nil {
			issues = append(issues, schema.Issue{
				Rule:     "unsafe-call",
				Severity: schema.ErrorSeverity,
				Line:     lineNo,
				Message:  fmt.Sprintf("Potentially unsafe use of %s", m[1]),
			})
		}

		if m := pythonDefLine.FindStringSubmatch(line); m != nil {
			hasReturn := m[3] == "->"
			hasParamHints := strings.Contains(m[2], ":")
			params := strings.TrimSpace(m[2])
			bare := params == "" || params == "self" || params == "cls"
			if !hasReturn && !hasParamHints && !bare {
				issues = append(issues, schema.Issue{
					Rule:     "missing-type-hints",
					Severity: schema.InfoSeverity,
					Line:     lineNo,
					Message:  fmt.Sprintf("Missing type hints in function %s", m[1]),
				})
			}
		}
	}
	return issues
}

// javaRules are regex approximations of structural checks: exception
// handling hygiene, field immutability and builder-pattern candidates.
func javaRules(content string) []schema.Issue {
	var issues []schema.Issue

	plainTries := len(javaTryOpen.FindAllString(content, -1))
	finallies := strings.Count(content, "finally")
	resources := len(javaTryResource.FindAllString(content, -1))
	if plainTries > finallies+resources {
		issues = append(issues, schema.Issue{
			Rule:     "try-finally",
			Severity: schema.WarningSeverity,
			Message:  "Consider adding finally block or try-with-resources",
		})
	}

	fieldCount := 0
	hasBuilder := strings.Contains(content, "builder(")
	for i, line := range contentLines(content) {
		lineNo := i + 1
		m := javaField.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fieldCount++
		if !strings.Contains(line, "final") {
			issues = append(issues, schema.Issue{
				Rule:     "non-final-field",
				Severity: schema.InfoSeverity,
				Line:     lineNo,
				Message:  fmt.Sprintf("Consider making field %s final", m[2]),
			})
		}
	}

	if javaClassDecl.MatchString(content) && fieldCount > 5 && !hasBuilder {
		issues = append(issues, schema.Issue{
			Rule:     "builder-pattern",
			Severity: schema.InfoSeverity,
			Message:  "Consider implementing Builder pattern",
		})
	}

	return issues
}

// functionSpan is a detected function with its declaration line and length.
type functionSpan struct {
	name   string
	line   int
	length int
}

var functionDecl = map[schema.Language]*regexp.Regexp{
	schema.PythonLang:     regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)`),
	schema.GoLang:         regexp.MustCompile(`^()func\s+(?:\([^)]*\)\s+)?([A-Za-z_]\w*)`),
	schema.JavaLang:       regexp.MustCompile(`^(\s*)(?:public|private|protected)[\w\s<>\[\],]*\s([A-Za-z_]\w*)\s*\([^)]*\)[\w\s,]*\{`),
	schema.JavaScriptLang: regexp.MustCompile(`^(\s*)(?:async\s+)?function\s+([A-Za-z_$]\w*)`),
}

// extractFunctions finds function declarations and measures their spans.
// Python spans run until the first non-blank line indented at or below the
// declaration; brace languages run until the braces rebalance.
func extractFunctions(lang schema.Language, content string) []functionSpan {
	pattern, ok := functionDecl[lang]
	if !ok {
		return nil
	}

	lines := strings.Split(content, "\n")
	var spans []functionSpan

	for i := 0; i < len(lines); i++ {
		m := pattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		span := functionSpan{name: m[2], line: i + 1}
		if lang == schema.PythonLang {
			span.length = pythonSpanLength(lines, i, len(m[1]))
		} else {
			span.length = braceSpanLength(lines, i)
		}
		spans = append(spans, span)
	}
	return spans
}

func pythonSpanLength(lines []string, start, indent int) int {
	length := 1
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			length++
			continue
		}
		if len(lines[i])-len(strings.TrimLeft(lines[i], " \t")) <= indent {
			break
		}
		length++
	}
	return length
}

func braceSpanLength(lines []string, start int) int {
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if strings.Contains(lines[i], "{") {
			opened = true
		}
		if opened && depth <= 0 {
			return i - start + 1
		}
	}
	return len(lines) - start
}
