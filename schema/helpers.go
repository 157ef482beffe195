package schema

import "strings"

// FormatLanguages joins languages into a comma-separated display string.
func FormatLanguages(langs []Language) string {
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}

// CountBySeverity tallies issues per severity level.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int)
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}

// WorstSeverity returns the most serious severity present in the issue list,
// or InfoSeverity for an empty list.
func WorstSeverity(issues []Issue) Severity {
	worst := InfoSeverity
	for _, issue := range issues {
		switch issue.Severity {
		case ErrorSeverity:
			return ErrorSeverity
		case WarningSeverity:
			worst = WarningSeverity
		}
	}
	return worst
}
