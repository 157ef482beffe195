package core

import (
	"regexp"
	"strings"

	"github.com/docu3c/autocodex/schema"
)

// decisionWords lists the branching keywords counted as decision points.
var decisionWords = map[schema.Language][]string{
	schema.PythonLang:     {"if", "elif", "for", "while", "except", "and", "or"},
	schema.JavaLang:       {"if", "for", "while", "case", "catch"},
	schema.GoLang:         {"if", "for", "case", "select"},
	schema.JavaScriptLang: {"if", "for", "while", "case", "catch"},
}

// Languages whose function boundaries are cheap to detect get a
// per-function measurement. The rest fall back to a whole-file count.
var funcStart = map[schema.Language]*regexp.Regexp{
	schema.PythonLang: regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+[A-Za-z_]\w*\s*\(`),
	schema.GoLang:     regexp.MustCompile(`^func\s`),
}

var wordPattern = regexp.MustCompile(`[A-Za-z_]\w*`)

// CyclomaticComplexity measures the decision density of a file. Where
// function boundaries are detectable it returns the highest per-function
// value, otherwise one count over the whole file.
func CyclomaticComplexity(lang schema.Language, content string) int {
	segments := splitFunctions(lang, content)
	if len(segments) == 0 {
		return segmentComplexity(lang, content)
	}
	maxCC := 1
	for _, seg := range segments {
		if cc := segmentComplexity(lang, seg); cc > maxCC {
			maxCC = cc
		}
	}
	return maxCC
}

// segmentComplexity is 1 plus the number of decision points in the segment.
func segmentComplexity(lang schema.Language, segment string) int {
	keywords := make(map[string]struct{}, len(decisionWords[lang]))
	for _, w := range decisionWords[lang] {
		keywords[w] = struct{}{}
	}

	cc := 1
	for _, word := range wordPattern.FindAllString(segment, -1) {
		if _, ok := keywords[word]; ok {
			cc++
		}
	}
	cc += strings.Count(segment, "&&")
	cc += strings.Count(segment, "||")
	return cc
}

// splitFunctions cuts the content into one segment per detected function.
// A new segment starts at every function declaration line; everything up
// to the next declaration belongs to the segment.
func splitFunctions(lang schema.Language, content string) []string {
	pattern, ok := funcStart[lang]
	if !ok {
		return nil
	}

	var segments []string
	var current strings.Builder
	started := false

	for _, line := range contentLines(content) {
		if pattern.MatchString(line) {
			if started {
				segments = append(segments, current.String())
				current.Reset()
			}
			started = true
		}
		if started {
			current.WriteString(line)
			current.WriteByte('\n')
		}
	}
	if started {
		segments = append(segments, current.String())
	}
	return segments
}
