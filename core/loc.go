package core

import (
	"strings"

	"github.com/docu3c/autocodex/schema"
)

// contentLines splits file content into lines with no length limit, so a
// single oversized line can never truncate a metric pass. A trailing
// newline does not produce a final empty line, and CRLF endings are
// normalized.
func contentLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// commentMarkers describes the comment syntax of a language.
type commentMarkers struct {
	line   []string
	blocks [][2]string
}

var markersByLanguage = map[schema.Language]commentMarkers{
	schema.PythonLang: {
		line:   []string{"#"},
		blocks: [][2]string{{`"""`, `"""`}, {"'''", "'''"}},
	},
	schema.JavaLang: {
		line:   []string{"//"},
		blocks: [][2]string{{"/*", "*/"}},
	},
	schema.GoLang: {
		line:   []string{"//"},
		blocks: [][2]string{{"/*", "*/"}},
	},
	schema.JavaScriptLang: {
		line:   []string{"//"},
		blocks: [][2]string{{"/*", "*/"}},
	},
}

// CountLines classifies every line of a file as code, comment or blank.
// Block comments are tracked with a single open/close state; a line that
// both opens and closes a block counts as one comment line, and a line
// with code before the opener counts as code.
func CountLines(lang schema.Language, content string) schema.LineCount {
	markers := markersByLanguage[lang]
	var lc schema.LineCount
	inBlock := false
	var blockEnd string

	for _, line := range contentLines(content) {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			lc.Comment++
			if idx := strings.Index(trimmed, blockEnd); idx >= 0 {
				inBlock = false
				rest := strings.TrimSpace(trimmed[idx+len(blockEnd):])
				if rest != "" && !isLineComment(rest, markers) {
					lc.Comment--
					lc.Code++
				}
			}
			continue
		}

		if trimmed == "" {
			lc.Blank++
			continue
		}

		if isLineComment(trimmed, markers) {
			lc.Comment++
			continue
		}

		if idx, open, end, ok := blockCommentStart(trimmed, markers); ok {
			if idx > 0 {
				lc.Code++
			} else {
				lc.Comment++
			}
			if !strings.Contains(trimmed[idx+len(open):], end) {
				inBlock = true
				blockEnd = end
			}
			continue
		}

		lc.Code++
	}
	return lc
}

func isLineComment(trimmed string, markers commentMarkers) bool {
	for _, m := range markers.line {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}

// blockCommentStart returns the index of the first block opener on the
// line, the opener and closer tokens, and whether an opener was found.
func blockCommentStart(trimmed string, markers commentMarkers) (int, string, string, bool) {
	for _, b := range markers.blocks {
		if idx := strings.Index(trimmed, b[0]); idx >= 0 {
			return idx, b[0], b[1], true
		}
	}
	return 0, "", "", false
}
