package core

import (
	"math"
	"regexp"

	"github.com/docu3c/autocodex/schema"
)

// Operator tokens counted for Halstead volume, longest first so that
// compound operators are not double counted.
var operatorPattern = regexp.MustCompile(
	`<<=|>>=|===|!==|\*\*|//|<<|>>|<=|>=|==|!=|&&|\|\||\+=|-=|\*=|/=|%=|\+|-|\*|/|%|=|<|>|!|&|\||\^|~`)

var operandPattern = regexp.MustCompile(`[A-Za-z_]\w*|\d+(?:\.\d+)?`)

// halsteadVolume approximates V = N * log2(n) from operator and operand
// token counts, where N is the total and n the distinct vocabulary.
func halsteadVolume(content string) float64 {
	distinct := make(map[string]struct{})
	total := 0

	for _, tok := range operatorPattern.FindAllString(content, -1) {
		distinct["op:"+tok] = struct{}{}
		total++
	}
	for _, tok := range operandPattern.FindAllString(content, -1) {
		distinct["id:"+tok] = struct{}{}
		total++
	}

	n := len(distinct)
	if n == 0 || total == 0 {
		return 0
	}
	return float64(total) * math.Log2(float64(n))
}

// MaintainabilityIndex computes the classic maintainability index
// 171 - 5.2*ln(V) - 0.23*CC - 16.2*ln(LOC), normalized to 0-100.
func MaintainabilityIndex(content string, complexity int, lines schema.LineCount) float64 {
	loc := lines.Code
	if loc <= 0 {
		return 100
	}
	volume := halsteadVolume(content)
	if volume <= 0 {
		volume = 1
	}

	mi := 171 - 5.2*math.Log(volume) - 0.23*float64(complexity) - 16.2*math.Log(float64(loc))
	normalized := mi * 100 / 171
	return math.Min(100, math.Max(0, normalized))
}
