package core

import (
	"math"
	"strings"
)

// Cosine similarity above which two lines count as near duplicates.
const duplicationThreshold = 0.8

// DuplicationScore vectorizes every non-blank line with TF-IDF weights and
// counts the line pairs whose cosine similarity exceeds the threshold.
// The score grows with copy-pasted blocks and stays at zero for files
// whose lines are all distinct.
func DuplicationScore(content string) int {
	var lines [][]string
	for _, line := range contentLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if tokens := tokenizeLine(trimmed); len(tokens) > 0 {
			lines = append(lines, tokens)
		}
	}
	if len(lines) < 2 {
		return 0
	}

	vectors := tfidfVectors(lines)

	pairs := 0
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			if cosineSimilarity(vectors[i], vectors[j]) > duplicationThreshold {
				pairs++
			}
		}
	}
	return pairs
}

func tokenizeLine(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') &&
			!('0' <= r && r <= '9') && r != '_'
	})
}

// tfidfVectors builds one sparse TF-IDF vector per line. The IDF term is
// smoothed so tokens present in every line still carry a small weight.
func tfidfVectors(lines [][]string) []map[string]float64 {
	n := len(lines)
	df := make(map[string]int)
	for _, tokens := range lines {
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	vectors := make([]map[string]float64, n)
	for i, tokens := range lines {
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		vec := make(map[string]float64, len(tf))
		for t, count := range tf {
			idf := math.Log(float64(1+n)/float64(1+df[t])) + 1
			vec[t] = float64(count) * idf
		}
		vectors[i] = vec
	}
	return vectors
}

func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for t, w := range a {
		normA += w * w
		if wb, ok := b[t]; ok {
			dot += w * wb
		}
	}
	for _, w := range b {
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
