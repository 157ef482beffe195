package core

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// FileReviewBuilder builds the review for one file from its fetched content.
type FileReviewBuilder struct {
	cfg     *contract.Config
	content string
	result  *schema.FileReview
}

// NewFileReviewBuilder is the starting point for building a file review.
func NewFileReviewBuilder(cfg *contract.Config, path string, lang schema.Language, content string) *FileReviewBuilder {
	return &FileReviewBuilder{
		cfg:     cfg,
		content: content,
		result: &schema.FileReview{
			Path:       path,
			Language:   lang,
			ContentSHA: fmt.Sprintf("%x", sha256.Sum256([]byte(content))),
			LintScore:  -1,
		},
	}
}

// MeasureMetrics computes the static metrics in dependency order: the line
// split first, then complexity, then the maintainability index that
// depends on both, then duplication.
func (b *FileReviewBuilder) MeasureMetrics() *FileReviewBuilder {
	b.result.Lines = CountLines(b.result.Language, b.content)
	b.result.Complexity = CyclomaticComplexity(b.result.Language, b.content)
	b.result.Maintainability = MaintainabilityIndex(b.content, b.result.Complexity, b.result.Lines)
	b.result.Duplication = DuplicationScore(b.content)
	return b
}

// ApplyRules runs the threshold and style rules for the file's language.
func (b *FileReviewBuilder) ApplyRules() *FileReviewBuilder {
	rs := b.cfg.Rules[b.result.Language]
	b.result.Issues = RunRules(b.result.Language, b.content, rs, b.result.Complexity, b.result.Duplication)
	return b
}

// RunLinter invokes the external lint tool when enabled and installed.
// A missing binary leaves the lint score at -1 and adds no issue.
func (b *FileReviewBuilder) RunLinter(ctx context.Context, linter contract.Linter) *FileReviewBuilder {
	if !b.cfg.LintTools || linter == nil || !linter.Available() {
		return b
	}
	res, err := linter.Run(ctx, b.result.Path, []byte(b.content))
	if err != nil {
		contract.LogWarn(fmt.Sprintf("lint failed for %s", b.result.Path), err)
		return b
	}
	b.result.LintScore = res.Score
	b.result.Issues = append(b.result.Issues, res.Issues...)
	return b
}

// SuggestionRequest assembles the advisor input from the built metrics.
func (b *FileReviewBuilder) SuggestionRequest() contract.SuggestionRequest {
	return contract.SuggestionRequest{
		Path:            b.result.Path,
		Language:        b.result.Language,
		Content:         b.content,
		Lines:           b.result.Lines,
		Complexity:      b.result.Complexity,
		Maintainability: b.result.Maintainability,
		LintScore:       b.result.LintScore,
		Issues:          b.result.Issues,
	}
}

// AttachSuggestion records the generative review text on the result.
func (b *FileReviewBuilder) AttachSuggestion(text string, cached bool) *FileReviewBuilder {
	b.result.Suggestion = text
	b.result.Cached = cached
	return b
}

// Build finalizes the construction and returns the completed review.
func (b *FileReviewBuilder) Build() schema.FileReview {
	return *b.result
}
