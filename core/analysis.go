package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/internal/linttool"
	"github.com/docu3c/autocodex/schema"
)

// runReviewCore performs the full sequential batch: list the repository
// tree, filter to the configured languages and bounds, then fetch,
// measure, lint and advise one file at a time. Per-file failures are
// recorded as skips and never abort the run.
func runReviewCore(ctx context.Context, cfg *contract.Config, host contract.RepoHost, adv contract.Advisor, mgr contract.CacheManager) (*schema.RepoReport, error) {
	report := &schema.RepoReport{
		Repository: cfg.Owner + "/" + cfg.Repo,
		ScanTime:   time.Now(),
	}
	if !cfg.NoAI {
		report.Model = cfg.Model
	}

	paths, err := selectFiles(ctx, cfg, host)
	if err != nil {
		return nil, err
	}

	var historyStore contract.HistoryStore
	var runID int64
	if mgr != nil {
		historyStore = mgr.GetHistoryStore()
	}
	if historyStore != nil {
		runID, err = historyStore.BeginRun(report.ScanTime, historyParams(cfg, len(paths)))
		if err != nil {
			contract.LogWarn("history tracking disabled for this run", err)
			historyStore = nil
		}
	}

	var suggestionStore contract.CacheStore
	if mgr != nil {
		suggestionStore = mgr.GetSuggestionStore()
	}

	linters := make(map[schema.Language]contract.Linter)
	for _, lang := range cfg.Languages {
		linters[lang] = linttool.ForLanguage(lang)
	}

	for _, path := range paths {
		reviewStart := time.Now()

		content, err := host.FileContent(ctx, cfg.Owner, cfg.Repo, path)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("fetch failed for %s", path), err)
			report.Skipped = append(report.Skipped, schema.SkippedFile{Path: path, Reason: err.Error()})
			continue
		}

		lang, _ := schema.LanguageForPath(path)
		builder := NewFileReviewBuilder(cfg, path, lang, content).
			MeasureMetrics().
			ApplyRules().
			RunLinter(ctx, linters[lang])

		if cfg.NoAI {
			builder.AttachSuggestion("", false)
		} else {
			text, cached := cachedSuggestion(ctx, cfg, adv, suggestionStore, builder.SuggestionRequest())
			builder.AttachSuggestion(text, cached)
		}

		review := builder.Build()
		report.Files = append(report.Files, review)

		if historyStore != nil {
			rec := fileRecord(runID, review, reviewStart)
			if err := historyStore.RecordFile(runID, rec); err != nil {
				contract.LogWarn(fmt.Sprintf("history record failed for %s", path), err)
			}
		}
	}

	aggregateReport(report)

	if historyStore != nil {
		if err := historyStore.EndRun(runID, time.Now(), report.FilesAnalyzed); err != nil {
			contract.LogWarn("history run finalization failed", err)
		}
	}

	return report, nil
}

// selectFiles lists the default-branch tree and narrows it to reviewable
// files: supported language, not excluded, capped at MaxFiles.
func selectFiles(ctx context.Context, cfg *contract.Config, host contract.RepoHost) ([]string, error) {
	branch, err := host.DefaultBranch(ctx, cfg.Owner, cfg.Repo)
	if err != nil {
		return nil, fmt.Errorf("resolve default branch: %w", err)
	}

	all, err := host.ListFiles(ctx, cfg.Owner, cfg.Repo, branch)
	if err != nil {
		return nil, fmt.Errorf("list repository tree: %w", err)
	}

	wanted := make(map[schema.Language]struct{}, len(cfg.Languages))
	for _, lang := range cfg.Languages {
		wanted[lang] = struct{}{}
	}

	var paths []string
	for _, path := range all {
		if cfg.PathFilter != "" && !strings.HasPrefix(path, cfg.PathFilter) {
			continue
		}
		lang, ok := schema.LanguageForPath(path)
		if !ok {
			continue
		}
		if _, ok := wanted[lang]; !ok {
			continue
		}
		if contract.ShouldIgnore(path, cfg.Excludes) {
			continue
		}
		paths = append(paths, path)
		if len(paths) >= cfg.MaxFiles {
			break
		}
	}
	return paths, nil
}

func historyParams(cfg *contract.Config, selected int) map[string]any {
	return map[string]any{
		"repository": cfg.Owner + "/" + cfg.Repo,
		"model":      cfg.Model,
		"max_files":  cfg.MaxFiles,
		"selected":   selected,
		"languages":  schema.FormatLanguages(cfg.Languages),
		"lint":       cfg.LintTools,
		"no_ai":      cfg.NoAI,
	}
}

func fileRecord(runID int64, review schema.FileReview, reviewedAt time.Time) schema.FileRecord {
	return schema.FileRecord{
		RunID:           runID,
		Path:            review.Path,
		Language:        string(review.Language),
		ReviewTime:      reviewedAt,
		LinesOfCode:     review.Lines.Code,
		Complexity:      review.Complexity,
		Maintainability: review.Maintainability,
		Duplication:     review.Duplication,
		LintScore:       review.LintScore,
		IssueCount:      len(review.Issues),
	}
}
