package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/internal/linttool"
	"github.com/docu3c/autocodex/schema"
)

// checkItem is one preflight probe with its outcome.
type checkItem struct {
	name     string
	ok       bool
	detail   string
	required bool
}

// ExecuteCheck runs the preflight probes for CI/CD gating: credentials
// present, external linters installed, persistence backends reachable.
// It returns an error when any required probe fails so the command exits
// non-zero in pipelines.
func ExecuteCheck(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	items := []checkItem{
		credentialCheck(cfg),
		linterCheck(schema.PythonLang),
		linterCheck(schema.JavaLang),
		cacheCheck(cfg, mgr),
		historyCheck(cfg, mgr),
	}

	printCheckResults(items, cfg.UseColors)

	for _, item := range items {
		if item.required && !item.ok {
			return errors.New("preflight check failed")
		}
	}
	return nil
}

func credentialCheck(cfg *contract.Config) checkItem {
	item := checkItem{name: "credentials", required: true}
	if err := contract.ValidateCredentials(cfg); err != nil {
		item.detail = err.Error()
		return item
	}
	item.ok = true
	item.detail = fmt.Sprintf("GitHub token and Gemini key present (model %s)", cfg.Model)
	return item
}

func linterCheck(lang schema.Language) checkItem {
	item := checkItem{name: fmt.Sprintf("%s linter", lang)}
	linter := linttool.ForLanguage(lang)
	if linter == nil {
		item.detail = "no external linter defined"
		return item
	}
	if linter.Available() {
		item.ok = true
		item.detail = "installed"
	} else {
		item.detail = "not on PATH, lint scores will be skipped"
	}
	return item
}

func cacheCheck(cfg *contract.Config, mgr contract.CacheManager) checkItem {
	item := checkItem{name: "suggestion cache"}
	if cfg.CacheBackend == schema.NoneBackend || mgr == nil || mgr.GetSuggestionStore() == nil {
		item.ok = true
		item.detail = "disabled"
		return item
	}
	status, err := mgr.GetSuggestionStore().GetStatus()
	if err != nil {
		item.detail = fmt.Sprintf("%s unreachable: %v", cfg.CacheBackend, err)
		return item
	}
	item.ok = status.Connected
	item.detail = fmt.Sprintf("%s, %d entries", status.Backend, status.TotalEntries)
	return item
}

func historyCheck(cfg *contract.Config, mgr contract.CacheManager) checkItem {
	item := checkItem{name: "review history"}
	if cfg.HistoryBackend == "" || cfg.HistoryBackend == schema.NoneBackend || mgr == nil || mgr.GetHistoryStore() == nil {
		item.ok = true
		item.detail = "disabled"
		return item
	}
	status, err := mgr.GetHistoryStore().GetStatus()
	if err != nil {
		item.detail = fmt.Sprintf("%s unreachable: %v", cfg.HistoryBackend, err)
		return item
	}
	item.ok = status.Connected
	item.detail = fmt.Sprintf("%s, %d runs", status.Backend, status.TotalRuns)
	return item
}

func printCheckResults(items []checkItem, useColors bool) {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()
	if !useColors {
		plain := fmt.Sprint
		pass, fail, warn = plain, plain, plain
	}

	fmt.Println("Preflight Check Results:")
	for _, item := range items {
		var mark string
		switch {
		case item.ok:
			mark = pass("PASS")
		case item.required:
			mark = fail("FAIL")
		default:
			mark = warn("WARN")
		}
		fmt.Printf("  [%s] %-18s %s\n", mark, item.name, item.detail)
	}
}
