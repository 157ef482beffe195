// Package core has core logic for fetching, measuring and reviewing
// repository files.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/docu3c/autocodex/internal/advisor"
	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/internal/ghclient"
	"github.com/docu3c/autocodex/internal/outwriter"
	"github.com/docu3c/autocodex/schema"
)

// GetReviewResults runs the full batch review and returns the report
// without writing any output. The MCP server uses this directly.
func GetReviewResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.RepoReport, error) {
	if err := contract.ValidateCredentials(cfg); err != nil {
		return nil, err
	}

	host := ghclient.New(ctx, cfg.GitHubToken)

	var adv contract.Advisor
	if !cfg.NoAI {
		var err error
		adv, err = advisor.New(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("create advisor: %w", err)
		}
		defer func() {
			if err := adv.Close(); err != nil {
				contract.LogWarn("advisor close failed", err)
			}
		}()
	}

	return runReviewCore(ctx, cfg, host, adv, mgr)
}

// ExecuteReview runs the full batch review and writes all configured
// outputs. It serves as the main entry point for the 'review' mode.
func ExecuteReview(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	report, err := GetReviewResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	if err := outwriter.WriteMarkdownReport(report, cfg); err != nil {
		return err
	}
	if cfg.DashboardFile != "" {
		if err := outwriter.WriteDashboard(report, cfg.DashboardFile); err != nil {
			return err
		}
	}

	duration := time.Since(start)
	return outwriter.PrintRepoReport(report, cfg, duration)
}

// ExecuteRules displays the active rule sets, metric definitions and
// quality-score weights. This is a static display that does not require
// network access.
func ExecuteRules(_ context.Context, cfg *contract.Config) error {
	return outwriter.PrintRules(cfg)
}

// ExecuteDashboard renders the static HTML viewer from a JSON report
// artifact written by a previous review run.
func ExecuteDashboard(_ context.Context, cfg *contract.Config, reportPath string) error {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("read report artifact: %w", err)
	}

	var report schema.RepoReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("parse report artifact %s: %w", reportPath, err)
	}

	target := cfg.DashboardFile
	if target == "" {
		target = "code_review_dashboard.html"
	}
	if err := outwriter.WriteDashboard(&report, target); err != nil {
		return err
	}
	fmt.Printf("Dashboard written to %s\n", target)
	return nil
}
