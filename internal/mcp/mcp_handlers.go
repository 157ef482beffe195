package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docu3c/autocodex/core"
	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleReviewRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	repoArg := request.GetString("repository", "")
	if repoArg == "" {
		return mcp.NewToolResultError("repository is required (owner/repo)"), nil
	}
	parts := strings.Split(strings.Trim(repoArg, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository %q, expected owner/repo", repoArg)), nil
	}
	cfg.Owner, cfg.Repo = parts[0], parts[1]

	if n := request.GetInt("max_files", 0); n > 0 {
		if n > contract.MaxFilesLimit {
			n = contract.MaxFilesLimit
		}
		cfg.MaxFiles = n
	}
	if langs := request.GetString("languages", ""); langs != "" {
		cfg.Languages = nil
		for _, p := range strings.Split(langs, ",") {
			name := schema.Language(strings.ToLower(strings.TrimSpace(p)))
			if _, ok := schema.ValidLanguages[name]; !ok {
				return mcp.NewToolResultError(fmt.Sprintf("invalid language %q", p)), nil
			}
			cfg.Languages = append(cfg.Languages, name)
		}
	}
	if request.GetBool("no_ai", false) {
		cfg.NoAI = true
	}

	report, err := core.GetReviewResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("review failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload := map[string]any{
		"rules": h.baseCfg.Rules,
		"quality_weights": map[string]float64{
			"complexity":      schema.QualityWeightComplexity,
			"maintainability": schema.QualityWeightMaintainability,
			"issue_density":   schema.QualityWeightIssueDensity,
		},
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
