package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docu3c/autocodex/internal/contract"
	mcp_internal "github.com/docu3c/autocodex/internal/mcp"
	"github.com/docu3c/autocodex/schema"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Model:     contract.DefaultModel,
		MaxFiles:  contract.DefaultMaxFiles,
		Languages: schema.AllLanguages,
		Rules:     schema.DefaultRuleSets(),
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	// Create a dummy manager, though we shouldn't hit it because we test validation errors
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseConfig(), mgr)

	ctx := context.Background()

	t.Run("review_repository missing repository", func(t *testing.T) {
		tool := s.GetTool("review_repository")
		require.NotNil(t, tool, "Tool review_repository should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "review_repository",
				Arguments: map[string]any{"repository": ""},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "repository is required")
	})

	t.Run("review_repository malformed repository", func(t *testing.T) {
		tool := s.GetTool("review_repository")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "review_repository",
				Arguments: map[string]any{"repository": "not-a-repo"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "expected owner/repo")
	})

	t.Run("review_repository invalid language", func(t *testing.T) {
		tool := s.GetTool("review_repository")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "review_repository",
				Arguments: map[string]any{
					"repository": "docu3c/autocodex",
					"languages":  "cobol",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid language")
	})
}

func TestMCPServerGetRules(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	tool := s.GetTool("get_rules")
	require.NotNil(t, tool, "Tool get_rules should exist")

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "get_rules"},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "max_line_length")
	assert.Contains(t, text, "quality_weights")
	assert.Contains(t, text, "python")
}
