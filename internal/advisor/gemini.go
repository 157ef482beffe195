// Package advisor produces AI-backed review suggestions via the Gemini API.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/docu3c/autocodex/internal/contract"
)

// Model tuning values. Kept moderate so suggestions stay focused on the
// submitted code instead of drifting into generic advice.
const (
	temperature     = 0.7
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 8192
)

// GeminiAdvisor implements contract.Advisor using the Gemini API.
type GeminiAdvisor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// New creates a GeminiAdvisor for the given API key and model name.
func New(ctx context.Context, apiKey, modelName string) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopK(topK)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(maxOutputTokens)

	return &GeminiAdvisor{client: client, model: model, name: modelName}, nil
}

// Suggest returns markdown-formatted improvement suggestions for one file.
func (g *GeminiAdvisor) Suggest(ctx context.Context, req contract.SuggestionRequest) (string, error) {
	prompt := BuildPrompt(req)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate suggestions for %s: %w", req.Path, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated for %s", req.Path)
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return strings.TrimSpace(text), nil
}

// Close releases the underlying client connection.
func (g *GeminiAdvisor) Close() error {
	return g.client.Close()
}
