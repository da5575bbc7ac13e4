// Package gemini provides the Gemini-backed narrative generator for market
// analyses.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"crypto_dashboard/internal/feature/analysis/usecase"
)

// DefaultModel is the Gemini model used for analysis narratives.
const DefaultModel = "gemini-2.5-flash"

// GeminiAnalyzer generates market narratives with the Gemini API.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

var _ usecase.Analyzer = (*GeminiAnalyzer)(nil)

// NewGeminiAnalyzer creates a GeminiAnalyzer using application default
// credentials. GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT and
// GOOGLE_CLOUD_LOCATION configure the client.
func NewGeminiAnalyzer(ctx context.Context) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiAnalyzer{client: client, model: DefaultModel}, nil
}

// Analyze generates a narrative for the given prompt.
func (g *GeminiAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
