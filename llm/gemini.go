package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/etnz/llmbattle"
)

// gemini drives Google models through the genai SDK, asking for a JSON answer
// via the response MIME type.
type gemini struct {
	name   string
	model  string
	apiKey string
}

func newGemini(mc llmbattle.ModelConfig, apiKey string) *gemini {
	return &gemini{name: mc.Name, model: mc.Model, apiKey: apiKey}
}

func (g *gemini) Name() string { return g.name }

func (g *gemini) Generate(ctx context.Context, req Request) (Response, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return Response{}, fmt.Errorf("cannot create gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(req)), config)
	if err != nil {
		return Response{}, fmt.Errorf("gemini call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Response{}, fmt.Errorf("gemini returned no content")
	}
	return ParseResponse(resp.Candidates[0].Content.Parts[0].Text, req.MaxPicks)
}
