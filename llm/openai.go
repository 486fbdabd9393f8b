package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/etnz/llmbattle"
)

const grokBaseURL = "https://api.x.ai/v1"

// openAI drives every chat-completions compatible backend: OpenAI itself,
// Azure OpenAI deployments and Grok through the xAI endpoint.
type openAI struct {
	name   string
	model  string
	client *openai.Client
}

func newOpenAI(mc llmbattle.ModelConfig, apiKey string) (*openAI, error) {
	var config openai.ClientConfig
	switch mc.Provider {
	case "azure-openai":
		if mc.Endpoint == "" {
			return nil, fmt.Errorf("model %q: azure-openai requires an endpoint", mc.Name)
		}
		config = openai.DefaultAzureConfig(apiKey, mc.Endpoint)
	case "grok":
		config = openai.DefaultConfig(apiKey)
		config.BaseURL = grokBaseURL
		if mc.Endpoint != "" {
			config.BaseURL = mc.Endpoint
		}
	default:
		config = openai.DefaultConfig(apiKey)
		if mc.Endpoint != "" {
			config.BaseURL = mc.Endpoint
		}
	}
	return &openAI{name: mc.Name, model: mc.Model, client: openai.NewClientWithConfig(config)}, nil
}

func (o *openAI) Name() string { return o.name }

func (o *openAI) Generate(ctx context.Context, req Request) (Response, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Response{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("chat completion returned no choices")
	}
	return ParseResponse(resp.Choices[0].Message.Content, req.MaxPicks)
}
