package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/etnz/llmbattle"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// claude drives Anthropic models through the messages API directly.
type claude struct {
	name   string
	model  string
	apiKey string
	client *http.Client
}

func newClaude(mc llmbattle.ModelConfig, apiKey string) *claude {
	return &claude{name: mc.Name, model: mc.Model, apiKey: apiKey, client: new(http.Client)}
}

func (c *claude) Name() string { return c.name }

func (c *claude) Generate(ctx context.Context, req Request) (Response, error) {
	// request and response proxies for the messages API.
	type jmessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type jrequest struct {
		Model     string     `json:"model"`
		MaxTokens int        `json:"max_tokens"`
		Messages  []jmessage `json:"messages"`
	}
	type jblock struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	type jresponse struct {
		Content []jblock `json:"content"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	body, err := json.Marshal(jrequest{
		Model:     c.model,
		MaxTokens: 1024,
		Messages:  []jmessage{{Role: "user", Content: BuildPrompt(req)}},
	})
	if err != nil {
		return Response{}, fmt.Errorf("cannot marshal request: %w", err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("x-api-key", c.apiKey)
	hreq.Header.Set("anthropic-version", anthropicVersion)

	hresp, err := c.client.Do(hreq)
	if err != nil {
		return Response{}, fmt.Errorf("messages call failed: %w", err)
	}
	defer hresp.Body.Close()

	data, err := io.ReadAll(hresp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("cannot read response: %w", err)
	}
	var jresp jresponse
	if err := json.Unmarshal(data, &jresp); err != nil {
		return Response{}, fmt.Errorf("cannot parse response: %w", err)
	}
	if hresp.StatusCode != http.StatusOK {
		if jresp.Error != nil {
			return Response{}, fmt.Errorf("messages call returned %d: %s", hresp.StatusCode, jresp.Error.Message)
		}
		return Response{}, fmt.Errorf("messages call returned %d", hresp.StatusCode)
	}

	var text string
	for _, block := range jresp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return Response{}, fmt.Errorf("messages call returned no text content")
	}
	return ParseResponse(text, req.MaxPicks)
}
