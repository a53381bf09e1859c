package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
	apiKey string
}

// NewAnthropicClient builds a client for the given model, Claude Haiku 4.5
// when empty.
func NewAnthropicClient(apiKey, model string, opts ...option.RequestOption) *AnthropicClient {
	m := anthropic.ModelClaudeHaiku4_5
	if model != "" {
		m = anthropic.Model(model)
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(requestTimeout),
		option.WithMaxRetries(0),
	}, opts...)

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client: &client,
		model:  m,
		apiKey: apiKey,
	}
}

func (c *AnthropicClient) Analyze(ctx context.Context, systemPrompt, userMessage string) string {
	if c.apiKey == "" {
		return missingKey("ANTHROPIC_API_KEY")
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)),
		},
	})
	if err != nil {
		slog.Error("anthropic API error", "model", c.model, "error", err)
		return llmError(err)
	}

	if len(resp.Content) == 0 {
		return llmError(errors.New("no response from anthropic"))
	}
	return resp.Content[0].Text
}
