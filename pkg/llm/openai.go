package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
	apiKey string
}

// NewOpenAIClient builds a client for the given model, gpt-4o-mini when
// empty. Extra options are applied after the defaults.
func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(requestTimeout),
		option.WithMaxRetries(0),
	}, opts...)

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModel(model),
		apiKey: apiKey,
	}
}

func (c *OpenAIClient) Analyze(ctx context.Context, systemPrompt, userMessage string) string {
	if c.apiKey == "" {
		return missingKey("OPENAI_API_KEY")
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		slog.Error("openai API error", "model", c.model, "error", err)
		return llmError(err)
	}

	if len(resp.Choices) == 0 {
		return llmError(errors.New("no response from openai"))
	}
	return resp.Choices[0].Message.Content
}
