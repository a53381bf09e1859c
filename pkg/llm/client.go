package llm

import (
	"context"
	"os"
	"strings"
	"time"
)

const (
	DefaultOpenAIModel = "gpt-4o-mini"

	temperature    = 0.7
	maxTokens      = 2000
	requestTimeout = 60 * time.Second
)

// Analyzer sends a prompt pair to a chat model. Failures come back as
// in-band text rather than errors so the reply can be shown to the user as is.
type Analyzer interface {
	Analyze(ctx context.Context, systemPrompt, userMessage string) string
}

func missingKey(env string) string {
	return "Error: " + env + " not configured. Please set your API key."
}

func llmError(err error) string {
	return "LLM Error: " + err.Error()
}

// NewFromEnv picks the provider named by LLM_PROVIDER (openai unless it is
// "anthropic") with the model from LLM_MODEL.
func NewFromEnv() Analyzer {
	model := os.Getenv("LLM_MODEL")
	if strings.EqualFold(os.Getenv("LLM_PROVIDER"), "anthropic") {
		return NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"), model)
	}
	return NewOpenAIClient(os.Getenv("OPENAI_API_KEY"), model)
}
