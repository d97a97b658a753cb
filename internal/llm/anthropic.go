package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient serves the Anthropic family through the Messages API.
// Claude has no native JSON response mode, so the expected shape is
// appended to the system prompt and the invoker validates the output.
type anthropicClient struct {
	client anthropic.Client
	model  string
}

func newAnthropicClient(modelID, apiKey string) *anthropicClient {
	return &anthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  modelID,
	}
}

func (c *anthropicClient) ModelID() string        { return c.model }
func (c *anthropicClient) Family() ProviderFamily { return FamilyAnthropic }

func (c *anthropicClient) GenerateJSON(ctx context.Context, req Request) (*RawResponse, error) {
	system := withSchemaInstruction(req.System, req)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: req.MaxOutputTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("message creation failed: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no text blocks in response")
	}

	return &RawResponse{
		Text:         strings.Join(parts, ""),
		FinishReason: string(msg.StopReason),
		Usage: Usage{
			PromptTokens:     msg.Usage.InputTokens,
			CompletionTokens: msg.Usage.OutputTokens,
			TotalTokens:      msg.Usage.InputTokens + msg.Usage.OutputTokens,
		},
	}, nil
}
