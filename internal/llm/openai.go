package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Base URLs for OpenAI-compatible providers served through the same SDK.
const (
	deepseekBaseURL = "https://api.deepseek.com"
	groqBaseURL     = "https://api.groq.com/openai/v1"
)

// openaiClient serves the OpenAI family and OpenAI-compatible providers
// (DeepSeek, Groq) through the official SDK with an optional base URL.
type openaiClient struct {
	client openai.Client
	model  string
	family ProviderFamily
	// strictSchema enables the named json_schema response format, which
	// only api.openai.com supports; compatible providers get plain JSON
	// object mode instead.
	strictSchema bool
}

func newOpenAIClient(modelID, apiKey string) *openaiClient {
	return &openaiClient{
		client:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:        modelID,
		family:       FamilyOpenAI,
		strictSchema: true,
	}
}

func newOpenAICompatibleClient(modelID, apiKey, baseURL string, family ProviderFamily) *openaiClient {
	return &openaiClient{
		client: openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(baseURL)),
		model:  modelID,
		family: family,
	}
}

func (c *openaiClient) ModelID() string        { return c.model }
func (c *openaiClient) Family() ProviderFamily { return c.family }

func (c *openaiClient) GenerateJSON(ctx context.Context, req Request) (*RawResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
	}
	if req.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxOutputTokens)
	}

	if c.strictSchema && req.StrictSchema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Schema: req.StrictSchema,
					Strict: openai.Bool(true),
				},
			},
		}
	} else {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := resp.Choices[0]
	return &RawResponse{
		Text:         choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
