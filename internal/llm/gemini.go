package llm

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient serves the Google family through the Generative AI SDK.
// The underlying SDK client is constructed per call so that resolution
// itself stays allocation-only and never fails.
type geminiClient struct {
	modelID string
	apiKey  string
}

func newGeminiClient(modelID, apiKey string) *geminiClient {
	return &geminiClient{modelID: modelID, apiKey: apiKey}
}

func (c *geminiClient) ModelID() string        { return c.modelID }
func (c *geminiClient) Family() ProviderFamily { return FamilyGoogle }

func (c *geminiClient) GenerateJSON(ctx context.Context, req Request) (*RawResponse, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(c.modelID)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(clampTokens(req.MaxOutputTokens))
	}
	if system := withSchemaInstruction(req.System, req); system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, finishReason, err := extractGeminiText(resp)
	if err != nil {
		return nil, err
	}

	out := &RawResponse{Text: text, FinishReason: finishReason}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     int64(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int64(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}

// clampTokens narrows a token ceiling to the SDK's int32 parameter
// without silent truncation on oversized overrides.
func clampTokens(n int64) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

// extractGeminiText extracts text parts from a Gemini API response.
func extractGeminiText(resp *genai.GenerateContentResponse) (string, string, error) {
	if len(resp.Candidates) == 0 {
		return "", "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	finishReason := candidate.FinishReason.String()
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", finishReason, fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", finishReason, fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), finishReason, nil
}
