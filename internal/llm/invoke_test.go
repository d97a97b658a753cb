package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas/resume-studio/internal/schemas"
)

// stubClient returns a canned response or error and records the request.
type stubClient struct {
	modelID  string
	family   ProviderFamily
	response *RawResponse
	err      error
	lastReq  Request
}

func (s *stubClient) ModelID() string        { return s.modelID }
func (s *stubClient) Family() ProviderFamily { return s.family }

func (s *stubClient) GenerateJSON(_ context.Context, req Request) (*RawResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return s.response, s.err
	}
	return s.response, nil
}

type experienceOutput struct {
	Company     string   `json:"company" jsonschema:"required"`
	Description []string `json:"description" jsonschema:"required"`
}

type experienceEnvelope struct {
	Content experienceOutput `json:"content" jsonschema:"required"`
}

var experienceContract = schemas.MustReflect[experienceEnvelope]("experience")

func TestTokenBudget_PerFamilyPolicy(t *testing.T) {
	assert.Equal(t, int64(32768), TokenBudget(FamilyGoogle))
	assert.Equal(t, int64(4096), TokenBudget(FamilyOpenAI))
	assert.Equal(t, int64(4096), TokenBudget(FamilyAnthropic))
	assert.Equal(t, int64(4096), TokenBudget(FamilyDeepSeek))
	assert.Equal(t, int64(4096), TokenBudget(FamilyGroq))
}

func TestGenerateObject_Success(t *testing.T) {
	client := &stubClient{
		modelID: "gpt-4o-mini",
		family:  FamilyOpenAI,
		response: &RawResponse{
			Text:         `{"content": {"company": "Acme", "description": ["Shipped the thing"]}}`,
			Usage:        Usage{PromptTokens: 120, CompletionTokens: 40, TotalTokens: 160},
			FinishReason: "stop",
		},
	}

	var out experienceEnvelope
	inv, err := GenerateObject(context.Background(), client, "system", "prompt", experienceContract, &out, nil)

	require.NoError(t, err)
	assert.Equal(t, "Acme", out.Content.Company)
	assert.Equal(t, []string{"Shipped the thing"}, out.Content.Description)

	// Invocation metadata records the resolved model and usage.
	require.NotNil(t, inv)
	assert.Equal(t, "gpt-4o-mini", inv.ModelID)
	assert.Equal(t, FamilyOpenAI, inv.Family)
	assert.Equal(t, "experience", inv.Contract)
	assert.Equal(t, int64(160), inv.Usage.TotalTokens)
	assert.Equal(t, "stop", inv.FinishReason)

	// The per-family budget was applied to the request.
	assert.Equal(t, int64(4096), client.lastReq.MaxOutputTokens)
	assert.Equal(t, "experience", client.lastReq.SchemaName)
	assert.NotNil(t, client.lastReq.Schema)
}

func TestGenerateObject_MarkdownFencedOutput(t *testing.T) {
	client := &stubClient{
		modelID: "gemini-2.0-flash",
		family:  FamilyGoogle,
		response: &RawResponse{
			Text: "```json\n{\"content\": {\"company\": \"Acme\", \"description\": [\"Did work\"]}}\n```",
		},
	}

	var out experienceEnvelope
	_, err := GenerateObject(context.Background(), client, "s", "p", experienceContract, &out, nil)

	require.NoError(t, err)
	assert.Equal(t, "Acme", out.Content.Company)
}

func TestGenerateObject_SchemaViolationRejectedWhole(t *testing.T) {
	// description is a string instead of the required array: the whole
	// call fails, no partially-populated object is returned.
	client := &stubClient{
		modelID: "gpt-4o-mini",
		family:  FamilyOpenAI,
		response: &RawResponse{
			Text:         `{"content": {"company": "Acme", "description": "not an array"}}`,
			FinishReason: "stop",
		},
	}

	var out experienceEnvelope
	_, err := GenerateObject(context.Background(), client, "s", "p", experienceContract, &out, nil)

	require.Error(t, err)
	var svErr *SchemaValidationError
	require.ErrorAs(t, err, &svErr)
	assert.Equal(t, "experience", svErr.Contract)
	assert.NotEmpty(t, svErr.Fields)
	assert.Contains(t, svErr.RawText, "not an array")
	assert.Empty(t, out.Content.Company)
}

func TestGenerateObject_InvalidJSON(t *testing.T) {
	client := &stubClient{
		modelID:  "gpt-4o-mini",
		family:   FamilyOpenAI,
		response: &RawResponse{Text: "this is not json"},
	}

	var out experienceEnvelope
	_, err := GenerateObject(context.Background(), client, "s", "p", experienceContract, &out, nil)

	var svErr *SchemaValidationError
	require.ErrorAs(t, err, &svErr)
}

func TestGenerateObject_ProviderFailureCarriesMetadata(t *testing.T) {
	client := &stubClient{
		modelID: "claude-3-5-sonnet-20240620",
		family:  FamilyAnthropic,
		response: &RawResponse{
			Text:         `{"partial":`,
			Usage:        Usage{CompletionTokens: 4096},
			FinishReason: "max_tokens",
		},
		err: errors.New("response truncated"),
	}

	var out experienceEnvelope
	_, err := GenerateObject(context.Background(), client, "s", "p", experienceContract, &out, nil)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "claude-3-5-sonnet-20240620", genErr.ModelID)
	assert.Equal(t, "max_tokens", genErr.FinishReason)
	require.NotNil(t, genErr.Usage)
	assert.Equal(t, int64(4096), genErr.Usage.CompletionTokens)
	assert.Contains(t, genErr.RawResponse, "partial")
}

func TestGenerateObject_SentinelClientFailsDeterministically(t *testing.T) {
	var out experienceEnvelope
	_, err := GenerateObject(context.Background(), sentinelClient{}, "s", "p", experienceContract, &out, nil)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	var noModel *NoModelAvailableError
	assert.ErrorAs(t, err, &noModel)
}

func TestGenerateObject_OptionOverridesBudget(t *testing.T) {
	client := &stubClient{
		modelID:  "gpt-4o-mini",
		family:   FamilyOpenAI,
		response: &RawResponse{Text: `{"content": {"company": "Acme", "description": ["x"]}}`},
	}

	var out experienceEnvelope
	_, err := GenerateObject(context.Background(), client, "s", "p", experienceContract, &out, &Options{MaxOutputTokens: 512})

	require.NoError(t, err)
	assert.Equal(t, int64(512), client.lastReq.MaxOutputTokens)
}

func TestGenerateObject_StrictSchemaOnRequest(t *testing.T) {
	client := &stubClient{
		modelID: "gpt-4o-mini",
		family:  FamilyOpenAI,
		response: &RawResponse{
			Text: `{"content": {"company": "Acme", "description": []}}`,
		},
	}

	var out experienceEnvelope
	_, err := GenerateObject(context.Background(), client, "s", "p", experienceContract, &out, nil)
	require.NoError(t, err)

	// The constrained-decoding variant travels alongside the plain schema
	// with every property forced into required.
	require.NotNil(t, client.lastReq.StrictSchema)
	required, ok := client.lastReq.StrictSchema["required"].([]any)
	require.True(t, ok)
	assert.Contains(t, required, "content")
}

func TestGenerateObject_ScrubsPlaceholderTokens(t *testing.T) {
	client := &stubClient{
		modelID: "gpt-4o-mini",
		family:  FamilyOpenAI,
		response: &RawResponse{
			Text: `{"content": {"company": "<UNKNOWN>", "description": ["Shipped", "<UNKNOWN>"]}}`,
		},
	}

	var out experienceEnvelope
	_, err := GenerateObject(context.Background(), client, "s", "p", experienceContract, &out, nil)
	require.NoError(t, err)

	// Placeholder tokens never reach callers, at any depth.
	assert.Equal(t, "", out.Content.Company)
	assert.Equal(t, []string{"Shipped", ""}, out.Content.Description)
}
