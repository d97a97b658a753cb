package llm

import "context"

// Request is a single structured-generation request passed to a provider client.
type Request struct {
	// System is the behavioral system prompt.
	System string
	// Prompt is the user-turn content.
	Prompt string
	// SchemaName labels the expected output shape for providers that
	// accept a named response schema.
	SchemaName string
	// Schema is a JSON Schema document describing the expected output.
	// Providers without constrained decoding render it into the prompt;
	// the invoker validates against it regardless.
	Schema map[string]any
	// StrictSchema is the constrained-decoding variant of Schema, with
	// every property required and optionals null-unioned. Providers with
	// a strict response-format mode must send this form.
	StrictSchema map[string]any
	// MaxOutputTokens is the output ceiling for this call. The invoker
	// sets it from the per-family token budget policy.
	MaxOutputTokens int64
}

// RawResponse is the provider-agnostic result of one generation call.
type RawResponse struct {
	Text         string
	Usage        Usage
	FinishReason string
}

// Client is a resolved handle onto one provider model. Implementations
// hold no mutable shared state and are safe for concurrent use.
type Client interface {
	// ModelID returns the provider-specific model identifier.
	ModelID() string
	// Family returns the provider family serving this client.
	Family() ProviderFamily
	// GenerateJSON issues one structured-generation call and returns the
	// raw JSON text plus usage metadata.
	GenerateJSON(ctx context.Context, req Request) (*RawResponse, error)
}

// sentinelClient is the "no model" placeholder returned when resolution
// exhausts every fallback. It deterministically fails every call.
type sentinelClient struct{}

func (sentinelClient) ModelID() string        { return "no-model" }
func (sentinelClient) Family() ProviderFamily { return FamilyNone }

func (sentinelClient) GenerateJSON(_ context.Context, _ Request) (*RawResponse, error) {
	return nil, &NoModelAvailableError{}
}
