package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lucas/resume-studio/internal/normalize"
	"github.com/lucas/resume-studio/internal/schemas"
)

// Per-family output-token ceilings. Gemini handles long structured
// outputs; every other family truncates or errors past a few thousand
// tokens, so they get a conservative fixed ceiling. Empirical policy,
// overridable per call through Options.
const (
	googleTokenBudget  = 32768
	defaultTokenBudget = 4096
)

// TokenBudget returns the output ceiling for a provider family.
func TokenBudget(family ProviderFamily) int64 {
	if family == FamilyGoogle {
		return googleTokenBudget
	}
	return defaultTokenBudget
}

// Options adjusts a single invocation. The zero value applies the
// per-family token budget policy.
type Options struct {
	// MaxOutputTokens overrides the family token budget when positive.
	MaxOutputTokens int64
}

// Invocation records diagnostic metadata for one generation call.
type Invocation struct {
	ModelID      string
	Family       ProviderFamily
	Contract     string
	Usage        Usage
	FinishReason string
	Duration     time.Duration
}

// GenerateObject issues one structured-generation call and decodes the
// provider output into out, which must be a pointer to the contract's Go
// type. The call is single-attempt: no retries. Provider output that
// fails contract validation is rejected whole with SchemaValidationError;
// upstream failures surface as GenerationError with whatever usage and
// finish-reason metadata was available.
func GenerateObject(ctx context.Context, client Client, system, prompt string, contract *schemas.Contract, out any, opts *Options) (*Invocation, error) {
	budget := TokenBudget(client.Family())
	if opts != nil && opts.MaxOutputTokens > 0 {
		budget = opts.MaxOutputTokens
	}

	req := Request{
		System:          system,
		Prompt:          prompt,
		SchemaName:      contract.Name,
		Schema:          contract.Schema(),
		StrictSchema:    contract.StrictSchema(),
		MaxOutputTokens: budget,
	}

	start := time.Now()
	resp, err := client.GenerateJSON(ctx, req)
	if err != nil {
		genErr := &GenerationError{
			ModelID: client.ModelID(),
			Family:  client.Family(),
			Message: "provider call failed",
			Cause:   err,
		}
		if resp != nil {
			genErr.RawResponse = resp.Text
			genErr.Usage = &resp.Usage
			genErr.FinishReason = resp.FinishReason
		}
		return nil, genErr
	}

	inv := &Invocation{
		ModelID:      client.ModelID(),
		Family:       client.Family(),
		Contract:     contract.Name,
		Usage:        resp.Usage,
		FinishReason: resp.FinishReason,
		Duration:     time.Since(start),
	}

	text := CleanJSONBlock(resp.Text)
	if err := contract.Validate(text); err != nil {
		return inv, newSchemaValidationError(contract.Name, text, err)
	}

	// Scrub placeholder tokens everywhere in the document before it is
	// decoded, so no caller has to chase them field by field.
	var tree any
	if err := json.Unmarshal([]byte(text), &tree); err != nil {
		return inv, &SchemaValidationError{Contract: contract.Name, RawText: text, Cause: err}
	}
	scrubbed, err := json.Marshal(normalize.SanitizeTree(tree))
	if err != nil {
		return inv, &SchemaValidationError{Contract: contract.Name, RawText: text, Cause: err}
	}
	if err := json.Unmarshal(scrubbed, out); err != nil {
		return inv, &SchemaValidationError{Contract: contract.Name, RawText: text, Cause: err}
	}

	return inv, nil
}

// newSchemaValidationError converts a contract validation failure into
// the invoker's error type, carrying the raw text for diagnosis.
func newSchemaValidationError(contract, rawText string, err error) *SchemaValidationError {
	svErr := &SchemaValidationError{Contract: contract, RawText: rawText, Cause: err}
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		svErr.Fields = make([]FieldError, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			svErr.Fields = append(svErr.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
	}
	return svErr
}
