package llm

import "fmt"

// CredentialMissingError indicates no credential was found for the
// inferred provider family. It is handled inside the resolution chain
// and only surfaces if every fallback exhausts.
type CredentialMissingError struct {
	Family ProviderFamily
}

func (e *CredentialMissingError) Error() string {
	return fmt.Sprintf("no credential found for provider family %q", e.Family)
}

// Usage reports token consumption for one generation call.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// GenerationError represents an upstream provider failure (network, auth,
// quota, truncation). Diagnostic metadata is attached at the throw site
// inside the invoker so callers never reconstruct it by duck-typing.
type GenerationError struct {
	ModelID      string
	Family       ProviderFamily
	Message      string
	RawResponse  string
	Usage        *Usage
	FinishReason string
	Cause        error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed for %s (%s): %s: %v", e.ModelID, e.Family, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed for %s (%s): %s", e.ModelID, e.Family, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// SchemaValidationError indicates provider output could not be coerced
// into the declared contract shape. The raw text is attached for
// diagnosis; partial successes are never accepted.
type SchemaValidationError struct {
	Contract string
	RawText  string
	Fields   []FieldError
	Cause    error
}

// FieldError is a single validation failure at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("output does not match contract %q: %v", e.Contract, e.Cause)
		}
		return fmt.Sprintf("output does not match contract %q", e.Contract)
	}
	msg := fmt.Sprintf("output does not match contract %q:", e.Contract)
	for i, f := range e.Fields {
		msg += fmt.Sprintf("\n  %d. %s: %s", i+1, f.Field, f.Message)
	}
	return msg
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Cause
}

// NoModelAvailableError is returned by the sentinel client when every
// fallback in the resolution chain failed. Calls fail fast rather than hang.
type NoModelAvailableError struct{}

func (e *NoModelAvailableError) Error() string {
	return "no model available: no usable API key was found for any provider"
}
