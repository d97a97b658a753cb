// Package llm provides multi-provider language model client resolution and
// schema-validated structured generation.
package llm

import "strings"

// ProviderFamily identifies the vendor SDK that serves a model id.
type ProviderFamily string

// Provider families supported by the client factory.
const (
	// FamilyOpenAI is the default family with the broadest catalog; model
	// ids that match no known prefix resolve here.
	FamilyOpenAI    ProviderFamily = "openai"
	FamilyAnthropic ProviderFamily = "anthropic"
	FamilyGoogle    ProviderFamily = "google"
	FamilyDeepSeek  ProviderFamily = "deepseek"
	FamilyGroq      ProviderFamily = "groq"
	// FamilyNone marks the sentinel client returned when no credential
	// resolves; calls against it fail deterministically.
	FamilyNone ProviderFamily = "none"
)

// prefixFamilies maps model-id prefixes to provider families. Centralized
// here so the fallback chain lives in one place instead of ad hoc prefix
// branches at call sites.
var prefixFamilies = []struct {
	prefix string
	family ProviderFamily
}{
	{"claude", FamilyAnthropic},
	{"gemini", FamilyGoogle},
	{"deepseek", FamilyDeepSeek},
	{"gemma", FamilyGroq},
}

// FamilyForModel infers the provider family from a model id prefix.
// Ids matching no known prefix belong to the default OpenAI family.
func FamilyForModel(modelID string) ProviderFamily {
	for _, p := range prefixFamilies {
		if strings.HasPrefix(modelID, p.prefix) {
			return p.family
		}
	}
	return FamilyOpenAI
}

// serviceAliases lists the credential service names each family accepts.
// The Google family historically accepts both "google" and "gemini".
var serviceAliases = map[ProviderFamily][]string{
	FamilyOpenAI:    {"openai"},
	FamilyAnthropic: {"anthropic"},
	FamilyGoogle:    {"google", "gemini"},
	FamilyDeepSeek:  {"deepseek"},
	FamilyGroq:      {"groq"},
}

// Services returns the recognized credential service names for a family.
func (f ProviderFamily) Services() []string {
	return serviceAliases[f]
}

// ModelDescriptor describes one entry in the static model registry.
type ModelDescriptor struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Family      ProviderFamily `json:"provider"`
}

// Default model ids used by the environment-scoped fallback chain.
const (
	DefaultGoogleModel = "gemini-1.5-pro-latest"
	DefaultOpenAIModel = "gpt-3.5-turbo"
)

// modelRegistry is the static catalog of selectable models.
var modelRegistry = []ModelDescriptor{
	{ID: "gpt-4o", DisplayName: "GPT-4o", Family: FamilyOpenAI},
	{ID: "gpt-4o-mini", DisplayName: "GPT-4o Mini", Family: FamilyOpenAI},
	{ID: "gpt-3.5-turbo", DisplayName: "GPT-3.5 Turbo", Family: FamilyOpenAI},
	{ID: "claude-3-5-sonnet-20240620", DisplayName: "Claude 3.5 Sonnet", Family: FamilyAnthropic},
	{ID: "claude-3-haiku-20240307", DisplayName: "Claude 3 Haiku", Family: FamilyAnthropic},
	{ID: "gemini-2.0-flash", DisplayName: "Gemini 2.0 Flash", Family: FamilyGoogle},
	{ID: "gemini-1.5-pro-latest", DisplayName: "Gemini 1.5 Pro", Family: FamilyGoogle},
	{ID: "deepseek-chat", DisplayName: "DeepSeek Chat", Family: FamilyDeepSeek},
	{ID: "gemma2-9b-it", DisplayName: "Gemma 2 9B (Groq)", Family: FamilyGroq},
}

// Models returns a copy of the static model registry.
func Models() []ModelDescriptor {
	out := make([]ModelDescriptor, len(modelRegistry))
	copy(out, modelRegistry)
	return out
}

// LookupModel finds a registry entry by id. The second return value
// reports whether the id is registered; unregistered ids are still
// usable (the registry is a catalog, not an allowlist).
func LookupModel(id string) (ModelDescriptor, bool) {
	for _, m := range modelRegistry {
		if m.ID == id {
			return m, true
		}
	}
	return ModelDescriptor{}, false
}
