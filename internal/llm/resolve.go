package llm

import (
	"os"
	"strings"
)

// Environment variables consulted by the fallback chain when no
// user-supplied credential matches.
const (
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// ResolveClient resolves a provider client for the given configuration.
// It never returns an error; when nothing resolves it returns the
// sentinel "no model" client and error surfacing is deferred to the
// actual generation call.
//
// Resolution order:
//  1. Infer the family from the model id prefix and look for a matching
//     user credential. A miss falls through rather than failing.
//  2. Fall back to a user OpenAI credential with the selected model.
//  3. Fall back to an environment-scoped Google credential with a default
//     Gemini model (or the selected model when it is already a Gemini id).
//  4. Fall back to an environment-scoped OpenAI credential with a fixed
//     inexpensive model.
//  5. Return the sentinel client.
func ResolveClient(cfg GenerationConfig) Client {
	if len(cfg.Credentials) > 0 && cfg.Model != "" {
		if client, err := resolveUserClient(cfg); err == nil {
			return client
		}
		// CredentialMissingError is soft: fall through the chain below.
	}

	googleModel := DefaultGoogleModel
	if strings.HasPrefix(cfg.Model, "gemini") {
		googleModel = cfg.Model
	}
	if cred, ok := credentialFor(cfg.Credentials, FamilyGoogle); ok {
		return newGeminiClient(googleModel, cred.Key)
	}
	if key := os.Getenv(EnvGoogleAPIKey); key != "" {
		return newGeminiClient(googleModel, key)
	}

	if key := os.Getenv(EnvOpenAIAPIKey); key != "" {
		return newOpenAIClient(DefaultOpenAIModel, key)
	}

	return sentinelClient{}
}

// resolveUserClient resolves a client from the caller's own credentials.
// It returns a CredentialMissingError when neither the inferred family
// nor the default OpenAI family has a usable key.
func resolveUserClient(cfg GenerationConfig) (Client, error) {
	family := FamilyForModel(cfg.Model)
	if cred, ok := credentialFor(cfg.Credentials, family); ok {
		return newFamilyClient(family, cfg.Model, cred.Key), nil
	}
	// The inferred family has no key; an OpenAI credential in the user's
	// list still serves the selected model id.
	if cred, ok := credentialFor(cfg.Credentials, FamilyOpenAI); ok {
		return newOpenAIClient(cfg.Model, cred.Key), nil
	}
	return nil, &CredentialMissingError{Family: family}
}

// newFamilyClient instantiates the concrete client for a resolved family.
func newFamilyClient(family ProviderFamily, modelID, key string) Client {
	switch family {
	case FamilyAnthropic:
		return newAnthropicClient(modelID, key)
	case FamilyGoogle:
		return newGeminiClient(modelID, key)
	case FamilyDeepSeek:
		return newOpenAICompatibleClient(modelID, key, deepseekBaseURL, FamilyDeepSeek)
	case FamilyGroq:
		return newOpenAICompatibleClient(modelID, key, groqBaseURL, FamilyGroq)
	default:
		return newOpenAIClient(modelID, key)
	}
}
