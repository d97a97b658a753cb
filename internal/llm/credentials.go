package llm

import "time"

// Credential is one stored API key for a provider service.
// Uniqueness is by service name; storage applies last-write-wins.
type Credential struct {
	Service string    `json:"service"`
	Key     string    `json:"key"`
	AddedAt time.Time `json:"added_at"`
}

// GenerationConfig carries the per-call model selection and the caller's
// stored credentials. It is constructed fresh per call and never persisted.
type GenerationConfig struct {
	Model       string
	Credentials []Credential
}

// credentialFor returns the first credential matching any of the family's
// recognized service names, preserving the list order the caller supplied.
func credentialFor(creds []Credential, family ProviderFamily) (Credential, bool) {
	for _, service := range family.Services() {
		for _, c := range creds {
			if c.Service == service && c.Key != "" {
				return c, true
			}
		}
	}
	return Credential{}, false
}
