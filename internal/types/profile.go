package types

// Certification represents one professional certification on a profile.
type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	DateAcquired string `json:"date_acquired,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	CredentialID string `json:"credential_id,omitempty"`
	URL          string `json:"url,omitempty"`
}

// Profile is the full professional profile a user maintains.
// Resumes are built by selecting from it.
type Profile struct {
	FirstName      string           `json:"first_name,omitempty"`
	LastName       string           `json:"last_name,omitempty"`
	Email          string           `json:"email,omitempty"`
	PhoneNumber    string           `json:"phone_number,omitempty"`
	Location       string           `json:"location,omitempty"`
	Website        string           `json:"website,omitempty"`
	LinkedinURL    string           `json:"linkedin_url,omitempty"`
	GithubURL      string           `json:"github_url,omitempty"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications,omitempty"`
}
