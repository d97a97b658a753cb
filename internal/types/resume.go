// Package types provides type definitions for structured data used throughout the resume-studio system.
package types

// DescriptionPoint is a single bullet point with a stable client-side identifier.
// Identifiers are assigned during normalization, never by the model.
type DescriptionPoint struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// WorkExperience represents one work experience entry on a resume.
type WorkExperience struct {
	ID           string             `json:"id,omitempty"`
	Company      string             `json:"company"`
	Position     string             `json:"position"`
	Location     string             `json:"location,omitempty"`
	Date         string             `json:"date"`
	Description  []DescriptionPoint `json:"description"`
	Technologies []string           `json:"technologies,omitempty"`
}

// Project represents one project entry on a resume.
type Project struct {
	ID           string             `json:"id,omitempty"`
	Name         string             `json:"name"`
	Description  []DescriptionPoint `json:"description"`
	Date         string             `json:"date,omitempty"`
	Technologies []string           `json:"technologies,omitempty"`
	URL          string             `json:"url,omitempty"`
	GithubURL    string             `json:"github_url,omitempty"`
}

// Education represents one education entry on a resume.
type Education struct {
	ID           string   `json:"id,omitempty"`
	School       string   `json:"school"`
	Degree       string   `json:"degree"`
	Field        string   `json:"field"`
	Location     string   `json:"location,omitempty"`
	Date         string   `json:"date"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Skill represents one skill category with its items.
type Skill struct {
	ID       string             `json:"id,omitempty"`
	Category string             `json:"category"`
	Items    []DescriptionPoint `json:"items"`
}

// Resume is the client-ready resume owned by the caller's persistence layer.
type Resume struct {
	Name                string           `json:"name,omitempty"`
	TargetRole          string           `json:"target_role"`
	FirstName           string           `json:"first_name,omitempty"`
	LastName            string           `json:"last_name,omitempty"`
	Email               string           `json:"email,omitempty"`
	PhoneNumber         string           `json:"phone_number,omitempty"`
	Location            string           `json:"location,omitempty"`
	Website             string           `json:"website,omitempty"`
	LinkedinURL         string           `json:"linkedin_url,omitempty"`
	GithubURL           string           `json:"github_url,omitempty"`
	ProfessionalSummary string           `json:"professional_summary,omitempty"`
	WorkExperience      []WorkExperience `json:"work_experience"`
	Education           []Education      `json:"education"`
	Skills              []Skill          `json:"skills"`
	Projects            []Project        `json:"projects"`
}
