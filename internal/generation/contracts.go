// Package generation orchestrates structured AI calls for resume content:
// profile formatting and import, bullet point generation and improvement,
// resume tailoring, and job listing extraction. Every operation resolves a
// provider client from the caller's GenerationConfig, issues a single
// schema-bound call, and normalizes the output before returning it.
package generation

import "github.com/lucas/resume-studio/internal/schemas"

// Model-facing shapes. Bullet points are plain strings here; identifiers
// are attached during normalization, never requested from the model.

// ExperienceDraft is one work experience entry as the model produces it.
type ExperienceDraft struct {
	Company      string   `json:"company" jsonschema:"required"`
	Position     string   `json:"position" jsonschema:"required"`
	Location     string   `json:"location,omitempty"`
	Date         string   `json:"date" jsonschema:"required"`
	Description  []string `json:"description" jsonschema:"required"`
	Technologies []string `json:"technologies,omitempty"`
}

// EducationDraft is one education entry as the model produces it.
type EducationDraft struct {
	School       string   `json:"school" jsonschema:"required"`
	Degree       string   `json:"degree" jsonschema:"required"`
	Field        string   `json:"field,omitempty"`
	Location     string   `json:"location,omitempty"`
	Date         string   `json:"date,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// ProjectDraft is one project entry as the model produces it.
type ProjectDraft struct {
	Name         string   `json:"name" jsonschema:"required"`
	Description  []string `json:"description" jsonschema:"required"`
	Date         string   `json:"date,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	GithubURL    string   `json:"github_url,omitempty"`
}

// SkillDraft is one skill category as the model produces it.
type SkillDraft struct {
	Category string   `json:"category" jsonschema:"required"`
	Items    []string `json:"items" jsonschema:"required"`
}

// ResumeDraft is the model's output shape for tailoring and import.
// Sections are required so the model is pushed to populate them.
type ResumeDraft struct {
	TargetRole          string            `json:"target_role" jsonschema:"required"`
	ProfessionalSummary string            `json:"professional_summary,omitempty"`
	WorkExperience      []ExperienceDraft `json:"work_experience" jsonschema:"required"`
	Education           []EducationDraft  `json:"education" jsonschema:"required"`
	Skills              []SkillDraft      `json:"skills" jsonschema:"required"`
	Projects            []ProjectDraft    `json:"projects" jsonschema:"required"`
}

// ProfileDraft is the model's output shape for profile formatting and
// free-text import. Everything is optional; missing data stays empty.
type ProfileDraft struct {
	FirstName      string            `json:"first_name,omitempty"`
	LastName       string            `json:"last_name,omitempty"`
	Email          string            `json:"email,omitempty"`
	PhoneNumber    string            `json:"phone_number,omitempty"`
	Location       string            `json:"location,omitempty"`
	Website        string            `json:"website,omitempty"`
	LinkedinURL    string            `json:"linkedin_url,omitempty"`
	GithubURL      string            `json:"github_url,omitempty"`
	WorkExperience []ExperienceDraft `json:"work_experience,omitempty"`
	Education      []EducationDraft  `json:"education,omitempty"`
	Skills         []SkillDraft      `json:"skills,omitempty"`
	Projects       []ProjectDraft    `json:"projects,omitempty"`
}

// JobDraft is the model's output shape for job listing extraction.
type JobDraft struct {
	CompanyName    string   `json:"company_name,omitempty"`
	PositionTitle  string   `json:"position_title,omitempty"`
	JobURL         string   `json:"job_url,omitempty"`
	Description    string   `json:"description,omitempty"`
	Location       string   `json:"location,omitempty"`
	SalaryRange    string   `json:"salary_range,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	WorkLocation   string   `json:"work_location,omitempty"`
	EmploymentType string   `json:"employment_type,omitempty"`
}

// PointsAnalysis carries the model's self-assessment of generated points.
type PointsAnalysis struct {
	ImpactScore            float64  `json:"impact_score" jsonschema:"required"`
	ImprovementSuggestions []string `json:"improvement_suggestions" jsonschema:"required"`
}

// BulletPoints is the model's output shape for point generation.
type BulletPoints struct {
	Points   []string        `json:"points" jsonschema:"required"`
	Analysis *PointsAnalysis `json:"analysis,omitempty"`
}

// Single-field envelopes for operations that return one value.

type pointEnvelope struct {
	Content string `json:"content" jsonschema:"required"`
}

type resumeEnvelope struct {
	Content ResumeDraft `json:"content" jsonschema:"required"`
}

type profileEnvelope struct {
	Content ProfileDraft `json:"content" jsonschema:"required"`
}

type jobEnvelope struct {
	Content JobDraft `json:"content" jsonschema:"required"`
}

type experienceEnvelope struct {
	Content ExperienceDraft `json:"content" jsonschema:"required"`
}

// Contracts enforced on provider output, reflected once at init.
var (
	profileContract    = schemas.MustReflect[profileEnvelope]("profile")
	resumeContract     = schemas.MustReflect[resumeEnvelope]("resume")
	jobContract        = schemas.MustReflect[jobEnvelope]("job_listing")
	pointsContract     = schemas.MustReflect[BulletPoints]("bullet_points")
	pointContract      = schemas.MustReflect[pointEnvelope]("bullet_point")
	experienceContract = schemas.MustReflect[experienceEnvelope]("work_experience")
)
