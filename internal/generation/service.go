package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucas/resume-studio/internal/llm"
	"github.com/lucas/resume-studio/internal/normalize"
	"github.com/lucas/resume-studio/internal/prompts"
	"github.com/lucas/resume-studio/internal/schemas"
	"github.com/lucas/resume-studio/internal/types"
)

// Service exposes the generation operations. It holds no mutable state,
// so one instance may serve concurrent calls; provider choice and
// credentials travel in the per-call GenerationConfig.
type Service struct {
	// OnInvocation, when set, receives diagnostic metadata after every
	// provider call that produced a response.
	OnInvocation func(ctx context.Context, inv *llm.Invocation)

	// Resolve maps a config to a provider client. Defaults to
	// llm.ResolveClient; tests substitute stubs here.
	Resolve func(cfg llm.GenerationConfig) llm.Client
}

// NewService returns a Service backed by the standard client resolution
// chain.
func NewService() *Service {
	return &Service{Resolve: llm.ResolveClient}
}

func (s *Service) generate(ctx context.Context, cfg llm.GenerationConfig, system, prompt string, contract *schemas.Contract, out any) error {
	resolve := s.Resolve
	if resolve == nil {
		resolve = llm.ResolveClient
	}
	client := resolve(cfg)
	inv, err := llm.GenerateObject(ctx, client, system, prompt, contract, out, nil)
	if inv != nil && s.OnInvocation != nil {
		s.OnInvocation(ctx, inv)
	}
	return err
}

// mustJSON renders a value for embedding in a prompt. Marshaling the
// prompt payload types cannot fail.
func mustJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("marshal prompt payload: %v", err))
	}
	return string(data)
}

// FormatProfile restructures raw profile content without altering it.
// Every bullet point and detail of the input survives; only formatting
// is standardized.
func (s *Service) FormatProfile(ctx context.Context, cfg llm.GenerationConfig, raw string) (*types.Profile, error) {
	system := prompts.MustGet(prompts.FileResume, "formatter_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FileResume, "format_user"), map[string]string{
		"Content": raw,
	})

	var env profileEnvelope
	if err := s.generate(ctx, cfg, system, prompt, profileContract, &env); err != nil {
		return nil, err
	}
	return profileFromDraft(env.Content), nil
}

// ImportText extracts structured profile information from arbitrary
// text such as a resume dump or a LinkedIn export.
func (s *Service) ImportText(ctx context.Context, cfg llm.GenerationConfig, text string) (*types.Profile, error) {
	system := prompts.MustGet(prompts.FileResume, "text_import_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FileResume, "text_import_user"), map[string]string{
		"Text": text,
	})

	var env profileEnvelope
	if err := s.generate(ctx, cfg, system, prompt, profileContract, &env); err != nil {
		return nil, err
	}
	return profileFromDraft(env.Content), nil
}

// ImportProfile selects the profile content most relevant to targetRole
// and assembles it into a base resume. Selected items are copied
// verbatim; the model only curates.
func (s *Service) ImportProfile(ctx context.Context, cfg llm.GenerationConfig, profile types.Profile, targetRole string) (*types.Resume, error) {
	system := prompts.MustGet(prompts.FileResume, "importer_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FileResume, "import_user"), map[string]string{
		"TargetRole": targetRole,
		"Profile":    mustJSON(profileToDraft(profile)),
	})

	var env resumeEnvelope
	if err := s.generate(ctx, cfg, system, prompt, resumeContract, &env); err != nil {
		return nil, err
	}

	resume := resumeFromDraft(env.Content)
	if resume.TargetRole == "" {
		resume.TargetRole = targetRole
	}
	copyContactInfo(resume, profile)
	return resume, nil
}

// MergeTextIntoResume extracts resume content from text and folds it
// into an existing resume: empty contact fields are filled, sections are
// appended and re-ordered newest first, nothing already present is
// overwritten.
func (s *Service) MergeTextIntoResume(ctx context.Context, cfg llm.GenerationConfig, text string, existing *types.Resume) (*types.Resume, error) {
	system := prompts.MustGet(prompts.FileResume, "text_analyzer_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FileResume, "text_import_user"), map[string]string{
		"Text": text,
	})

	var env profileEnvelope
	if err := s.generate(ctx, cfg, system, prompt, profileContract, &env); err != nil {
		return nil, err
	}

	extracted := profileFromDraft(env.Content)
	merged := *existing
	if merged.FirstName == "" {
		merged.FirstName = extracted.FirstName
	}
	if merged.LastName == "" {
		merged.LastName = extracted.LastName
	}
	if merged.Email == "" {
		merged.Email = extracted.Email
	}
	if merged.PhoneNumber == "" {
		merged.PhoneNumber = extracted.PhoneNumber
	}
	if merged.Location == "" {
		merged.Location = extracted.Location
	}
	if merged.Website == "" {
		merged.Website = extracted.Website
	}
	if merged.LinkedinURL == "" {
		merged.LinkedinURL = extracted.LinkedinURL
	}
	if merged.GithubURL == "" {
		merged.GithubURL = extracted.GithubURL
	}
	merged.WorkExperience = sortExperiences(append(merged.WorkExperience, extracted.WorkExperience...))
	merged.Education = sortEducation(append(merged.Education, extracted.Education...))
	merged.Skills = append(merged.Skills, extracted.Skills...)
	merged.Projects = sortProjects(append(merged.Projects, extracted.Projects...))
	return normalize.Resume(&merged), nil
}

// PointsRequest describes the entry to generate bullet points for.
type PointsRequest struct {
	Company        string   `json:"company,omitempty"`
	Position       string   `json:"position,omitempty"`
	Name           string   `json:"name,omitempty"`
	Technologies   []string `json:"technologies,omitempty"`
	JobDescription string   `json:"-"`
	NumPoints      int      `json:"num_points,omitempty"`
}

// GenerateWorkExperiencePoints produces achievement-focused bullet
// points for one work experience, tailored to the job description.
func (s *Service) GenerateWorkExperiencePoints(ctx context.Context, cfg llm.GenerationConfig, req PointsRequest) (*BulletPoints, error) {
	system := prompts.MustGet(prompts.FilePoints, "work_experience_generator_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FilePoints, "work_experience_generator_user"), map[string]string{
		"Experiences":    mustJSON(req),
		"JobDescription": req.JobDescription,
	})
	return s.generatePoints(ctx, cfg, system, prompt)
}

// GenerateProjectPoints produces technically detailed bullet points for
// one project, tailored to the job description.
func (s *Service) GenerateProjectPoints(ctx context.Context, cfg llm.GenerationConfig, req PointsRequest) (*BulletPoints, error) {
	system := prompts.MustGet(prompts.FilePoints, "project_generator_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FilePoints, "project_generator_user"), map[string]string{
		"Projects":       mustJSON(req),
		"JobDescription": req.JobDescription,
	})
	return s.generatePoints(ctx, cfg, system, prompt)
}

func (s *Service) generatePoints(ctx context.Context, cfg llm.GenerationConfig, system, prompt string) (*BulletPoints, error) {
	var out BulletPoints
	if err := s.generate(ctx, cfg, system, prompt, pointsContract, &out); err != nil {
		return nil, err
	}
	out.Points = normalize.Strings(out.Points)
	return &out, nil
}

// ImproveWorkExperiencePoint rewrites a single bullet point for impact
// while preserving its factual content. extra carries optional caller
// guidance and may be empty.
func (s *Service) ImproveWorkExperiencePoint(ctx context.Context, cfg llm.GenerationConfig, point, extra string) (string, error) {
	return s.improvePoint(ctx, cfg, "work_experience_improver_system", "work_experience_improver_user", point, extra)
}

// ImproveProjectPoint rewrites a single project bullet point for
// technical impact while preserving its factual content.
func (s *Service) ImproveProjectPoint(ctx context.Context, cfg llm.GenerationConfig, point, extra string) (string, error) {
	return s.improvePoint(ctx, cfg, "project_improver_system", "project_improver_user", point, extra)
}

func (s *Service) improvePoint(ctx context.Context, cfg llm.GenerationConfig, systemKey, userKey, point, extra string) (string, error) {
	system := prompts.MustGet(prompts.FilePoints, systemKey)
	prompt := prompts.Format(prompts.MustGet(prompts.FilePoints, userKey), map[string]string{
		"Point":   point,
		"Context": extra,
	})

	var env pointEnvelope
	if err := s.generate(ctx, cfg, system, prompt, pointContract, &env); err != nil {
		return "", err
	}
	return strings.TrimSpace(normalize.CleanString(env.Content)), nil
}

// ModifyWorkExperience applies a free-text instruction to one work
// experience entry and returns the complete modified entry. The entry's
// identifiers are regenerated since content may have changed shape.
func (s *Service) ModifyWorkExperience(ctx context.Context, cfg llm.GenerationConfig, exp types.WorkExperience, instruction string) (*types.WorkExperience, error) {
	system := prompts.MustGet(prompts.FilePoints, "modify_experience_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FilePoints, "modify_experience_user"), map[string]string{
		"Experience":  mustJSON(experienceToDraft(exp)),
		"Instruction": instruction,
	})

	var env experienceEnvelope
	if err := s.generate(ctx, cfg, system, prompt, experienceContract, &env); err != nil {
		return nil, err
	}
	modified := experiencesFromDrafts([]ExperienceDraft{env.Content})
	return &modified[0], nil
}

// TailorResume transforms a base resume to target a specific job. The
// output keeps the base resume's chronology and facts; contact
// information is carried over from the base rather than trusted to the
// model.
func (s *Service) TailorResume(ctx context.Context, cfg llm.GenerationConfig, base types.Resume, job types.Job) (*types.Resume, error) {
	system := prompts.MustGet(prompts.FileTailoring, "tailored_resume_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FileTailoring, "tailored_resume_user"), map[string]string{
		"Resume":         mustJSON(resumeToDraft(base)),
		"JobDescription": mustJSON(job),
	})

	var env resumeEnvelope
	if err := s.generate(ctx, cfg, system, prompt, resumeContract, &env); err != nil {
		return nil, err
	}

	tailored := resumeFromDraft(env.Content)
	if tailored.TargetRole == "" {
		tailored.TargetRole = job.PositionTitle
	}
	tailored.Name = base.Name
	tailored.FirstName = base.FirstName
	tailored.LastName = base.LastName
	tailored.Email = base.Email
	tailored.PhoneNumber = base.PhoneNumber
	tailored.Location = base.Location
	tailored.Website = base.Website
	tailored.LinkedinURL = base.LinkedinURL
	tailored.GithubURL = base.GithubURL
	return tailored, nil
}

// ParseJobListing extracts a structured job from raw listing text.
func (s *Service) ParseJobListing(ctx context.Context, cfg llm.GenerationConfig, listing string) (*types.Job, error) {
	system := prompts.MustGet(prompts.FileTailoring, "job_listing_system")
	prompt := prompts.Format(prompts.MustGet(prompts.FileTailoring, "job_listing_user"), map[string]string{
		"Listing": listing,
	})

	var env jobEnvelope
	if err := s.generate(ctx, cfg, system, prompt, jobContract, &env); err != nil {
		return nil, err
	}
	return jobFromDraft(env.Content), nil
}

func copyContactInfo(resume *types.Resume, profile types.Profile) {
	resume.FirstName = profile.FirstName
	resume.LastName = profile.LastName
	resume.Email = profile.Email
	resume.PhoneNumber = profile.PhoneNumber
	resume.Location = profile.Location
	resume.Website = profile.Website
	resume.LinkedinURL = profile.LinkedinURL
	resume.GithubURL = profile.GithubURL
}
