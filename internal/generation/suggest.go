package generation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lucas/resume-studio/internal/llm"
	"github.com/lucas/resume-studio/internal/prompts"
	"github.com/lucas/resume-studio/internal/schemas"
	"github.com/lucas/resume-studio/internal/types"
)

// Section names accepted by SuggestSections.
const (
	SectionWorkExperience = "work_experience"
	SectionProjects       = "projects"
	SectionSkills         = "skills"
	SectionEducation      = "education"
)

type experienceListEnvelope struct {
	Content []ExperienceDraft `json:"content" jsonschema:"required"`
}

type projectListEnvelope struct {
	Content []ProjectDraft `json:"content" jsonschema:"required"`
}

type skillListEnvelope struct {
	Content []SkillDraft `json:"content" jsonschema:"required"`
}

type educationListEnvelope struct {
	Content []EducationDraft `json:"content" jsonschema:"required"`
}

var (
	experienceListContract = schemas.MustReflect[experienceListEnvelope]("work_experience_suggestions")
	projectListContract    = schemas.MustReflect[projectListEnvelope]("project_suggestions")
	skillListContract      = schemas.MustReflect[skillListEnvelope]("skill_suggestions")
	educationListContract  = schemas.MustReflect[educationListEnvelope]("education_suggestions")
)

// SectionSuggestions holds per-section tailoring suggestions grounded in
// the candidate's profile.
type SectionSuggestions struct {
	WorkExperience []types.WorkExperience `json:"work_experience"`
	Projects       []types.Project        `json:"projects"`
	Skills         []types.Skill          `json:"skills"`
	Education      []types.Education      `json:"education"`
}

// SuggestSections generates suggestions for all four resume sections
// concurrently, one provider call per section. The first failing section
// cancels the rest and its error is returned.
func (s *Service) SuggestSections(ctx context.Context, cfg llm.GenerationConfig, profile types.Profile, jobDescription string) (*SectionSuggestions, error) {
	system := prompts.MustGet(prompts.FileTailoring, "section_suggestion_system")
	userTemplate := prompts.MustGet(prompts.FileTailoring, "section_suggestion_user")
	profileJSON := mustJSON(profileToDraft(profile))

	sectionPrompt := func(section string) string {
		return prompts.Format(userTemplate, map[string]string{
			"Section":        section,
			"Profile":        profileJSON,
			"JobDescription": jobDescription,
		})
	}

	var suggestions SectionSuggestions
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var env experienceListEnvelope
		if err := s.generate(gctx, cfg, system, sectionPrompt(SectionWorkExperience), experienceListContract, &env); err != nil {
			return err
		}
		suggestions.WorkExperience = experiencesFromDrafts(env.Content)
		return nil
	})
	g.Go(func() error {
		var env projectListEnvelope
		if err := s.generate(gctx, cfg, system, sectionPrompt(SectionProjects), projectListContract, &env); err != nil {
			return err
		}
		suggestions.Projects = projectsFromDrafts(env.Content)
		return nil
	})
	g.Go(func() error {
		var env skillListEnvelope
		if err := s.generate(gctx, cfg, system, sectionPrompt(SectionSkills), skillListContract, &env); err != nil {
			return err
		}
		suggestions.Skills = skillsFromDrafts(env.Content)
		return nil
	})
	g.Go(func() error {
		var env educationListEnvelope
		if err := s.generate(gctx, cfg, system, sectionPrompt(SectionEducation), educationListContract, &env); err != nil {
			return err
		}
		suggestions.Education = educationFromDrafts(env.Content)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &suggestions, nil
}
