package generation

import (
	"github.com/lucas/resume-studio/internal/dates"
	"github.com/lucas/resume-studio/internal/normalize"
	"github.com/lucas/resume-studio/internal/types"
)

// Draft-to-domain conversion. Bullet strings become identified points,
// placeholder tokens are scrubbed, and dated sections are ordered
// reverse-chronologically on the way through.

func experiencesFromDrafts(drafts []ExperienceDraft) []types.WorkExperience {
	out := make([]types.WorkExperience, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, types.WorkExperience{
			Company:      d.Company,
			Position:     d.Position,
			Location:     d.Location,
			Date:         d.Date,
			Description:  normalize.Points(d.Description),
			Technologies: d.Technologies,
		})
	}
	return out
}

func educationFromDrafts(drafts []EducationDraft) []types.Education {
	out := make([]types.Education, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, types.Education{
			School:       d.School,
			Degree:       d.Degree,
			Field:        d.Field,
			Location:     d.Location,
			Date:         d.Date,
			GPA:          d.GPA,
			Achievements: d.Achievements,
		})
	}
	return out
}

func projectsFromDrafts(drafts []ProjectDraft) []types.Project {
	out := make([]types.Project, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, types.Project{
			Name:         d.Name,
			Description:  normalize.Points(d.Description),
			Date:         d.Date,
			Technologies: d.Technologies,
			URL:          d.URL,
			GithubURL:    d.GithubURL,
		})
	}
	return out
}

func skillsFromDrafts(drafts []SkillDraft) []types.Skill {
	out := make([]types.Skill, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, types.Skill{
			Category: d.Category,
			Items:    normalize.Points(d.Items),
		})
	}
	return out
}

func resumeFromDraft(d ResumeDraft) *types.Resume {
	r := &types.Resume{
		TargetRole:          d.TargetRole,
		ProfessionalSummary: d.ProfessionalSummary,
		WorkExperience:      sortExperiences(experiencesFromDrafts(d.WorkExperience)),
		Education:           sortEducation(educationFromDrafts(d.Education)),
		Skills:              skillsFromDrafts(d.Skills),
		Projects:            sortProjects(projectsFromDrafts(d.Projects)),
	}
	return normalize.Resume(r)
}

func profileFromDraft(d ProfileDraft) *types.Profile {
	return &types.Profile{
		FirstName:      normalize.CleanString(d.FirstName),
		LastName:       normalize.CleanString(d.LastName),
		Email:          normalize.CleanString(d.Email),
		PhoneNumber:    normalize.CleanString(d.PhoneNumber),
		Location:       normalize.CleanString(d.Location),
		Website:        normalize.CleanString(d.Website),
		LinkedinURL:    normalize.CleanString(d.LinkedinURL),
		GithubURL:      normalize.CleanString(d.GithubURL),
		WorkExperience: sortExperiences(experiencesFromDrafts(d.WorkExperience)),
		Education:      sortEducation(educationFromDrafts(d.Education)),
		Skills:         skillsFromDrafts(d.Skills),
		Projects:       sortProjects(projectsFromDrafts(d.Projects)),
	}
}

// Models return sections in whatever order the source text had them;
// resumes present dated entries newest first.

func sortExperiences(items []types.WorkExperience) []types.WorkExperience {
	return dates.SortByEndDateDesc(items, func(e types.WorkExperience) string { return e.Date })
}

func sortEducation(items []types.Education) []types.Education {
	return dates.SortByEndDateDesc(items, func(e types.Education) string { return e.Date })
}

func sortProjects(items []types.Project) []types.Project {
	return dates.SortByEndDateDesc(items, func(p types.Project) string { return p.Date })
}

// Domain-to-draft conversion for prompt payloads. Identifiers are
// client-side bookkeeping; the model never sees them.

func experienceToDraft(exp types.WorkExperience) ExperienceDraft {
	return ExperienceDraft{
		Company:      exp.Company,
		Position:     exp.Position,
		Location:     exp.Location,
		Date:         exp.Date,
		Description:  pointContents(exp.Description),
		Technologies: exp.Technologies,
	}
}

func projectToDraft(proj types.Project) ProjectDraft {
	return ProjectDraft{
		Name:         proj.Name,
		Description:  pointContents(proj.Description),
		Date:         proj.Date,
		Technologies: proj.Technologies,
		URL:          proj.URL,
		GithubURL:    proj.GithubURL,
	}
}

func resumeToDraft(r types.Resume) ResumeDraft {
	d := ResumeDraft{
		TargetRole:          r.TargetRole,
		ProfessionalSummary: r.ProfessionalSummary,
		WorkExperience:      make([]ExperienceDraft, 0, len(r.WorkExperience)),
		Education:           make([]EducationDraft, 0, len(r.Education)),
		Skills:              make([]SkillDraft, 0, len(r.Skills)),
		Projects:            make([]ProjectDraft, 0, len(r.Projects)),
	}
	for _, exp := range r.WorkExperience {
		d.WorkExperience = append(d.WorkExperience, experienceToDraft(exp))
	}
	for _, edu := range r.Education {
		d.Education = append(d.Education, educationToDraft(edu))
	}
	for _, skill := range r.Skills {
		d.Skills = append(d.Skills, skillToDraft(skill))
	}
	for _, proj := range r.Projects {
		d.Projects = append(d.Projects, projectToDraft(proj))
	}
	return d
}

func profileToDraft(p types.Profile) ProfileDraft {
	d := ProfileDraft{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		Location:    p.Location,
		Website:     p.Website,
		LinkedinURL: p.LinkedinURL,
		GithubURL:   p.GithubURL,
	}
	for _, exp := range p.WorkExperience {
		d.WorkExperience = append(d.WorkExperience, experienceToDraft(exp))
	}
	for _, edu := range p.Education {
		d.Education = append(d.Education, educationToDraft(edu))
	}
	for _, skill := range p.Skills {
		d.Skills = append(d.Skills, skillToDraft(skill))
	}
	for _, proj := range p.Projects {
		d.Projects = append(d.Projects, projectToDraft(proj))
	}
	return d
}

func educationToDraft(edu types.Education) EducationDraft {
	return EducationDraft{
		School:       edu.School,
		Degree:       edu.Degree,
		Field:        edu.Field,
		Location:     edu.Location,
		Date:         edu.Date,
		GPA:          edu.GPA,
		Achievements: edu.Achievements,
	}
}

func skillToDraft(skill types.Skill) SkillDraft {
	return SkillDraft{
		Category: skill.Category,
		Items:    pointContents(skill.Items),
	}
}

func pointContents(points []types.DescriptionPoint) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, p.Content)
	}
	return out
}

func jobFromDraft(d JobDraft) *types.Job {
	return &types.Job{
		CompanyName:    normalize.CleanString(d.CompanyName),
		PositionTitle:  normalize.CleanString(d.PositionTitle),
		JobURL:         normalize.CleanString(d.JobURL),
		Description:    normalize.CleanString(d.Description),
		Location:       normalize.CleanString(d.Location),
		SalaryRange:    normalize.CleanString(d.SalaryRange),
		Keywords:       normalize.Strings(d.Keywords),
		WorkLocation:   types.NormalizeWorkLocation(d.WorkLocation),
		EmploymentType: types.NormalizeEmploymentType(d.EmploymentType),
	}
}
