// Package normalize post-processes structured generation output before it
// reaches the caller: stable identifiers for list items, defaults for
// absent optional fields, and removal of placeholder tokens the model
// emits for unknown values.
package normalize

import (
	"strings"

	"github.com/google/uuid"

	"github.com/lucas/resume-studio/internal/types"
)

// UnknownToken is the literal placeholder some models emit in place of a
// value they could not determine. It is never allowed to reach callers.
const UnknownToken = "<UNKNOWN>"

// CleanString rewrites the unknown-placeholder token to an empty string
// and trims surrounding whitespace from the result.
func CleanString(s string) string {
	if strings.TrimSpace(s) == UnknownToken {
		return ""
	}
	return s
}

// SanitizeTree walks a decoded JSON value and rewrites every
// unknown-placeholder string to "", at any depth. Maps and slices are
// modified in place; the (possibly replaced) value is returned.
func SanitizeTree(v any) any {
	switch val := v.(type) {
	case string:
		return CleanString(val)
	case map[string]any:
		for k, child := range val {
			val[k] = SanitizeTree(child)
		}
		return val
	case []any:
		for i, child := range val {
			val[i] = SanitizeTree(child)
		}
		return val
	default:
		return v
	}
}

// Points wraps model-returned strings into identified bullet points.
// Identifiers are freshly generated and never reused; empty strings and
// placeholder tokens are dropped.
func Points(items []string) []types.DescriptionPoint {
	points := make([]types.DescriptionPoint, 0, len(items))
	for _, item := range items {
		content := CleanString(item)
		if content == "" {
			continue
		}
		points = append(points, types.DescriptionPoint{
			ID:      uuid.NewString(),
			Content: content,
		})
	}
	return points
}

// EnsurePointIDs assigns identifiers to points that lack one. Points
// already carrying an identifier pass through untouched, so applying it
// repeatedly neither re-wraps nor regenerates.
func EnsurePointIDs(points []types.DescriptionPoint) []types.DescriptionPoint {
	if points == nil {
		return []types.DescriptionPoint{}
	}
	for i := range points {
		points[i].Content = CleanString(points[i].Content)
		if points[i].ID == "" {
			points[i].ID = uuid.NewString()
		}
	}
	return points
}

// Strings cleans a plain string list, dropping placeholder-only entries.
func Strings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := CleanString(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// Resume brings a resume to client-ready form: every entry and bullet
// point carries a stable identifier, placeholder tokens are removed, and
// nil collections become empty ones. Idempotent.
func Resume(r *types.Resume) *types.Resume {
	if r == nil {
		return nil
	}

	r.TargetRole = CleanString(r.TargetRole)
	r.ProfessionalSummary = CleanString(r.ProfessionalSummary)
	r.Location = CleanString(r.Location)

	if r.WorkExperience == nil {
		r.WorkExperience = []types.WorkExperience{}
	}
	for i := range r.WorkExperience {
		exp := &r.WorkExperience[i]
		if exp.ID == "" {
			exp.ID = uuid.NewString()
		}
		exp.Company = CleanString(exp.Company)
		exp.Position = CleanString(exp.Position)
		exp.Location = CleanString(exp.Location)
		exp.Date = CleanString(exp.Date)
		exp.Description = EnsurePointIDs(exp.Description)
		exp.Technologies = Strings(exp.Technologies)
	}

	if r.Projects == nil {
		r.Projects = []types.Project{}
	}
	for i := range r.Projects {
		proj := &r.Projects[i]
		if proj.ID == "" {
			proj.ID = uuid.NewString()
		}
		proj.Name = CleanString(proj.Name)
		proj.Date = CleanString(proj.Date)
		proj.URL = CleanString(proj.URL)
		proj.GithubURL = CleanString(proj.GithubURL)
		proj.Description = EnsurePointIDs(proj.Description)
		proj.Technologies = Strings(proj.Technologies)
	}

	if r.Education == nil {
		r.Education = []types.Education{}
	}
	for i := range r.Education {
		edu := &r.Education[i]
		if edu.ID == "" {
			edu.ID = uuid.NewString()
		}
		edu.School = CleanString(edu.School)
		edu.Degree = CleanString(edu.Degree)
		edu.Field = CleanString(edu.Field)
		edu.Location = CleanString(edu.Location)
		edu.Date = CleanString(edu.Date)
		edu.GPA = CleanString(edu.GPA)
		edu.Achievements = Strings(edu.Achievements)
	}

	if r.Skills == nil {
		r.Skills = []types.Skill{}
	}
	for i := range r.Skills {
		skill := &r.Skills[i]
		if skill.ID == "" {
			skill.ID = uuid.NewString()
		}
		skill.Category = CleanString(skill.Category)
		skill.Items = EnsurePointIDs(skill.Items)
	}

	return r
}
