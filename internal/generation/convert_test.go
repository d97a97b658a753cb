package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeFromDraft_OrdersDatedSectionsNewestFirst(t *testing.T) {
	draft := ResumeDraft{
		TargetRole: "Backend Engineer",
		WorkExperience: []ExperienceDraft{
			{Company: "Oldest Co", Position: "Intern", Date: "06/2018 - 08/2018", Description: []string{"Did things"}},
			{Company: "Current Co", Position: "Engineer", Date: "03/2022 - Present", Description: []string{"Does things"}},
			{Company: "Middle Co", Position: "Junior", Date: "09/2018 - 02/2022", Description: []string{"Did more"}},
		},
		Education: []EducationDraft{
			{School: "Grad School", Degree: "MS", Date: "09/2019 - 06/2021"},
			{School: "Undergrad", Degree: "BS", Date: "09/2014 - 06/2018"},
		},
		Projects: []ProjectDraft{
			{Name: "Old Tool", Description: []string{"Built it"}, Date: "01/2019"},
			{Name: "New Tool", Description: []string{"Built it too"}, Date: "05/2023"},
		},
	}

	r := resumeFromDraft(draft)

	require.Len(t, r.WorkExperience, 3)
	assert.Equal(t, "Current Co", r.WorkExperience[0].Company)
	assert.Equal(t, "Middle Co", r.WorkExperience[1].Company)
	assert.Equal(t, "Oldest Co", r.WorkExperience[2].Company)

	require.Len(t, r.Education, 2)
	assert.Equal(t, "Grad School", r.Education[0].School)

	require.Len(t, r.Projects, 2)
	assert.Equal(t, "New Tool", r.Projects[0].Name)
}

func TestResumeFromDraft_UndatedEntriesKeepRelativeOrder(t *testing.T) {
	draft := ResumeDraft{
		TargetRole: "Backend Engineer",
		Projects: []ProjectDraft{
			{Name: "First", Description: []string{"a"}},
			{Name: "Second", Description: []string{"b"}},
			{Name: "Dated", Description: []string{"c"}, Date: "05/2023"},
		},
	}

	r := resumeFromDraft(draft)

	// Resolvable dates sort ahead; the rest stay in source order.
	require.Len(t, r.Projects, 3)
	assert.Equal(t, "Dated", r.Projects[0].Name)
	assert.Equal(t, "First", r.Projects[1].Name)
	assert.Equal(t, "Second", r.Projects[2].Name)
}
