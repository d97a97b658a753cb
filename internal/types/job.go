package types

import "strings"

// WorkLocation enumerates where a job is performed.
type WorkLocation string

// Work location values recognized in parsed job listings.
const (
	WorkLocationRemote   WorkLocation = "remote"
	WorkLocationInPerson WorkLocation = "in_person"
	WorkLocationHybrid   WorkLocation = "hybrid"
)

// EmploymentType enumerates the employment arrangement of a job.
type EmploymentType string

// Employment type values recognized in parsed job listings.
const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentCoOp       EmploymentType = "co_op"
	EmploymentInternship EmploymentType = "internship"
	EmploymentContract   EmploymentType = "contract"
)

// Job is a structured job listing extracted from free text.
type Job struct {
	CompanyName    string         `json:"company_name"`
	PositionTitle  string         `json:"position_title"`
	JobURL         string         `json:"job_url,omitempty"`
	Description    string         `json:"description"`
	Location       string         `json:"location,omitempty"`
	SalaryRange    string         `json:"salary_range,omitempty"`
	Keywords       []string       `json:"keywords"`
	WorkLocation   WorkLocation   `json:"work_location,omitempty"`
	EmploymentType EmploymentType `json:"employment_type,omitempty"`
}

// NormalizeWorkLocation maps free-form model output onto a WorkLocation value.
// Unrecognized or empty input yields "".
func NormalizeWorkLocation(s string) WorkLocation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "remote":
		return WorkLocationRemote
	case "in_person", "in person", "onsite", "on-site":
		return WorkLocationInPerson
	case "hybrid":
		return WorkLocationHybrid
	}
	return ""
}

// NormalizeEmploymentType maps free-form model output onto an EmploymentType value.
// "contractor" is folded into "contract"; unrecognized input defaults to full_time.
func NormalizeEmploymentType(s string) EmploymentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full_time", "full-time", "full time":
		return EmploymentFullTime
	case "part_time", "part-time", "part time":
		return EmploymentPartTime
	case "co_op", "co-op", "coop":
		return EmploymentCoOp
	case "internship", "intern":
		return EmploymentInternship
	case "contract", "contractor":
		return EmploymentContract
	case "":
		return EmploymentFullTime
	}
	return EmploymentFullTime
}
