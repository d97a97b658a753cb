// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lucas/resume-studio/internal/llm"
	"github.com/lucas/resume-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs a human-readable summary of a parsed job listing.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.CompanyName))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.PositionTitle))
	if job.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location))
	}
	if job.WorkLocation != "" {
		sb.WriteString(fmt.Sprintf("Mode:     %s\n", job.WorkLocation))
	}
	if job.EmploymentType != "" {
		sb.WriteString(fmt.Sprintf("Type:     %s\n", job.EmploymentType))
	}
	if job.SalaryRange != "" {
		sb.WriteString(fmt.Sprintf("Salary:   %s\n", job.SalaryRange))
	}

	if len(job.Keywords) > 0 {
		sb.WriteString("\nKeywords:\n")
		count := min(len(job.Keywords), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.Keywords[i]))
		}
		if len(job.Keywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Keywords)-maxItemsToShow))
		}
	}

	p.printBox("PARSED JOB LISTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeSummary outputs section counts for a generated resume.
func (p *Printer) PrintResumeSummary(resume *types.Resume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:        %s\n", resume.Name))
	sb.WriteString(fmt.Sprintf("Target role: %s\n", resume.TargetRole))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Work experience: %d entries\n", len(resume.WorkExperience)))
	sb.WriteString(fmt.Sprintf("Projects:        %d entries\n", len(resume.Projects)))
	sb.WriteString(fmt.Sprintf("Education:       %d entries\n", len(resume.Education)))
	sb.WriteString(fmt.Sprintf("Skill groups:    %d entries\n", len(resume.Skills)))

	points := 0
	for _, exp := range resume.WorkExperience {
		points += len(exp.Description)
	}
	sb.WriteString(fmt.Sprintf("Bullet points:   %d", points))

	p.printBox("GENERATED RESUME", sb.String())
}

// PrintInvocation outputs token usage and timing for one generation call.
func (p *Printer) PrintInvocation(inv *llm.Invocation) {
	if inv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Model:    %s (%s)\n", inv.ModelID, inv.Family))
	sb.WriteString(fmt.Sprintf("Contract: %s\n", inv.Contract))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", inv.Duration.Round(time.Millisecond)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Prompt tokens:     %d\n", inv.Usage.PromptTokens))
	sb.WriteString(fmt.Sprintf("Completion tokens: %d\n", inv.Usage.CompletionTokens))
	sb.WriteString(fmt.Sprintf("Total tokens:      %d", inv.Usage.TotalTokens))
	if inv.FinishReason != "" {
		sb.WriteString(fmt.Sprintf("\nFinish reason:     %s", inv.FinishReason))
	}

	p.printBox("GENERATION CALL", sb.String())
}

// PrintPoints outputs generated bullet points with the optional
// self-assessment.
func (p *Printer) PrintPoints(points []string, impactScore float64) {
	if len(points) == 0 {
		return
	}

	var sb strings.Builder
	for _, point := range points {
		sb.WriteString(fmt.Sprintf("  • %s\n", point))
	}
	if impactScore > 0 {
		sb.WriteString(fmt.Sprintf("\nImpact score: %.1f/10", impactScore))
	}

	p.printBox("GENERATED POINTS", strings.TrimSuffix(sb.String(), "\n"))
}
