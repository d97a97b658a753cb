package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucas/resume-studio/internal/observability"
	"github.com/lucas/resume-studio/internal/types"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a base resume to a job listing",
	Long:  "Rewrite a base resume's content to emphasize what a specific job listing asks for. Contact details are carried over unchanged; bullet points are rewritten against the listing.",
	RunE:  runTailor,
}

var (
	tailorResumeFile string
	tailorJobFile    string
	tailorOutputFile string
)

func init() {
	tailorCmd.Flags().StringVar(&tailorResumeFile, "resume", "", "Path to the base resume JSON (required)")
	tailorCmd.Flags().StringVar(&tailorJobFile, "job", "", "Path to the parsed job JSON (required)")
	tailorCmd.Flags().StringVarP(&tailorOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = tailorCmd.MarkFlagRequired("resume")
	_ = tailorCmd.MarkFlagRequired("job")
	addGenerationFlags(tailorCmd)
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	var resume types.Resume
	if err := readJSONInput(tailorResumeFile, &resume); err != nil {
		return err
	}
	var job types.Job
	if err := readJSONInput(tailorJobFile, &job); err != nil {
		return err
	}

	svc := newCLIService()
	tailored, err := svc.TailorResume(context.Background(), cliGenerationConfig(), resume, job)
	if err != nil {
		return fmt.Errorf("failed to tailor resume: %w", err)
	}

	if flagVerbose {
		observability.NewPrinter(os.Stderr).PrintResumeSummary(tailored)
	}

	return writeJSONOutput(tailorOutputFile, tailored)
}
