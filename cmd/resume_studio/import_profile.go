package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucas/resume-studio/internal/observability"
	"github.com/lucas/resume-studio/internal/types"
)

var importProfileCmd = &cobra.Command{
	Use:   "import-profile",
	Short: "Build a base resume from a stored profile",
	Long:  "Select and organize the most relevant content from a saved profile into a fresh base resume.",
	RunE:  runImportProfile,
}

var (
	importProfileFile string
	importTargetRole  string
	importOutputFile  string
)

func init() {
	importProfileCmd.Flags().StringVar(&importProfileFile, "profile", "", "Path to the profile JSON (required)")
	importProfileCmd.Flags().StringVar(&importTargetRole, "target-role", "", "Role the resume should target")
	importProfileCmd.Flags().StringVarP(&importOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = importProfileCmd.MarkFlagRequired("profile")
	addGenerationFlags(importProfileCmd)
	rootCmd.AddCommand(importProfileCmd)
}

func runImportProfile(_ *cobra.Command, _ []string) error {
	var profile types.Profile
	if err := readJSONInput(importProfileFile, &profile); err != nil {
		return err
	}

	svc := newCLIService()
	resume, err := svc.ImportProfile(context.Background(), cliGenerationConfig(), profile, importTargetRole)
	if err != nil {
		return fmt.Errorf("failed to import profile: %w", err)
	}

	if flagVerbose {
		observability.NewPrinter(os.Stderr).PrintResumeSummary(resume)
	}

	return writeJSONOutput(importOutputFile, resume)
}

var importTextCmd = &cobra.Command{
	Use:   "import-text",
	Short: "Extract a profile from free-form resume text",
	Long:  "Extract structured profile content from pasted or converted resume text. Missing information stays empty rather than being invented.",
	RunE:  runImportText,
}

var (
	importTextFile       string
	importTextOutputFile string
)

func init() {
	importTextCmd.Flags().StringVarP(&importTextFile, "in", "i", "", "Path to the resume text file (required)")
	importTextCmd.Flags().StringVarP(&importTextOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = importTextCmd.MarkFlagRequired("in")
	addGenerationFlags(importTextCmd)
	rootCmd.AddCommand(importTextCmd)
}

func runImportText(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(importTextFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	svc := newCLIService()
	profile, err := svc.ImportText(context.Background(), cliGenerationConfig(), string(content))
	if err != nil {
		return fmt.Errorf("failed to import text: %w", err)
	}

	return writeJSONOutput(importTextOutputFile, profile)
}
