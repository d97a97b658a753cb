package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucas/resume-studio/internal/ingestion"
	"github.com/lucas/resume-studio/internal/observability"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Parse a job listing into structured JSON",
	Long:  "Parse a job listing from a text file or URL into a structured job JSON with normalized location, employment type, and keywords.",
	RunE:  runParseJob,
}

var (
	parseInputFile  string
	parseURL        string
	parseOutputFile string
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to a job listing text file")
	parseJobCmd.Flags().StringVar(&parseURL, "url", "", "URL of a job listing page to fetch")
	parseJobCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	addGenerationFlags(parseJobCmd)
	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(_ *cobra.Command, _ []string) error {
	if (parseInputFile == "") == (parseURL == "") {
		return fmt.Errorf("exactly one of --in or --url is required")
	}

	ctx := context.Background()

	var text string
	if parseInputFile != "" {
		content, err := os.ReadFile(parseInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(content)
	} else {
		page, err := ingestion.FetchListingText(ctx, parseURL, nil)
		if err != nil {
			return fmt.Errorf("failed to fetch listing: %w", err)
		}
		text = page.Text
	}

	svc := newCLIService()
	job, err := svc.ParseJobListing(ctx, cliGenerationConfig(), text)
	if err != nil {
		return fmt.Errorf("failed to parse job listing: %w", err)
	}
	if parseURL != "" && job.JobURL == "" {
		job.JobURL = parseURL
	}

	if flagVerbose {
		observability.NewPrinter(os.Stderr).PrintJob(job)
	}

	return writeJSONOutput(parseOutputFile, job)
}
