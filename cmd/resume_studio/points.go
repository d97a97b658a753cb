package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucas/resume-studio/internal/generation"
	"github.com/lucas/resume-studio/internal/observability"
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Generate resume bullet points for a role or project",
	Long:  "Generate impact-focused bullet points for a work experience or project, optionally targeted at a job description.",
	RunE:  runPoints,
}

var (
	pointsKind        string
	pointsCompany     string
	pointsPosition    string
	pointsName        string
	pointsTech        []string
	pointsJobDescFile string
	pointsCount       int
	pointsOutputFile  string
)

func init() {
	pointsCmd.Flags().StringVar(&pointsKind, "kind", "work", "What to generate points for: work or project")
	pointsCmd.Flags().StringVar(&pointsCompany, "company", "", "Company name (work experience)")
	pointsCmd.Flags().StringVar(&pointsPosition, "position", "", "Position title (work experience)")
	pointsCmd.Flags().StringVar(&pointsName, "name", "", "Project name (projects)")
	pointsCmd.Flags().StringSliceVar(&pointsTech, "tech", nil, "Technologies used")
	pointsCmd.Flags().StringVar(&pointsJobDescFile, "job-description", "", "Path to a job description text file to target")
	pointsCmd.Flags().IntVar(&pointsCount, "count", 3, "Number of points to generate")
	pointsCmd.Flags().StringVarP(&pointsOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	addGenerationFlags(pointsCmd)
	rootCmd.AddCommand(pointsCmd)
}

func runPoints(_ *cobra.Command, _ []string) error {
	req := generation.PointsRequest{
		Company:      pointsCompany,
		Position:     pointsPosition,
		Name:         pointsName,
		Technologies: pointsTech,
		NumPoints:    pointsCount,
	}
	if pointsJobDescFile != "" {
		content, err := os.ReadFile(pointsJobDescFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		req.JobDescription = string(content)
	}

	ctx := context.Background()
	svc := newCLIService()
	cfg := cliGenerationConfig()

	var points *generation.BulletPoints
	var err error
	switch strings.ToLower(pointsKind) {
	case "work":
		points, err = svc.GenerateWorkExperiencePoints(ctx, cfg, req)
	case "project":
		points, err = svc.GenerateProjectPoints(ctx, cfg, req)
	default:
		return fmt.Errorf("unknown kind %q: expected work or project", pointsKind)
	}
	if err != nil {
		return fmt.Errorf("failed to generate points: %w", err)
	}

	if flagVerbose {
		score := 0.0
		if points.Analysis != nil {
			score = points.Analysis.ImpactScore
		}
		observability.NewPrinter(os.Stderr).PrintPoints(points.Points, score)
	}

	return writeJSONOutput(pointsOutputFile, points)
}

var improvePointCmd = &cobra.Command{
	Use:   "improve-point",
	Short: "Improve a single resume bullet point",
	RunE:  runImprovePoint,
}

var (
	improveKind    string
	improvePoint   string
	improveContext string
)

func init() {
	improvePointCmd.Flags().StringVar(&improveKind, "kind", "work", "What the point belongs to: work or project")
	improvePointCmd.Flags().StringVar(&improvePoint, "point", "", "The bullet point to improve (required)")
	improvePointCmd.Flags().StringVar(&improveContext, "context", "", "Additional context or direction for the rewrite")
	_ = improvePointCmd.MarkFlagRequired("point")
	addGenerationFlags(improvePointCmd)
	rootCmd.AddCommand(improvePointCmd)
}

func runImprovePoint(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	svc := newCLIService()
	cfg := cliGenerationConfig()

	var improved string
	var err error
	switch strings.ToLower(improveKind) {
	case "work":
		improved, err = svc.ImproveWorkExperiencePoint(ctx, cfg, improvePoint, improveContext)
	case "project":
		improved, err = svc.ImproveProjectPoint(ctx, cfg, improvePoint, improveContext)
	default:
		return fmt.Errorf("unknown kind %q: expected work or project", improveKind)
	}
	if err != nil {
		return fmt.Errorf("failed to improve point: %w", err)
	}

	fmt.Println(improved)
	return nil
}
