package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucas/resume-studio/internal/config"
	"github.com/lucas/resume-studio/internal/generation"
	"github.com/lucas/resume-studio/internal/llm"
	"github.com/lucas/resume-studio/internal/observability"
)

var (
	flagModel   string
	flagAPIKey  string
	flagVerbose bool
)

// addGenerationFlags registers the flags shared by every command that
// issues AI calls.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagModel, "model", "m", "", "Model id to use (e.g. gpt-4o, gemini-2.0-flash, claude-3-haiku-20240307)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key for the selected model's provider (overrides environment keys)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print generation call metadata")
}

// cliGenerationConfig builds the generation config from flags. With no
// --api-key the resolution chain falls back to GOOGLE_API_KEY and
// OPENAI_API_KEY from the environment.
func cliGenerationConfig() llm.GenerationConfig {
	model := flagModel
	if model == "" {
		model = config.FromEnv().Model
	}
	cfg := llm.GenerationConfig{Model: model}
	if flagAPIKey != "" && model != "" {
		family := llm.FamilyForModel(model)
		cfg.Credentials = []llm.Credential{
			{Service: family.Services()[0], Key: flagAPIKey},
		}
	}
	return cfg
}

// newCLIService wires a generation service that prints call metadata in
// verbose mode.
func newCLIService() *generation.Service {
	svc := generation.NewService()
	if flagVerbose {
		printer := observability.NewPrinter(os.Stderr)
		svc.OnInvocation = func(_ context.Context, inv *llm.Invocation) {
			printer.PrintInvocation(inv)
		}
	}
	return svc
}

// writeJSONOutput writes v as indented JSON to path, or stdout when
// path is empty.
func writeJSONOutput(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// readJSONInput reads and decodes a JSON file.
func readJSONInput(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
