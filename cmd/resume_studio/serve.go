package main

import (
	"fmt"
	"os"

	"github.com/lucas/resume-studio/internal/config"
	"github.com/lucas/resume-studio/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume tailoring, point generation, and job listing parsing.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: PORT env var or 8080)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to a JSON config file overlaying the environment")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveConfigFile != "" {
		fileCfg, err := config.Load(serveConfigFile)
		if err != nil {
			return err
		}
		cfg.Merge(fileCfg)
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// File-provided provider keys become the environment-scoped
	// fallbacks the resolution chain consults.
	if cfg.GoogleAPIKey != "" {
		_ = os.Setenv("GOOGLE_API_KEY", cfg.GoogleAPIKey)
	}
	if cfg.OpenAIAPIKey != "" {
		_ = os.Setenv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	}

	srv, err := server.New(server.Config{
		Port:        cfg.ListenPort(),
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
