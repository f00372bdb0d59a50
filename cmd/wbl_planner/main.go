// Package main provides the wbl_planner command: the planning API server, the
// terminal wizard and the plan rendering tools.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/wbl-planner/internal/config"
	"github.com/jonathan/wbl-planner/internal/llm"
	"github.com/jonathan/wbl-planner/internal/observability"
	"github.com/jonathan/wbl-planner/internal/suggest"
)

var (
	configPath string
	logMode    string
)

var rootCmd = &cobra.Command{
	Use:   "wbl_planner",
	Short: "Work-Based Learning program planner",
	Long: "wbl_planner helps host organizations plan how interns will learn workplace skills: " +
		"which skills to teach, with which tools and tasks, and how to monitor progress. " +
		"It serves a REST API, runs an interactive terminal wizard and renders plan summaries.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "Log mode: development or production (overrides config)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads --config, the environment and the defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return config.Config{}, err
	}
	if logMode != "" {
		cfg.LogMode = logMode
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*observability.Logger, error) {
	return observability.NewLogger(cfg.LogMode)
}

// newGateway connects the configured provider. Without an API key it returns a
// gateway that answers every call with suggest.ErrNotConfigured.
func newGateway(ctx context.Context, cfg config.Config, logger *observability.Logger) (*suggest.Gateway, error) {
	opts := []suggest.Option{
		suggest.WithTimeout(cfg.SuggestionTimeout.Std()),
		suggest.WithMaxConcurrent(cfg.MaxConcurrentSuggestions),
		suggest.WithLogger(logger),
	}
	if !cfg.SuggestionsEnabled() {
		return suggest.NewGateway(nil, opts...), nil
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return suggest.NewGateway(client, opts...), nil
}
