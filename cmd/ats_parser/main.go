// Package main provides the ats_parser command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_parser",
	Short: "Resume parser for applicant tracking",
	Long: `ats_parser extracts structured contact, skills, experience, education and project
data from unstructured resume documents (PDF, DOCX, plain text).

Configuration is read from an optional JSON file (--config), then environment
variables (USE_OCR, USE_LLM, GEMINI_API_KEY, ...), then command-line flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath   string
	verbose      bool
	useOCR       bool
	useLLM       bool
	allowlistDir string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by environment and flags)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&useOCR, "ocr", false, "Run OCR on pages without a usable text layer")
	rootCmd.PersistentFlags().BoolVar(&useLLM, "llm", false, "Enrich experience and education with the model (requires GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&allowlistDir, "allowlist-dir", "", "Directory containing the skills allowlist artifacts")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
