package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-parser/internal/canon"
	"github.com/jonathan/ats-parser/internal/config"
	"github.com/jonathan/ats-parser/internal/ingestion"
	"github.com/jonathan/ats-parser/internal/llm"
	"github.com/jonathan/ats-parser/internal/parsing"
	"github.com/jonathan/ats-parser/internal/pipeline"
)

// loadSettings resolves the effective configuration: file, then
// environment, then flags that were set explicitly.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if err := cfg.FromEnv(); err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("ocr") {
		cfg.UseOCR = useOCR
	}
	if flags.Changed("llm") {
		cfg.UseLLM = useLLM
	}
	if flags.Changed("allowlist-dir") {
		cfg.AllowlistDir = allowlistDir
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger writes structured logs to w, at debug level when verbose
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// app holds the wired collaborators shared by the commands
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	loader    *canon.Loader
	ingestor  *ingestion.Ingestor
	assembler *pipeline.Assembler
	close     func()
}

// newApp wires ingestion, canonicalization and optional model extraction
// from cfg. The model path degrades to rules only when the client cannot be
// created.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger, progress pipeline.ProgressCallback) *app {
	a := &app{cfg: cfg, logger: logger, close: func() {}}
	a.loader = canon.NewLoader(cfg.AllowlistDir, cfg.AllowlistMinSize, logger)

	a.ingestor = ingestion.New(ingestion.Config{
		MinChars:    cfg.SparseTextMinChars,
		EnableOCR:   cfg.UseOCR,
		DPI:         cfg.OCRDPI,
		Languages:   cfg.OCRLanguages,
		TessdataDir: cfg.TessdataDir,
	}, logger)

	var model pipeline.ModelExtractor
	if cfg.UseLLM {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultModels(), cfg.APIKey)
		if err != nil {
			logger.Warn("model client unavailable, continuing with rules only", "error", err)
		} else {
			guarded := llm.NewBreakerClient(client, llm.DefaultBreakerSettings(), logger)
			model = parsing.NewModelExtractor(guarded, parsing.Options{
				Tier:          llm.ParseTier(cfg.LLMTier),
				Timeout:       cfg.LLMTimeout(),
				RatePerMinute: cfg.LLMRatePerMinute,
				Canon:         a.loader.Canonicalizer(),
				Logger:        logger,
			})
			a.close = func() { _ = client.Close() }
		}
	}

	a.assembler = pipeline.New(pipeline.Options{
		Ingestor:           a.ingestor,
		Canon:              a.loader,
		Model:              model,
		Logger:             logger,
		OnProgress:         progress,
		ReconcileThreshold: cfg.ReconcileThreshold,
		PhoneRegion:        cfg.PhoneRegion,
	})
	return a
}

// setupApp resolves configuration and wires the app for cmd
func setupApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	var progress pipeline.ProgressCallback
	if cfg.Verbose {
		progress = func(e pipeline.ProgressEvent) {
			logger.Debug(e.Message, "step", e.Step, "category", e.Category, "run_id", e.RunID)
		}
	}
	return newApp(commandContext(cmd), cfg, logger, progress), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
