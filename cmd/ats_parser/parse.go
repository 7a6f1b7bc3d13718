package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-parser/internal/export"
	"github.com/jonathan/ats-parser/internal/observability"
	"github.com/jonathan/ats-parser/internal/schemas"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one resume into structured JSON",
	Long:  "Parse a resume document and print the structured Resume JSON, or the flattened backend record with --flat.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseFlat     bool
	parseValidate bool
	parseOut      string
)

func init() {
	parseCmd.Flags().BoolVar(&parseFlat, "flat", false, "Print the flattened backend record instead of the Resume")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate the Resume against the embedded JSON Schema")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Write JSON to this file instead of stdout")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	resume, err := a.assembler.ParseFile(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	if parseValidate {
		if err := schemas.ValidateResume(resume); err != nil {
			return fmt.Errorf("parsed resume does not validate against schema: %w", err)
		}
	}

	if a.cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintResume(resume)
		printer.PrintWarnings(resume.Flags.Warnings)
	}

	if parseFlat {
		return writeJSON(cmd.OutOrStdout(), parseOut, export.Flatten(resume))
	}
	return writeJSON(cmd.OutOrStdout(), parseOut, resume)
}
