package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-parser/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a JSON Schema",
	Long:  "Validate a JSON file against a schema file, or against the embedded Resume schema when --schema is omitted.",
	RunE:  runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to JSON Schema file (default: embedded resume schema)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to JSON file to validate")
	_ = validateCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	err := validateFile(validateSchema, validateJSON)
	if err == nil {
		cmd.Println("Validation passed")
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		cmd.PrintErrln("Validation failed:")
		for _, fe := range validationErr.Errors {
			cmd.PrintErrf("  - %s: %s\n", fe.Field, fe.Message)
		}
	}
	return err
}

func validateFile(schemaPath, jsonPath string) error {
	if schemaPath != "" {
		return schemas.ValidateJSON(schemaPath, jsonPath)
	}
	data, err := readFile(jsonPath)
	if err != nil {
		return err
	}
	return schemas.ValidateEmbedded(schemas.ResumeSchema, data)
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
