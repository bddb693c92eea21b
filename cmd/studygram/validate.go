package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/studygram/internal/schemas"
	"github.com/jonathan/studygram/internal/types"
	schemafiles "github.com/jonathan/studygram/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON artifact against its schema",
	Long: `Check an analysis result written by "analyze" or a stored document export
against the embedded JSON Schema. Analysis results are also checked for quiz items
whose correct answer is missing from the options.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runValidate(validateFlags, cmd.OutOrStdout())
	},
}

type validateOptions struct {
	input string
	kind  string
}

var validateFlags validateOptions

func init() {
	validateCmd.Flags().StringVarP(&validateFlags.input, "in", "i", "", "JSON file to validate")
	validateCmd.Flags().StringVarP(&validateFlags.kind, "kind", "k", "analysis", "Artifact kind: analysis or document")

	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(opts validateOptions, stdout io.Writer) error {
	if opts.input == "" {
		return fmt.Errorf("--in is required")
	}

	switch opts.kind {
	case "analysis":
		if err := schemas.ValidateFile(schemafiles.AnalysisResult, opts.input); err != nil {
			return err
		}
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		var result types.AnalysisResult
		if err := json.Unmarshal(data, &result); err != nil {
			return fmt.Errorf("failed to parse analysis result: %w", err)
		}
		if err := schemas.ValidateAnalysisResult(&result); err != nil {
			return err
		}
	case "document":
		if err := schemas.ValidateFile(schemafiles.Document, opts.input); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown kind %q (want analysis or document)", opts.kind)
	}

	fmt.Fprintf(stdout, "OK: %s is a valid %s\n", opts.input, opts.kind)
	return nil
}
