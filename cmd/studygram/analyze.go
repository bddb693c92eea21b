package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/studygram/internal/analysis"
	"github.com/jonathan/studygram/internal/observability"
	"github.com/jonathan/studygram/internal/pipeline"
	"github.com/jonathan/studygram/internal/schemas"
	"github.com/jonathan/studygram/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one or more documents",
	Long: `Decode each input, produce its summary, notes, flashcards and quiz, and write the
result as JSON. With a single input, --out may name a .json file; otherwise it is a
directory that receives one <name>.analysis.json per input. Without --out the JSON
is written to stdout.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := analyzeFlags
		opts.seedSet = cmd.Flags().Changed("seed")
		return runAnalyze(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

type analyzeOptions struct {
	inputs     []string
	docType    string
	out        string
	configPath string
	seed       int64
	seedSet    bool
	verbose    bool
}

var analyzeFlags analyzeOptions

func init() {
	analyzeCmd.Flags().StringArrayVarP(&analyzeFlags.inputs, "in", "i", nil, "Input document (repeatable)")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.docType, "type", "t", "", "Document type for every input: pdf, docx, plain-text or a MIME type (default: from extension)")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.out, "out", "o", "", "Output .json file or directory")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.configPath, "config", "c", "", "Path to JSON config file")
	analyzeCmd.Flags().Int64Var(&analyzeFlags.seed, "seed", 0, "Seed for reproducible quiz option order")
	analyzeCmd.Flags().BoolVarP(&analyzeFlags.verbose, "verbose", "v", false, "Print the analysis in readable form")

	_ = analyzeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(ctx context.Context, opts analyzeOptions, stdout, stderr io.Writer) error {
	if len(opts.inputs) == 0 {
		return fmt.Errorf("at least one --in file is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.seedSet {
		cfg.Seed = &opts.seed
	}

	logger := zap.NewNop()
	if opts.verbose {
		logger, err = observability.NewLogger("debug", true)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	var analyzerOpts []analysis.Option
	if cfg.Seed != nil {
		analyzerOpts = append(analyzerOpts, analysis.WithSeed(*cfg.Seed))
	}

	inputs := make([]pipeline.Input, 0, len(opts.inputs))
	for _, path := range opts.inputs {
		payload, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs = append(inputs, pipeline.Input{Filename: path, Type: opts.docType, Payload: payload})
	}

	docs, err := pipeline.RunBatch(ctx, inputs, pipeline.RunOptions{
		Analyzer:    analysis.NewAnalyzer(cfg.Analysis, analyzerOpts...),
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := schemas.ValidateAnalysisResult(&doc.Analysis); err != nil {
			return fmt.Errorf("analysis of %s failed schema validation: %w", doc.Filename, err)
		}
	}

	if opts.verbose {
		printer := observability.NewPrinter(stderr)
		if opts.out != "" {
			printer = observability.NewPrinter(stdout)
		}
		for _, doc := range docs {
			printer.PrintAnalysis(&doc.Analysis, &doc.Stats)
		}
	}

	return writeResults(docs, opts.out, stdout)
}

// writeResults writes each analysis as indented JSON to stdout, a single file, or a directory
func writeResults(docs []*types.Document, out string, stdout io.Writer) error {
	if out == "" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if len(docs) == 1 {
			return enc.Encode(docs[0].Analysis)
		}
		results := make([]types.AnalysisResult, len(docs))
		for i, doc := range docs {
			results[i] = doc.Analysis
		}
		return enc.Encode(results)
	}

	if len(docs) == 1 && strings.EqualFold(filepath.Ext(out), ".json") {
		if err := writeJSON(out, docs[0].Analysis); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Analysis: %s\n", out)
		return nil
	}

	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, doc := range docs {
		path := filepath.Join(out, resultFilename(doc.Filename))
		if err := writeJSON(path, doc.Analysis); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Analysis: %s\n", path)
	}
	return nil
}

// resultFilename maps "notes/chapter1.pdf" to "chapter1.analysis.json"
func resultFilename(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".analysis.json"
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
