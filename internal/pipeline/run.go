// Package pipeline orchestrates document processing: decode, clean, analyze and persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/studygram/internal/analysis"
	"github.com/jonathan/studygram/internal/ingestion"
	"github.com/jonathan/studygram/internal/observability"
	"github.com/jonathan/studygram/internal/study"
	"github.com/jonathan/studygram/internal/types"
)

// Step names reported through ProgressEvent
const (
	StepDecode  = "decode"
	StepAnalyze = "analyze"
	StepPersist = "persist"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Input is one document to process
type Input struct {
	Filename string
	// Type is a type tag or MIME type; empty means detect from Filename
	Type    string
	Payload []byte
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Input

	UserID   uuid.UUID
	Analyzer *analysis.Analyzer
	// Store persists the resulting document when set
	Store *study.Service
	// KeepFullText retains the decoded text on the returned document
	KeepFullText bool
	// Concurrency bounds RunBatch; zero or less means one document at a time
	Concurrency int

	Logger     *zap.Logger
	Metrics    *observability.Metrics
	OnProgress ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Filename: opts.Filename,
			Message:  message,
			Content:  content,
		})
	}
}

func (opts *RunOptions) logger() *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}

// Run processes a single document. Decode failures wrap *ingestion.DecodeError
// and analysis failures wrap *analysis.StageError.
func Run(ctx context.Context, opts RunOptions) (*types.Document, error) {
	if opts.Analyzer == nil {
		opts.Analyzer = analysis.NewAnalyzer(analysis.DefaultOptions())
	}
	log := opts.logger().With(zap.String("filename", opts.Filename))

	docType, err := ingestion.ResolveDocumentType(opts.Type, opts.Filename)
	if err != nil {
		return nil, err
	}

	// Step 1: decode
	emitProgress(&opts, StepDecode, fmt.Sprintf("Decoding %s (%s)", opts.Filename, docType), nil)
	raw, err := ingestion.Decode(ctx, docType, opts.Payload)
	if err != nil {
		var decodeErr *ingestion.DecodeError
		if errors.As(err, &decodeErr) {
			opts.Metrics.ObserveDecodeFailure(string(docType))
		}
		log.Warn("decode failed", zap.String("type", string(docType)), zap.Error(err))
		return nil, fmt.Errorf("failed to decode %s: %w", opts.Filename, err)
	}
	text := ingestion.PrepareText(docType, raw)
	meta := ingestion.NewMetadata(opts.Filename, docType, text, int64(len(opts.Payload)))
	log.Debug("decoded document", zap.Int64("size_bytes", meta.SizeBytes), zap.String("hash", meta.Hash))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: analyze
	emitProgress(&opts, StepAnalyze, "Analyzing text", nil)
	start := time.Now()
	result, err := opts.Analyzer.Analyze(text)
	opts.Metrics.ObserveAnalysis(string(docType), time.Since(start), err)
	if err != nil {
		log.Error("analysis failed", zap.Error(err))
		return nil, fmt.Errorf("failed to analyze %s: %w", opts.Filename, err)
	}

	doc := &types.Document{
		ID:        uuid.New(),
		UserID:    opts.UserID,
		Filename:  meta.Filename,
		Type:      string(docType),
		SizeBytes: meta.SizeBytes,
		Hash:      meta.Hash,
		Analysis:  *result,
		Stats:     ingestion.ComputeStats(text, result.Summary),
		CreatedAt: time.Now().UTC(),
	}
	if opts.KeepFullText || opts.Store != nil {
		doc.FullText = text
	}
	emitProgress(&opts, StepAnalyze, fmt.Sprintf("Summary is %d%% shorter than the original", doc.Stats.CompressionPercent), result)
	log.Info("analyzed document",
		zap.Int("notes", len(result.Notes)),
		zap.Int("flashcards", len(result.Flashcards)),
		zap.Int("quiz_items", len(result.Quiz)),
		zap.Duration("elapsed", time.Since(start)),
	)

	// Step 3: persist
	if opts.Store != nil {
		emitProgress(&opts, StepPersist, "Saving document", nil)
		if err := opts.Store.SaveDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to persist %s: %w", opts.Filename, err)
		}
		if !opts.KeepFullText {
			doc.FullText = ""
		}
		emitProgress(&opts, StepPersist, "Saved document", doc.ID.String())
	}

	return doc, nil
}

// RunBatch processes several documents concurrently. Results are returned in
// input order; the first failure cancels the remaining work.
func RunBatch(ctx context.Context, inputs []Input, opts RunOptions) ([]*types.Document, error) {
	docs := make([]*types.Document, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i, in := range inputs {
		g.Go(func() error {
			runOpts := opts
			runOpts.Input = in
			doc, err := Run(gctx, runOpts)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
