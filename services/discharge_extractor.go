package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sahilchouksey/discharge-parser/model"
	"github.com/sahilchouksey/discharge-parser/services/llm"
)

// extractionSystemPrompt keeps the model from wrapping the array in prose
const extractionSystemPrompt = "You extract structured data from text and return ONLY valid JSON. No explanations, no additional text."

// DischargeParser is what the upload handler depends on
type DischargeParser interface {
	ParsePDF(ctx context.Context, content []byte) ([]model.Record, error)
}

// ExtractorConfig holds configuration for the discharge extractor
type ExtractorConfig struct {
	BatchSize   int // lines per model call (default: 10)
	Concurrency int // parallel model calls (default: 1, strictly sequential)
}

// DischargeExtractor runs the batch-parse-and-normalize pipeline over an uploaded report
type DischargeExtractor struct {
	completer   llm.Completer
	text        TextExtractor
	batchSize   int
	concurrency int
}

var _ DischargeParser = (*DischargeExtractor)(nil)

// NewDischargeExtractor creates a new discharge extractor
func NewDischargeExtractor(completer llm.Completer, text TextExtractor, config ExtractorConfig) *DischargeExtractor {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}

	return &DischargeExtractor{
		completer:   completer,
		text:        text,
		batchSize:   config.BatchSize,
		concurrency: config.Concurrency,
	}
}

// BuildExtractionPrompt names the required fields and embeds the batch verbatim
func BuildExtractionPrompt(batch string) string {
	var b strings.Builder
	b.WriteString("Extract the following fields from the provided text:\n")
	b.WriteString(strings.Join(model.RequiredFields, ", "))
	b.WriteString("\n\nPDF Content:\n\"\"\"")
	b.WriteString(batch)
	b.WriteString("\"\"\"\n\n")
	b.WriteString("Return the data as a JSON array of objects.\n")
	b.WriteString("Respond ONLY with valid JSON. Do not include any explanations or additional text.")
	return b.String()
}

// ParsePDF extracts the report text and runs it through ExtractRecords
func (e *DischargeExtractor) ParsePDF(ctx context.Context, content []byte) ([]model.Record, error) {
	text, err := e.text.ExtractText(content)
	if err != nil {
		return nil, err
	}
	return e.ExtractRecords(ctx, text)
}

// ExtractRecords splits text into batches, sends each to the model and
// concatenates the normalized records in batch order. The first failing batch
// aborts the whole extraction; no partial result is returned.
func (e *DischargeExtractor) ExtractRecords(ctx context.Context, text string) ([]model.Record, error) {
	reqID := uuid.New().String()
	start := time.Now()

	batches := SplitBatches(text, e.batchSize)
	log.Info().
		Str("req_id", reqID).
		Int("batches", len(batches)).
		Int("batch_size", e.batchSize).
		Int("concurrency", e.concurrency).
		Msg("Processing batches")

	var (
		results [][]model.Record
		err     error
	)
	if e.concurrency == 1 || len(batches) <= 1 {
		results, err = e.runSequential(ctx, reqID, batches)
	} else {
		results, err = e.runParallel(ctx, reqID, batches)
	}
	if err != nil {
		log.Error().Err(err).Str("req_id", reqID).Dur("elapsed", time.Since(start)).Msg("Extraction failed")
		return nil, err
	}

	all := make([]model.Record, 0)
	for _, r := range results {
		all = append(all, r...)
	}

	log.Info().
		Str("req_id", reqID).
		Int("records", len(all)).
		Dur("elapsed", time.Since(start)).
		Msg("Extraction complete")
	return all, nil
}

func (e *DischargeExtractor) runSequential(ctx context.Context, reqID string, batches []string) ([][]model.Record, error) {
	results := make([][]model.Record, len(batches))
	for i, batch := range batches {
		records, err := e.extractBatch(ctx, reqID, i, len(batches), batch)
		if err != nil {
			return nil, err
		}
		results[i] = records
	}
	return results, nil
}

// runParallel fans batches out to at most e.concurrency workers; each result
// lands in its batch's slot so the caller sees the original order
func (e *DischargeExtractor) runParallel(ctx context.Context, reqID string, batches []string) ([][]model.Record, error) {
	results := make([][]model.Record, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, batch := range batches {
		g.Go(func() error {
			records, err := e.extractBatch(gctx, reqID, i, len(batches), batch)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *DischargeExtractor) extractBatch(ctx context.Context, reqID string, index, total int, batch string) ([]model.Record, error) {
	n := index + 1
	log.Info().Str("req_id", reqID).Msgf("Processing batch %d/%d", n, total)

	content, err := e.completer.Complete(ctx, extractionSystemPrompt, BuildExtractionPrompt(batch))
	if err != nil {
		return nil, fmt.Errorf("extraction model call failed (batch %d): %w", n, err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ExtractionEmptyError{Batch: n}
	}

	log.Debug().Str("req_id", reqID).Int("batch", n).Str("response", content).Msg("Batch response")

	records, err := ParseRecords(content)
	if err != nil {
		log.Error().
			Err(err).
			Str("req_id", reqID).
			Int("batch", n).
			Str("response", content).
			Msg("Batch response is not a JSON array of objects")
		return nil, &ExtractionParseError{Batch: n, Raw: content, Err: err}
	}
	return records, nil
}
