// Command parsepdf runs the extraction pipeline on a local PDF and prints the
// records as JSON. Useful for tuning prompts without the web UI.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"github.com/sahilchouksey/discharge-parser/config"
	"github.com/sahilchouksey/discharge-parser/services"
	"github.com/sahilchouksey/discharge-parser/services/llm"
	"github.com/sahilchouksey/discharge-parser/utils"
	"github.com/sahilchouksey/discharge-parser/utils/pdfvalidation"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		file        = flag.String("file", "", "PDF report to parse (required)")
		batchSize   = flag.Int("batch-size", 0, "non-blank lines per model call (default EXTRACTION_BATCH_SIZE)")
		concurrency = flag.Int("concurrency", 0, "parallel model calls (default EXTRACTION_CONCURRENCY)")
		textOnly    = flag.Bool("text", false, "print the extracted text and exit without calling the model")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}

	if err := config.LoadENV(); err != nil {
		printError("Error: failed to load .env: %v\n", err)
		os.Exit(1)
	}
	getEnv, err := config.Get()
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	utils.InitLogger("parsepdf", getEnv.GO_ENV)

	content, err := os.ReadFile(*file)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if result := pdfvalidation.ValidatePDFBytes(content, pdfvalidation.PDFLimits{MaxFileSizeMB: getEnv.MAX_UPLOAD_MB}); !result.Valid {
		printError("Error: %s\n", result.Error)
		os.Exit(1)
	}

	pdfExtractor := services.NewPDFExtractor(services.DefaultMaxPages)

	if *textOnly {
		text, err := pdfExtractor.ExtractText(content)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		for i, batch := range services.SplitBatches(text, pick(*batchSize, getEnv.EXTRACTION_BATCH_SIZE)) {
			fmt.Printf("--- batch %d ---\n%s\n", i+1, batch)
		}
		return
	}

	if getEnv.OPENAI_API_KEY == "" {
		printError("Error: OPENAI_API_KEY is not set\n")
		os.Exit(1)
	}

	extractor := services.NewDischargeExtractor(
		llm.NewClient(llm.Config{
			APIKey:    getEnv.OPENAI_API_KEY,
			BaseURL:   getEnv.OPENAI_BASE_URL,
			Model:     getEnv.OPENAI_MODEL,
			MaxTokens: getEnv.OPENAI_MAX_TOKENS,
		}),
		pdfExtractor,
		services.ExtractorConfig{
			BatchSize:   pick(*batchSize, getEnv.EXTRACTION_BATCH_SIZE),
			Concurrency: pick(*concurrency, getEnv.EXTRACTION_CONCURRENCY),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := extractor.ParsePDF(ctx, content)
	if err != nil {
		var parseErr *services.ExtractionParseError
		if errors.As(err, &parseErr) {
			printError("Raw model output for batch %d:\n%s\n", parseErr.Batch, parseErr.Raw)
		}
		log.Error().Err(err).Str("file", *file).Msg("Extraction failed")
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

func pick(flagValue, envValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return envValue
}
