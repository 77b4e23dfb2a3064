package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// ErrEmptyPDF is returned when no bytes were uploaded
var ErrEmptyPDF = errors.New("empty PDF content")

// DefaultMaxPages bounds how much of a report one upload may send to the model
const DefaultMaxPages = 200

// TextExtractor turns an uploaded document into plain text, one visual line per text line
type TextExtractor interface {
	ExtractText(content []byte) (string, error)
}

// PDFExtractor handles PDF text extraction using ledongthuc/pdf (MIT license)
type PDFExtractor struct {
	maxPages int // 0 means unlimited
}

var _ TextExtractor = (*PDFExtractor)(nil)

// NewPDFExtractor creates a new PDF extractor. maxPages <= 0 disables the page limit.
func NewPDFExtractor(maxPages int) *PDFExtractor {
	return &PDFExtractor{maxPages: maxPages}
}

// sanitizePDF fixes common PDF issues like trailing garbage data
// Many PDFs downloaded from web have HTML or other data appended after %%EOF
// This function truncates the content at the last valid %%EOF marker
func sanitizePDF(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content // Not a PDF, return as-is
	}

	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)
	if lastEOF == -1 {
		// truncated, let the parser decide
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)

	// Allow for trailing newlines after %%EOF (valid per PDF spec)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}

	if pdfEnd < len(content) {
		log.Debug().Int("bytes", len(content)-pdfEnd).Msg("PDF sanitizer: removing trailing data after %%EOF")
		return content[:pdfEnd]
	}

	return content
}

// ExtractText extracts text from PDF bytes row by row. A document without any
// text (e.g. a scan with no text layer) yields an empty string, not an error.
func (p *PDFExtractor) ExtractText(content []byte) (text string, err error) {
	if len(content) == 0 {
		return "", ErrEmptyPDF
	}

	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	content = sanitizePDF(content)

	pdfReader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	numPages := pdfReader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}
	if p.maxPages > 0 && numPages > p.maxPages {
		return "", fmt.Errorf("PDF has %d pages, which exceeds the maximum of %d pages", numPages, p.maxPages)
	}

	var textBuilder strings.Builder

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			log.Debug().Int("page", i).Msg("PDF Extractor: page is null, skipping")
			continue
		}

		// Row extraction keeps one table row per line, which is what the batcher counts
		rows, err := page.GetTextByRow()
		if err != nil {
			log.Warn().Err(err).Int("page", i).Msg("PDF Extractor: row extraction failed, trying plain text")
			plain, plainErr := page.GetPlainText(nil)
			if plainErr != nil {
				log.Warn().Err(plainErr).Int("page", i).Msg("PDF Extractor: plain text extraction also failed")
				continue
			}
			textBuilder.WriteString(plain)
			textBuilder.WriteString("\n")
			continue
		}

		for _, row := range rows {
			var rowText strings.Builder
			for _, word := range row.Content {
				rowText.WriteString(word.S)
			}
			line := strings.TrimSpace(rowText.String())
			if line != "" {
				textBuilder.WriteString(line)
				textBuilder.WriteString("\n")
			}
		}
	}

	extracted := strings.TrimSpace(textBuilder.String())
	log.Info().Int("pages", numPages).Int("chars", len(extracted)).Msg("PDF Extractor: text extracted")

	return extracted, nil
}
