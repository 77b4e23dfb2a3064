package pdfvalidation

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

var pdfHeader = []byte("%PDF-")

// PDFLimits defines the validation limits for PDF uploads
type PDFLimits struct {
	MaxFileSizeMB int // Maximum file size in MB
}

// DefaultLimits applies when MAX_UPLOAD_MB is not configured
var DefaultLimits = PDFLimits{MaxFileSizeMB: 20}

// ValidationResult contains the result of PDF validation
type ValidationResult struct {
	Valid    bool
	FileSize int64
	Error    string
}

// ReadPDFFile validates an uploaded file against the given limits and returns
// its bytes. A rejected upload yields a result with Error set and a nil error;
// the error return is reserved for I/O failures.
func ReadPDFFile(file *multipart.FileHeader, limits PDFLimits) ([]byte, *ValidationResult, error) {
	result := &ValidationResult{
		FileSize: file.Size,
	}

	// 1. Validate file size
	if msg := checkSize(file.Size, limits); msg != "" {
		result.Error = msg
		return nil, result, nil
	}

	// 2. Open file and read content
	fileContent, err := file.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer fileContent.Close()

	content, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	// 3. Validate content
	result = ValidatePDFBytes(content, limits)
	if !result.Valid {
		return nil, result, nil
	}
	return content, result, nil
}

// ValidatePDFBytes validates PDF content bytes against the given limits
func ValidatePDFBytes(content []byte, limits PDFLimits) *ValidationResult {
	result := &ValidationResult{
		FileSize: int64(len(content)),
	}

	if len(content) == 0 {
		result.Error = "Uploaded file is empty"
		return result
	}

	if msg := checkSize(result.FileSize, limits); msg != "" {
		result.Error = msg
		return result
	}

	if !bytes.HasPrefix(content, pdfHeader) {
		result.Error = "Invalid PDF file: missing PDF header"
		return result
	}

	result.Valid = true
	return result
}

func checkSize(size int64, limits PDFLimits) string {
	if limits.MaxFileSizeMB <= 0 {
		limits = DefaultLimits
	}
	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if size > maxSize {
		return fmt.Sprintf("File size exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
	}
	return ""
}
