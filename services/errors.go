package services

import "fmt"

// ExtractionEmptyError is returned when the model produced no content for a batch
type ExtractionEmptyError struct {
	Batch int // 1-based
}

func (e *ExtractionEmptyError) Error() string {
	return fmt.Sprintf("no valid response from extraction model (batch %d)", e.Batch)
}

// ExtractionParseError is returned when a batch's content is not a JSON array
// of objects once code fences are removed. Raw keeps the model output for diagnosis.
type ExtractionParseError struct {
	Batch int // 1-based
	Raw   string
	Err   error
}

func (e *ExtractionParseError) Error() string {
	return fmt.Sprintf("failed to parse extraction model response as JSON (batch %d)", e.Batch)
}

func (e *ExtractionParseError) Unwrap() error {
	return e.Err
}

// LookupFailure collapses every phone lookup problem (invalid number,
// network, rate limit) into one kind
type LookupFailure struct {
	Phone string
	Err   error
}

func (e *LookupFailure) Error() string {
	return fmt.Sprintf("phone lookup failed for %q: %v", e.Phone, e.Err)
}

func (e *LookupFailure) Unwrap() error {
	return e.Err
}

// StoreFailure wraps an insert or query error from the discharge store
type StoreFailure struct {
	Op  string // "insert", "count" or "list"
	Err error
}

func (e *StoreFailure) Error() string {
	return fmt.Sprintf("discharge store %s failed: %v", e.Op, e.Err)
}

func (e *StoreFailure) Unwrap() error {
	return e.Err
}
