package services

import "strings"

// DefaultBatchSize is the number of non-blank lines sent to the model per call
const DefaultBatchSize = 10

// SplitBatches trims every line of text, drops blank ones and groups the rest
// into newline-joined chunks of at most size lines. Order is preserved and no
// chunk is empty; text without any non-blank line yields no chunks.
func SplitBatches(text string, size int) []string {
	if size <= 0 {
		size = DefaultBatchSize
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	batches := make([]string, 0, (len(lines)+size-1)/size)
	for start := 0; start < len(lines); start += size {
		end := min(start+size, len(lines))
		batches = append(batches, strings.Join(lines[start:end], "\n"))
	}
	return batches
}
