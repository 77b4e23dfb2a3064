package utils

import (
	"strings"
	"unicode"
)

const codeFence = "```"

// StripCodeFence removes a leading ``` marker (with its optional language tag,
// e.g. ```json) and a trailing ``` marker from a model response. Content that
// is not fenced is returned trimmed but otherwise untouched.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, codeFence) {
		s = strings.TrimPrefix(s, codeFence)
		s = strings.TrimLeftFunc(s, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
		})
	}

	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, codeFence) {
		s = strings.TrimSuffix(s, codeFence)
	}

	return strings.TrimSpace(s)
}
