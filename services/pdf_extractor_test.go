package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePDF(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "not a pdf", in: "hello %%EOF trailing garbage here", want: "hello %%EOF trailing garbage here"},
		{name: "clean pdf", in: "%PDF-1.4\nbody\n%%EOF", want: "%PDF-1.4\nbody\n%%EOF"},
		{name: "trailing newlines kept", in: "%PDF-1.4\nbody\n%%EOF\r\n", want: "%PDF-1.4\nbody\n%%EOF\r\n"},
		{name: "trailing html dropped", in: "%PDF-1.4\nbody\n%%EOF\n<html></html>", want: "%PDF-1.4\nbody\n%%EOF\n"},
		{name: "no eof marker", in: "%PDF-1.4\nbody", want: "%PDF-1.4\nbody"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(sanitizePDF([]byte(tt.in))))
		})
	}
}

func TestPDFExtractor_ExtractText_Errors(t *testing.T) {
	p := NewPDFExtractor(0)

	_, err := p.ExtractText(nil)
	require.ErrorIs(t, err, ErrEmptyPDF)

	_, err = p.ExtractText([]byte("definitely not a pdf document"))
	assert.Error(t, err)
}
