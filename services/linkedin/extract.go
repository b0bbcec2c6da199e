package linkedin

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxExtractedChars bounds the text handed to the language model.
const maxExtractedChars = 100_000

// ExtractPDFText pulls the plain text out of an uploaded PDF export.
func ExtractPDFText(file io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(file, size)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := sanitizeText(buf.String())
	if text == "" {
		return "", fmt.Errorf("PDF contains no extractable text")
	}
	return text, nil
}

// sanitizeText collapses whitespace, strips control characters and truncates.
func sanitizeText(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	lastSpace := true
	for _, r := range raw {
		switch {
		case r == '\n':
			sb.WriteRune('\n')
			lastSpace = true
		case r == ' ' || r == '\t' || r == '\r':
			if !lastSpace {
				sb.WriteRune(' ')
			}
			lastSpace = true
		case r < 32:
			// Drop other control characters.
		default:
			sb.WriteRune(r)
			lastSpace = false
		}
	}

	text := strings.TrimSpace(sb.String())
	if len(text) > maxExtractedChars {
		text = text[:maxExtractedChars]
	}
	return text
}
