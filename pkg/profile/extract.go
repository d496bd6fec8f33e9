package profile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	docx "github.com/nguyenthenguyen/docx"
)

// ExtractText converts raw resume file bytes into a plain-text transcript.
// Page boundaries are preserved for multi-page PDFs and runs of blank lines
// are collapsed to at most one. No OCR: an image-only scan yields an empty
// string, which callers must treat as an error.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".docx":
		return extractTextFromDocx(data)
	default:
		return "", ErrUnsupportedFormat
	}
}

func extractTextFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	var parts []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if i > 1 {
			parts = append(parts, fmt.Sprintf("\n--- Page %d ---\n", i))
		}
		parts = append(parts, text)
	}
	return collapseBlankLines(strings.Join(parts, "\n")), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer doc.Close()
	xml := doc.Editable().GetContent()
	// Convert paragraph boundaries to newlines before stripping tags.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	reTags := regexp.MustCompile(`<[^>]+>`)
	return collapseBlankLines(reTags.ReplaceAllString(xml, " ")), nil
}

// collapseBlankLines trims each line and keeps at most one blank line
// between non-blank lines.
func collapseBlankLines(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	var cleaned []string
	for _, line := range strings.Split(s, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped != "" {
			cleaned = append(cleaned, stripped)
		} else if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
			cleaned = append(cleaned, "")
		}
	}
	// Drop a trailing blank line left by the loop.
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n")
}
