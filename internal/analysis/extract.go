package analysis

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls plain text out of an uploaded file. PDFs go through the
// pdf reader; everything else is treated as plain text. Image formats need
// OCR, which the direct provider does not carry.
func ExtractText(filename string, content []byte) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "pdf":
		text, err := extractPDF(content)
		if err != nil {
			return "", fmt.Errorf("failed to parse PDF: %w", err)
		}
		return text, nil
	case "jpg", "jpeg", "png", "bmp", "tiff", "gif":
		return "", fmt.Errorf("image extraction requires OCR, which this provider does not support")
	default:
		return strings.TrimSpace(string(content)), nil
	}
}

func extractPDF(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return strings.TrimSpace(textBuilder.String()), nil
}
