package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the embedded text layer of a PDF, page by page.
// Scanned (image-only) pages yield no text.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the text of every non-blank page, each preceded by a "Page N" marker
func (e *PDFExtractor) Extract(path string) (text string, err error) {
	// the pdf library panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var fullText strings.Builder

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		pageText, pageErr := page.GetPlainText(fonts)
		if pageErr != nil {
			return "", fmt.Errorf("failed to read PDF page %d: %w", i, pageErr)
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}

		fmt.Fprintf(&fullText, "\nPage %d\n%s\n", i, pageText)
	}

	return strings.TrimSpace(fullText.String()), nil
}
