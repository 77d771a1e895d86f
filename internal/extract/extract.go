// Package extract turns source documents into plain text for narration.
package extract

import (
	"path/filepath"
	"strings"
)

// Extractor produces a single text blob from a document on disk
type Extractor interface {
	Extract(path string) (string, error)
}

// ForPath picks an extractor by file extension; anything that is not HTML is read as PDF
func ForPath(path string) Extractor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return NewHTMLExtractor()
	default:
		return NewPDFExtractor()
	}
}
