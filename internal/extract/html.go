package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minParagraphLength filters navigation and caption noise when no article container exists
const minParagraphLength = 50

// HTMLExtractor extracts readable text from a saved HTML article
type HTMLExtractor struct{}

// NewHTMLExtractor creates a new HTML extractor
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract reads the HTML file and returns its title followed by the article paragraphs
func (e *HTMLExtractor) Extract(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is provided by command-line argument
	if err != nil {
		return "", fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var text strings.Builder
	if title := strings.TrimSpace(doc.Find("title").Text()); title != "" {
		text.WriteString(title)
		text.WriteString("\n\n")
	}
	text.WriteString(e.extractContent(doc))

	return strings.TrimSpace(text.String()), nil
}

// extractContent extracts the main text content from the HTML document
func (e *HTMLExtractor) extractContent(doc *goquery.Document) string {
	var articleText strings.Builder

	// first try to find article content in common containers
	article := doc.Find("article, .article, .post, .content, main")
	if article.Length() > 0 {
		article.Find("p").Each(func(_ int, s *goquery.Selection) {
			articleText.WriteString(strings.TrimSpace(s.Text()))
			articleText.WriteString("\n\n")
		})
	} else {
		// fallback to all paragraphs
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			// skip very short paragraphs which are likely not article content
			if p := strings.TrimSpace(s.Text()); len(p) > minParagraphLength {
				articleText.WriteString(p)
				articleText.WriteString("\n\n")
			}
		})
	}

	return strings.TrimSpace(articleText.String())
}
