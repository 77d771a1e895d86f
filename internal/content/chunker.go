package content

import (
	"errors"
	"fmt"
)

// ErrInvalidChunkSize is returned for chunk sizes below one character
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// DefaultBreakMarkers lists preferred cut points in priority order:
// sentence terminators first, then paragraph breaks
var DefaultBreakMarkers = []string{".", "!", "?", "\n\n"}

// Chunker splits document text into pieces small enough for speech synthesis
type Chunker struct {
	markers [][]rune
}

// NewChunker creates a chunker with the given break markers, or DefaultBreakMarkers if none given
func NewChunker(markers ...string) *Chunker {
	if len(markers) == 0 {
		markers = DefaultBreakMarkers
	}
	c := &Chunker{markers: make([][]rune, 0, len(markers))}
	for _, m := range markers {
		if m == "" {
			continue
		}
		c.markers = append(c.markers, []rune(m))
	}
	return c
}

// Split cuts text into ordered chunks of at most maxSize characters.
// Joining the chunks gives back the input unchanged. Each cut is placed right after
// the rightmost occurrence of the first marker type that appears inside the window,
// or exactly at maxSize when no marker fits.
func (c *Chunker) Split(text string, maxSize int) ([]string, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, maxSize)
	}

	runes := []rune(text)
	var chunks []string

	for start := 0; start < len(runes); {
		end := start + maxSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		if pos := c.breakPosition(runes, start, end); pos >= 0 {
			end = pos + 1
		}

		chunks = append(chunks, string(runes[start:end]))
		start = end
	}

	return chunks, nil
}

// breakPosition returns the start of the rightmost occurrence, lying wholly in
// runes[start:end], of the first marker that has one; -1 when none does
func (c *Chunker) breakPosition(runes []rune, start, end int) int {
	for _, marker := range c.markers {
		if pos := lastIndexIn(runes, marker, start, end); pos >= 0 {
			return pos
		}
	}
	return -1
}

func lastIndexIn(runes, marker []rune, start, end int) int {
	for i := end - len(marker); i >= start; i-- {
		if runesEqual(runes[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SplitText splits text with the default break markers
func SplitText(text string, maxSize int) ([]string, error) {
	return NewChunker().Split(text, maxSize)
}
