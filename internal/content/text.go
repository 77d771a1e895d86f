package content

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/radio-t/audiobook/audiobook"
)

// TextProcessor handles text-related operations
type TextProcessor struct{}

// NewTextProcessor creates a new text processor
func NewTextProcessor() *TextProcessor {
	return &TextProcessor{}
}

// EstimateAudioDuration estimates the spoken duration of text
func (tp *TextProcessor) EstimateAudioDuration(text string) time.Duration {
	// narration averages about 150 words per minute,
	// with roughly 5 non-space characters per word

	charCount := 0
	for _, char := range text {
		if !unicode.IsSpace(char) {
			charCount++
		}
	}

	estimatedWords := float64(charCount) / avgCharsPerWord
	seconds := estimatedWords / avgWordsPerMinute * 60.0

	return time.Duration(seconds * float64(time.Second))
}

// EstimateTotalDuration estimates the spoken duration of all chunks
func (tp *TextProcessor) EstimateTotalDuration(chunks []audiobook.Chunk) time.Duration {
	var total time.Duration
	for _, c := range chunks {
		total += tp.EstimateAudioDuration(c.Text)
	}
	return total
}

// TruncateString truncates a string to the specified length and adds "..." if truncated
// it ensures UTF-8 characters are not broken
func (tp *TextProcessor) TruncateString(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	return string([]rune(s)[:maxLength]) + "..."
}
