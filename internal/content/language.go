package content

import (
	"errors"

	"github.com/RadhiFadlillah/whatlanggo"
)

// ErrLanguageUndetected is returned by a detection backend that could not decide
var ErrLanguageUndetected = errors.New("language could not be detected")

// DetectFunc returns the ISO 639-1 code of the language of text
type DetectFunc func(text string) (string, error)

// LanguageDetector guesses the dominant language of a document from a leading sample
type LanguageDetector struct {
	detect      DetectFunc
	sampleSize  int
	placeholder string
}

// NewLanguageDetector creates a detector; a nil backend means whatlanggo
func NewLanguageDetector(detect DetectFunc) *LanguageDetector {
	if detect == nil {
		detect = WhatlangDetect
	}
	return &LanguageDetector{
		detect:      detect,
		sampleSize:  languageSampleSize,
		placeholder: languagePlaceholder,
	}
}

// Detect returns the language code of text, or fallback when the backend fails
func (d *LanguageDetector) Detect(text, fallback string) string {
	sample := d.sample(text)
	if sample == "" {
		sample = d.placeholder
	}

	lang, err := d.detect(sample)
	if err != nil || lang == "" {
		return fallback
	}
	return lang
}

// sample returns at most sampleSize leading characters of text
func (d *LanguageDetector) sample(text string) string {
	i := 0
	for pos := range text {
		if i == d.sampleSize {
			return text[:pos]
		}
		i++
	}
	return text
}

// WhatlangDetect returns the best whatlanggo guess, failing only when no script or code is found
func WhatlangDetect(text string) (string, error) {
	info := whatlanggo.Detect(text)
	if info.Script == nil {
		return "", ErrLanguageUndetected
	}

	code := info.Lang.Iso6391()
	if code == "" {
		return "", ErrLanguageUndetected
	}
	return code, nil
}
