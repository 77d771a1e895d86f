// Package speech provides text-to-speech backends that turn one chunk of text into audio bytes.
package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/radio-t/audiobook/audiobook"
)

// backend names accepted by New
const (
	ProviderOpenAI  = "openai"
	ProviderService = "service"
)

// segmentFormat is the container requested from the OpenAI endpoint; the merge step re-encodes it
const segmentFormat = "mp3"

// Static errors.
var (
	ErrTextEmpty       = errors.New("text cannot be empty")
	ErrEmptyAudio      = errors.New("received empty audio data")
	ErrUnknownProvider = errors.New("unknown TTS provider")
)

// Synthesizer turns text in the given language into encoded audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
	Format() string
}

// HealthChecker is implemented by backends that expose a readiness endpoint
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// OpenAIOptions configures OpenAISynthesizer
type OpenAIOptions struct {
	APIKey  string
	Model   string
	Voice   string
	Speed   float64
	Format  string
	Timeout time.Duration
}

// ServiceOptions configures ServiceSynthesizer
type ServiceOptions struct {
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// New builds the synthesizer selected by settings, throttled when a request rate is set.
// httpClient may be nil.
func New(settings audiobook.TTSSettings, httpClient HTTPClient) (Synthesizer, error) {
	var (
		synth Synthesizer
		err   error
	)

	switch settings.Provider {
	case ProviderOpenAI, "":
		synth, err = NewOpenAISynthesizer(OpenAIOptions{
			APIKey:  settings.APIKey,
			Model:   settings.Model,
			Voice:   settings.Voice,
			Speed:   settings.Speed,
			Format:  segmentFormat,
			Timeout: settings.Timeout,
		}, httpClient)
		if err != nil {
			return nil, err
		}
	case ProviderService:
		synth = NewServiceSynthesizer(ServiceOptions{
			BaseURL:     settings.ServiceURL,
			Temperature: settings.Temperature,
			Timeout:     settings.Timeout,
		}, httpClient)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, settings.Provider)
	}

	if settings.RequestsPerSecond > 0 {
		synth = NewRateLimited(synth, settings.RequestsPerSecond)
	}
	return synth, nil
}

// Preflight checks that the backend behind synth answers before any chunk is sent.
// Backends without a readiness endpoint always pass.
func Preflight(ctx context.Context, synth Synthesizer) error {
	if limited, ok := synth.(*RateLimited); ok {
		synth = limited.next
	}
	checker, ok := synth.(HealthChecker)
	if !ok {
		return nil
	}
	if err := checker.HealthCheck(ctx); err != nil {
		return fmt.Errorf("TTS backend is not ready: %w", err)
	}
	return nil
}
