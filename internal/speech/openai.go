package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

//go:generate moq -out mocks/http_client.go -pkg mocks -skip-ensure -fmt goimports . HTTPClient

// openAISpeechURL is the OpenAI text-to-speech endpoint
const openAISpeechURL = "https://api.openai.com/v1/audio/speech"

// instructionModelPrefix marks speech models that accept free-form voice instructions
const instructionModelPrefix = "gpt-4o"

// ErrAPIKeyMissing is returned when the OpenAI backend is created without a key
var ErrAPIKeyMissing = errors.New("openai api key is required")

// HTTPClient defines the interface for HTTP client operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenAISynthesizer implements speech synthesis with the OpenAI speech endpoint
type OpenAISynthesizer struct {
	apiKey     string
	model      string
	voice      string
	speed      float64
	format     string
	httpClient HTTPClient
}

// OpenAISpeechRequest represents a request to the OpenAI speech endpoint
type OpenAISpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed,omitempty"`
	ResponseFormat string  `json:"response_format"`
	Instructions   string  `json:"instructions,omitempty"`
}

// NewOpenAISynthesizer creates a new OpenAI synthesizer
func NewOpenAISynthesizer(opts OpenAIOptions, httpClient HTTPClient) (*OpenAISynthesizer, error) {
	if opts.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &OpenAISynthesizer{
		apiKey:     opts.APIKey,
		model:      opts.Model,
		voice:      opts.Voice,
		speed:      opts.Speed,
		format:     opts.Format,
		httpClient: httpClient,
	}, nil
}

// Format returns the container format of the produced audio
func (s *OpenAISynthesizer) Format() string {
	return s.format
}

// Synthesize generates speech audio for the given text.
// Models that take instructions are told the narration language, older models infer it from the input.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextEmpty
	}

	request := OpenAISpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		Speed:          s.speed,
		ResponseFormat: s.format,
		Instructions:   s.instructions(language),
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAISpeechURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(audioData) == 0 {
		return nil, ErrEmptyAudio
	}

	return audioData, nil
}

// instructions returns the language instruction for models that support it
func (s *OpenAISynthesizer) instructions(language string) string {
	if language == "" || !strings.HasPrefix(s.model, instructionModelPrefix) {
		return ""
	}
	return fmt.Sprintf("Narrate in the language with ISO 639-1 code %q, in a calm audiobook reading voice.", language)
}
