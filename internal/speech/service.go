package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TTS service API paths
const (
	apiGenerateSpeech = "/v1/generate/speech"
	apiHealth         = "/health"
)

const defaultServiceTemperature = 0.75

// ServiceSynthesizer talks to a standalone TTS HTTP service that returns WAV audio
type ServiceSynthesizer struct {
	baseURL     string
	temperature float64
	httpClient  HTTPClient
}

// ServiceRequest is the JSON payload of a speech generation request
type ServiceRequest struct {
	Text        string  `json:"text"`
	Language    string  `json:"language"`
	Temperature float64 `json:"temperature"`
}

// ServiceErrorResponse is the structured error body returned by the service
type ServiceErrorResponse struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code,omitempty"`
}

// NewServiceSynthesizer creates a client for the TTS service at baseURL, e.g. "http://localhost:8000"
func NewServiceSynthesizer(opts ServiceOptions, httpClient HTTPClient) *ServiceSynthesizer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = defaultServiceTemperature
	}
	return &ServiceSynthesizer{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		temperature: temperature,
		httpClient:  httpClient,
	}
}

// Format returns the container format of the produced audio
func (s *ServiceSynthesizer) Format() string {
	return "wav"
}

// Synthesize sends the text with its language to the service and returns the WAV bytes
func (s *ServiceSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextEmpty
	}

	requestBody, err := json.Marshal(ServiceRequest{Text: text, Language: language, Temperature: s.temperature})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+apiGenerateSpeech, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to TTS service at %s: %w", s.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.statusError(resp)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "audio/") {
		return nil, fmt.Errorf("unexpected content type: expected audio/wav, got %s", ct)
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

// HealthCheck reports whether the service answers its health endpoint
func (s *ServiceSynthesizer) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+apiHealth, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TTS service is unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// statusError turns a non-OK response into an error, preferring the structured body
func (s *ServiceSynthesizer) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp ServiceErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Detail != "" {
		return fmt.Errorf("TTS service error (%s): %s (code: %s)", resp.Status, errResp.Detail, errResp.ErrorCode)
	}
	return fmt.Errorf("TTS service returned non-OK status: %s, body: %s", resp.Status, strings.TrimSpace(string(body)))
}
