package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radio-t/audiobook/internal/speech/mocks"
)

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func testOpenAIOptions() OpenAIOptions {
	return OpenAIOptions{APIKey: "test-key", Model: "tts-1", Voice: "alloy", Speed: 1.0, Format: "mp3"}
}

func TestNewOpenAISynthesizer(t *testing.T) {
	_, err := NewOpenAISynthesizer(OpenAIOptions{}, nil)
	require.ErrorIs(t, err, ErrAPIKeyMissing)

	synth, err := NewOpenAISynthesizer(testOpenAIOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, "mp3", synth.Format())
	assert.NotNil(t, synth.httpClient)
}

func TestOpenAISynthesizer_Synthesize(t *testing.T) {
	tests := []struct {
		name          string
		mockResponse  *http.Response
		mockError     error
		expectedAudio []byte
		expectedError string
	}{
		{
			name:          "successful synthesis",
			mockResponse:  newResponse(http.StatusOK, "fake mp3 bytes"),
			expectedAudio: []byte("fake mp3 bytes"),
		},
		{
			name:          "api error status",
			mockResponse:  newResponse(http.StatusBadRequest, `{"error": "bad request"}`),
			expectedError: "TTS request failed with status 400",
		},
		{
			name:          "network error",
			mockError:     errors.New("connection refused"),
			expectedError: "TTS request failed: connection refused",
		},
		{
			name:          "empty body",
			mockResponse:  newResponse(http.StatusOK, ""),
			expectedError: "received empty audio data",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockClient := &mocks.HTTPClientMock{
				DoFunc: func(req *http.Request) (*http.Response, error) {
					assert.Equal(t, http.MethodPost, req.Method)
					assert.Equal(t, "https://api.openai.com/v1/audio/speech", req.URL.String())
					assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
					assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))

					if test.mockError != nil {
						return nil, test.mockError
					}
					return test.mockResponse, nil
				},
			}

			synth, err := NewOpenAISynthesizer(testOpenAIOptions(), mockClient)
			require.NoError(t, err)

			audioData, err := synth.Synthesize(context.Background(), "Hello world.", "en")
			if test.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expectedAudio, audioData)
			assert.Len(t, mockClient.DoCalls(), 1)
		})
	}
}

func TestOpenAISynthesizer_RequestBody(t *testing.T) {
	var got OpenAISpeechRequest
	mockClient := &mocks.HTTPClientMock{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
			return newResponse(http.StatusOK, "audio"), nil
		},
	}

	opts := testOpenAIOptions()
	opts.Voice = "nova"
	opts.Speed = 1.25
	synth, err := NewOpenAISynthesizer(opts, mockClient)
	require.NoError(t, err)

	_, err = synth.Synthesize(context.Background(), "Chunk text.", "de")
	require.NoError(t, err)

	assert.Equal(t, OpenAISpeechRequest{
		Model:          "tts-1",
		Input:          "Chunk text.",
		Voice:          "nova",
		Speed:          1.25,
		ResponseFormat: "mp3",
	}, got)
}

func TestOpenAISynthesizer_LanguageInstructions(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		language string
		want     string
	}{
		{name: "instruction model gets language", model: "gpt-4o-mini-tts", language: "de", want: `code "de"`},
		{name: "legacy model infers language", model: "tts-1", language: "de"},
		{name: "no language", model: "gpt-4o-mini-tts"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got OpenAISpeechRequest
			mockClient := &mocks.HTTPClientMock{
				DoFunc: func(req *http.Request) (*http.Response, error) {
					require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
					return newResponse(http.StatusOK, "audio"), nil
				},
			}

			opts := testOpenAIOptions()
			opts.Model = tc.model
			synth, err := NewOpenAISynthesizer(opts, mockClient)
			require.NoError(t, err)

			_, err = synth.Synthesize(context.Background(), "Guten Tag.", tc.language)
			require.NoError(t, err)

			assert.Equal(t, tc.model, got.Model)
			if tc.want == "" {
				assert.Empty(t, got.Instructions)
				return
			}
			assert.Contains(t, got.Instructions, tc.want)
		})
	}
}

func TestOpenAISynthesizer_EmptyText(t *testing.T) {
	mockClient := &mocks.HTTPClientMock{}
	synth, err := NewOpenAISynthesizer(testOpenAIOptions(), mockClient)
	require.NoError(t, err)

	_, err = synth.Synthesize(context.Background(), "  \n ", "en")
	require.ErrorIs(t, err, ErrTextEmpty)
	assert.Empty(t, mockClient.DoCalls())
}
