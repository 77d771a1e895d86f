package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radio-t/audiobook/audiobook"
	"github.com/radio-t/audiobook/internal/pipeline"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantIn  string
		wantOut string
		check   func(t *testing.T, o options)
		wantErr bool
	}{
		{
			name:    "positionals only",
			args:    []string{"book.pdf", "book.mp3"},
			wantIn:  "book.pdf",
			wantOut: "book.mp3",
			check: func(t *testing.T, o options) {
				assert.Equal(t, audiobook.DefaultChunkSize, o.chunkSize)
				assert.Empty(t, o.set)
			},
		},
		{
			name:    "flags before positionals",
			args:    []string{"--chunk-size", "500", "-language=de", "book.pdf", "book.mp3"},
			wantIn:  "book.pdf",
			wantOut: "book.mp3",
			check: func(t *testing.T, o options) {
				assert.Equal(t, 500, o.chunkSize)
				assert.Equal(t, "de", o.language)
				assert.True(t, o.set["chunk-size"])
				assert.True(t, o.set["language"])
			},
		},
		{
			name:    "flags after positionals",
			args:    []string{"book.pdf", "book.mp3", "--chunk-size", "100", "--play"},
			wantIn:  "book.pdf",
			wantOut: "book.mp3",
			check: func(t *testing.T, o options) {
				assert.Equal(t, 100, o.chunkSize)
				assert.True(t, o.play)
			},
		},
		{
			name:    "flags between positionals",
			args:    []string{"book.pdf", "--format", "ogg", "book.ogg", "--bitrate", "96k"},
			wantIn:  "book.pdf",
			wantOut: "book.ogg",
			check: func(t *testing.T, o options) {
				assert.Equal(t, "ogg", o.format)
				assert.Equal(t, "96k", o.bitrate)
			},
		},
		{name: "missing output", args: []string{"book.pdf"}, wantErr: true},
		{name: "no arguments", args: nil, wantErr: true},
		{name: "too many positionals", args: []string{"a.pdf", "b.mp3", "c.mp3"}, wantErr: true},
		{name: "unknown flag", args: []string{"--nope", "a.pdf", "b.mp3"}, wantErr: true},
		{name: "bad number", args: []string{"--chunk-size", "many", "a.pdf", "b.mp3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			o, err := parseArgs(tt.args, &stderr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIn, o.input)
			assert.Equal(t, tt.wantOut, o.output)
			if tt.check != nil {
				tt.check(t, o)
			}
		})
	}
}

func TestOptionsApply(t *testing.T) {
	o, err := parseArgs([]string{"in.pdf", "out.mp3", "--voice", "nova", "--rps", "1.5", "--nats-url", "nats://x:4222"},
		&bytes.Buffer{})
	require.NoError(t, err)

	cfg := audiobook.DefaultConfig()
	cfg.ChunkSize = 1234 // from a config file, must survive
	o.apply(&cfg)

	assert.Equal(t, "in.pdf", cfg.InputPath)
	assert.Equal(t, "out.mp3", cfg.OutputPath)
	assert.Equal(t, 1234, cfg.ChunkSize)
	assert.Equal(t, "nova", cfg.TTS.Voice)
	assert.InEpsilon(t, 1.5, cfg.TTS.RequestsPerSecond, 0.001)
	assert.Equal(t, "nats://x:4222", cfg.Publish.NATSURL)
	assert.Equal(t, audiobook.DefaultNATSBucket, cfg.Publish.Bucket)
}

func TestExitCode(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitOK},
		{name: "cancelled", err: fmt.Errorf("synthesis interrupted: %w", context.Canceled), want: exitInterrupted},
		{name: "not found", err: fmt.Errorf("%w: x.pdf", pipeline.ErrInputNotFound), want: exitNotFound},
		{name: "extraction", err: &pipeline.ExtractionError{Path: "x.pdf", Err: cause}, want: exitExtraction},
		{name: "no text", err: pipeline.ErrNoText, want: exitNoText},
		{name: "no audio", err: fmt.Errorf("%w: all failed", pipeline.ErrNoAudio), want: exitNoAudio},
		{name: "export", err: &pipeline.ExportError{Output: "x.mp3", Err: cause}, want: exitExport},
		{name: "publish", err: &pipeline.PublishError{Key: "x.mp3", Err: cause}, want: exitPublish},
		{name: "other", err: cause, want: exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing positionals", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitUsage, run([]string{"only.pdf"}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "usage: audiobook")
	})

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitOK, run([]string{"-h"}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "-chunk-size")
	})

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	t.Run("input not found", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "out.mp3"),
			"--tts", "service", "--tts-url", healthy.URL}, &stdout, &stderr)
		assert.Equal(t, exitNotFound, code)
		assert.Empty(t, stdout.String())
	})

	t.Run("service unhealthy", func(t *testing.T) {
		unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer unhealthy.Close()

		var stdout, stderr bytes.Buffer
		code := run([]string{filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "out.mp3"),
			"--tts", "service", "--tts-url", unhealthy.URL}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr.String(), "speech backend check failed")
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		var stdout, stderr bytes.Buffer
		code := run([]string{filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "out.mp3")}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr.String(), "openai api key is required")
	})

	t.Run("bad config file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("chunk_size = \"big\"\n"), 0o600))

		var stdout, stderr bytes.Buffer
		code := run([]string{"--config", path, "in.pdf", "out.mp3", "--tts", "service"}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
	})

	t.Run("invalid chunk size", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"in.pdf", "out.mp3", "--chunk-size", "0", "--tts", "service"}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
	})

	t.Run("unknown provider", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"in.pdf", "out.mp3", "--tts", "espeak"}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
	})
}
