// Package pipeline turns a document into a single narrated audio file.
//
// A run is one sequential pass: extract text, pick the language, split the
// text into chunks, synthesize every chunk into a temporary segment, drop the
// segments that cannot be decoded and merge the rest into the output file.
// A failed chunk or segment is logged and skipped, everything else aborts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/radio-t/audiobook/audiobook"
	"github.com/radio-t/audiobook/internal/audio"
	"github.com/radio-t/audiobook/internal/content"
	"github.com/radio-t/audiobook/internal/extract"
)

//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/language_detector.go -pkg mocks -skip-ensure -fmt goimports . LanguageDetector
//go:generate moq -out mocks/synthesizer.go -pkg mocks -skip-ensure -fmt goimports . Synthesizer
//go:generate moq -out mocks/audio_processor.go -pkg mocks -skip-ensure -fmt goimports . AudioProcessor
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher

// Extractor reads the text of a document
type Extractor interface {
	Extract(path string) (string, error)
}

// LanguageDetector picks the language code of a text, returning fallback when unsure
type LanguageDetector interface {
	Detect(text, fallback string) string
}

// Synthesizer turns one chunk into encoded audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
	Format() string
}

// AudioProcessor validates, merges and plays audio files
type AudioProcessor interface {
	Probe(ctx context.Context, file string) (time.Duration, error)
	Merge(ctx context.Context, files []string, output string, profile audio.EncodingProfile) error
	Play(filename string) error
}

// Publisher uploads the finished file
type Publisher interface {
	UploadFile(ctx context.Context, key, path string) error
}

// Pipeline runs conversions with a fixed set of collaborators
type Pipeline struct {
	extractorFor func(path string) Extractor
	detector     LanguageDetector
	chunker      *content.Chunker
	estimator    *content.TextProcessor
	synth        Synthesizer
	audio        AudioProcessor
	publisher    Publisher
	logger       zerolog.Logger
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithExtractor uses e for every input instead of choosing by file extension
func WithExtractor(e Extractor) Option {
	return func(p *Pipeline) {
		p.extractorFor = func(string) Extractor { return e }
	}
}

// WithDetector replaces the whatlanggo based detector
func WithDetector(d LanguageDetector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithChunker replaces the default sentence chunker
func WithChunker(c *content.Chunker) Option {
	return func(p *Pipeline) { p.chunker = c }
}

// WithPublisher uploads every finished file through pub
func WithPublisher(pub Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithLogger sets the run logger
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline around a synthesizer and an audio processor
func New(synth Synthesizer, processor AudioProcessor, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractorFor: func(path string) Extractor { return extract.ForPath(path) },
		detector:     content.NewLanguageDetector(nil),
		chunker:      content.NewChunker(),
		estimator:    content.NewTextProcessor(),
		synth:        synth,
		audio:        processor,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run converts cfg.InputPath into cfg.OutputPath
func (p *Pipeline) Run(ctx context.Context, cfg audiobook.Config) (audiobook.Result, error) {
	result := audiobook.Result{OutputPath: cfg.OutputPath}

	if err := cfg.Validate(); err != nil {
		return result, fmt.Errorf("invalid configuration: %w", err)
	}
	profile := audio.EncodingProfile{Format: cfg.Output.Format, Bitrate: cfg.Output.Bitrate}
	if err := profile.Validate(); err != nil {
		return result, fmt.Errorf("invalid configuration: %w", err)
	}

	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrInputNotFound, cfg.InputPath)
		}
		return result, &ExtractionError{Path: cfg.InputPath, Err: err}
	}
	if info.IsDir() {
		return result, fmt.Errorf("%w: %s is a directory", ErrInputNotFound, cfg.InputPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o750); err != nil {
		return result, &ExportError{Output: cfg.OutputPath, Err: fmt.Errorf("failed to create output directory: %w", err)}
	}

	p.logger.Info().Str("input", cfg.InputPath).Msg("extracting text")
	text, err := p.extractorFor(cfg.InputPath).Extract(cfg.InputPath)
	if err != nil {
		return result, &ExtractionError{Path: cfg.InputPath, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return result, ErrNoText
	}
	result.ExtractedChars = len([]rune(text))

	result.Language = p.language(text, cfg)

	texts, err := p.chunker.Split(text, cfg.ChunkSize)
	if err != nil {
		return result, fmt.Errorf("failed to split text: %w", err)
	}
	chunks := audiobook.NewChunks(texts)
	result.Chunks = len(chunks)
	p.logger.Info().Int("chunks", len(chunks)).Str("language", result.Language).
		Dur("estimated", p.estimator.EstimateTotalDuration(chunks)).Msg("text split into chunks")

	tempDir, err := os.MkdirTemp("", "audiobook-"+uuid.NewString()+"-")
	if err != nil {
		return result, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(tempDir)
	p.logger.Debug().Str("dir", tempDir).Msg("created temporary directory")

	segments, err := p.synthesize(ctx, chunks, result.Language, tempDir, &result)
	if err != nil {
		return result, err
	}
	result.Synthesized = len(segments)
	if len(segments) == 0 {
		return result, fmt.Errorf("%w: every chunk failed to synthesize", ErrNoAudio)
	}

	files, total, err := p.validate(ctx, segments, &result)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		return result, fmt.Errorf("%w: no segment could be decoded", ErrNoAudio)
	}

	p.logger.Info().Int("segments", len(files)).Str("output", cfg.OutputPath).Msg("merging audio")
	if err := p.audio.Merge(ctx, files, cfg.OutputPath, profile); err != nil {
		return result, &ExportError{Output: cfg.OutputPath, Err: err}
	}

	result.Duration = total
	if d, err := p.audio.Probe(ctx, cfg.OutputPath); err == nil {
		result.Duration = d
	} else {
		p.logger.Debug().Err(err).Msg("output probe failed, using segment durations")
	}

	p.logger.Info().Str("output", cfg.OutputPath).Dur("duration", result.Duration).
		Int("chunks", result.Chunks).Int("skipped", len(result.SkippedChunks)+len(result.SkippedMerges)).
		Msg("audiobook created")

	if p.publisher != nil {
		key := filepath.Base(cfg.OutputPath)
		if err := p.publisher.UploadFile(ctx, key, cfg.OutputPath); err != nil {
			return result, &PublishError{Key: key, Err: err}
		}
		result.PublishedKey = key
		p.logger.Info().Str("key", key).Msg("audiobook published")
	}

	if cfg.Play {
		if err := p.audio.Play(cfg.OutputPath); err != nil {
			p.logger.Warn().Err(err).Msg("playback failed")
		}
	}

	return result, nil
}

// language returns the override when set, the detected language otherwise
func (p *Pipeline) language(text string, cfg audiobook.Config) string {
	if cfg.Language != "" {
		p.logger.Info().Str("language", cfg.Language).Msg("using language override")
		return cfg.Language
	}

	fallback := cfg.DefaultLanguage
	if fallback == "" {
		fallback = audiobook.DefaultLanguage
	}
	lang := p.detector.Detect(text, fallback)
	p.logger.Info().Str("language", lang).Msg("detected language")
	return lang
}

// synthesize writes one segment per successful chunk, in chunk order
func (p *Pipeline) synthesize(ctx context.Context, chunks []audiobook.Chunk, language, dir string,
	result *audiobook.Result) ([]audiobook.Segment, error) {
	segments := make([]audiobook.Segment, 0, len(chunks))

	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("synthesis interrupted: %w", err)
		}

		p.logger.Info().Msgf("chunk %d/%d", chunk.Index+1, len(chunks))
		p.logger.Debug().Int("chunk", chunk.Index).
			Str("text", p.estimator.TruncateString(chunk.Text, content.DisplayTruncateLength)).Msg("synthesizing")

		path := filepath.Join(dir, audiobook.SegmentFileName(chunk.Index, p.synth.Format()))
		if err := p.synthesizeChunk(ctx, chunk, language, path); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("synthesis interrupted: %w", ctxErr)
			}
			p.logger.Warn().Err(err).Int("chunk", chunk.Index).Msg("skipping chunk")
			result.SkippedChunks = append(result.SkippedChunks, chunk.Index)
			continue
		}
		segments = append(segments, audiobook.Segment{Index: chunk.Index, Path: path})
	}

	return segments, nil
}

func (p *Pipeline) synthesizeChunk(ctx context.Context, chunk audiobook.Chunk, language, path string) error {
	data, err := p.synth.Synthesize(ctx, chunk.Text, language)
	if err != nil {
		return &SynthesisError{Index: chunk.Index, Err: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &SynthesisError{Index: chunk.Index, Err: fmt.Errorf("failed to write segment: %w", err)}
	}
	return nil
}

// validate probes every segment and returns the decodable ones with their total duration
func (p *Pipeline) validate(ctx context.Context, segments []audiobook.Segment,
	result *audiobook.Result) ([]string, time.Duration, error) {
	files := make([]string, 0, len(segments))
	var total time.Duration

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, 0, fmt.Errorf("merge interrupted: %w", err)
		}

		d, err := p.audio.Probe(ctx, seg.Path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, 0, fmt.Errorf("merge interrupted: %w", ctxErr)
			}
			mergeErr := &MergeError{Index: seg.Index, Err: err}
			p.logger.Warn().Err(mergeErr).Int("segment", seg.Index).Msg("skipping segment")
			result.SkippedMerges = append(result.SkippedMerges, seg.Index)
			continue
		}
		files = append(files, seg.Path)
		total += d
	}

	return files, total, nil
}
