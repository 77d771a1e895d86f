// file: main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/radio-t/audiobook/audiobook"
	"github.com/radio-t/audiobook/internal/audio"
	"github.com/radio-t/audiobook/internal/config"
	"github.com/radio-t/audiobook/internal/objectstore"
	"github.com/radio-t/audiobook/internal/pipeline"
	"github.com/radio-t/audiobook/internal/speech"
)

// process exit codes
const (
	exitOK          = 0
	exitUsage       = 1
	exitNotFound    = 2
	exitExtraction  = 3
	exitNoText      = 4
	exitNoAudio     = 5
	exitExport      = 6
	exitPublish     = 7
	exitInterrupted = 130
)

// preflightTimeout bounds the TTS service health check
const preflightTimeout = 10 * time.Second

const usageLine = "usage: audiobook [flags] <input_pdf> <output_mp3>"

var errUsage = errors.New("expected exactly two arguments: input and output paths")

// options holds the parsed command line
type options struct {
	chunkSize  int
	language   string
	configPath string
	provider   string
	voice      string
	model      string
	speed      float64
	ttsURL     string
	format     string
	bitrate    string
	rps        float64
	natsURL    string
	natsBucket string
	play       bool
	verbose    bool

	input  string
	output string
	set    map[string]bool // flags given explicitly
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n%s\n", err, usageLine)
		return exitUsage
	}

	logger := newLogger(stderr, opts.verbose)

	if err := config.LoadEnv(); err != nil {
		logger.Warn().Err(err).Msg("ignoring .env file")
	}

	cfg, err := config.Build(opts.configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		return exitUsage
	}
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	synth, err := speech.New(cfg.TTS, nil)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create speech synthesizer")
		return exitUsage
	}
	preflightCtx, cancelPreflight := context.WithTimeout(ctx, preflightTimeout)
	err = speech.Preflight(preflightCtx, synth)
	cancelPreflight()
	if err != nil {
		logger.Error().Err(err).Str("url", cfg.TTS.ServiceURL).Msg("speech backend check failed")
		return exitUsage
	}

	pipelineOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if cfg.Publish.Enabled() {
		publisher, err := objectstore.Connect(cfg.Publish.NATSURL, cfg.Publish.Bucket)
		if err != nil {
			logger.Error().Err(err).Msg("failed to connect publisher")
			return exitPublish
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close publisher")
			}
		}()
		pipelineOpts = append(pipelineOpts, pipeline.WithPublisher(publisher))
	}

	p := pipeline.New(synth, audio.NewFFmpegAudioProcessor(), pipelineOpts...)
	result, err := p.Run(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("conversion failed")
		return exitCode(err)
	}

	fmt.Fprintf(stdout, "Audiobook saved to %s (%d/%d chunks, %s)\n",
		result.OutputPath, result.Synthesized-len(result.SkippedMerges), result.Chunks, result.Duration.Round(time.Second))
	return exitOK
}

// parseArgs parses flags and the two positionals. Flags may follow the positionals.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("audiobook", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	opts := options{set: map[string]bool{}}
	fs.IntVar(&opts.chunkSize, "chunk-size", audiobook.DefaultChunkSize, "maximum characters per chunk")
	fs.StringVar(&opts.language, "language", "", "force language code, detect when empty")
	fs.StringVar(&opts.configPath, "config", "", "TOML config file")
	fs.StringVar(&opts.provider, "tts", audiobook.DefaultProvider, "speech backend: openai or service")
	fs.StringVar(&opts.voice, "voice", audiobook.DefaultVoice, "OpenAI voice")
	fs.StringVar(&opts.model, "model", audiobook.DefaultModel, "OpenAI speech model")
	fs.Float64Var(&opts.speed, "speed", audiobook.DefaultSpeed, "OpenAI speech speed")
	fs.StringVar(&opts.ttsURL, "tts-url", audiobook.DefaultServiceURL, "TTS service base URL")
	fs.StringVar(&opts.format, "format", audiobook.DefaultFormat, "output format: mp3, ogg, m4a, aac, flac, wav")
	fs.StringVar(&opts.bitrate, "bitrate", audiobook.DefaultBitrate, "output bitrate, e.g. 128k")
	fs.Float64Var(&opts.rps, "rps", 0, "synthesis requests per second, 0 for unlimited")
	fs.StringVar(&opts.natsURL, "nats-url", "", "NATS server to publish the result to")
	fs.StringVar(&opts.natsBucket, "nats-bucket", audiobook.DefaultNATSBucket, "NATS object store bucket")
	fs.BoolVar(&opts.play, "play", false, "play the result after export")
	fs.BoolVar(&opts.verbose, "verbose", false, "debug logging")

	var positionals []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return opts, err
		}
		remaining := fs.Args()
		if len(remaining) == 0 {
			break
		}
		positionals = append(positionals, remaining[0])
		rest = remaining[1:]
	}

	if len(positionals) != 2 {
		return opts, fmt.Errorf("%w, got %d", errUsage, len(positionals))
	}
	opts.input, opts.output = positionals[0], positionals[1]
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	return opts, nil
}

// apply overrides cfg with the positionals and every flag given explicitly
func (o options) apply(cfg *audiobook.Config) {
	cfg.InputPath = o.input
	cfg.OutputPath = o.output

	if o.set["chunk-size"] {
		cfg.ChunkSize = o.chunkSize
	}
	if o.set["language"] {
		cfg.Language = o.language
	}
	if o.set["tts"] {
		cfg.TTS.Provider = o.provider
	}
	if o.set["voice"] {
		cfg.TTS.Voice = o.voice
	}
	if o.set["model"] {
		cfg.TTS.Model = o.model
	}
	if o.set["speed"] {
		cfg.TTS.Speed = o.speed
	}
	if o.set["tts-url"] {
		cfg.TTS.ServiceURL = o.ttsURL
	}
	if o.set["rps"] {
		cfg.TTS.RequestsPerSecond = o.rps
	}
	if o.set["format"] {
		cfg.Output.Format = o.format
	}
	if o.set["bitrate"] {
		cfg.Output.Bitrate = o.bitrate
	}
	if o.set["nats-url"] {
		cfg.Publish.NATSURL = o.natsURL
	}
	if o.set["nats-bucket"] {
		cfg.Publish.Bucket = o.natsBucket
	}
	if o.set["play"] {
		cfg.Play = o.play
	}
}

// newLogger writes human readable logs to w, at debug level when verbose
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger()
}

// exitCode maps a run error to the process exit code
func exitCode(err error) int {
	var (
		extractionErr *pipeline.ExtractionError
		exportErr     *pipeline.ExportError
		publishErr    *pipeline.PublishError
	)

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, pipeline.ErrInputNotFound):
		return exitNotFound
	case errors.As(err, &extractionErr):
		return exitExtraction
	case errors.Is(err, pipeline.ErrNoText):
		return exitNoText
	case errors.Is(err, pipeline.ErrNoAudio):
		return exitNoAudio
	case errors.As(err, &exportErr):
		return exitExport
	case errors.As(err, &publishErr):
		return exitPublish
	default:
		return exitUsage
	}
}
