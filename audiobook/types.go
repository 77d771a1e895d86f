package audiobook

import (
	"errors"
	"fmt"
	"time"
)

// defaults for a run
const (
	DefaultChunkSize       = 4000
	DefaultLanguage        = "en"
	DefaultFormat          = "mp3"
	DefaultBitrate         = "128k"
	DefaultProvider        = "openai"
	DefaultVoice           = "alloy"
	DefaultModel           = "tts-1"
	DefaultSpeed           = 1.0
	DefaultServiceURL      = "http://localhost:8000"
	DefaultTimeout         = 2 * time.Minute
	DefaultNATSBucket      = "AUDIOBOOKS"
	DefaultSegmentFileBase = "part"
)

// TTSSettings configures the speech synthesis backend
type TTSSettings struct {
	Provider          string  // "openai" or "service"
	APIKey            string  // openAI API key
	Voice             string  // openAI voice name
	Model             string  // openAI speech model
	Speed             float64 // openAI speech speed
	ServiceURL        string  // base URL of the standalone TTS service
	Temperature       float64 // sampling temperature for the TTS service
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables throttling
}

// OutputSettings is the encoding profile of the final file
type OutputSettings struct {
	Format  string
	Bitrate string
}

// PublishSettings points at an optional NATS object store for the final file
type PublishSettings struct {
	NATSURL string
	Bucket  string
}

// Enabled reports whether publishing was requested
func (p PublishSettings) Enabled() bool {
	return p.NATSURL != ""
}

// Config represents the configuration of one conversion run
type Config struct {
	InputPath       string
	OutputPath      string
	ChunkSize       int
	Language        string // explicit override, empty triggers detection
	DefaultLanguage string // used when detection fails
	TTS             TTSSettings
	Output          OutputSettings
	Publish         PublishSettings
	Play            bool // play the result after export
}

// DefaultConfig returns a configuration with every optional field populated
func DefaultConfig() Config {
	return Config{
		ChunkSize:       DefaultChunkSize,
		DefaultLanguage: DefaultLanguage,
		TTS: TTSSettings{
			Provider:   DefaultProvider,
			Voice:      DefaultVoice,
			Model:      DefaultModel,
			Speed:      DefaultSpeed,
			ServiceURL: DefaultServiceURL,
			Timeout:    DefaultTimeout,
		},
		Output: OutputSettings{
			Format:  DefaultFormat,
			Bitrate: DefaultBitrate,
		},
		Publish: PublishSettings{Bucket: DefaultNATSBucket},
	}
}

// Validate checks the fields every run needs
func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.TTS.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative, got %v", c.TTS.RequestsPerSecond)
	}
	if c.Publish.Enabled() && c.Publish.Bucket == "" {
		return errors.New("nats bucket is required when publishing")
	}
	return nil
}

// Chunk is a contiguous slice of the document text sent to synthesis as one unit
type Chunk struct {
	Index int
	Text  string
}

// NewChunks numbers split texts in document order
func NewChunks(texts []string) []Chunk {
	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{Index: i, Text: text}
	}
	return chunks
}

// Segment is the audio produced for one chunk, stored in the run's temp directory
type Segment struct {
	Index int // index of the chunk this audio belongs to
	Path  string
}

// SegmentFileName returns the temp file name for the audio of the given chunk
func SegmentFileName(index int, format string) string {
	return fmt.Sprintf("%s_%04d.%s", DefaultSegmentFileBase, index, format)
}

// Result summarizes a finished run
type Result struct {
	OutputPath     string
	Language       string
	Chunks         int
	Synthesized    int
	SkippedChunks  []int // chunk indexes whose synthesis failed
	SkippedMerges  []int // segment indexes dropped during merge
	Duration       time.Duration
	PublishedKey   string
	ExtractedChars int
}
