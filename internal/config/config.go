// Package config loads run settings from an optional TOML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/radio-t/audiobook/audiobook"
)

// EnvAPIKey is the environment variable holding the OpenAI key
const EnvAPIKey = "OPENAI_API_KEY"

// TTSConfig holds the [tts] table.
type TTSConfig struct {
	Provider          string  `toml:"provider"`
	Voice             string  `toml:"voice"`
	Model             string  `toml:"model"`
	Speed             float64 `toml:"speed"`
	ServiceURL        string  `toml:"service_url"`
	Temperature       float64 `toml:"temperature"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// OutputConfig holds the [output] table.
type OutputConfig struct {
	Format  string `toml:"format"`
	Bitrate string `toml:"bitrate"`
}

// NATSConfig holds the [nats] table.
type NATSConfig struct {
	URL    string `toml:"url"`
	Bucket string `toml:"bucket"`
}

// File is the root structure of the TOML config file.
type File struct {
	ChunkSize       int          `toml:"chunk_size"`
	Language        string       `toml:"language"`
	DefaultLanguage string       `toml:"default_language"`
	TTS             TTSConfig    `toml:"tts"`
	Output          OutputConfig `toml:"output"`
	NATS            NATSConfig   `toml:"nats"`
}

// Load reads the TOML file at path. Unknown keys are rejected.
func Load(path string) (File, error) {
	var file File

	f, err := os.Open(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return file, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&file); err != nil {
		return file, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return file, nil
}

// Apply copies every value set in the file over cfg
func (f File) Apply(cfg *audiobook.Config) {
	if f.ChunkSize != 0 {
		cfg.ChunkSize = f.ChunkSize
	}
	if f.Language != "" {
		cfg.Language = f.Language
	}
	if f.DefaultLanguage != "" {
		cfg.DefaultLanguage = f.DefaultLanguage
	}

	setString(&cfg.TTS.Provider, f.TTS.Provider)
	setString(&cfg.TTS.Voice, f.TTS.Voice)
	setString(&cfg.TTS.Model, f.TTS.Model)
	setString(&cfg.TTS.ServiceURL, f.TTS.ServiceURL)
	if f.TTS.Speed != 0 {
		cfg.TTS.Speed = f.TTS.Speed
	}
	if f.TTS.Temperature != 0 {
		cfg.TTS.Temperature = f.TTS.Temperature
	}
	if f.TTS.TimeoutSeconds > 0 {
		cfg.TTS.Timeout = time.Duration(f.TTS.TimeoutSeconds) * time.Second
	}
	if f.TTS.RequestsPerSecond != 0 {
		cfg.TTS.RequestsPerSecond = f.TTS.RequestsPerSecond
	}

	setString(&cfg.Output.Format, f.Output.Format)
	setString(&cfg.Output.Bitrate, f.Output.Bitrate)

	setString(&cfg.Publish.NATSURL, f.NATS.URL)
	setString(&cfg.Publish.Bucket, f.NATS.Bucket)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// LoadEnv loads variables from the given .env files (".env" when none given).
// Missing files are ignored, variables already set in the environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

// Build returns the defaults overlaid with the environment and, when path is set, the config file
func Build(path string) (audiobook.Config, error) {
	cfg := audiobook.DefaultConfig()
	cfg.TTS.APIKey = os.Getenv(EnvAPIKey)

	if path == "" {
		return cfg, nil
	}

	file, err := Load(path)
	if err != nil {
		return cfg, err
	}
	file.Apply(&cfg)
	return cfg, nil
}
