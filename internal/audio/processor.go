// Package audio validates, merges and plays audio segments with the ffmpeg toolchain.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

//go:generate moq -out mocks/command_runner.go -pkg mocks -skip-ensure -fmt goimports . CommandRunner

// codecs maps an output format to the ffmpeg audio encoder
var codecs = map[string]string{
	"mp3":  "libmp3lame",
	"ogg":  "libvorbis",
	"m4a":  "aac",
	"aac":  "aac",
	"flac": "flac",
	"wav":  "pcm_s16le",
}

// lossless formats ignore the bitrate
var lossless = map[string]bool{"flac": true, "wav": true}

var bitrateRe = regexp.MustCompile(`^[0-9]+k$`)

// Static errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidBitrate    = errors.New("invalid bitrate")
	ErrNoInputFiles      = errors.New("no audio files to merge")
)

// EncodingProfile is the format and bitrate of the merged output
type EncodingProfile struct {
	Format  string
	Bitrate string
}

// Validate checks that the format has a known encoder and the bitrate looks like "128k"
func (p EncodingProfile) Validate() error {
	if _, ok := codecs[p.Format]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, p.Format)
	}
	if lossless[p.Format] {
		return nil
	}
	if !bitrateRe.MatchString(p.Bitrate) {
		return fmt.Errorf("%w: %q", ErrInvalidBitrate, p.Bitrate)
	}
	return nil
}

// encoderArgs returns the ffmpeg output options for the profile
func (p EncodingProfile) encoderArgs() []string {
	args := []string{"-c:a", codecs[p.Format]}
	if !lossless[p.Format] {
		args = append(args, "-b:a", p.Bitrate)
	}
	return args
}

// CommandRunner builds the external commands used for probing, merging and playback
type CommandRunner interface {
	Command(ctx context.Context, name string, args ...string) *exec.Cmd
	GetAudioCommand(filename string) (*exec.Cmd, error)
}

// FFmpegAudioProcessor implements audio processing using ffmpeg
type FFmpegAudioProcessor struct {
	cmdRunner CommandRunner
}

// NewFFmpegAudioProcessor creates a new FFmpeg audio processor
func NewFFmpegAudioProcessor() *FFmpegAudioProcessor {
	return &FFmpegAudioProcessor{
		cmdRunner: &DefaultCommandRunner{},
	}
}

// NewFFmpegAudioProcessorWithRunner creates a processor that builds its commands through runner
func NewFFmpegAudioProcessorWithRunner(runner CommandRunner) *FFmpegAudioProcessor {
	return &FFmpegAudioProcessor{cmdRunner: runner}
}

// Probe returns the duration of an audio file. An error means ffprobe could not decode it.
func (p *FFmpegAudioProcessor) Probe(ctx context.Context, file string) (time.Duration, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		file,
	}

	cmd := p.cmdRunner.Command(ctx, "ffprobe", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to probe %s: %w: %s", file, err, strings.TrimSpace(stderr.String()))
	}

	value := strings.TrimSpace(string(out))
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q of %s: %w", value, file, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("audio file %s has no duration", file)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// Merge concatenates files in order into output, re-encoded with the given profile
func (p *FFmpegAudioProcessor) Merge(ctx context.Context, files []string, output string, profile EncodingProfile) error {
	if len(files) == 0 {
		return ErrNoInputFiles
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	concatFile, err := CreateConcatFile(filepath.Dir(files[0]), files)
	if err != nil {
		return err
	}
	defer os.Remove(concatFile)

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", concatFile,
		"-vn",
	}
	args = append(args, profile.encoderArgs()...)
	args = append(args, "-y", output)

	cmd := p.cmdRunner.Command(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to concatenate audio files: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// Play plays an audio file using the system's default audio player
func (p *FFmpegAudioProcessor) Play(filename string) error {
	// the player command rejects relative parent segments, so hand it a clean absolute path
	filename, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("failed to resolve audio file path: %w", err)
	}

	if _, err := os.Stat(filename); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("audio file does not exist: %s", filename)
		}
		return fmt.Errorf("failed to check audio file: %w", err)
	}

	cmd, err := p.cmdRunner.GetAudioCommand(filename)
	if err != nil {
		return fmt.Errorf("failed to get audio command: %w", err)
	}

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error playing audio: %w", err)
	}

	return nil
}

// CreateConcatFile writes an ffmpeg concat list for audioFiles into dir
func CreateConcatFile(dir string, audioFiles []string) (string, error) {
	concatFile := filepath.Join(dir, "concat.txt")
	var concatContent strings.Builder
	for _, file := range audioFiles {
		abs, err := filepath.Abs(file)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		// escape single quotes in filenames for ffmpeg concat format
		safeFile := strings.ReplaceAll(abs, "'", "'\\''")
		concatContent.WriteString(fmt.Sprintf("file '%s'\n", safeFile))
	}
	if err := os.WriteFile(concatFile, []byte(concatContent.String()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write concat file: %w", err)
	}
	return concatFile, nil
}

// DefaultCommandRunner is the default implementation of CommandRunner
type DefaultCommandRunner struct{}

// Command returns an exec.Cmd bound to ctx
func (r *DefaultCommandRunner) Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	// #nosec G204 -- binary names are fixed, arguments are built internally
	return exec.CommandContext(ctx, name, args...)
}

// GetAudioCommand returns the appropriate audio command for the current OS
func (r *DefaultCommandRunner) GetAudioCommand(filename string) (*exec.Cmd, error) {
	// validate filename to prevent potential security issues
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, ";|&$`") {
		return nil, fmt.Errorf("invalid filename: potential security risk")
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", filename), nil
	case "windows":
		return exec.Command("cmd", "/C", "start", filename), nil
	case "linux":
		players := []string{"mpv", "ffplay", "mplayer"}
		for _, player := range players {
			if _, err := exec.LookPath(player); err != nil {
				continue
			}
			switch player {
			case "ffplay":
				// #nosec G204 -- player is selected from a whitelist
				return exec.Command(player, "-nodisp", "-autoexit", "-loglevel", "quiet", filename), nil
			case "mpv":
				// #nosec G204 -- player is selected from a whitelist
				return exec.Command(player, "--no-video", "--really-quiet", filename), nil
			default:
				// #nosec G204 -- player is selected from a whitelist
				return exec.Command(player, "-really-quiet", filename), nil
			}
		}
		return nil, fmt.Errorf("no suitable audio player found on your system")
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
