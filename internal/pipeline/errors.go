package pipeline

import (
	"errors"
	"fmt"
)

// Static errors.
var (
	ErrInputNotFound = errors.New("input file not found")
	ErrNoText        = errors.New("no text extracted from input")
	ErrNoAudio       = errors.New("no audio was produced")
)

// ExtractionError is returned when the input document cannot be read
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SynthesisError marks a chunk whose speech could not be produced. The run skips it.
type SynthesisError struct {
	Index int
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("failed to synthesize chunk %d: %v", e.Index, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// MergeError marks a segment that could not be decoded for merging. The run skips it.
type MergeError struct {
	Index int
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("failed to decode segment %d: %v", e.Index, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// ExportError is returned when the merged file cannot be written
type ExportError struct {
	Output string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s: %v", e.Output, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// PublishError is returned when the finished file cannot be uploaded. The local file is kept.
type PublishError struct {
	Key string
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish %s: %v", e.Key, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
