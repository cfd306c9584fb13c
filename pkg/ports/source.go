package ports

import "github.com/user/vcompress/pkg/codec"

// SourceInfo describes the raw frames a source delivers.
type SourceInfo struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int // 0 when unknown
}

// FrameSource abstracts sequential pull of raw RGB frames from a video
// input. Implementations own any underlying process or file handle until
// Close.
type FrameSource interface {
	// Open prepares the source and reports the frame geometry.
	Open(path string) (SourceInfo, error)

	// Next fills frame with the next raw frame, resizing its pixel buffer
	// as needed. It returns io.EOF when the source is exhausted.
	Next(frame *codec.Frame) error

	// Close releases the source. Safe to call more than once.
	Close() error
}
