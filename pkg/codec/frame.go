// Package codec defines the frame model, the codec capability interface,
// and the name-keyed algorithm registry shared by all compression
// implementations.
package codec

import "fmt"

// FrameType tags a frame as independently decodable or as dependent on a
// previous frame. The resampling codecs produce self-contained output, so
// DeltaFrame is carried as metadata only.
type FrameType uint8

const (
	// KeyFrame is a frame decodable without reference to any other frame.
	KeyFrame FrameType = iota
	// DeltaFrame marks a frame an orchestrator tagged as dependent.
	DeltaFrame
)

// String returns the string representation of the frame type.
func (t FrameType) String() string {
	switch t {
	case KeyFrame:
		return "key"
	case DeltaFrame:
		return "delta"
	default:
		return "unknown"
	}
}

// Frame is a single raw video frame: interleaved RGB, 3 bytes per pixel,
// row-major from the top-left corner. len(Data) must always equal
// Width*Height*3.
type Frame struct {
	Width     int
	Height    int
	Data      []byte
	Timestamp int
	Type      FrameType
}

// NewFrame allocates a frame with a zeroed pixel buffer of the right size.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height*3),
		Type:   KeyFrame,
	}
}

// Validate checks the pixel buffer invariant.
func (f *Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return &CodecError{Op: "validate", Message: fmt.Sprintf("non-positive dimensions %dx%d", f.Width, f.Height)}
	}
	if want := f.Width * f.Height * 3; len(f.Data) != want {
		return &CodecError{Op: "validate", Message: fmt.Sprintf("pixel buffer is %d bytes, want %d for %dx%d RGB", len(f.Data), want, f.Width, f.Height)}
	}
	return nil
}

// CompressionConfig controls the quality vs. size tradeoff of a codec.
type CompressionConfig struct {
	// Quality is the single effective knob, 1-100. Higher quality means
	// less downsampling.
	Quality int
	// TargetBitrate in kbps is informational; the resampling algorithms
	// ignore it.
	TargetBitrate int
	// KeyFrameInterval controls how often an orchestrator tags frames as
	// key frames. It does not affect codec output.
	KeyFrameInterval int
}

// DefaultCompressionConfig returns the configuration used when the caller
// specifies nothing.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		Quality:          75,
		TargetBitrate:    0,
		KeyFrameInterval: 30,
	}
}

// Validate checks the configuration ranges.
func (c CompressionConfig) Validate() error {
	if c.Quality < 1 || c.Quality > 100 {
		return &CodecError{Op: "initialize", Message: fmt.Sprintf("quality %d out of range [1,100]", c.Quality)}
	}
	if c.TargetBitrate < 0 {
		return &CodecError{Op: "initialize", Message: fmt.Sprintf("negative target bitrate %d", c.TargetBitrate)}
	}
	if c.KeyFrameInterval < 1 {
		return &CodecError{Op: "initialize", Message: fmt.Sprintf("key frame interval %d must be at least 1", c.KeyFrameInterval)}
	}
	return nil
}

// CodecError reports a failure inside a codec implementation.
type CodecError struct {
	Op      string
	Message string
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	if e.Op == "" {
		return "codec: " + e.Message
	}
	return "codec: " + e.Op + ": " + e.Message
}
