package ports

import "github.com/user/vcompress/pkg/codec"

// FrameSink abstracts push of raw RGB frames into a video output. A sink is
// bound to fixed dimensions at Open and must reject mismatched frames
// rather than resize them.
type FrameSink interface {
	// Open prepares the sink for frames of the given geometry.
	Open(path string, width, height int, fps float64) error

	// Write accepts one raw frame. Frames whose dimensions differ from the
	// Open geometry fail.
	Write(frame *codec.Frame) error

	// Close finalizes the output. Safe to call more than once.
	Close() error
}

// DebugSink saves intermediate frames for inspection when enabled.
type DebugSink interface {
	// Enabled reports whether debug output is active.
	Enabled() bool

	// SaveFrame persists one decoded frame, keyed by its index.
	SaveFrame(index int, frame *codec.Frame) error
}
