package codec

import "errors"

var (
	// ErrNotInitialized is returned when Compress or Decompress is called
	// before a successful Initialize.
	ErrNotInitialized = errors.New("codec: not initialized")

	// ErrShortPayload is returned when a compressed payload is too small
	// to carry its own metadata header.
	ErrShortPayload = errors.New("codec: payload shorter than metadata header")
)

// Codec is the capability set every compression algorithm implements.
//
// A codec moves from Uninitialized to Ready on a successful Initialize and
// stays Ready across Compress, Decompress and Reset calls. Compress and
// Decompress are valid only in the Ready state. A single instance is not
// safe for concurrent use; each instance is exclusively owned by one caller.
type Codec interface {
	// Initialize binds the configuration to the codec for its lifetime.
	Initialize(cfg CompressionConfig) error

	// Compress reduces one frame to an opaque payload. The payload can be
	// reconstructed only by a codec configured with the same quality.
	Compress(frame *Frame) ([]byte, error)

	// Decompress reconstructs a frame from a payload produced by Compress.
	// The result is always a self-contained key frame; the caller sets the
	// timestamp.
	Decompress(payload []byte) (*Frame, error)

	// Name returns the stable algorithm name used for registry lookup.
	Name() string

	// Stats returns a human-readable snapshot of the running counters.
	Stats() string

	// Reset zeroes the running counters. Configuration and the derived
	// resample factor persist until the next Initialize.
	Reset()
}
