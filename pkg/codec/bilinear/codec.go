// Package bilinear implements spatial-resampling compression with a
// hand-rolled bilinear interpolator: frames are downsampled by an integer
// factor on compress and upsampled back to their original dimensions on
// decompress.
package bilinear

import (
	"fmt"
	"time"

	"github.com/user/vcompress/pkg/codec"
)

// AlgorithmName is the stable registry key for this codec.
const AlgorithmName = "bilinear"

// Codec downsamples frames on compress and upsamples them on decompress.
// Encoder and decoder must be configured with the same quality, otherwise
// the recomputed downsampled geometry will not match the stored pixels.
type Codec struct {
	cfg         codec.CompressionConfig
	factor      int
	initialized bool
	stats       codec.RunningStats
}

// New constructs an uninitialized codec.
func New() codec.Codec {
	return &Codec{factor: 2}
}

// Register adds this codec to a registry.
func Register(r *codec.Registry) error {
	return r.Register(AlgorithmName, New)
}

// Initialize derives the resample factor from the quality setting and moves
// the codec to the ready state.
func (c *Codec) Initialize(cfg codec.CompressionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.cfg = cfg
	c.factor = codec.ResampleFactor(cfg.Quality)
	c.initialized = true

	return nil
}

// Compress downsamples one frame and wraps the result in a payload carrying
// the original dimensions.
func (c *Codec) Compress(frame *codec.Frame) ([]byte, error) {
	if !c.initialized {
		return nil, codec.ErrNotInitialized
	}
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	targetWidth := frame.Width / c.factor
	targetHeight := frame.Height / c.factor
	if targetWidth < 1 || targetHeight < 1 {
		return nil, &codec.CodecError{
			Op:      "compress",
			Message: fmt.Sprintf("frame %dx%d too small for factor %d", frame.Width, frame.Height, c.factor),
		}
	}

	downsampled := make([]byte, targetWidth*targetHeight*3)
	resampleDown(frame.Data, downsampled, frame.Width, frame.Height, targetWidth, targetHeight)

	payload := codec.EncodePayload(frame.Width, frame.Height, downsampled)

	ratio := float64(len(frame.Data)) / float64(len(downsampled))
	c.stats.RecordCompress(ratio, time.Since(start))

	return payload, nil
}

// Decompress upsamples a payload back to the original frame dimensions.
// The downsampled geometry is recomputed from this codec's own factor; the
// payload does not carry it.
func (c *Codec) Decompress(payload []byte) (*codec.Frame, error) {
	if !c.initialized {
		return nil, codec.ErrNotInitialized
	}

	start := time.Now()

	origWidth, origHeight, pixels, err := codec.DecodePayload(payload)
	if err != nil {
		return nil, err
	}
	if origWidth < 1 || origHeight < 1 {
		return nil, &codec.CodecError{
			Op:      "decompress",
			Message: fmt.Sprintf("payload declares invalid dimensions %dx%d", origWidth, origHeight),
		}
	}

	downWidth := origWidth / c.factor
	downHeight := origHeight / c.factor
	if want := downWidth * downHeight * 3; len(pixels) != want {
		return nil, &codec.CodecError{
			Op: "decompress",
			Message: fmt.Sprintf("payload carries %d pixel bytes, want %d for %dx%d at factor %d",
				len(pixels), want, downWidth, downHeight, c.factor),
		}
	}

	frame := codec.NewFrame(origWidth, origHeight)
	resampleUp(pixels, frame.Data, downWidth, downHeight, origWidth, origHeight)

	c.stats.RecordDecompress(time.Since(start))

	return frame, nil
}

// Name returns the registry key.
func (c *Codec) Name() string { return AlgorithmName }

// Stats returns a snapshot of the running counters.
func (c *Codec) Stats() string {
	return c.stats.Snapshot(AlgorithmName, c.factor)
}

// Reset zeroes the counters. The factor and configuration persist.
func (c *Codec) Reset() {
	c.stats.Reset()
}

var _ codec.Codec = (*Codec)(nil)
