// Package xdraw implements the spatial-resampling codec on top of
// golang.org/x/image/draw instead of the hand-rolled interpolator. It keeps
// the same payload layout and factor derivation as the bilinear codec, so
// the two are interchangeable at the container level.
package xdraw

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/image/draw"

	"github.com/user/vcompress/pkg/codec"
)

// AlgorithmName is the stable registry key for this codec.
const AlgorithmName = "xdraw"

// Codec resamples frames with the x/image bilinear scaler.
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

// Initialize derives the resample factor from the quality setting.
func (c *Codec) Initialize(cfg codec.CompressionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.cfg = cfg
	c.factor = codec.ResampleFactor(cfg.Quality)
	c.initialized = true

	return nil
}

// Compress downsamples one frame with draw.BiLinear.
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

	downsampled := scaleRGB(frame.Data, frame.Width, frame.Height, targetWidth, targetHeight)
	payload := codec.EncodePayload(frame.Width, frame.Height, downsampled)

	ratio := float64(len(frame.Data)) / float64(len(downsampled))
	c.stats.RecordCompress(ratio, time.Since(start))

	return payload, nil
}

// Decompress upsamples a payload back to its original dimensions, using
// this codec's own factor to recompute the stored geometry.
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
	copy(frame.Data, scaleRGB(pixels, downWidth, downHeight, origWidth, origHeight))

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

// scaleRGB resamples an interleaved RGB buffer to the target dimensions via
// an RGBA round trip, since the x/image scalers operate on image.Image.
func scaleRGB(src []byte, srcW, srcH, dstW, dstH int) []byte {
	srcImg := rgbToImage(src, srcW, srcH)
	dstImg := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.BiLinear.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	return imageToRGB(dstImg)
}

func rgbToImage(src []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		si := y * width * 3
		di := y * img.Stride
		for x := 0; x < width; x++ {
			img.Pix[di+0] = src[si+0]
			img.Pix[di+1] = src[si+1]
			img.Pix[di+2] = src[si+2]
			img.Pix[di+3] = 0xff
			si += 3
			di += 4
		}
	}

	return img
}

func imageToRGB(img *image.RGBA) []byte {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		si := y * img.Stride
		di := y * width * 3
		for x := 0; x < width; x++ {
			out[di+0] = img.Pix[si+0]
			out[di+1] = img.Pix[si+1]
			out[di+2] = img.Pix[si+2]
			si += 4
			di += 3
		}
	}

	return out
}

var _ codec.Codec = (*Codec)(nil)
