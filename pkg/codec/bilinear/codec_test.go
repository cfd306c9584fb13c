package bilinear

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/vcompress/pkg/codec"
)

func newReady(t *testing.T, quality int) codec.Codec {
	t.Helper()
	c := New()
	cfg := codec.DefaultCompressionConfig()
	cfg.Quality = quality
	require.NoError(t, c.Initialize(cfg))
	return c
}

// uniformFrame fills every pixel with the same RGB triple.
func uniformFrame(width, height int, r, g, b byte) *codec.Frame {
	f := codec.NewFrame(width, height)
	for i := 0; i < len(f.Data); i += 3 {
		f.Data[i] = r
		f.Data[i+1] = g
		f.Data[i+2] = b
	}
	return f
}

// gradientFrame varies pixel values with position so resampling has real
// work to do.
func gradientFrame(width, height int) *codec.Frame {
	f := codec.NewFrame(width, height)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Data[i] = byte(x * 255 / width)
			f.Data[i+1] = byte(y * 255 / height)
			f.Data[i+2] = byte((x + y) % 256)
			i += 3
		}
	}
	return f
}

func TestCompress_NotInitialized(t *testing.T) {
	c := New()
	_, err := c.Compress(codec.NewFrame(8, 8))
	assert.ErrorIs(t, err, codec.ErrNotInitialized)

	_, err = c.Decompress(make([]byte, 16))
	assert.ErrorIs(t, err, codec.ErrNotInitialized)
}

func TestCompress_PayloadLayout(t *testing.T) {
	c := newReady(t, 100) // factor 2

	payload, err := c.Compress(gradientFrame(16, 8))
	require.NoError(t, err)

	require.Len(t, payload, codec.PayloadMetaSize+8*4*3)
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(payload[0:4]))
	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(payload[4:8]))
}

func TestRoundTrip_Geometry(t *testing.T) {
	tests := []struct {
		quality int
		factor  int
	}{
		{quality: 100, factor: 2},
		{quality: 40, factor: 3},
		{quality: 10, factor: 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("factor%d", tt.factor), func(t *testing.T) {
			c := newReady(t, tt.quality)

			width := 12 * tt.factor
			height := 9 * tt.factor
			payload, err := c.Compress(gradientFrame(width, height))
			require.NoError(t, err)

			got, err := c.Decompress(payload)
			require.NoError(t, err)

			assert.Equal(t, width, got.Width)
			assert.Equal(t, height, got.Height)
			assert.Len(t, got.Data, width*height*3)
			assert.Equal(t, codec.KeyFrame, got.Type)
		})
	}
}

func TestRoundTrip_UniformColorInvariance(t *testing.T) {
	c := newReady(t, 50)

	payload, err := c.Compress(uniformFrame(32, 24, 17, 130, 255))
	require.NoError(t, err)

	got, err := c.Decompress(payload)
	require.NoError(t, err)

	for i := 0; i < len(got.Data); i += 3 {
		if got.Data[i] != 17 || got.Data[i+1] != 130 || got.Data[i+2] != 255 {
			t.Fatalf("pixel %d drifted to (%d,%d,%d)", i/3, got.Data[i], got.Data[i+1], got.Data[i+2])
		}
	}
}

func TestCompress_DegenerateDimensions(t *testing.T) {
	c := newReady(t, 1) // factor 4

	_, err := c.Compress(gradientFrame(3, 3))
	require.Error(t, err)

	var codecErr *codec.CodecError
	assert.ErrorAs(t, err, &codecErr)
}

func TestCompress_CorruptBuffer(t *testing.T) {
	c := newReady(t, 50)

	frame := gradientFrame(8, 8)
	frame.Data = frame.Data[:10]

	_, err := c.Compress(frame)
	assert.Error(t, err)
}

func TestDecompress_WrongGeometry(t *testing.T) {
	c := newReady(t, 50)

	// Payload claims 16x16 but carries no pixel bytes.
	payload := codec.EncodePayload(16, 16, nil)
	_, err := c.Decompress(payload)
	require.Error(t, err)

	_, err = c.Decompress([]byte{1, 2})
	assert.ErrorIs(t, err, codec.ErrShortPayload)
}

func TestStats_MeanRatioAndReset(t *testing.T) {
	c := newReady(t, 100) // factor 2, ratio 4 per frame

	for i := 0; i < 3; i++ {
		_, err := c.Compress(gradientFrame(16, 16))
		require.NoError(t, err)
	}

	out := c.Stats()
	assert.Contains(t, out, "Frames compressed: 3")
	assert.Contains(t, out, "Average compression ratio: 4.00:1")
	assert.Contains(t, out, "Resample factor: 2")

	c.Reset()

	out = c.Stats()
	assert.Contains(t, out, "Frames compressed: 0")
	assert.Contains(t, out, "Average compression ratio: 0.00:1")
	// The factor survives a reset.
	assert.Contains(t, out, "Resample factor: 2")
}

func TestStats_CountsDecompression(t *testing.T) {
	c := newReady(t, 50)

	payload, err := c.Compress(gradientFrame(16, 16))
	require.NoError(t, err)
	_, err = c.Decompress(payload)
	require.NoError(t, err)

	assert.Contains(t, c.Stats(), "Frames decompressed: 1")
}

func TestInitialize_RejectsBadConfig(t *testing.T) {
	c := New()
	cfg := codec.DefaultCompressionConfig()
	cfg.Quality = 0
	assert.Error(t, c.Initialize(cfg))
}
