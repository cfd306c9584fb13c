package xdraw

import (
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

func uniformFrame(width, height int, r, g, b byte) *codec.Frame {
	f := codec.NewFrame(width, height)
	for i := 0; i < len(f.Data); i += 3 {
		f.Data[i] = r
		f.Data[i+1] = g
		f.Data[i+2] = b
	}
	return f
}

func TestNotInitialized(t *testing.T) {
	c := New()
	_, err := c.Compress(codec.NewFrame(8, 8))
	assert.ErrorIs(t, err, codec.ErrNotInitialized)
}

func TestRoundTrip_Geometry(t *testing.T) {
	c := newReady(t, 100) // factor 2

	frame := uniformFrame(32, 16, 10, 20, 30)
	payload, err := c.Compress(frame)
	require.NoError(t, err)
	require.Len(t, payload, codec.PayloadMetaSize+16*8*3)

	got, err := c.Decompress(payload)
	require.NoError(t, err)
	assert.Equal(t, 32, got.Width)
	assert.Equal(t, 16, got.Height)
	assert.Equal(t, codec.KeyFrame, got.Type)
}

func TestRoundTrip_UniformColorInvariance(t *testing.T) {
	c := newReady(t, 30) // factor 3

	payload, err := c.Compress(uniformFrame(24, 24, 200, 100, 50))
	require.NoError(t, err)

	got, err := c.Decompress(payload)
	require.NoError(t, err)

	for i := 0; i < len(got.Data); i += 3 {
		if got.Data[i] != 200 || got.Data[i+1] != 100 || got.Data[i+2] != 50 {
			t.Fatalf("pixel %d drifted to (%d,%d,%d)", i/3, got.Data[i], got.Data[i+1], got.Data[i+2])
		}
	}
}

func TestPixelConversionRoundTrip(t *testing.T) {
	src := []byte{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}

	img := rgbToImage(src, 2, 2)
	assert.Equal(t, src, imageToRGB(img))
}

func TestStatsAndReset(t *testing.T) {
	c := newReady(t, 100)

	_, err := c.Compress(uniformFrame(16, 16, 1, 2, 3))
	require.NoError(t, err)

	out := c.Stats()
	assert.Contains(t, out, "xdraw algorithm statistics:")
	assert.Contains(t, out, "Frames compressed: 1")

	c.Reset()
	assert.Contains(t, c.Stats(), "Frames compressed: 0")
}
