package codec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleFactor(t *testing.T) {
	tests := []struct {
		quality int
		factor  int
	}{
		{quality: 100, factor: 2},
		{quality: 75, factor: 2},
		{quality: 50, factor: 2},
		{quality: 49, factor: 3},
		{quality: 25, factor: 3},
		{quality: 24, factor: 4},
		{quality: 1, factor: 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.factor, ResampleFactor(tt.quality), "quality %d", tt.quality)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	pixels := []byte{1, 2, 3, 4, 5, 6}

	payload := EncodePayload(640, 480, pixels)
	require.Len(t, payload, PayloadMetaSize+len(pixels))

	assert.Equal(t, uint32(640), binary.LittleEndian.Uint32(payload[0:4]))
	assert.Equal(t, uint32(480), binary.LittleEndian.Uint32(payload[4:8]))

	w, h, got, err := DecodePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, pixels, got)
}

func TestDecodePayloadTooShort(t *testing.T) {
	_, _, _, err := DecodePayload([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrShortPayload)
}

func TestFrameValidate(t *testing.T) {
	f := NewFrame(4, 3)
	require.NoError(t, f.Validate())

	f.Data = f.Data[:len(f.Data)-1]
	assert.Error(t, f.Validate())

	assert.Error(t, (&Frame{Width: 0, Height: 3}).Validate())
}

func TestCompressionConfigValidate(t *testing.T) {
	require.NoError(t, DefaultCompressionConfig().Validate())

	bad := DefaultCompressionConfig()
	bad.Quality = 0
	assert.Error(t, bad.Validate())

	bad = DefaultCompressionConfig()
	bad.Quality = 101
	assert.Error(t, bad.Validate())

	bad = DefaultCompressionConfig()
	bad.TargetBitrate = -1
	assert.Error(t, bad.Validate())

	bad = DefaultCompressionConfig()
	bad.KeyFrameInterval = 0
	assert.Error(t, bad.Validate())
}
