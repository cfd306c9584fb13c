package pngsink

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/mocks"
)

func TestSaveFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New("debug", fs)

	assert.True(t, sink.Enabled())

	frame := codec.NewFrame(4, 2)
	for i := 0; i < len(frame.Data); i += 3 {
		frame.Data[i] = 255
		frame.Data[i+1] = 128
	}

	require.NoError(t, sink.SaveFrame(7, frame))

	path := filepath.Join("debug", "frames", "frame-0007.png")
	data, err := fs.ReadFile(path)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0x8080), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestSaveFrame_InvalidFrame(t *testing.T) {
	sink := New("debug", mocks.NewFileSystem())

	frame := codec.NewFrame(4, 2)
	frame.Data = frame.Data[:5]

	assert.Error(t, sink.SaveFrame(0, frame))
}
