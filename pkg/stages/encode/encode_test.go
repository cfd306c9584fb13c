package encode

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/codec/bilinear"
	"github.com/user/vcompress/pkg/container"
	"github.com/user/vcompress/pkg/mocks"
	"github.com/user/vcompress/pkg/pipeline"
	"github.com/user/vcompress/pkg/ports"
)

func solidFrame(width, height int, r, g, b byte) *codec.Frame {
	frame := codec.NewFrame(width, height)
	for i := 0; i < len(frame.Data); i += 3 {
		frame.Data[i] = r
		frame.Data[i+1] = g
		frame.Data[i+2] = b
	}
	return frame
}

func testRegistry(t *testing.T) *codec.Registry {
	t.Helper()
	registry := codec.NewRegistry()
	require.NoError(t, bilinear.Register(registry))
	return registry
}

func testSource(frameCount int) *mocks.FrameSource {
	source := &mocks.FrameSource{
		Info: ports.SourceInfo{Width: 16, Height: 8, FPS: 30.0, FrameCount: frameCount},
	}
	for i := 0; i < frameCount; i++ {
		source.Frames = append(source.Frames, solidFrame(16, 8, byte(i*40), 0, 0))
	}
	return source
}

func testInput(streamPath string) pipeline.EncodeInput {
	return pipeline.EncodeInput{
		InputPath:        "input.mp4",
		StreamPath:       streamPath,
		Algorithm:        bilinear.AlgorithmName,
		AlgorithmID:      1,
		Quality:          100,
		KeyFrameInterval: 2,
	}
}

func TestExecute(t *testing.T) {
	source := testSource(5)
	streamPath := filepath.Join(t.TempDir(), "out.vcomp")
	stage := NewStage(source, testRegistry(t), &mocks.Logger{})

	result, err := stage.Execute(context.Background(), testInput(streamPath))
	require.NoError(t, err)

	assert.Equal(t, 5, result.FrameCount)
	assert.Equal(t, 16, result.Width)
	assert.Equal(t, 8, result.Height)
	assert.InDelta(t, 30.0, result.FPS, 0.001)
	assert.Equal(t, int64(5*16*8*3), result.OriginalBytes)
	assert.Less(t, result.CompressedBytes, result.OriginalBytes)
	assert.Contains(t, result.Stats, "bilinear")

	assert.Equal(t, "input.mp4", source.OpenedPath)
	assert.True(t, source.CloseCalled)

	// Key frames land on every KeyFrameInterval'th record, starting with
	// the first.
	stream, err := container.OpenForReading(streamPath)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, 16, stream.Width())
	assert.Equal(t, 8, stream.Height())
	assert.Equal(t, uint16(1), stream.AlgorithmID())

	wantKey := []bool{true, false, true, false, true}
	for i, want := range wantKey {
		_, isKey, err := stream.ReadFrame()
		require.NoError(t, err, "record %d", i)
		assert.Equal(t, want, isKey, "record %d", i)
	}
	_, _, err = stream.ReadFrame()
	assert.ErrorIs(t, err, io.EOF)
}

func TestExecute_EmptySource(t *testing.T) {
	source := testSource(0)
	streamPath := filepath.Join(t.TempDir(), "empty.vcomp")
	stage := NewStage(source, testRegistry(t), &mocks.Logger{})

	result, err := stage.Execute(context.Background(), testInput(streamPath))
	require.NoError(t, err)
	assert.Equal(t, 0, result.FrameCount)

	// Header only.
	stream, err := container.OpenForReading(streamPath)
	require.NoError(t, err)
	defer stream.Close()
	_, _, err = stream.ReadFrame()
	assert.ErrorIs(t, err, io.EOF)
}

func TestExecute_UnknownAlgorithm(t *testing.T) {
	source := testSource(0)
	stage := NewStage(source, testRegistry(t), &mocks.Logger{})

	input := testInput(filepath.Join(t.TempDir(), "out.vcomp"))
	input.Algorithm = "h265"

	_, err := stage.Execute(context.Background(), input)
	assert.Error(t, err)
	assert.False(t, source.OpenCalled)
}

func TestExecute_SourceOpenError(t *testing.T) {
	source := &mocks.FrameSource{
		OpenFunc: func(path string) (ports.SourceInfo, error) {
			return ports.SourceInfo{}, assert.AnError
		},
	}
	stage := NewStage(source, testRegistry(t), &mocks.Logger{})

	_, err := stage.Execute(context.Background(), testInput(filepath.Join(t.TempDir(), "out.vcomp")))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExecute_ContextCanceled(t *testing.T) {
	source := testSource(3)
	stage := NewStage(source, testRegistry(t), &mocks.Logger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Execute(ctx, testInput(filepath.Join(t.TempDir(), "out.vcomp")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_BadQuality(t *testing.T) {
	source := testSource(1)
	stage := NewStage(source, testRegistry(t), &mocks.Logger{})

	input := testInput(filepath.Join(t.TempDir(), "out.vcomp"))
	input.Quality = 0

	_, err := stage.Execute(context.Background(), input)
	assert.Error(t, err)
}
