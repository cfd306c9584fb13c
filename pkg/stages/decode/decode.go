// Package decode implements the reconstruction stage: records are read
// back from a stream file, decompressed, and pushed into a frame sink.
package decode

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/container"
	"github.com/user/vcompress/pkg/pipeline"
	"github.com/user/vcompress/pkg/ports"
)

// Stage reconstructs a video from a stream file.
type Stage struct {
	sink     ports.FrameSink
	registry *codec.Registry
	debug    ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new decode stage.
func NewStage(sink ports.FrameSink, registry *codec.Registry, debug ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:     sink,
		registry: registry,
		debug:    debug,
		logger:   logger.WithComponent("decode"),
	}
}

// Execute runs one decode session. The codec must be configured with the
// same quality the encode session used; the stream carries no factor, so a
// mismatch produces wrongly sized records rather than a detectable error.
func (s *Stage) Execute(ctx context.Context, input pipeline.DecodeInput) (pipeline.DecodeResult, error) {
	result := pipeline.DecodeResult{}

	c, err := s.registry.Create(input.Algorithm)
	if err != nil {
		return result, fmt.Errorf("create codec: %w", err)
	}

	cfg := codec.DefaultCompressionConfig()
	cfg.Quality = input.Quality
	if err := c.Initialize(cfg); err != nil {
		return result, fmt.Errorf("initialize codec: %w", err)
	}

	stream, err := container.OpenForReading(input.StreamPath)
	if err != nil {
		return result, fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	result.Width = stream.Width()
	result.Height = stream.Height()
	result.FPS = stream.FPS()

	if err := s.sink.Open(input.OutputPath, stream.Width(), stream.Height(), stream.FPS()); err != nil {
		return result, fmt.Errorf("open sink: %w", err)
	}
	defer s.sink.Close()

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		payload, _, err := stream.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return result, fmt.Errorf("read record %d: %w", result.FrameCount, err)
		}

		frame, err := c.Decompress(payload)
		if err != nil {
			return result, fmt.Errorf("decompress frame %d: %w", result.FrameCount, err)
		}
		frame.Timestamp = result.FrameCount

		if s.debug.Enabled() {
			if err := s.debug.SaveFrame(result.FrameCount, frame); err != nil {
				s.logger.Warn("Failed to write output: %s", err)
			}
		}

		if err := s.sink.Write(frame); err != nil {
			return result, fmt.Errorf("write frame %d: %w", result.FrameCount, err)
		}

		result.FrameCount++
	}

	if err := s.sink.Close(); err != nil {
		return result, fmt.Errorf("close sink: %w", err)
	}

	result.Stats = c.Stats()

	s.logger.Debug("Decompressed %d frames", result.FrameCount)
	s.logger.Debug("Reconstructed video: %dx%d", result.Width, result.Height)

	return result, nil
}

var _ pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult] = (*Stage)(nil)
