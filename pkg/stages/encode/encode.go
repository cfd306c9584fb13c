// Package encode implements the compression stage: raw frames are pulled
// from a source, compressed by a codec, and appended to a stream file.
package encode

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

// Stage compresses a video into a stream file.
type Stage struct {
	source   ports.FrameSource
	registry *codec.Registry
	logger   ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(source ports.FrameSource, registry *codec.Registry, logger ports.Logger) *Stage {
	return &Stage{
		source:   source,
		registry: registry,
		logger:   logger.WithComponent("encode"),
	}
}

// Execute runs one encode session.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	c, err := s.registry.Create(input.Algorithm)
	if err != nil {
		return result, fmt.Errorf("create codec: %w", err)
	}

	cfg := codec.CompressionConfig{
		Quality:          input.Quality,
		TargetBitrate:    input.TargetBitrate,
		KeyFrameInterval: input.KeyFrameInterval,
	}
	if err := c.Initialize(cfg); err != nil {
		return result, fmt.Errorf("initialize codec: %w", err)
	}
	s.logger.Debug("Created codec %q with quality %d", input.Algorithm, input.Quality)

	info, err := s.source.Open(input.InputPath)
	if err != nil {
		return result, fmt.Errorf("open source: %w", err)
	}
	defer s.source.Close()

	s.logger.Debug("Opened input: %dx%d at %.2f fps", info.Width, info.Height, info.FPS)

	stream, err := container.OpenForWriting(input.StreamPath, info.Width, info.Height, info.FPS, input.AlgorithmID)
	if err != nil {
		return result, fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	frame := codec.NewFrame(info.Width, info.Height)
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.source.Next(frame); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return result, fmt.Errorf("read frame %d: %w", result.FrameCount, err)
		}

		isKey := result.FrameCount%input.KeyFrameInterval == 0
		if isKey {
			frame.Type = codec.KeyFrame
		} else {
			frame.Type = codec.DeltaFrame
		}

		payload, err := c.Compress(frame)
		if err != nil {
			return result, fmt.Errorf("compress frame %d: %w", result.FrameCount, err)
		}

		if err := stream.WriteFrame(payload, isKey); err != nil {
			return result, fmt.Errorf("write frame %d: %w", result.FrameCount, err)
		}

		result.FrameCount++
		result.OriginalBytes += int64(len(frame.Data))
		result.CompressedBytes += int64(len(payload))
	}

	if err := stream.Close(); err != nil {
		return result, fmt.Errorf("close stream: %w", err)
	}

	result.Width = info.Width
	result.Height = info.Height
	result.FPS = info.FPS
	result.Stats = c.Stats()

	s.logger.Debug("Compressed %d frames", result.FrameCount)

	return result, nil
}

var _ pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] = (*Stage)(nil)
