// Package orchestrator coordinates encode and decode sessions: codec
// selection, the frame pipeline stages, audio passthrough and temp file
// handling.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/user/vcompress/pkg/container"
	"github.com/user/vcompress/pkg/pipeline"
	"github.com/user/vcompress/pkg/ports"
)

// Config contains all configuration for a session.
type Config struct {
	// Input/output
	InputPath  string // Source video (encode) or unused (decode)
	StreamPath string // Compressed-stream file
	OutputPath string // Reconstructed video (decode)

	// Codec
	Algorithm        string // Registered codec name; decode resolves it from the header when empty
	Quality          int    // 1-100
	TargetBitrate    int    // kbps, informational
	KeyFrameInterval int    // Every Nth frame is tagged as a key frame

	// Audio
	KeepAudio bool // Carry the audio track through the round trip

	// Housekeeping
	KeepTempFiles bool // Keep the extracted audio and intermediate video
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		StreamPath:       "data.vcomp",
		Algorithm:        "bilinear",
		Quality:          75,
		TargetBitrate:    0,
		KeyFrameInterval: 30,
		KeepAudio:        true,
	}
}

// audioPath is where the extracted track lives between the encode and
// decode sessions, next to the stream file.
func (c Config) audioPath() string {
	return c.StreamPath + ".aac"
}

// EncodeResult reports what an encode session produced.
type EncodeResult struct {
	pipeline.EncodeResult
	AudioExtracted bool
}

// DecodeResult reports what a decode session produced.
type DecodeResult struct {
	pipeline.DecodeResult
	AudioMuxed bool
}

// Orchestrator wires the stages and collaborators together.
type Orchestrator struct {
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	decodeStage pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult]
	audio       ports.AudioTool
	fs          ports.FileSystem
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	decodeStage pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult],
	audio ports.AudioTool,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		encodeStage: encodeStage,
		decodeStage: decodeStage,
		audio:       audio,
		fs:          fs,
		logger:      logger,
	}
}

// Encode compresses the input video into the stream file, extracting the
// audio track alongside when configured.
func (o *Orchestrator) Encode(ctx context.Context, config Config) (EncodeResult, error) {
	result := EncodeResult{}

	algorithmID, ok := AlgorithmID(config.Algorithm)
	if !ok {
		return result, fmt.Errorf("no header id assigned to algorithm %q", config.Algorithm)
	}

	if config.KeepAudio {
		o.logger.Info("Extracting audio track")
		if err := o.audio.Extract(ctx, config.InputPath, config.audioPath()); err != nil {
			// Inputs without an audio track are common; keep going.
			o.logger.Warn("No audio track, continuing without audio")
		} else {
			result.AudioExtracted = true
		}
	}

	o.logger.Info("Encoding %s with %s algorithm...", config.InputPath, config.Algorithm)

	input := pipeline.EncodeInput{
		InputPath:        config.InputPath,
		StreamPath:       config.StreamPath,
		Algorithm:        config.Algorithm,
		AlgorithmID:      algorithmID,
		Quality:          config.Quality,
		TargetBitrate:    config.TargetBitrate,
		KeyFrameInterval: config.KeyFrameInterval,
	}

	encoded, err := o.encodeStage.Execute(ctx, input)
	if err != nil {
		o.logger.Error("Failed to compress frame: %s", err)
		return result, fmt.Errorf("encode stage: %w", err)
	}
	result.EncodeResult = encoded

	o.logger.Info("Compressed %d frames", encoded.FrameCount)
	if encoded.CompressedBytes > 0 {
		ratio := float64(encoded.OriginalBytes) / float64(encoded.CompressedBytes)
		o.logger.Info("Average compression ratio: %.2f:1", ratio)
	}
	o.logger.Info("Output saved to %s", config.StreamPath)

	return result, nil
}

// Decode reconstructs a video from the stream file, muxing the extracted
// audio back in when it is present.
func (o *Orchestrator) Decode(ctx context.Context, config Config) (DecodeResult, error) {
	result := DecodeResult{}

	algorithm := config.Algorithm
	if algorithm == "" {
		name, err := o.resolveAlgorithm(config.StreamPath)
		if err != nil {
			return result, err
		}
		algorithm = name
	}

	hasAudio := false
	if config.KeepAudio {
		exists, err := o.fs.Exists(config.audioPath())
		if err == nil && exists {
			hasAudio = true
		}
	}

	// With audio to mux, the sink writes to a temp video first.
	videoPath := config.OutputPath
	if hasAudio {
		videoPath = config.OutputPath + ".video.mp4"
	}

	o.logger.Info("Decoding %s...", config.StreamPath)

	input := pipeline.DecodeInput{
		StreamPath: config.StreamPath,
		OutputPath: videoPath,
		Algorithm:  algorithm,
		Quality:    config.Quality,
	}

	decoded, err := o.decodeStage.Execute(ctx, input)
	if err != nil {
		o.logger.Error("Failed to decompress frame: %s", err)
		return result, fmt.Errorf("decode stage: %w", err)
	}
	result.DecodeResult = decoded

	if hasAudio {
		o.logger.Info("Muxing audio back into output")
		if err := o.audio.Mux(ctx, videoPath, config.audioPath(), config.OutputPath); err != nil {
			return result, fmt.Errorf("mux audio: %w", err)
		}
		result.AudioMuxed = true

		if !config.KeepTempFiles {
			o.fs.Remove(videoPath)
			o.fs.Remove(config.audioPath())
		}
	}

	o.logger.Info("Output saved to %s", config.OutputPath)

	return result, nil
}

// resolveAlgorithm peeks at the stream header to map its algorithm id back
// to a codec name.
func (o *Orchestrator) resolveAlgorithm(streamPath string) (string, error) {
	stream, err := container.OpenForReading(streamPath)
	if err != nil {
		return "", fmt.Errorf("peek stream header: %w", err)
	}
	defer stream.Close()

	name, ok := AlgorithmName(stream.AlgorithmID())
	if !ok {
		return "", fmt.Errorf("stream header carries unknown algorithm id %d", stream.AlgorithmID())
	}

	return name, nil
}
